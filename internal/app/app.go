package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/AatishKamble/swapify/config"
	"github.com/AatishKamble/swapify/internal/controller"
	"github.com/AatishKamble/swapify/internal/handler"
	circuitbreaker "github.com/AatishKamble/swapify/internal/infrastructure/circuit-breaker"
	"github.com/AatishKamble/swapify/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/AatishKamble/swapify/internal/infrastructure/payment-gateway"
	"github.com/AatishKamble/swapify/internal/infrastructure/tracing"
	localmiddleware "github.com/AatishKamble/swapify/internal/middleware"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/internal/service"
	"github.com/AatishKamble/swapify/pkg/response"
	"github.com/AatishKamble/swapify/pkg/utils"
	"github.com/AatishKamble/swapify/pkg/validator"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

const healthRefreshInterval = 15 * time.Second

type App struct {
	MongoDB *mongo.Database
	DB      *sqlx.DB
	Config  *config.Config
	Server  *echo.Echo

	grpcServer     *grpc.Server
	grpcHandler    *handler.GrpcHandler
	metricsServer  *echo.Echo
	scheduler      gocron.Scheduler
	traceProvider  *sdktrace.TracerProvider
	stopConsumer   context.CancelFunc
	closeResources []func() error
}

// Start wires every component and blocks serving HTTP until StopServer is
// called.
func (app *App) Start() error {
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		app.traceProvider = traceProvider
	}

	historyRepo := repository.CreateOrderHistoryRepository(app.DB)
	if err := historyRepo.EnsureSchema(context.Background()); err != nil {
		return err
	}

	kafkaProducer := kafka.CreateKafkaWriter(app.Config)
	kafkaReader := kafka.CreateKafkaReader(app.Config)
	app.closeResources = append(app.closeResources, kafkaProducer.Close, kafkaReader.Close)

	productRepo := repository.CreateProductRepository(app.MongoDB)
	categoryRepo := repository.CreateCategoryRepository(app.MongoDB)
	cartRepo := repository.CreateCartRepository(app.MongoDB)
	orderRepo := repository.CreateOrderRepository(app.MongoDB)
	userRepo := repository.CreateUserRepository(app.MongoDB)
	addressRepo := repository.CreateAddressRepository(app.MongoDB)
	wishlistRepo := repository.CreateWishlistRepository(app.MongoDB)
	outboxRepo := repository.CreateOutboxRepository(app.MongoDB)

	var mailer service.Mailer
	if app.Config.SMTPConfig.Host != "" {
		mailer = utils.SMTPMailer{
			Host:     app.Config.SMTPConfig.Host,
			Port:     app.Config.SMTPConfig.Port,
			Sender:   app.Config.SMTPConfig.Sender,
			Password: app.Config.SMTPConfig.Password,
		}
	}

	cb := circuitbreaker.CreateCircuitBreaker(tracing.ServiceName)
	midtransClient := paymentgateway.CreateMidtransClient(app.Config)

	productSvc := service.CreateProductService(productRepo, categoryRepo)
	cartSvc := service.CreateCartService(cartRepo, productRepo)
	orderSvc := service.CreateOrderService(orderRepo, productRepo, userRepo, addressRepo, wishlistRepo, outboxRepo, historyRepo, cartSvc, midtransClient)
	eventSvc := service.CreateEventService(outboxRepo, historyRepo, userRepo, kafkaProducer, kafkaReader, cb, mailer, app.Config)

	app.grpcHandler = handler.CreateGRPCHandler(map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error {
			return app.MongoDB.Client().Ping(ctx, nil)
		},
		"postgres": app.DB.PingContext,
	})
	app.grpcHandler.RefreshStatus()

	if err := app.startScheduler(eventSvc); err != nil {
		return err
	}

	consumerCtx, cancel := context.WithCancel(context.Background())
	app.stopConsumer = cancel
	go eventSvc.ConsumeEvent(consumerCtx)

	app.startGRPCServer()
	app.startMetricsServer()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.NewCustomValidator()

	if app.traceProvider != nil {
		tracer := app.traceProvider.Tracer(tracing.ServiceName)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))

				return next(c)
			}
		})
	}

	// Empty subsystem keeps metric names aligned with the other services.
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")

	isLoggedIn := localmiddleware.CreateJWTMiddleware(app.Config.JWTSecret)
	isAdmin := localmiddleware.RequireRole(utils.RoleAdmin)
	controller.CreateOrderController(g, orderSvc, isLoggedIn, isAdmin)
	controller.CreateProductController(g, productSvc, isLoggedIn, isAdmin)
	controller.CreateCartController(g, cartSvc, isLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	err = e.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (app *App) startScheduler(eventSvc service.EventService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(app.Config.OutboxConfig.RelayInterval),
		gocron.NewTask(eventSvc.RelayOutboxEvents),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(healthRefreshInterval),
		gocron.NewTask(app.grpcHandler.RefreshStatus),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) startGRPCServer() {
	app.grpcServer = handler.CreateGRPCServer(app.grpcHandler)

	go func() {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", app.Config.GrpcServicePort))
		if err != nil {
			log.Error().Err(err).Str("port", app.Config.GrpcServicePort).Msg("Failed to listen for gRPC")
			return
		}

		log.Info().Str("port", app.Config.GrpcServicePort).Msg("gRPC server started")
		if err := app.grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("Failed to serve gRPC server")
		}
	}()
}

func (app *App) startMetricsServer() {
	app.metricsServer = echo.New()
	app.metricsServer.HideBanner = true
	app.metricsServer.GET("/metrics", echoprometheus.NewHandler())

	go func() {
		if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()
}

// StopServer drains HTTP first, then stops background work and closes the
// broker connections.
func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metricsServer != nil {
		errs = append(errs, app.metricsServer.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.stopConsumer != nil {
		app.stopConsumer()
	}
	if app.grpcHandler != nil {
		app.grpcHandler.Shutdown()
	}
	if app.grpcServer != nil {
		app.grpcServer.GracefulStop()
	}
	for _, closeResource := range app.closeResources {
		errs = append(errs, closeResource())
	}
	if app.traceProvider != nil {
		errs = append(errs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
