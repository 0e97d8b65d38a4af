package service

import (
	"context"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req dto.OrderRequest) (resp dto.OrderResponse, err error)
	PlaceOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error)
	ConfirmOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error)
	ShipOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error)
	DeliverOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error)
	CancelOrder(ctx context.Context, requester dto.Requester, orderID string) (resp dto.OrderResponse, err error)
	GetOrderByID(ctx context.Context, requester dto.Requester, orderID string) (resp dto.OrderResponse, err error)
	UserOrderHistory(ctx context.Context, userID string) (resp []dto.OrderResponse, err error)
	GetAllOrders(ctx context.Context) (resp []dto.OrderResponse, err error)
	DeleteOrder(ctx context.Context, orderID string) (err error)
	GetOrderHistory(ctx context.Context, requester dto.Requester, orderID string) (resp []dto.OrderHistoryResponse, err error)
	VerifyPayment(ctx context.Context, req dto.PaymentNotification) (err error)
}

type ProductService interface {
	GetAllProducts(ctx context.Context, filter dto.ProductFilter) (resp dto.ProductPageResponse, err error)
	CreateProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error)
	CreateMultipleProducts(ctx context.Context, reqs []dto.ProductRequest) (resp []dto.ProductResponse, err error)
	AddApprovedProduct(ctx context.Context, req dto.ApprovedProductRequest) (resp dto.ProductResponse, err error)
	FindProductByID(ctx context.Context, productID string) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (resp dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, productID string) (err error)
}

type CartService interface {
	FindUserCart(ctx context.Context, userID string) (resp dto.CartResponse, err error)
	AddCartItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (resp dto.CartResponse, err error)
	RemoveCartItem(ctx context.Context, userID string, cartItemID string) (resp dto.CartResponse, err error)
	// LoadUserCart returns the populated cart without creating one.
	LoadUserCart(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error)
	DeleteUserCartItem(ctx context.Context, userID, cartItemID primitive.ObjectID) (cart domain.Cart, err error)
}

type EventService interface {
	RelayOutboxEvents()
	ConsumeEvent(ctx context.Context)
	HandleMessage(ctx context.Context, msg kafka.Message) (err error)
}

// PaymentGateway is the part of the Midtrans core API used to verify
// notifications.
type PaymentGateway interface {
	CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Mailer interface {
	From() string
	Send(message *gomail.Message) error
}
