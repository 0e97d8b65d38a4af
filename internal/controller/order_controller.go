package controller

import (
	"context"

	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/service"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/AatishKamble/swapify/pkg/response"
	"github.com/AatishKamble/swapify/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	e.POST("/orders", c.CreateOrder, isLoggedIn)
	e.GET("/orders/user", c.UserOrderHistory, isLoggedIn)
	e.GET("/orders/:id", c.GetOrderByID, isLoggedIn)
	e.GET("/orders/:id/histories", c.GetOrderHistory, isLoggedIn)
	e.PUT("/orders/:id/cancel", c.CancelOrder, isLoggedIn)
	e.POST("/orders/payments/notifications", c.MidtransPaymentWebhook)

	admin := e.Group("/admin/orders", isLoggedIn, isAdmin)
	admin.GET("", c.GetAllOrders)
	admin.PUT("/:id/place", c.PlaceOrder)
	admin.PUT("/:id/confirm", c.ConfirmOrder)
	admin.PUT("/:id/ship", c.ShipOrder)
	admin.PUT("/:id/deliver", c.DeliverOrder)
	admin.DELETE("/:id", c.DeleteOrder)
}

// tokenUserID returns the id of the authenticated user.
func tokenUserID(e echo.Context) (string, error) {
	userID, _ := utils.ExtractTokenUser(e)
	if userID == "" {
		return "", errs.ErrNotLoggedIn
	}

	return userID, nil
}

func tokenRequester(e echo.Context) (dto.Requester, error) {
	userID, role := utils.ExtractTokenUser(e)
	if userID == "" {
		return dto.Requester{}, errs.ErrNotLoggedIn
	}

	return dto.Requester{UserID: userID, Role: role}, nil
}

func (c *OrderController) CreateOrder(e echo.Context) error {
	userID, err := tokenUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.OrderRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.CreateOrder(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "order created", resp)
}

func (c *OrderController) UserOrderHistory(e echo.Context) error {
	userID, err := tokenUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UserOrderHistory(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderByID(e echo.Context) error {
	requester, err := tokenRequester(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetOrderByID(e.Request().Context(), requester, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderHistory(e echo.Context) error {
	requester, err := tokenRequester(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetOrderHistory(e.Request().Context(), requester, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetAllOrders(e echo.Context) error {
	resp, err := c.service.GetAllOrders(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", resp)
}

func (c *OrderController) PlaceOrder(e echo.Context) error {
	return c.writeTransition(e, c.service.PlaceOrder)
}

func (c *OrderController) ConfirmOrder(e echo.Context) error {
	return c.writeTransition(e, c.service.ConfirmOrder)
}

func (c *OrderController) ShipOrder(e echo.Context) error {
	return c.writeTransition(e, c.service.ShipOrder)
}

func (c *OrderController) DeliverOrder(e echo.Context) error {
	return c.writeTransition(e, c.service.DeliverOrder)
}

func (c *OrderController) CancelOrder(e echo.Context) error {
	requester, err := tokenRequester(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return c.writeTransition(e, func(ctx context.Context, orderID string) (dto.OrderResponse, error) {
		return c.service.CancelOrder(ctx, requester, orderID)
	})
}

func (c *OrderController) writeTransition(e echo.Context, transition func(ctx context.Context, orderID string) (dto.OrderResponse, error)) error {
	resp, err := transition(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	err := c.service.DeleteOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order deleted", nil)
}

func (c *OrderController) MidtransPaymentWebhook(e echo.Context) error {
	payload := dto.PaymentNotification{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "MidtransPaymentWebhook").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	err = c.service.VerifyPayment(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
