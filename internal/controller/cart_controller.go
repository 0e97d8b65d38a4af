package controller

import (
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/service"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/AatishKamble/swapify/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CartController struct {
	service service.CartService
}

func CreateCartController(e *echo.Group, service service.CartService, isLoggedIn echo.MiddlewareFunc) {
	c := CartController{
		service: service,
	}

	e.GET("/cart", c.FindUserCart, isLoggedIn)
	e.PUT("/cart/add", c.AddCartItem, isLoggedIn)
	e.DELETE("/cart_items/:id", c.RemoveCartItem, isLoggedIn)
}

func (c *CartController) FindUserCart(e echo.Context) error {
	userID, err := tokenUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.FindUserCart(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) AddCartItem(e echo.Context) error {
	userID, err := tokenUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.AddCartItemRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddCartItem").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.AddCartItem(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "item added to cart", resp)
}

func (c *CartController) RemoveCartItem(e echo.Context) error {
	userID, err := tokenUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.RemoveCartItem(e.Request().Context(), userID, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "item removed from cart", resp)
}
