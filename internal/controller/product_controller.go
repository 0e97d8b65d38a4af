package controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/service"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/AatishKamble/swapify/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var productFilterKeys = map[string]bool{
	"category":   true,
	"minPrice":   true,
	"maxPrice":   true,
	"sort":       true,
	"pageNumber": true,
	"pageSize":   true,
}

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn, isAdmin echo.MiddlewareFunc) {
	c := ProductController{
		service: service,
	}

	e.GET("/products", c.GetAllProducts)
	e.GET("/products/:id", c.FindProductByID)

	admin := e.Group("/admin/products", isLoggedIn, isAdmin)
	admin.POST("", c.CreateProduct)
	admin.POST("/bulk", c.CreateMultipleProducts)
	admin.POST("/approved", c.AddApprovedProduct)
	admin.PUT("/:id", c.UpdateProduct)
	admin.DELETE("/:id", c.DeleteProduct)
}

func (c *ProductController) GetAllProducts(e echo.Context) error {
	filter, err := parseProductFilter(e.QueryParams(), e.Request().URL.RawQuery)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetAllProducts").Msg("")
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetAllProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved products record", resp)
}

// parseProductFilter reads the listing parameters. Unknown keys are kept in
// query order because they are usually pieces of a category name whose "&"
// was not encoded by the client.
func parseProductFilter(params url.Values, rawQuery string) (filter dto.ProductFilter, err error) {
	filter.Category = params.Get("category")
	filter.Sort = params.Get("sort")

	if filter.MinPrice, err = floatParam(params, "minPrice"); err != nil {
		return
	}
	if filter.MaxPrice, err = floatParam(params, "maxPrice"); err != nil {
		return
	}
	if filter.PageNumber, err = intParam(params, "pageNumber"); err != nil {
		return
	}
	if filter.PageSize, err = intParam(params, "pageSize"); err != nil {
		return
	}

	for _, part := range strings.Split(rawQuery, "&") {
		key, _, _ := strings.Cut(part, "=")
		key, unescapeErr := url.QueryUnescape(key)
		if unescapeErr != nil || strings.TrimSpace(key) == "" || productFilterKeys[key] {
			continue
		}

		filter.ExtraTerms = append(filter.ExtraTerms, key)
	}

	return filter, nil
}

func intParam(params url.Values, name string) (*int, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errs.ErrClient, name)
	}

	return &value, nil
}

func floatParam(params url.Values, name string) (*float64, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", errs.ErrClient, name)
	}

	return &value, nil
}

func (c *ProductController) FindProductByID(e echo.Context) error {
	resp, err := c.service.FindProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) CreateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.CreateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", resp)
}

func (c *ProductController) CreateMultipleProducts(e echo.Context) error {
	payload := []dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateMultipleProducts").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	for _, product := range payload {
		if err = e.Validate(product); err != nil {
			return response.WriteValidationErrorResponse(e, err)
		}
	}

	resp, err := c.service.CreateMultipleProducts(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "products created", resp)
}

func (c *ProductController) AddApprovedProduct(e echo.Context) error {
	payload := dto.ApprovedProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddApprovedProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.AddApprovedProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", resp)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.UpdateProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.UpdateProduct(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}
