package response

import (
	"errors"
	"net/http"

	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusCreated, resp)
}

func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

// WriteValidationErrorResponse reports validator failures field by field.
// Any other error falls through to WriteErrorResponse.
func WriteValidationErrorResponse(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return WriteErrorResponse(c, errs.ErrClient, nil)
	}

	fields := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, ValidationError{
			Field: fieldErr.Field(),
			Tag:   fieldErr.Tag(),
		})
	}

	return WriteErrorResponse(c, errs.ErrClient, fields)
}
