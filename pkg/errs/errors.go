package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusBadGateway     = http.StatusBadGateway
	ErrStatusGone           = http.StatusGone
	ErrStatusUnprocessable  = http.StatusUnprocessableEntity
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrConflict                = errors.New("Conflicting record found")
	ErrShippingAddressRequired = errors.New("Shipping address is required")
	ErrNoProducts              = errors.New("No products provided for direct purchase")
	ErrEmptyCart               = errors.New("Cart is empty")
	ErrInvalidTransition       = errors.New("Order status transition is not allowed")
	ErrProductSold             = errors.New("Product has already been sold")
	ErrProductUnavailable      = errors.New("Product is not available for sale")
	ErrPaymentVerification     = errors.New("Payment could not be verified")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrUnauthorized:            ErrStatusNoPermission,
	ErrNotFound:                ErrStatusNotFound,
	ErrConflict:                ErrStatusConflict,
	ErrShippingAddressRequired: ErrStatusClient,
	ErrNoProducts:              ErrStatusClient,
	ErrEmptyCart:               ErrStatusClient,
	ErrInvalidTransition:       ErrStatusUnprocessable,
	ErrProductSold:             ErrStatusGone,
	ErrProductUnavailable:      ErrStatusConflict,
	ErrPaymentVerification:     ErrStatusBadGateway,
}

// GetErrorStatusCode maps err, or any sentinel it wraps, to an HTTP status code.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

// SideEffectError marks the failure of a best-effort step. The enclosing
// operation has already succeeded; callers log these and move on.
type SideEffectError struct {
	Op  string
	Err error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("best-effort %s failed: %v", e.Op, e.Err)
}

func (e *SideEffectError) Unwrap() error {
	return e.Err
}

func NewSideEffectError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &SideEffectError{Op: op, Err: err}
}

func IsSideEffect(err error) bool {
	var sideEffectErr *SideEffectError
	return errors.As(err, &sideEffectErr)
}

// IsClientError reports whether err maps to a 4xx status.
func IsClientError(err error) bool {
	return GetErrorStatusCode(err) < http.StatusInternalServerError
}
