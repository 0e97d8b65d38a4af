package middleware

import (
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/AatishKamble/swapify/pkg/response"
	"github.com/AatishKamble/swapify/pkg/utils"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// CreateJWTMiddleware validates the bearer token and stores it under "user".
func CreateJWTMiddleware(secret string) echo.MiddlewareFunc {
	return echomiddleware.JWTWithConfig(echomiddleware.JWTConfig{
		SigningKey: []byte(secret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "JWTMiddleware").Msg("")
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		},
	})
}

// RequireRole only lets requests through whose token carries role. It must
// run after the JWT middleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, tokenRole := utils.ExtractTokenUser(c)
			if userID == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			if tokenRole != role {
				log.Ctx(c.Request().Context()).Warn().Str("component", "RequireRole").Str("user_id", userID).Str("role", tokenRole).Msg("role not permitted")
				return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
			}

			return next(c)
		}
	}
}
