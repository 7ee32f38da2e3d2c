package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"staybook/auth"
)

const principalKey = "principal"

var errNoPrincipal = errors.New("httpapi: no principal in context")

// RequireAuth extracts and verifies the bearer token, storing the resulting
// principal in the request context. Requests without a valid token never
// reach a handler.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			}

			p, err := verifier.VerifyToken(strings.TrimPrefix(header, prefix))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token"))
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// principalFrom retrieves the principal stored by RequireAuth.
func principalFrom(c echo.Context) (auth.Principal, error) {
	p, ok := c.Get(principalKey).(auth.Principal)
	if !ok {
		return auth.Principal{}, errNoPrincipal
	}
	return p, nil
}
