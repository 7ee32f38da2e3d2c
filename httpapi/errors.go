package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"staybook/auth"
	"staybook/booking"
	"staybook/listing"
	"staybook/money"
	"staybook/review"
)

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// respondErr translates service errors into the API's status mapping:
// 400 validation, 401 unauthenticated, 403 write denial, 404 invisible or
// missing, 500 anything the services did not classify.
func (s *Server) respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errNoPrincipal), errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, errorBody("unauthorized"))

	case errors.Is(err, listing.ErrForbidden), errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody("forbidden"))

	case errors.Is(err, listing.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, review.ErrNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorBody("not found"))

	case errors.Is(err, listing.ErrEmptyTitle),
		errors.Is(err, listing.ErrTitleTooLong),
		errors.Is(err, listing.ErrNegativePrice),
		errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrListingNotFound),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrListingNotFound),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, errBadDate):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))

	default:
		log.Printf("httpapi: internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}
