package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"staybook/booking"
)

// createBookingRequest accepts user_id and total_price for wire
// compatibility but ignores both: the user is the principal and the price is
// recomputed server-side.
type createBookingRequest struct {
	ListingID  string `json:"listing_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	UserID     string `json:"user_id"`
	TotalPrice string `json:"total_price"`
}

type updateBookingRequest struct {
	ListingID *string `json:"listing_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (s *Server) handleListBookings(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	page, pageSize := pageFilters(c)
	result, err := s.bookings.List(c.Request().Context(), p, booking.Filters{
		ListingID: c.QueryParam("listing_id"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toListResponse(result.Items, result.Total, toBookingResponse))
}

func (s *Server) handleCreateBooking(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	var body createBookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		return s.respondErr(c, err)
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		return s.respondErr(c, err)
	}

	created, err := s.bookings.Create(c.Request().Context(), p, booking.CreateParams{
		ListingID: body.ListingID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (s *Server) handleGetBooking(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	b, err := s.bookings.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

func (s *Server) handleUpdateBooking(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	var body updateBookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	params := booking.UpdateParams{ListingID: body.ListingID}
	if body.StartDate != nil {
		start, err := parseDate(*body.StartDate)
		if err != nil {
			return s.respondErr(c, err)
		}
		params.StartDate = &start
	}
	if body.EndDate != nil {
		end, err := parseDate(*body.EndDate)
		if err != nil {
			return s.respondErr(c, err)
		}
		params.EndDate = &end
	}

	updated, err := s.bookings.Update(c.Request().Context(), p, c.Param("id"), params)
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (s *Server) handleDeleteBooking(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	if err := s.bookings.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return s.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
