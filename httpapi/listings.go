package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"staybook/listing"
	"staybook/money"
)

// createListingRequest accepts an owner_id field for wire compatibility but
// never reads it: ownership always lands on the authenticated principal.
type createListingRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	OwnerID       string `json:"owner_id"`
}

type updateListingRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PricePerNight *string `json:"price_per_night"`
	OwnerID       *string `json:"owner_id"`
}

func (s *Server) handleListListings(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	page, pageSize := pageFilters(c)
	result, err := s.listings.List(c.Request().Context(), p, listing.Filters{Page: page, PageSize: pageSize})
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toListResponse(result.Items, result.Total, toListingResponse))
}

func (s *Server) handleCreateListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	var body createListingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	price, err := money.Parse(body.PricePerNight)
	if err != nil {
		return s.respondErr(c, err)
	}

	created, err := s.listings.Create(c.Request().Context(), p, listing.CreateParams{
		Title:         body.Title,
		Description:   body.Description,
		PricePerNight: price,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, toListingResponse(created))
}

func (s *Server) handleGetListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	l, err := s.listings.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(l))
}

func (s *Server) handleUpdateListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	var body updateListingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	params := listing.UpdateParams{
		Title:       body.Title,
		Description: body.Description,
	}
	if body.PricePerNight != nil {
		price, err := money.Parse(*body.PricePerNight)
		if err != nil {
			return s.respondErr(c, err)
		}
		params.PricePerNight = &price
	}

	updated, err := s.listings.Update(c.Request().Context(), p, c.Param("id"), params)
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(updated))
}

func (s *Server) handleDeleteListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	if err := s.listings.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return s.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
