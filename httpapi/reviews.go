package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"staybook/review"
)

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	UserID  string `json:"user_id"`
}

func (s *Server) handleListReviews(c echo.Context) error {
	if _, err := principalFrom(c); err != nil {
		return s.respondErr(c, err)
	}

	items, err := s.reviews.ListForListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toListResponse(items, len(items), toReviewResponse))
}

func (s *Server) handleCreateReview(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	var body createReviewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	created, err := s.reviews.Create(c.Request().Context(), p, review.CreateParams{
		ListingID: c.Param("id"),
		Rating:    body.Rating,
		Comment:   body.Comment,
	})
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(created))
}

func (s *Server) handleGetReview(c echo.Context) error {
	if _, err := principalFrom(c); err != nil {
		return s.respondErr(c, err)
	}

	rev, err := s.reviews.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(rev))
}
