package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"staybook/auth"
	"staybook/booking"
	"staybook/listing"
	"staybook/review"
)

const dateLayout = "2006-01-02"

var errBadDate = errors.New("httpapi: dates must use YYYY-MM-DD")

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errBadDate, s)
	}
	return t, nil
}

func pageFilters(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	return page, pageSize
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func toUserResponse(u auth.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

type listingResponse struct {
	ID            string `json:"listing_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight string `json:"price_per_night"`
	OwnerID       string `json:"owner_id"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toListingResponse(l listing.Listing) listingResponse {
	return listingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight.String(),
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
}

type bookingResponse struct {
	ID         string `json:"booking_id"`
	ListingID  string `json:"listing_id"`
	UserID     string `json:"user_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

func toBookingResponse(b booking.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		ListingID:  b.ListingID,
		UserID:     b.UserID,
		StartDate:  b.StartDate.Format(dateLayout),
		EndDate:    b.EndDate.Format(dateLayout),
		TotalPrice: b.TotalPrice.String(),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

type reviewResponse struct {
	ID        string `json:"review_id"`
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

func toReviewResponse(r review.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		ListingID: r.ListingID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func toListResponse[S any, T any](items []S, total int, convert func(S) T) listResponse[T] {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return listResponse[T]{Items: out, Total: total}
}
