// Package httpapi maps the resource services onto an HTTP surface. It owns
// request decoding, principal extraction and the error-to-status mapping;
// every permission and validation decision stays in the services.
package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"staybook/auth"
	"staybook/booking"
	"staybook/listing"
	"staybook/review"
)

// ListingService is the slice of listing.Service the handlers need.
type ListingService interface {
	Create(ctx context.Context, p auth.Principal, params listing.CreateParams) (listing.Listing, error)
	List(ctx context.Context, p auth.Principal, filters listing.Filters) (listing.ListResult, error)
	Get(ctx context.Context, p auth.Principal, id string) (listing.Listing, error)
	Update(ctx context.Context, p auth.Principal, id string, params listing.UpdateParams) (listing.Listing, error)
	Delete(ctx context.Context, p auth.Principal, id string) error
}

// BookingService is the slice of booking.Service the handlers need.
type BookingService interface {
	Create(ctx context.Context, p auth.Principal, params booking.CreateParams) (booking.Booking, error)
	List(ctx context.Context, p auth.Principal, filters booking.Filters) (booking.ListResult, error)
	Get(ctx context.Context, p auth.Principal, id string) (booking.Booking, error)
	Update(ctx context.Context, p auth.Principal, id string, params booking.UpdateParams) (booking.Booking, error)
	Delete(ctx context.Context, p auth.Principal, id string) error
}

// ReviewService is the slice of review.Service the handlers need.
type ReviewService interface {
	Create(ctx context.Context, p auth.Principal, params review.CreateParams) (review.Review, error)
	ListForListing(ctx context.Context, listingID string) ([]review.Review, error)
	Get(ctx context.Context, id string) (review.Review, error)
}

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Principal, error)
}

// UserDirectory resolves account details for a verified principal.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID string) (auth.User, error)
}

// Server bundles the services behind the HTTP handlers.
type Server struct {
	listings ListingService
	bookings BookingService
	reviews  ReviewService
	verifier TokenVerifier
	users    UserDirectory
}

func NewServer(listings ListingService, bookings BookingService, reviews ReviewService, verifier TokenVerifier, users UserDirectory) *Server {
	return &Server{
		listings: listings,
		bookings: bookings,
		reviews:  reviews,
		verifier: verifier,
		users:    users,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/v1/healthz", s.handleHealth)

	v1 := e.Group("/v1", RequireAuth(s.verifier))

	v1.GET("/me", s.handleMe)

	v1.GET("/listings", s.handleListListings)
	v1.POST("/listings", s.handleCreateListing)
	v1.GET("/listings/:id", s.handleGetListing)
	v1.PUT("/listings/:id", s.handleUpdateListing)
	v1.DELETE("/listings/:id", s.handleDeleteListing)

	v1.GET("/bookings", s.handleListBookings)
	v1.POST("/bookings", s.handleCreateBooking)
	v1.GET("/bookings/:id", s.handleGetBooking)
	v1.PUT("/bookings/:id", s.handleUpdateBooking)
	v1.DELETE("/bookings/:id", s.handleDeleteBooking)

	v1.GET("/listings/:id/reviews", s.handleListReviews)
	v1.POST("/listings/:id/reviews", s.handleCreateReview)
	v1.GET("/reviews/:id", s.handleGetReview)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return s.respondErr(c, err)
	}

	user, err := s.users.GetUserByID(c.Request().Context(), p.ID)
	if err != nil {
		return s.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
