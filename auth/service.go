package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken signals a bearer token that could not be verified.
var ErrInvalidToken = errors.New("auth: invalid token")

// Service turns bearer tokens into principals. Token issuance is the identity
// provider's job; the only signing done here is MintToken, used by the seeder
// to print development tokens and by tests.
type Service struct {
	repo      Repository
	jwtSecret []byte
}

// NewService creates an authentication service around the shared signing secret.
func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
	}
}

// VerifyToken validates an HS256 JWT and extracts the principal from its
// user_id and is_admin claims.
func (s *Service) VerifyToken(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return Principal{ID: userID, IsAdmin: isAdmin}, nil
}

// MintToken signs a token carrying the given identity. Development use only.
func (s *Service) MintToken(userID string, isAdmin bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// GetUserByID retrieves account information for a verified principal.
func (s *Service) GetUserByID(ctx context.Context, userID string) (User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
