package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
)

// DefaultTokenTTL is used when TokenConfig.TTL is zero
const DefaultTokenTTL = 24 * time.Hour

// ErrMissingSecret is returned when the token service is built without a signing key
var ErrMissingSecret = errors.New("token signing secret is required")

// TokenConfig holds configuration for the token service
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// TokenService issues and verifies bearer tokens carrying a user ID
type TokenService interface {
	Issue(user *models.User) (string, time.Time, error)
	Verify(token string) (uint, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenService creates an HS256 TokenService
func NewTokenService(config TokenConfig) (TokenService, error) {
	if len(config.Secret) == 0 {
		return nil, ErrMissingSecret
	}
	ttl := config.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	issuer := config.Issuer
	if issuer == "" {
		issuer = "recipe-api"
	}
	return &jwtTokenService{
		secret: config.Secret,
		ttl:    ttl,
		issuer: issuer,
	}, nil
}

// Issue signs a token for the user and returns it with its expiry
func (s *jwtTokenService) Issue(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, fmt.Errorf("cannot issue token: %w", apperrors.ErrInvalidInput)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry and returns the user ID.
// Any failure is reported as ErrUnauthorized.
func (s *jwtTokenService) Verify(token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return 0, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid token subject: %w", apperrors.ErrUnauthorized)
	}
	return uint(id), nil
}
