package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"safesound/internal/platform/middleware"
)

const issuer = "Safe&Sound"

// Roles carried by Safe&Sound tokens.
const (
	RoleUser   = "user"
	RolePolice = "police"
)

// Claims represents the JWT claims for our access tokens.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Badge int    `json:"badge,omitempty"`
	Admin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
}

func NewService(signingKey string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// GenerateUserToken issues a token for a reporting user, identified by email.
func (s *Service) GenerateUserToken(email string) (string, error) {
	return s.sign(Claims{
		Role:             RoleUser,
		Email:            email,
		RegisteredClaims: s.registered("Safe&SoundUser"),
	})
}

// GeneratePoliceToken issues a token for a police account, identified by badge.
func (s *Service) GeneratePoliceToken(badge int, admin bool) (string, error) {
	return s.sign(Claims{
		Role:             RolePolice,
		Badge:            badge,
		Admin:            admin,
		RegisteredClaims: s.registered("Safe&SoundPolice"),
	})
}

func (s *Service) registered(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		ID:        uuid.NewString(),
	}
}

func (s *Service) sign(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the claims shape the
// auth middleware consumes.
func (s *Service) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &middleware.JWTClaims{
		Role:  claims.Role,
		Email: claims.Email,
		Badge: claims.Badge,
		Admin: claims.Admin,
	}, nil
}
