package jwt

import (
	"errors"
	"time"

	"cosmetic-platform-dataset/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingRole  = errors.New("token has no role claim")
	// ErrMissingSecret keeps an unset JWT_SECRET from signing or accepting
	// tokens keyed on the empty string.
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// Claims follows the Supabase access token layout: sub is the user id that
// auth.uid() returns and role is the Postgres role the request runs as.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject, nil when the token has none
func (c *Claims) UserID() (*uuid.UUID, error) {
	if c.Subject == "" {
		return nil, nil
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &id, nil
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken signs a token for sub (nil for anon or service_role
// tokens). A zero ttl uses the configured access expiry.
func (s *JWTService) GenerateToken(sub *uuid.UUID, role string, ttl time.Duration) (string, error) {
	if s.config.Secret == "" {
		return "", ErrMissingSecret
	}
	if role == "" {
		return "", ErrMissingRole
	}
	if ttl <= 0 {
		ttl = s.config.AccessExpiry
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{role},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if sub != nil {
		claims.Subject = sub.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if s.config.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role == "" {
		return nil, ErrMissingRole
	}

	return claims, nil
}

// Configured reports whether tokens can be signed and checked
func (s *JWTService) Configured() bool {
	return s.config.Secret != ""
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}
