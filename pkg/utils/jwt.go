package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim. The discriminator prevents a
// refresh token from being presented as an access token and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeEmail   = "email"
)

var (
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrInvalidTokenClaims      = errors.New("invalid token claims")
	ErrMissingSubject          = errors.New("token subject is missing")
	ErrWrongTokenType          = errors.New("wrong token type")
)

// Claims represents the JWT claims issued by this service.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived access token with the username as subject.
func GenerateAccessToken(username, secret string, expiry time.Duration) (string, error) {
	return generateToken(username, TokenTypeAccess, secret, expiry)
}

// GenerateRefreshToken issues a refresh token with the username as subject.
func GenerateRefreshToken(username, secret string, expiry time.Duration) (string, error) {
	return generateToken(username, TokenTypeRefresh, secret, expiry)
}

// GenerateEmailToken issues a single-purpose confirmation token carrying only
// the email as subject.
func GenerateEmailToken(email, secret string, expiry time.Duration) (string, error) {
	return generateToken(email, TokenTypeEmail, secret, expiry)
}

func generateToken(subject, tokenType, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the signature and expiry of a token and checks that
// its token_type claim matches the expected type. Any failure is returned as
// an error; callers map it uniformly to unauthenticated.
func ValidateToken(tokenString, secret, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidTokenClaims
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
