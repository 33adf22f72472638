package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kawanlib/internal/model"
)

// JWTClaims custom claims carried by both token types
type JWTClaims struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates access and refresh tokens. The two token
// types use different secrets, so compromising one secret does not forge
// the other token type.
type TokenIssuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer creates a new TokenIssuer
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL returns the refresh token lifetime, used for the cookie max-age.
func (ti *TokenIssuer) RefreshTTL() time.Duration {
	return ti.refreshTTL
}

// GenerateAccessToken signs a short-lived access token for the user
func (ti *TokenIssuer) GenerateAccessToken(user *model.User) (string, error) {
	return ti.generate(user, ti.accessSecret, ti.accessTTL)
}

// GenerateRefreshToken signs a long-lived refresh token for the user
func (ti *TokenIssuer) GenerateRefreshToken(user *model.User) (string, error) {
	return ti.generate(user, ti.refreshSecret, ti.refreshTTL)
}

func (ti *TokenIssuer) generate(user *model.User, secret string, ttl time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID:   user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.Itoa(user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateAccessToken validates an access token by signature and expiry
func (ti *TokenIssuer) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	return validate(tokenString, ti.accessSecret)
}

// ValidateRefreshToken validates a refresh token by signature and expiry
func (ti *TokenIssuer) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return validate(tokenString, ti.refreshSecret)
}

func validate(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
