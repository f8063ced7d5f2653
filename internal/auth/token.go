package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const authoritiesClaim = "auth"

// TokenProvider issues and validates the bearer tokens the API authenticates
// with.
type TokenProvider struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenProvider creates a provider signing with the given HMAC secret.
func NewTokenProvider(secret string, validity time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

// CreateToken signs a token for the principal.
func (p *TokenProvider) CreateToken(principal Principal) (string, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"sub":            principal.Login,
		authoritiesClaim: strings.Join(principal.Authorities, " "),
		"iat":            now.Unix(),
		"exp":            now.Add(p.validity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed token and reconstructs its principal.
func (p *TokenProvider) ParseToken(tokenString string) (Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return p.now() }))
	if err != nil {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}

	login, _ := claims["sub"].(string)
	if login == "" {
		return Principal{}, fmt.Errorf("token has no subject")
	}
	principal := Principal{Login: login}
	if raw, ok := claims[authoritiesClaim].(string); ok && raw != "" {
		principal.Authorities = strings.Fields(raw)
	}
	return principal, nil
}
