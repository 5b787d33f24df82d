// Package auth verifies the bearer tokens minted by the school membership
// service. This backend never issues tokens.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/election-backend/internal/config"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// Claims is the payload of an access token. Subject carries the voter or
// admin ID.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// TokenVerifier validates HS256 access tokens against a shared secret.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenVerifier builds a verifier that requires the configured issuer, an
// expiry, and the audience when one is configured.
func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}
	return &TokenVerifier{secret: []byte(cfg.JWTSecret), parser: jwt.NewParser(opts...)}
}

// ValidateToken returns the caller's ID and role. Every failure wraps
// domain.ErrUnauthorized; a token without a role claim belongs to a voter.
func (v *TokenVerifier) ValidateToken(_ context.Context, raw string) (uuid.UUID, domain.UserRole, error) {
	if raw == "" {
		return uuid.Nil, "", fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	var claims Claims
	if _, err := v.parser.ParseWithClaims(raw, &claims, v.key); err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject %q is not a user id", domain.ErrUnauthorized, claims.Subject)
	}

	role, err := parseRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, role, nil
}

func (v *TokenVerifier) key(*jwt.Token) (any, error) {
	return v.secret, nil
}

func parseRole(raw string) (domain.UserRole, error) {
	switch role := domain.UserRole(raw); role {
	case "":
		return domain.UserRoleVoter, nil
	case domain.UserRoleVoter, domain.UserRoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, raw)
	}
}

// Sign mints a token for claims. The membership service owns issuance in
// production; Sign serves local tooling and tests.
func Sign(secret string, claims Claims) (string, error) {
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(time.Now())
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
