// Package auth issues and verifies the JWTs that carry caller identity, and
// exposes the per-request principal through fiber's request-local storage.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sustainaByte/orghub/internal/models"
)

// TokenUse distinguishes the three token families. A token is only valid for
// the use it was minted with.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
	TokenUseReset   TokenUse = "reset"
)

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	Email          string   `json:"email,omitempty"`
	RoleIDs        []string `json:"roles,omitempty"`
	OrganizationID string   `json:"org,omitempty"`
	DepartmentID   string   `json:"dep,omitempty"`
	Use            TokenUse `json:"use"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed tokens.
type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	resetExpiry   time.Duration
}

func NewTokenService(cfg models.JWTConfig) *TokenService {
	return &TokenService{
		secret:        []byte(cfg.SecretKey),
		accessExpiry:  time.Duration(cfg.AccessTokenExpiry) * time.Second,
		refreshExpiry: time.Duration(cfg.RefreshTokenExpiry) * time.Minute,
		resetExpiry:   time.Duration(cfg.ResetTokenExpiry) * time.Minute,
	}
}

// AccessExpirySeconds is the access token lifetime reported to clients.
func (s *TokenService) AccessExpirySeconds() int64 {
	return int64(s.accessExpiry / time.Second)
}

// IssueAccessToken mints the short-lived token that authorizes API calls.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	return s.sign(user, TokenUseAccess, s.accessExpiry)
}

// IssueRefreshToken mints the long-lived token exchanged for new access tokens.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	return s.sign(user, TokenUseRefresh, s.refreshExpiry)
}

// IssueResetToken mints the short-lived token embedded in password reset
// emails. It carries only the user id.
func (s *TokenService) IssueResetToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Use: TokenUseReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) sign(user *models.User, use TokenUse, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:          user.Email,
		RoleIDs:        user.RoleIDs,
		OrganizationID: user.OrganizationID,
		DepartmentID:   user.DepartmentID,
		Use:            use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", use, err)
	}
	return token, nil
}

// Verify parses the token, checks the signature and expiry, and requires the
// expected use. Every failure mode collapses into an unauthorized error.
func (s *TokenService) Verify(tokenString string, use TokenUse) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, models.NewUnauthorizedError(err)
	}
	if claims.Use != use {
		return nil, models.NewUnauthorizedError(errors.New("wrong token use"))
	}
	if claims.Subject == "" {
		return nil, models.NewUnauthorizedError(errors.New("token missing subject"))
	}
	return claims, nil
}

// Principal returns the caller identity a set of verified claims asserts.
func (c *Claims) Principal() *Principal {
	return &Principal{
		UserID:         c.Subject,
		Email:          c.Email,
		RoleIDs:        c.RoleIDs,
		OrganizationID: c.OrganizationID,
		DepartmentID:   c.DepartmentID,
	}
}
