package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
)

func testTokenService() *TokenService {
	return NewTokenService(models.JWTConfig{
		SecretKey:          "test-secret-key",
		AccessTokenExpiry:  3600,
		RefreshTokenExpiry: 60,
		ResetTokenExpiry:   15,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:             "user-1",
		Email:          "ana@example.com",
		RoleIDs:        []string{"role-1"},
		OrganizationID: "org-1",
		DepartmentID:   "dep-1",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := testTokenService()
	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.Verify(token, TokenUseAccess)
	require.NoError(t, err)

	principal := claims.Principal()
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "ana@example.com", principal.Email)
	assert.Equal(t, []string{"role-1"}, principal.RoleIDs)
	assert.Equal(t, "org-1", principal.OrganizationID)
	assert.Equal(t, "dep-1", principal.DepartmentID)
}

func TestVerifyRejectsWrongUse(t *testing.T) {
	t.Parallel()

	svc := testTokenService()
	refresh, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(refresh, TokenUseAccess)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindUnauthorized, appErr.Kind)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService(models.JWTConfig{
		SecretKey:         "test-secret-key",
		AccessTokenExpiry: -60,
	})
	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(token, TokenUseAccess)
	require.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	token, err := testTokenService().IssueAccessToken(testUser())
	require.NoError(t, err)

	other := NewTokenService(models.JWTConfig{SecretKey: "different-secret", AccessTokenExpiry: 3600})
	_, err = other.Verify(token, TokenUseAccess)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := testTokenService().Verify("not.a.token", TokenUseAccess)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindUnauthorized, appErr.Kind)
}

func TestResetTokenCarriesOnlySubject(t *testing.T) {
	t.Parallel()

	svc := testTokenService()
	token, err := svc.IssueResetToken(testUser())
	require.NoError(t, err)

	claims, err := svc.Verify(token, TokenUseReset)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.RoleIDs)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}
