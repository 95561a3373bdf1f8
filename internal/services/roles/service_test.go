package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}))
	return NewService(db)
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	admin, err := svc.FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx))
	again, err := svc.FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID, "reseeding must not mint new role ids")

	all, err := svc.repo.Find(ctx, "1 = 1")
	require.NoError(t, err)
	assert.Len(t, all, len(models.DefaultRoleDefinitions))
}

func TestSeedRepairsChangedPriority(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	admin, err := svc.FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	admin.Priority = 99
	require.NoError(t, svc.repo.Save(ctx, admin))

	require.NoError(t, svc.Seed(ctx))
	repaired, err := svc.FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired.Priority)
}

func TestFindByIDsFailsOnMissingReference(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	admin, err := svc.FindByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	found, err := svc.FindByIDs(ctx, []string{admin.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = svc.FindByIDs(ctx, []string{admin.ID, "no-such-role"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindNotFound, appErr.Kind)
}
