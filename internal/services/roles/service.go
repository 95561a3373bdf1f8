// Package roles stores the role records authorization decisions resolve
// against.
package roles

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"gorm.io/gorm"
)

type Service struct {
	repo *repository.Repository[models.Role]
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: repository.New[models.Role](db)}
}

// Seed ensures a role record exists for every definition in the priority
// table. Existing records keep their ids; priorities are updated in place so
// a changed table takes effect on restart.
func (s *Service) Seed(ctx context.Context) error {
	for _, def := range models.DefaultRoleDefinitions {
		existing, err := s.repo.FindOne(ctx, "name = ?", def.Name)
		if err == nil {
			if existing.Priority != def.Priority {
				existing.Priority = def.Priority
				if err := s.repo.Save(ctx, existing); err != nil {
					return fmt.Errorf("failed to update role %s: %w", def.Name, err)
				}
			}
			continue
		}

		role := &models.Role{Name: def.Name, Priority: def.Priority}
		if err := s.repo.Create(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", def.Name, err)
		}
		log.Debugf("Seeded role %s with priority %d", def.Name, def.Priority)
	}
	return nil
}

// FindByID fetches a role record by id.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Role, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByName fetches a role record by role name.
func (s *Service) FindByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	return s.repo.FindOne(ctx, "name = ?", name)
}

// FindByIDs resolves every id to a role record. A missing id fails the whole
// lookup: a principal referencing an unknown role cannot be authorized.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]models.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.repo.Find(ctx, "id IN ?", ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, models.NewNotFoundError(fmt.Errorf("unresolved role reference"))
	}
	return found, nil
}
