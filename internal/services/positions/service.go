// Package positions manages the organization's position catalog.
package positions

import (
	"context"
	"errors"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/users"
	"gorm.io/gorm"
)


type Service struct {
	positions *repository.Repository[models.Position]
	projects  *repository.Repository[models.Project]
	users     *users.Service
}

func NewService(db *gorm.DB, userService *users.Service) *Service {
	return &Service{
		positions: repository.New[models.Position](db),
		projects:  repository.New[models.Project](db),
		users:     userService,
	}
}

// Create adds a position with an organization-unique name.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req *models.CreatePositionRequest) (*models.Position, error) {
	if _, err := s.positions.FindOne(ctx, "name = ? AND organization_id = ?", req.Name, actor.OrganizationID); err == nil {
		return nil, models.NewConflictError(errors.New("position name already in use"))
	}

	position := &models.Position{
		Name:           req.Name,
		OrganizationID: actor.OrganizationID,
	}
	if err := s.positions.Create(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

// List returns the organization's positions.
func (s *Service) List(ctx context.Context, actor *auth.Principal) ([]models.Position, error) {
	return s.positions.Find(ctx, "organization_id = ?", actor.OrganizationID)
}

// Update renames a position within the actor's organization.
func (s *Service) Update(ctx context.Context, actor *auth.Principal, id string, req *models.UpdatePositionRequest) (*models.Position, error) {
	position, err := s.positions.FindOne(ctx, "id = ? AND organization_id = ?", id, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	position.Name = req.Name
	if err := s.positions.Save(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

// Delete removes a position and strips it from projects and user
// memberships. The related writes are not transactional; a failure partway
// leaves earlier writes in place.
func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id string) (*models.Position, error) {
	position, err := s.positions.FindOne(ctx, "id = ? AND organization_id = ?", id, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := s.removeFromProjects(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.RemovePositionFromMembers(ctx, actor.OrganizationID, id); err != nil {
		return nil, err
	}
	return s.positions.Delete(ctx, position.ID)
}

func (s *Service) removeFromProjects(ctx context.Context, positionID string) error {
	// Position ids live inside the serialized membership column; a LIKE scan
	// narrows the candidates before the exact check below.
	projects, err := s.projects.Find(ctx, "position_ids LIKE ?", "%"+positionID+"%")
	if err != nil {
		return err
	}
	for i := range projects {
		filtered := projects[i].PositionIDs[:0]
		changed := false
		for _, pid := range projects[i].PositionIDs {
			if pid == positionID {
				changed = true
				continue
			}
			filtered = append(filtered, pid)
		}
		if changed {
			projects[i].PositionIDs = filtered
			if err := s.projects.Save(ctx, &projects[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
