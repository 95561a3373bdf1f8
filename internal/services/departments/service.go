// Package departments manages department records and their lead assignments.
package departments

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
	departments *repository.Repository[models.Department]
	projects    *repository.Repository[models.Project]
	users       *users.Service
}

func NewService(db *gorm.DB, userService *users.Service) *Service {
	return &Service{
		departments: repository.New[models.Department](db),
		projects:    repository.New[models.Project](db),
		users:       userService,
	}
}

// Create adds a department to the actor's organization. An assigned lead must
// belong to the same organization and is escalated to the dep_lead role when
// they hold less authority.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req *models.CreateDepartmentRequest) (*models.Department, error) {
	if _, err := s.departments.FindOne(ctx, "name = ? AND organization_id = ?", req.Name, actor.OrganizationID); err == nil {
		return nil, models.NewConflictError(errors.New("department name already in use"))
	}

	if req.DepLeadID != "" {
		if err := s.assignLead(ctx, actor, req.DepLeadID); err != nil {
			return nil, err
		}
	}

	department := &models.Department{
		Name:           req.Name,
		Description:    req.Description,
		DepLeadID:      req.DepLeadID,
		OrganizationID: actor.OrganizationID,
	}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// List returns the organization's departments.
func (s *Service) List(ctx context.Context, actor *auth.Principal) ([]models.Department, error) {
	return s.departments.Find(ctx, "organization_id = ?", actor.OrganizationID)
}

// Get fetches one department within the actor's organization.
func (s *Service) Get(ctx context.Context, actor *auth.Principal, id string) (*models.Department, error) {
	return s.departments.FindOne(ctx, "id = ? AND organization_id = ?", id, actor.OrganizationID)
}

// Update changes department fields. Lead reassignment escalates like Create.
func (s *Service) Update(ctx context.Context, actor *auth.Principal, id string, req *models.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		department.Name = req.Name
	}
	if req.Description != "" {
		department.Description = req.Description
	}
	if req.DepLeadID != "" && req.DepLeadID != department.DepLeadID {
		if err := s.assignLead(ctx, actor, req.DepLeadID); err != nil {
			return nil, err
		}
		department.DepLeadID = req.DepLeadID
	}

	if err := s.departments.Save(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes an unreferenced department. Projects or employees still
// attached block the deletion.
func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id string) (*models.Department, error) {
	department, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	projectCount, err := s.projects.Count(ctx, "department_id = ?", id)
	if err != nil {
		return nil, err
	}
	if projectCount > 0 {
		return nil, models.NewConflictError(errors.New("department still has projects"))
	}

	memberCount, err := s.users.CountDepartmentMembers(ctx, actor.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if memberCount > 0 {
		return nil, models.NewConflictError(errors.New("department still has members"))
	}

	return s.departments.Delete(ctx, department.ID)
}

func (s *Service) assignLead(ctx context.Context, actor *auth.Principal, leadID string) error {
	lead, err := s.users.FindByID(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.OrganizationID != actor.OrganizationID {
		return models.NewBadRequestError("Fields mismatch", nil)
	}
	return s.users.EscalateToLead(ctx, leadID, models.RoleDepLead)
}
