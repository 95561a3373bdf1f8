// Package projects manages project records under their departments.
package projects

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
	projects    *repository.Repository[models.Project]
	departments *repository.Repository[models.Department]
	positions   *repository.Repository[models.Position]
	users       *users.Service
}

func NewService(db *gorm.DB, userService *users.Service) *Service {
	return &Service{
		projects:    repository.New[models.Project](db),
		departments: repository.New[models.Department](db),
		positions:   repository.New[models.Position](db),
		users:       userService,
	}
}

// ProjectDetails is a project together with its member list.
type ProjectDetails struct {
	models.Project
	Members []models.EmployeeResponse `json:"members"`
}

// Create adds a project under a department of the actor's organization. The
// name must be unique within the department; referenced positions must exist;
// an assigned lead is escalated to the project_lead role.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req *models.CreateProjectRequest) (*models.Project, error) {
	department, err := s.departments.FindByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department.OrganizationID != actor.OrganizationID {
		return nil, models.NewBadRequestError("Fields mismatch", nil)
	}

	if _, err := s.projects.FindOne(ctx, "name = ? AND department_id = ?", req.Name, req.DepartmentID); err == nil {
		return nil, models.NewConflictError(errors.New("project name already in use within department"))
	}

	for _, positionID := range req.Positions {
		if _, err := s.positions.FindByID(ctx, positionID); err != nil {
			return nil, err
		}
	}

	if req.ProjectLeadID != "" {
		lead, err := s.users.FindByID(ctx, req.ProjectLeadID)
		if err != nil {
			return nil, err
		}
		if lead.OrganizationID != actor.OrganizationID {
			return nil, models.NewBadRequestError("Fields mismatch", nil)
		}
		if err := s.users.EscalateToLead(ctx, req.ProjectLeadID, models.RoleProjectLead); err != nil {
			return nil, err
		}
	}

	project := &models.Project{
		Name:          req.Name,
		Alias:         req.Alias,
		Description:   req.Description,
		PositionIDs:   req.Positions,
		DepartmentID:  req.DepartmentID,
		ProjectLeadID: req.ProjectLeadID,
		Status:        req.Status,
		Board:         req.Board,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns every project in the actor's organization, resolved through
// department ownership.
func (s *Service) List(ctx context.Context, actor *auth.Principal) ([]models.Project, error) {
	departments, err := s.departments.Find(ctx, "organization_id = ?", actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return nil, nil
	}

	ids := make([]string, len(departments))
	for i := range departments {
		ids[i] = departments[i].ID
	}
	return s.projects.Find(ctx, "department_id IN ?", ids)
}

// Get fetches one project with its members.
func (s *Service) Get(ctx context.Context, actor *auth.Principal, id string) (*ProjectDetails, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department, err := s.departments.FindByID(ctx, project.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department.OrganizationID != actor.OrganizationID {
		return nil, models.NewNotFoundError(gorm.ErrRecordNotFound)
	}

	members, err := s.users.MembersOfProject(ctx, actor.OrganizationID, project.ID)
	if err != nil {
		return nil, err
	}
	return &ProjectDetails{Project: *project, Members: members}, nil
}
