// Package users implements organization registration, authentication,
// employee management and the policies that govern who may change whom.
package users

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/email"
	"github.com/sustainaByte/orghub/internal/services/roles"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost        = 10
	generatedPwLength = 12
	passwordCharset   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// HolidayChecker answers whether a day is a registered public holiday.
// Satisfied by holiday.Service.
type HolidayChecker interface {
	IsPublicHoliday(ctx context.Context, day time.Time) (bool, error)
}

type Service struct {
	users       *repository.Repository[models.User]
	orgs        *repository.Repository[models.Organization]
	departments *repository.Repository[models.Department]
	projects    *repository.Repository[models.Project]
	positions   *repository.Repository[models.Position]
	roles       *roles.Service
	tokens      *auth.TokenService
	mailer      *email.Mailer
	holidays    HolidayChecker
	now         func() time.Time
}

func NewService(db *gorm.DB, roleService *roles.Service, tokens *auth.TokenService, mailer *email.Mailer, holidays HolidayChecker) *Service {
	return &Service{
		users:       repository.New[models.User](db),
		orgs:        repository.New[models.Organization](db),
		departments: repository.New[models.Department](db),
		projects:    repository.New[models.Project](db),
		positions:   repository.New[models.Position](db),
		roles:       roleService,
		tokens:      tokens,
		mailer:      mailer,
		holidays:    holidays,
		now:         time.Now,
	}
}

// RegisterOrganization creates an organization together with its first admin
// user and logs that user in.
func (s *Service) RegisterOrganization(ctx context.Context, req *models.RegisterOrganizationRequest) (*models.TokenPairResponse, error) {
	if _, err := s.users.FindOne(ctx, "email = ?", req.Email); err == nil {
		return nil, models.NewConflictError(fmt.Errorf("email already registered"))
	}

	adminRole, err := s.roles.FindByName(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	org := &models.Organization{
		CompanyName: req.CompanyName,
		EmployeesNo: req.EmployeesNo,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}

	admin := &models.User{
		Name:           req.CompanyName,
		Email:          req.Email,
		Password:       string(hashed),
		PhoneNumber:    req.PhoneNumber,
		RoleIDs:        []string{adminRole.ID},
		OrganizationID: org.ID,
		EmploymentType: models.EmploymentFullTime,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	fiberlog.Infof("Registered organization %s with admin %s", org.ID, admin.ID)
	return s.issueTokenPair(admin)
}

// Login checks credentials and returns a fresh token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPairResponse, error) {
	user, err := s.users.FindOne(ctx, "email = ?", req.Email)
	if err != nil {
		return nil, models.NewUnauthorizedError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.NewUnauthorizedError(err)
	}
	return s.issueTokenPair(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The user
// record is re-read so revoked accounts and changed roles take effect.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPairResponse, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenUseRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, models.NewUnauthorizedError(err)
	}
	return s.issueTokenPair(user)
}

func (s *Service) issueTokenPair(user *models.User) (*models.TokenPairResponse, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &models.TokenPairResponse{
		JwtToken:     access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokens.AccessExpirySeconds()),
	}, nil
}

// CreateEmployee adds a standard user to the actor's organization. The
// generated password is mailed to the employee; delivery failure does not
// roll back the account.
func (s *Service) CreateEmployee(ctx context.Context, actor *auth.Principal, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error) {
	standardRole, err := s.roles.FindByName(ctx, models.RoleStandardUser)
	if err != nil {
		return nil, err
	}

	memberships, departments, err := s.processProjects(ctx, actor.OrganizationID, req.Projects)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword(generatedPwLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employmentType := req.EmploymentType
	if employmentType == 0 {
		employmentType = models.EmploymentFullTime
	}

	user := &models.User{
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		Password:        string(hashed),
		PhoneNumber:     req.PhoneNumber,
		EmergencyNumber: req.EmergencyNumber,
		Address:         req.Address,
		RoleIDs:         []string{standardRole.ID},
		OrganizationID:  actor.OrganizationID,
		Projects:        memberships,
		Departments:     departments,
		EmploymentType:  employmentType,
	}
	if len(departments) > 0 {
		user.DepartmentID = departments[0].DepartmentID
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer.Enabled() {
		if err := s.mailer.SendGeneratedPassword(ctx, user.Email, user.Name, password); err != nil {
			fiberlog.Errorf("Failed to email generated password to %s: %v", user.Email, err)
		}
	}

	return user.ToEmployeeResponse(), nil
}

// GetEmployee fetches an employee within the actor's organization.
func (s *Service) GetEmployee(ctx context.Context, actor *auth.Principal, id string) (*models.EmployeeResponse, error) {
	user, err := s.users.FindOne(ctx, "id = ? AND organization_id = ?", id, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	return user.ToEmployeeResponse(), nil
}

// UpdateEmployee applies an update after the permission policy authorizes it.
// Project memberships in the update are revalidated against the actor's
// organization.
func (s *Service) UpdateEmployee(ctx context.Context, actor *auth.Principal, id string, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanUpdateEmployee(ctx, actor, target, req)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("")
	}

	if req.Name != "" {
		target.Name = req.Name
	}
	if req.Surname != "" {
		target.Surname = req.Surname
	}
	if req.Email != "" {
		target.Email = req.Email
	}
	if req.PhoneNumber != "" {
		target.PhoneNumber = req.PhoneNumber
	}
	if req.EmergencyNumber != "" {
		target.EmergencyNumber = req.EmergencyNumber
	}
	if req.Address != nil {
		target.Address = *req.Address
	}
	if req.EmploymentType != 0 {
		target.EmploymentType = req.EmploymentType
	}
	if req.TouchesProjects() {
		memberships, departments, err := s.processProjects(ctx, actor.OrganizationID, req.Projects)
		if err != nil {
			return nil, err
		}
		target.Projects = memberships
		target.Departments = departments
		if len(departments) > 0 {
			target.DepartmentID = departments[0].DepartmentID
		}
	}

	if err := s.users.Save(ctx, target); err != nil {
		return nil, err
	}
	return target.ToEmployeeResponse(), nil
}

// ListEmployeesByProject lists the members of one project with their position
// names resolved.
func (s *Service) ListEmployeesByProject(ctx context.Context, actor *auth.Principal, projectID string) ([]models.EmployeeCriteriaResponse, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.checkProjectOrganization(ctx, actor.OrganizationID, project); err != nil {
		return nil, err
	}

	members, err := s.users.Find(ctx, "organization_id = ?", actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	var out []models.EmployeeCriteriaResponse
	for i := range members {
		for _, ref := range members[i].Projects {
			if ref.ProjectID != projectID {
				continue
			}
			row := models.EmployeeCriteriaResponse{
				ID:          members[i].ID,
				Name:        members[i].Name,
				Surname:     members[i].Surname,
				ProjectName: project.Name,
			}
			if ref.PositionID != "" {
				if position, err := s.positions.FindByID(ctx, ref.PositionID); err == nil {
					row.Position = position.Name
				}
			}
			out = append(out, row)
			break
		}
	}
	return out, nil
}

// ListEmployeesByDepartment lists the members of one department.
func (s *Service) ListEmployeesByDepartment(ctx context.Context, actor *auth.Principal, departmentID string) ([]models.EmployeeCriteriaResponse, error) {
	department, err := s.departments.FindOne(ctx, "id = ? AND organization_id = ?", departmentID, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	members, err := s.users.Find(ctx, "organization_id = ?", actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	var out []models.EmployeeCriteriaResponse
	for i := range members {
		for _, ref := range members[i].Departments {
			if ref.DepartmentID != departmentID {
				continue
			}
			row := models.EmployeeCriteriaResponse{
				ID:             members[i].ID,
				Name:           members[i].Name,
				Surname:        members[i].Surname,
				DepartmentName: department.Name,
			}
			if ref.PositionID != "" {
				if position, err := s.positions.FindByID(ctx, ref.PositionID); err == nil {
					row.Position = position.Name
				}
			}
			out = append(out, row)
			break
		}
	}
	return out, nil
}

// EscalateToLead upgrades a user's primary role to the lead role when their
// current role has less authority. It never demotes.
func (s *Service) EscalateToLead(ctx context.Context, userID string, lead models.RoleName) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	leadRole, err := s.roles.FindByName(ctx, lead)
	if err != nil {
		return err
	}
	currentRole, err := s.roles.FindByID(ctx, user.PrimaryRoleID())
	if err != nil {
		return err
	}
	if currentRole.Priority <= leadRole.Priority {
		return nil
	}

	user.RoleIDs = []string{leadRole.ID}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	fiberlog.Infof("Escalated user %s from %s to %s", userID, currentRole.Name, leadRole.Name)
	return nil
}

// FindByID fetches a raw user record.
func (s *Service) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// CountDepartmentMembers counts employees holding a membership in the
// department. Memberships live inside the user document, so the scan happens
// here rather than in SQL.
func (s *Service) CountDepartmentMembers(ctx context.Context, organizationID, departmentID string) (int, error) {
	members, err := s.users.Find(ctx, "organization_id = ?", organizationID)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range members {
		if departmentOf(&members[i]) == departmentID {
			count++
			continue
		}
		for _, ref := range members[i].Departments {
			if ref.DepartmentID == departmentID {
				count++
				break
			}
		}
	}
	return count, nil
}

// RemovePositionFromMembers strips a deleted position from every membership
// that references it. Each affected user is a separate write; a failure
// partway leaves earlier writes in place.
func (s *Service) RemovePositionFromMembers(ctx context.Context, organizationID, positionID string) error {
	members, err := s.users.Find(ctx, "organization_id = ?", organizationID)
	if err != nil {
		return err
	}
	for i := range members {
		changed := false
		for j := range members[i].Projects {
			if members[i].Projects[j].PositionID == positionID {
				members[i].Projects[j].PositionID = ""
				changed = true
			}
		}
		for j := range members[i].Departments {
			if members[i].Departments[j].PositionID == positionID {
				members[i].Departments[j].PositionID = ""
				changed = true
			}
		}
		if changed {
			if err := s.users.Save(ctx, &members[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// MembersOfProject returns the employees holding a membership in the project.
func (s *Service) MembersOfProject(ctx context.Context, organizationID, projectID string) ([]models.EmployeeResponse, error) {
	members, err := s.users.Find(ctx, "organization_id = ?", organizationID)
	if err != nil {
		return nil, err
	}
	var out []models.EmployeeResponse
	for i := range members {
		for _, ref := range members[i].Projects {
			if ref.ProjectID == projectID {
				out = append(out, *members[i].ToEmployeeResponse())
				break
			}
		}
	}
	return out, nil
}

// processProjects resolves requested project memberships against the actor's
// organization. Each project must exist and belong to the organization via
// its department; each referenced position must exist. Returns the project
// memberships and the distinct department memberships they imply.
func (s *Service) processProjects(ctx context.Context, organizationID string, refs []models.MemberRefRequest) ([]models.MemberRef, []models.MemberRef, error) {
	if len(refs) == 0 {
		return nil, nil, nil
	}

	var memberships []models.MemberRef
	var departments []models.MemberRef
	seenDepartments := make(map[string]bool)

	for _, ref := range refs {
		if ref.ProjectID == "" {
			return nil, nil, models.NewBadRequestError("", errors.New("project membership missing project id"))
		}
		project, err := s.projects.FindByID(ctx, ref.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		if err := s.checkProjectOrganization(ctx, organizationID, project); err != nil {
			return nil, nil, err
		}
		if ref.PositionID != "" {
			if _, err := s.positions.FindByID(ctx, ref.PositionID); err != nil {
				return nil, nil, err
			}
		}

		memberships = append(memberships, models.MemberRef{
			ProjectID:  project.ID,
			PositionID: ref.PositionID,
		})
		if !seenDepartments[project.DepartmentID] {
			seenDepartments[project.DepartmentID] = true
			departments = append(departments, models.MemberRef{
				DepartmentID: project.DepartmentID,
				PositionID:   ref.PositionID,
			})
		}
	}
	return memberships, departments, nil
}

func (s *Service) checkProjectOrganization(ctx context.Context, organizationID string, project *models.Project) error {
	department, err := s.departments.FindByID(ctx, project.DepartmentID)
	if err != nil {
		return err
	}
	if department.OrganizationID != organizationID {
		return models.NewBadRequestError("Fields mismatch", nil)
	}
	return nil
}

func generatePassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}
