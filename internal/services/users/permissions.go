package users

import (
	"context"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"golang.org/x/sync/errgroup"
)

// CanUpdateEmployee decides whether the actor may apply the proposed update
// to the target employee.
//
// The decision is a switch over the actor's role name. Organization mismatch
// is a hard failure before any branch. Department and project leads must
// share the target's scope; within scope they may edit anyone they strictly
// outrank, and themselves as long as the update leaves project memberships
// alone. Equal priority does not outrank. Standard users may only edit
// themselves, and never their project memberships.
func (s *Service) CanUpdateEmployee(ctx context.Context, actor *auth.Principal, target *models.User, update *models.UpdateEmployeeRequest) (bool, error) {
	if actor.OrganizationID != target.OrganizationID {
		return false, models.NewBadRequestError("Fields mismatch", nil)
	}

	var (
		actorUser  *models.User
		actorRole  *models.Role
		targetRole *models.Role
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actorUser, err = s.users.FindByID(gctx, actor.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		actorRole, err = s.roles.FindByID(gctx, actor.PrimaryRoleID())
		return err
	})
	g.Go(func() error {
		var err error
		targetRole, err = s.roles.FindByID(gctx, target.PrimaryRoleID())
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	selfEdit := actor.UserID == target.ID

	switch actorRole.Name {
	case models.RoleAdmin:
		return true, nil

	case models.RoleDepLead:
		if !sameDepartment(actorUser, target) {
			return false, nil
		}
		if actorRole.MoreAuthoritative(targetRole) {
			return true, nil
		}
		if !update.TouchesProjects() {
			return selfEdit, nil
		}
		return false, nil

	case models.RoleProjectLead:
		if !sharesProject(actorUser, target) {
			return false, nil
		}
		if actorRole.MoreAuthoritative(targetRole) {
			return true, nil
		}
		if !update.TouchesProjects() {
			return selfEdit, nil
		}
		return false, nil

	case models.RoleStandardUser:
		return selfEdit && !update.TouchesProjects(), nil

	default:
		return false, nil
	}
}

func departmentOf(u *models.User) string {
	if u.DepartmentID != "" {
		return u.DepartmentID
	}
	if len(u.Departments) > 0 {
		return u.Departments[0].DepartmentID
	}
	return ""
}

func sameDepartment(a, b *models.User) bool {
	dept := departmentOf(a)
	return dept != "" && dept == departmentOf(b)
}

func sharesProject(a, b *models.User) bool {
	ids := make(map[string]bool, len(a.Projects))
	for _, ref := range a.Projects {
		ids[ref.ProjectID] = true
	}
	for _, ref := range b.Projects {
		if ids[ref.ProjectID] {
			return true
		}
	}
	return false
}
