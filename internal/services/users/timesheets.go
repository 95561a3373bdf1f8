package users

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
)

const (
	msPerHour    = int64(time.Hour / time.Millisecond)
	lunchBreakMs = msPerHour
	maxReadDays  = 365
)

// TimesheetDayRecord is one logged day in a read response, with overtime
// relative to the employee's contracted hours.
type TimesheetDayRecord struct {
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime"`
	LoggedHours     int64  `json:"loggedHours"`
	Overtime        int64  `json:"overtime"`
	AdditionalNotes string `json:"additionalNotes,omitzero"`
}

// GroupedTimesheets nests records by year, month name and day of month.
type GroupedTimesheets map[string]map[string]map[string]TimesheetDayRecord

// CreateTimesheet logs a working day on the actor's own record. The window
// must pass validity checks and the day must not already carry an entry.
func (s *Service) CreateTimesheet(ctx context.Context, actor *auth.Principal, employeeID string, req *models.CreateTimesheetRequest) (*models.TimesheetEntry, error) {
	if actor.UserID != employeeID {
		return nil, models.NewForbiddenError("")
	}

	user, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	start := time.UnixMilli(req.StartTime)
	end := time.UnixMilli(req.EndTime)
	if err := validateWindowBounds(start, end, s.now()); err != nil {
		return nil, err
	}

	isHoliday, err := s.holidays.IsPublicHoliday(ctx, start)
	if err != nil {
		return nil, models.NewBadRequestError("Could not verify public holidays", err)
	}
	if isHoliday {
		return nil, models.NewBadRequestError("Cannot log time on a public holiday", nil)
	}

	for _, existing := range user.Timesheets {
		if sameCalendarDay(time.UnixMilli(existing.StartTime), start) {
			return nil, models.NewConflictError(errors.New("timesheet already logged for this day"))
		}
	}

	entry := models.TimesheetEntry{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		LoggedHours:     req.EndTime - req.StartTime - lunchBreakMs,
		AdditionalNotes: req.AdditionalNotes,
	}
	user.Timesheets = append(user.Timesheets, entry)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetTimesheets returns the employee's logged days within [startMs, endMs],
// grouped by year, month and day. The interval may span at most a year.
func (s *Service) GetTimesheets(ctx context.Context, actor *auth.Principal, employeeID string, startMs, endMs int64) (GroupedTimesheets, error) {
	if endMs < startMs {
		return nil, models.NewBadRequestError("Interval end precedes start", nil)
	}
	if endMs-startMs > int64(maxReadDays)*24*msPerHour {
		return nil, models.NewBadRequestError("Interval exceeds one year", nil)
	}

	target, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.canReadTimesheets(ctx, actor, target); err != nil {
		return nil, err
	}

	grouped := make(GroupedTimesheets)
	contracted := int64(target.EmploymentType) * msPerHour
	for _, entry := range target.Timesheets {
		if entry.StartTime < startMs || entry.StartTime > endMs {
			continue
		}
		day := time.UnixMilli(entry.StartTime)
		yearKey := strconv.Itoa(day.Year())
		monthKey := day.Month().String()
		dayKey := strconv.Itoa(day.Day())

		if grouped[yearKey] == nil {
			grouped[yearKey] = make(map[string]map[string]TimesheetDayRecord)
		}
		if grouped[yearKey][monthKey] == nil {
			grouped[yearKey][monthKey] = make(map[string]TimesheetDayRecord)
		}
		grouped[yearKey][monthKey][dayKey] = TimesheetDayRecord{
			StartTime:       entry.StartTime,
			EndTime:         entry.EndTime,
			LoggedHours:     entry.LoggedHours,
			Overtime:        max(0, entry.LoggedHours-contracted),
			AdditionalNotes: entry.AdditionalNotes,
		}
	}
	return grouped, nil
}

// canReadTimesheets gates timesheet reads by role: everyone reads their own,
// admins read across their organization, department leads read their
// department, project leads read members of projects they lead.
func (s *Service) canReadTimesheets(ctx context.Context, actor *auth.Principal, target *models.User) error {
	if actor.UserID == target.ID {
		return nil
	}
	if actor.OrganizationID != target.OrganizationID {
		return models.NewForbiddenError("")
	}

	actorRole, err := s.roles.FindByID(ctx, actor.PrimaryRoleID())
	if err != nil {
		return models.NewUnauthorizedError(err)
	}

	switch actorRole.Name {
	case models.RoleAdmin:
		return nil

	case models.RoleDepLead:
		actorUser, err := s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if sameDepartment(actorUser, target) {
			return nil
		}
		return models.NewForbiddenError("")

	case models.RoleProjectLead:
		led, err := s.projects.Find(ctx, "project_lead_id = ?", actor.UserID)
		if err != nil {
			return err
		}
		ledIDs := make(map[string]bool, len(led))
		for _, p := range led {
			ledIDs[p.ID] = true
		}
		for _, ref := range target.Projects {
			if ledIDs[ref.ProjectID] {
				return nil
			}
		}
		return models.NewForbiddenError("")

	default:
		return models.NewForbiddenError("")
	}
}

// validateWindowBounds checks everything about the window that does not need
// the holiday lookup.
func validateWindowBounds(start, end, now time.Time) error {
	if !start.Before(end) {
		return models.NewBadRequestError("Start time must precede end time", nil)
	}
	if !sameCalendarDay(start, end) {
		return models.NewBadRequestError("Start and end must fall on the same day", nil)
	}
	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.NewBadRequestError("Cannot log time on a weekend", nil)
	}

	today := truncateToDay(now)
	day := truncateToDay(start)
	allowed := day.Equal(today) || day.Equal(today.AddDate(0, 0, -1))
	if !allowed && now.Weekday() == time.Monday {
		allowed = day.Equal(today.AddDate(0, 0, -3))
	}
	if !allowed {
		return models.NewBadRequestError("Day is outside the allowed logging window", nil)
	}
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
