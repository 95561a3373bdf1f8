package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
)

// Wednesday noon, local time.
var wednesday = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.Local)

func at(base time.Time, hour int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, base.Location())
}

func TestValidateWindowBounds(t *testing.T) {
	t.Parallel()

	monday := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		now     time.Time
		wantErr bool
	}{
		{
			name:  "today is valid",
			start: at(wednesday, 9), end: at(wednesday, 17), now: wednesday,
		},
		{
			name:  "yesterday is valid",
			start: at(wednesday.AddDate(0, 0, -1), 9), end: at(wednesday.AddDate(0, 0, -1), 17), now: wednesday,
			wantErr: false,
		},
		{
			name:  "start after end",
			start: at(wednesday, 17), end: at(wednesday, 9), now: wednesday,
			wantErr: true,
		},
		{
			name:  "start equals end",
			start: at(wednesday, 9), end: at(wednesday, 9), now: wednesday,
			wantErr: true,
		},
		{
			name:  "window crosses midnight",
			start: at(wednesday, 22), end: at(wednesday.AddDate(0, 0, 1), 6), now: wednesday,
			wantErr: true,
		},
		{
			name:  "two days ago is outside the window",
			start: at(wednesday.AddDate(0, 0, -2), 9), end: at(wednesday.AddDate(0, 0, -2), 17), now: wednesday,
			wantErr: true,
		},
		{
			name:  "saturday rejected even as yesterday",
			start: at(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local), 9),
			end:   at(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local), 17),
			now:   time.Date(2026, time.March, 1, 12, 0, 0, 0, time.Local),
			wantErr: true,
		},
		{
			name:  "monday reaches back to friday",
			start: at(time.Date(2026, time.February, 27, 0, 0, 0, 0, time.Local), 9),
			end:   at(time.Date(2026, time.February, 27, 0, 0, 0, 0, time.Local), 17),
			now:   monday,
		},
		{
			name:  "wednesday does not reach back to monday",
			start: at(monday, 9), end: at(monday, 17), now: wednesday,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateWindowBounds(tt.start, tt.end, tt.now)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, models.ErrorKindBadRequest, appErr.Kind)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateTimesheetSelfOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.now = func() time.Time { return wednesday }

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	other := f.seedUser(t, models.RoleStandardUser, "org-1", nil)

	req := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 9).UnixMilli(),
		EndTime:   at(wednesday, 17).UnixMilli(),
	}
	_, err := f.svc.CreateTimesheet(context.Background(), f.principalFor(actor), other.ID, req)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindForbidden, appErr.Kind)
}

func TestCreateTimesheetComputesLoggedHours(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.now = func() time.Time { return wednesday }

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)

	req := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 9).UnixMilli(),
		EndTime:   at(wednesday, 17).UnixMilli(),
	}
	entry, err := f.svc.CreateTimesheet(context.Background(), f.principalFor(actor), actor.ID, req)
	require.NoError(t, err)

	// 8 hours on the clock minus the hour of lunch.
	assert.Equal(t, 7*msPerHour, entry.LoggedHours)
}

func TestCreateTimesheetRejectsDuplicateDay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.now = func() time.Time { return wednesday }

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	principal := f.principalFor(actor)

	req := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 9).UnixMilli(),
		EndTime:   at(wednesday, 17).UnixMilli(),
	}
	_, err := f.svc.CreateTimesheet(context.Background(), principal, actor.ID, req)
	require.NoError(t, err)

	later := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 18).UnixMilli(),
		EndTime:   at(wednesday, 20).UnixMilli(),
	}
	_, err = f.svc.CreateTimesheet(context.Background(), principal, actor.ID, later)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindConflict, appErr.Kind)
}

func TestCreateTimesheetRejectsPublicHoliday(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.now = func() time.Time { return wednesday }
	f.svc.holidays = stubHolidays{holiday: true}

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)

	req := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 9).UnixMilli(),
		EndTime:   at(wednesday, 17).UnixMilli(),
	}
	_, err := f.svc.CreateTimesheet(context.Background(), f.principalFor(actor), actor.ID, req)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindBadRequest, appErr.Kind)
}

func TestGetTimesheetsGroupsAndComputesOvertime(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.now = func() time.Time { return wednesday }

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	principal := f.principalFor(actor)

	// 10 hours on the clock, 9 logged, 1 over the full-time contract.
	req := &models.CreateTimesheetRequest{
		StartTime: at(wednesday, 9).UnixMilli(),
		EndTime:   at(wednesday, 19).UnixMilli(),
	}
	_, err := f.svc.CreateTimesheet(context.Background(), principal, actor.ID, req)
	require.NoError(t, err)

	from := at(wednesday.AddDate(0, 0, -30), 0).UnixMilli()
	to := at(wednesday.AddDate(0, 0, 1), 0).UnixMilli()
	grouped, err := f.svc.GetTimesheets(context.Background(), principal, actor.ID, from, to)
	require.NoError(t, err)

	record, ok := grouped["2026"]["March"]["4"]
	require.True(t, ok, "entry should be grouped under year/month/day")
	assert.Equal(t, 9*msPerHour, record.LoggedHours)
	assert.Equal(t, 1*msPerHour, record.Overtime)
}

func TestGetTimesheetsRejectsOversizedInterval(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	actor := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	principal := f.principalFor(actor)

	from := wednesday.AddDate(-2, 0, 0).UnixMilli()
	_, err := f.svc.GetTimesheets(context.Background(), principal, actor.ID, from, wednesday.UnixMilli())
	require.Error(t, err)
}

func TestGetTimesheetsReadAccess(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	admin := f.seedUser(t, models.RoleAdmin, "org-1", nil)
	standard := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	peer := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	foreignAdmin := f.seedUser(t, models.RoleAdmin, "org-2", nil)

	ctx := context.Background()
	window := wednesday.UnixMilli()

	_, err := f.svc.GetTimesheets(ctx, f.principalFor(admin), standard.ID, window, window)
	require.NoError(t, err, "admin reads across the organization")

	_, err = f.svc.GetTimesheets(ctx, f.principalFor(peer), standard.ID, window, window)
	require.Error(t, err, "standard users read only their own")

	_, err = f.svc.GetTimesheets(ctx, f.principalFor(foreignAdmin), standard.ID, window, window)
	require.Error(t, err, "organization boundary holds for admins too")
}
