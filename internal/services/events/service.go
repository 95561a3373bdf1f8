// Package events implements fundraising events: creation, kudos, donations
// and volunteer signups.
package events

import (
	"context"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"gorm.io/gorm"
)

type Service struct {
	events *repository.Repository[models.Event]
}

func NewService(db *gorm.DB) *Service {
	return &Service{events: repository.New[models.Event](db)}
}

// Create publishes an event by the acting user.
func (s *Service) Create(ctx context.Context, actor *auth.Principal, req *models.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:         req.Title,
		Content:       req.Content,
		MediaURL:      req.MediaURL,
		Kudos:         []string{},
		Donors:        []models.Donor{},
		Volunteers:    []string{},
		CreatorID:     actor.UserID,
		RequiredMoney: req.RequiredMoney,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns all events, newest first.
func (s *Service) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.events.DB().WithContext(ctx).Order("created_at DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListPersonal returns the events created by the acting user.
func (s *Service) ListPersonal(ctx context.Context, actor *auth.Principal) ([]models.Event, error) {
	return s.events.Find(ctx, "creator_id = ?", actor.UserID)
}

// Get fetches one event.
func (s *Service) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.events.FindByID(ctx, id)
}

// ToggleKudos adds or removes the actor on the event's kudos list.
func (s *Service) ToggleKudos(ctx context.Context, actor *auth.Principal, id string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Kudos = toggle(event.Kudos, actor.UserID)
	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update records a donation and/or a volunteer signup by the acting user.
// Volunteer signup is idempotent.
func (s *Service) Update(ctx context.Context, actor *auth.Principal, id string, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DonationAmount > 0 {
		event.Donors = append(event.Donors, models.Donor{
			UserID: actor.UserID,
			Amount: req.DonationAmount,
		})
		event.CollectedMoney += req.DonationAmount
	}
	if req.Volunteer && !contains(event.Volunteers, actor.UserID) {
		event.Volunteers = append(event.Volunteers, actor.UserID)
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func toggle(list []string, id string) []string {
	for i, existing := range list {
		if existing == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, id)
}

func contains(list []string, id string) bool {
	for _, existing := range list {
		if existing == id {
			return true
		}
	}
	return false
}
