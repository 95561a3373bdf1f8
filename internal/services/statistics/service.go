// Package statistics aggregates post locations into a singleton record.
package statistics

import (
	"context"

	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"gorm.io/gorm"
)

type Service struct {
	statistics *repository.Repository[models.Statistics]
	posts      *repository.Repository[models.Post]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		statistics: repository.New[models.Statistics](db),
		posts:      repository.New[models.Post](db),
	}
}

// Refresh recounts posts per location and overwrites the singleton record.
func (s *Service) Refresh(ctx context.Context) (*models.Statistics, error) {
	posts, err := s.posts.Find(ctx, "location <> ''")
	if err != nil {
		return nil, err
	}

	locations := make(map[string]int)
	for i := range posts {
		locations[posts[i].Location]++
	}

	record, err := s.statistics.FindByID(ctx, models.StatisticsID)
	if err != nil {
		record = &models.Statistics{ID: models.StatisticsID, Locations: locations}
		if err := s.statistics.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}

	record.Locations = locations
	if err := s.statistics.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns the current aggregate.
func (s *Service) Get(ctx context.Context) (*models.Statistics, error) {
	return s.statistics.FindByID(ctx, models.StatisticsID)
}
