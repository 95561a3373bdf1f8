// Package holiday answers "is this day a public holiday" against a
// Nager.Date-style API, with a redis response cache and a circuit breaker in
// front of the upstream.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services"
	"github.com/sustainaByte/orghub/internal/services/circuitbreaker"
)

const cacheTTL = 24 * time.Hour

// PublicHoliday is one entry of the upstream response.
type PublicHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

type Service struct {
	client  *services.Client
	redis   *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	country string
}

// NewService builds the holiday lookup. redisClient may be nil; caching and
// the breaker are then disabled and every lookup hits the upstream.
func NewService(cfg models.HolidayConfig, redisClient *redis.Client) *Service {
	s := &Service{
		client:  services.NewClient(cfg.BaseURL),
		redis:   redisClient,
		country: cfg.CountryCode,
	}
	if redisClient != nil {
		s.breaker = circuitbreaker.NewForService(redisClient, "public-holidays")
	}
	return s
}

// IsPublicHoliday reports whether day falls on a registered public holiday.
func (s *Service) IsPublicHoliday(ctx context.Context, day time.Time) (bool, error) {
	holidays, err := s.holidaysForYear(ctx, day.Year())
	if err != nil {
		return false, err
	}

	date := day.Format("2006-01-02")
	for _, h := range holidays {
		if h.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) holidaysForYear(ctx context.Context, year int) ([]PublicHoliday, error) {
	cacheKey := fmt.Sprintf("holidays:%d:%s", year, s.country)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var holidays []PublicHoliday
			if err := json.Unmarshal(cached, &holidays); err == nil {
				return holidays, nil
			}
		}
	}

	if s.breaker != nil && !s.breaker.CanExecute() {
		return nil, fmt.Errorf("holiday API circuit open")
	}

	var holidays []PublicHoliday
	path := fmt.Sprintf("/%d/%s", year, s.country)
	err := s.client.Get(path, &holidays, &services.RequestOptions{Context: ctx})
	if err != nil {
		if s.breaker != nil {
			s.breaker.RecordFailure()
		}
		return nil, fmt.Errorf("holiday lookup failed: %w", err)
	}
	if s.breaker != nil {
		s.breaker.RecordSuccess()
	}

	if s.redis != nil {
		if payload, err := json.Marshal(holidays); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				fiberlog.Warnf("Failed to cache holiday response: %v", err)
			}
		}
	}

	return holidays, nil
}
