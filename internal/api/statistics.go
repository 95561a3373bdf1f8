package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sustainaByte/orghub/internal/services/statistics"
)

type StatisticsHandler struct {
	statistics *statistics.Service
}

func NewStatisticsHandler(statisticsService *statistics.Service) *StatisticsHandler {
	return &StatisticsHandler{statistics: statisticsService}
}

// Refresh recomputes the aggregate from current posts.
func (h *StatisticsHandler) Refresh(c *fiber.Ctx) error {
	record, err := h.statistics.Refresh(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}

func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	record, err := h.statistics.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}
