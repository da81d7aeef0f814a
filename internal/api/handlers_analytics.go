package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jmcateer/pulselog/internal/services"
)

const (
	defaultTrendWindowDays = 30
	maxTrendWindowDays     = 365
	defaultQuickStatsDays  = 7
	maxQuickStatsDays      = 90
)

func (handler *Handler) GetSymptomOverview(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := handler.analysis.SymptomOverview(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to aggregate symptoms")
		return apiError(c, fiber.StatusInternalServerError, "failed to aggregate symptoms")
	}
	return c.JSON(overview)
}

func (handler *Handler) GetSymptomTrend(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	symptomName := strings.TrimSpace(c.Params("symptom"))
	if symptomName == "" {
		return apiError(c, fiber.StatusBadRequest, "symptom name is required")
	}

	windowDays, err := parseDaysQuery(c, defaultTrendWindowDays, maxTrendWindowDays)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	trend, err := handler.analysis.TrendForSymptom(userID, symptomName, windowDays)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("symptom", symptomName).Msg("failed to compute trend")
		return apiError(c, fiber.StatusInternalServerError, "failed to compute trend")
	}
	if trend == nil {
		return apiError(c, fiber.StatusNotFound, "no numeric data for symptom in window")
	}
	return c.JSON(trend)
}

func (handler *Handler) GetStreak(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	streak, err := handler.analysis.StreakForUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to compute streak")
		return apiError(c, fiber.StatusInternalServerError, "failed to compute streak")
	}
	return c.JSON(streak)
}

func (handler *Handler) GetQuickStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := parseDaysQuery(c, defaultQuickStatsDays, maxQuickStatsDays)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := handler.analysis.QuickStatsForUser(userID, days)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to compute quick stats")
		return apiError(c, fiber.StatusInternalServerError, "failed to compute quick stats")
	}
	return c.JSON(stats)
}

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if endDate.Before(startDate) {
		return apiError(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}

	opts := services.SummaryOptions{
		FlaggedOnly: parseBoolQuery(c, "flagged_only"),
	}

	report, err := handler.analysis.SummaryForUser(userID, startDate, endDate, opts)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to build summary")
		return apiError(c, fiber.StatusInternalServerError, "failed to build summary")
	}
	return c.JSON(report)
}
