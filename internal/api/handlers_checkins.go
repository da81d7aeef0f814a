package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jmcateer/pulselog/internal/models"
)

const maxNotesLength = 2000

func (handler *Handler) CreateCheckIn(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := checkInPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if len(payload.Notes) > maxNotesLength {
		return apiError(c, fiber.StatusBadRequest, "notes too long")
	}

	timestamp := time.Now().UTC()
	if payload.Timestamp != nil {
		timestamp = payload.Timestamp.UTC()
	}

	symptoms := make(map[string]models.SymptomValue, len(payload.Symptoms))
	for name, value := range payload.Symptoms {
		cleanName := strings.TrimSpace(name)
		if cleanName == "" {
			continue
		}
		// Unrecognized legacy encodings decode to the invalid kind and
		// are dropped here rather than rejected.
		if value.Kind == models.SymptomKindInvalid {
			log.Warn().
				Str("user_id", userID).
				Str("symptom", cleanName).
				Msg("dropping symptom value with unrecognized encoding")
			continue
		}
		symptoms[cleanName] = value
	}

	checkIn := models.CheckIn{
		UserID:    userID,
		Timestamp: timestamp,
		Structured: models.StructuredData{
			Symptoms:   symptoms,
			Activities: cleanStringList(payload.Activities),
			Triggers:   cleanStringList(payload.Triggers),
			Notes:      strings.TrimSpace(payload.Notes),
		},
		FlaggedForDoctor: payload.FlaggedForDoctor,
	}

	if err := handler.checkIns.Create(&checkIn); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store check-in")
		return apiError(c, fiber.StatusInternalServerError, "failed to store check-in")
	}

	return c.Status(fiber.StatusCreated).JSON(buildCheckInResponse(checkIn))
}

func (handler *Handler) ListCheckIns(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	checkIns, err := handler.checkIns.ListByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to list check-ins")
		return apiError(c, fiber.StatusInternalServerError, "failed to list check-ins")
	}

	responses := make([]checkInResponse, 0, len(checkIns))
	for _, checkIn := range checkIns {
		responses = append(responses, buildCheckInResponse(checkIn))
	}
	return c.JSON(responses)
}

func cleanStringList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}
