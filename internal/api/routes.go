package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	apiGroup := app.Group("/api", handler.RequireUser)

	checkins := apiGroup.Group("/checkins")
	checkins.Get("", handler.ListCheckIns)
	checkins.Post("", handler.CreateCheckIn)

	analytics := apiGroup.Group("/analytics")
	analytics.Get("/symptoms", handler.GetSymptomOverview)
	analytics.Get("/trends/:symptom", handler.GetSymptomTrend)
	analytics.Get("/streak", handler.GetStreak)
	analytics.Get("/quick-stats", handler.GetQuickStats)
	analytics.Get("/summary", handler.GetSummary)
}
