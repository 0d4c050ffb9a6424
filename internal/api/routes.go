package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", handler.Metrics)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentUser)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Post("/:date", handler.OwnerOnly, handler.UpsertDay)
	days.Delete("/:date", handler.OwnerOnly, handler.DeleteDay)

	calories := api.Group("/calories", handler.AuthRequired)
	calories.Get("/summary", handler.GetCaloriesSummary)
	calories.Get("/digest", handler.GetDigest)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.ListGoals)
	goals.Get("/current", handler.GetCurrentGoal)
	goals.Get("/on/:date", handler.GetGoalForDate)
	goals.Post("", handler.OwnerOnly, handler.SetGoal)

	stocks := api.Group("/stocks", handler.AuthRequired)
	stocks.Get("", handler.ListStocks)
	stocks.Post("", handler.OwnerOnly, handler.SaveStock)
	stocks.Delete("/:symbol", handler.OwnerOnly, handler.DeleteStock)

	export := api.Group("/export", handler.AuthRequired, handler.OwnerOnly)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
