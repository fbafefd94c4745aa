package routes

import (
	"campusreserve/handlers"
	"github.com/gofiber/fiber/v2"
)

func ResourceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	resources := api.Group("/resources")
	resources.Get("", handlers.ListResources)
	resources.Get("/:resourceId", handlers.GetResource)
	resources.Get("/:resourceId/availability", handlers.GetResourceAvailability)
}
