package routes

import (
	"campusreserve/handlers"
	"campusreserve/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/bookings", handlers.AdminGetAllBookings)
	admin.Get("/bookings/pending", handlers.ListPendingBookings)
	admin.Post("/bookings/:bookingId/decision", handlers.DecideBooking)

	resources := admin.Group("/resources")
	resources.Post("", handlers.AdminCreateResource)
	resources.Put("/:resourceId/status", handlers.AdminSetResourceStatus)
	resources.Post("/:resourceId/image", handlers.UploadResourceImage)
}
