package handlers

import (
	"errors"
	"log"
	"time"

	"campusreserve/booking"
	"campusreserve/database"
	"campusreserve/middleware"
	"campusreserve/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var engine *booking.Engine

// InitBookingEngine wires the conflict/approval engine to the live database.
// Must run after database.ConnectDB.
func InitBookingEngine() {
	engine = booking.NewEngine(database.NewBookingStore(database.DB))
	log.Println("✅ Booking engine initialized")
}

type CreateBookingRequest struct {
	ResourceID string `json:"resource_id" validate:"required,uuid"`
	StartTime  string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime    string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Purpose    string `json:"purpose" validate:"required,min=3"`
}

func bookingErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "You must be logged in."})
	case errors.Is(err, booking.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Admin access required"})
	case errors.Is(err, booking.ErrInvalidInterval):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time."})
	case errors.Is(err, booking.ErrSlotConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Conflict! This time slot is already booked."})
	case errors.Is(err, booking.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This booking has already been processed."})
	case errors.Is(err, booking.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, booking.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Could not verify availability, please try again."})
	default:
		log.Printf("[ERROR] booking operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong."})
	}
}

func CreateBooking(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resourceID, _ := uuid.Parse(req.ResourceID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	created, err := engine.Submit(c.UserContext(), principal, resourceID, startTime, endTime, req.Purpose)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking request sent! An administrator will review it shortly.",
		"booking": created,
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)

	var bookings []models.Booking
	if err := database.DB.
		Preload("Resource").
		Where("user_id = ?", principal.ID).
		Order("start_time desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(bookings)
}

func GetResourceAvailability(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
	}

	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
	}

	busy, err := engine.Availability(c.UserContext(), resourceID, day)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"date":       c.Query("date"),
		"busy_slots": busy,
	})
}
