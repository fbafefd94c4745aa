package handlers

import (
	"fmt"

	"campusreserve/database"
	"campusreserve/middleware"
	"campusreserve/models"
	"campusreserve/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListPendingBookings(c *fiber.Ctx) error {
	var pendingBookings []models.Booking
	if err := database.DB.
		Preload("User").
		Preload("Resource").
		Where("status = ?", "pending").
		Order("start_time asc").
		Find(&pendingBookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingBookings)
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

func DecideBooking(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := engine.Decide(c.UserContext(), principal, bookingID, req.Decision)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	go notifyDecision(*result.Booking)
	for _, lost := range result.AutoRejected {
		go notifyDecision(lost)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Booking %s successfully.", req.Decision),
		"result":  result,
	})
}

func notifyDecision(b models.Booking) {
	subject := "Your Booking Was Rejected"
	body := fmt.Sprintf("<h1>Booking Update</h1><p>Your reservation of <b>%s</b> from %s to %s was rejected.</p>",
		b.Resource.Name,
		b.StartTime.Format("Jan 2 15:04"),
		b.EndTime.Format("15:04"),
	)
	if b.Status == "approved" {
		subject = "Your Booking Was Approved!"
		body = fmt.Sprintf("<h1>Booking Approved</h1><p>Your reservation of <b>%s</b> from %s to %s is confirmed.</p>",
			b.Resource.Name,
			b.StartTime.Format("Jan 2 15:04"),
			b.EndTime.Format("15:04"),
		)
	}
	notifications.SendEmail(b.User.FullName, b.User.Email, subject, body)
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	if err := database.DB.
		Preload("User").
		Preload("Resource").
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bookings)
}

type CreateResourceRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Type        string  `json:"type" validate:"required,oneof=room lab equipment"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func AdminCreateResource(c *fiber.Ctx) error {
	var req CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := models.Resource{
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := database.DB.Create(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}

type ResourceStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func AdminSetResourceStatus(c *fiber.Ctx) error {
	resourceID := c.Params("resourceId")

	var req ResourceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", resourceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	resource.IsActive = *req.IsActive
	if err := database.DB.Save(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update resource"})
	}

	return c.JSON(resource)
}
