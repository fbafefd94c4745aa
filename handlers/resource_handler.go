package handlers

import (
	"campusreserve/database"
	"campusreserve/models"
	"github.com/gofiber/fiber/v2"
)

func ListResources(c *fiber.Ctx) error {
	query := database.DB.Where("is_active = ?", true)

	if resourceType := c.Query("type"); resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	var resources []models.Resource
	if err := query.Order("name asc").Find(&resources).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(resources)
}

func GetResource(c *fiber.Ctx) error {
	resourceID := c.Params("resourceId")

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ? AND is_active = ?", resourceID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	return c.JSON(resource)
}
