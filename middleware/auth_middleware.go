package middleware

import (
	"campusreserve/booking"
	config "campusreserve/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentPrincipal(c).CanDecide() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}

// CurrentPrincipal reads the acting principal from the verified JWT set by
// Protected(). Returns the zero Principal when the route is unauthenticated.
func CurrentPrincipal(c *fiber.Ctx) booking.Principal {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return booking.Principal{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return booking.Principal{}
	}

	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return booking.Principal{}
	}
	role, _ := claims["role"].(string)

	return booking.Principal{ID: id, Role: role}
}
