// Package principal reads the authenticated caller out of the request
// context set by the JWT middleware.
package principal

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return mc
}

// UserID returns the caller's user ID, or 0 when unauthenticated.
func UserID(c *fiber.Ctx) uint64 {
	mc := claims(c)
	if mc == nil {
		return 0
	}
	sub, _ := mc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func Role(c *fiber.Ctx) string {
	mc := claims(c)
	if mc == nil {
		return ""
	}
	role, _ := mc["role"].(string)
	return role
}

func IsAdmin(c *fiber.Ctx) bool {
	return Role(c) == "admin"
}
