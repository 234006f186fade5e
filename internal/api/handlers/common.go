package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/utils"
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func actorFrom(c *fiber.Ctx) domain.Actor {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return domain.Actor{UserID: userID, Role: role}
}

// requestContext bounds service calls made on behalf of c.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), utils.GetConfigDuration("REQUEST_TIMEOUT"))
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}
