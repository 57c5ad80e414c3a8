package handlers

import (
	"foodgram/domain"

	"github.com/gofiber/fiber/v2"
)

// pageRequest reads the page and limit query parameters. Bad values fall
// back to the defaults.
func pageRequest(c *fiber.Ctx) domain.PageRequest {
	return domain.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", domain.DefaultPageSize),
	}.Normalize()
}
