package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/shopping"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingHandler interface {
		DownloadShoppingCart(c *fiber.Ctx) error
		EmailShoppingCart(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService) ShoppingHandler {
	return &shoppingHandler{shoppingService: shoppingService}
}

func (h *shoppingHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	doc, err := h.shoppingService.Download(c.Context(), middleware.UserID(c))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedDownloadShoppingList, err)
	}

	c.Attachment(domain.ShoppingListFileName)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(fiber.StatusOK).Send(doc)
}

func (h *shoppingHandler) EmailShoppingCart(c *fiber.Ctx) error {
	if err := h.shoppingService.SendByEmail(c.Context(), middleware.UserID(c)); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedSendShoppingList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendShoppingList)
}
