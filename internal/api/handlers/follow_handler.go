package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/follow"

	"github.com/gofiber/fiber/v2"
)

type (
	FollowHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	followHandler struct {
		followService follow.FollowService
	}
)

func NewFollowHandler(followService follow.FollowService) FollowHandler {
	return &followHandler{followService: followService}
}

func (h *followHandler) Subscribe(c *fiber.Ctx) error {
	res, err := h.followService.Follow(c.Context(), middleware.UserID(c), c.Params("id"), c.QueryInt("recipes_limit", 0))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedFollow, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFollow)
}

func (h *followHandler) Unsubscribe(c *fiber.Ctx) error {
	if err := h.followService.Unfollow(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUnfollow, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessUnfollow)
}

func (h *followHandler) GetSubscriptions(c *fiber.Ctx) error {
	res, err := h.followService.ListFollowing(c.Context(), middleware.UserID(c), pageRequest(c), c.QueryInt("recipes_limit", 0))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetFollowings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFollowings)
}
