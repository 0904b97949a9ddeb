package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/middleware"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Cast handles POST /api/polls/:pollId/votes
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	pollID, errMsg := middleware.ValidatePollID(c.Params("pollId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CastVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	optionID, errMsg := middleware.ValidateOptionID(req.OptionID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Cast(c.Context(), pollID, optionID, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		case errors.Is(err, repository.ErrAlreadyVoted):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_VOTED", "You have already voted on this poll")
		case errors.Is(err, repository.ErrOptionMismatch):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Option does not belong to this poll")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
	}

	Metrics.VotesTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(resp)
}
