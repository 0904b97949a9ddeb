package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/middleware"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/model"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/repository"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/service"
	"github.com/Mohamed-Rabiaa/alx-polly/pkg/authz"
)

type PollHandler struct {
	svc   *service.PollService
	cache *service.CacheService
}

func NewPollHandler(svc *service.PollService, cache *service.CacheService) *PollHandler {
	return &PollHandler{svc: svc, cache: cache}
}

// List handles GET /api/polls
func (h *PollHandler) List(c fiber.Ctx) error {
	polls, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list polls")
	}
	if polls == nil {
		polls = []model.Poll{}
	}

	uid := middleware.UserID(c)
	for i := range polls {
		polls[i].Editable = authz.IsOwner(uid, polls[i].CreatorID)
	}
	return c.JSON(polls)
}

// Get handles GET /api/polls/:pollId
func (h *PollHandler) Get(c fiber.Ctx) error {
	pollID, errMsg := middleware.ValidatePollID(c.Params("pollId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	// Cache-aside: single-poll reads are the hot path. The shared cache
	// holds the anonymous rendering only; authenticated requests skip it
	// so the editable flag is derived fresh for the viewer.
	uid := middleware.UserID(c)
	if h.cache != nil && uid == "" {
		if data, err := h.cache.GetPoll(c.Context(), pollID); err == nil && data != nil {
			Metrics.CacheHits.Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(data)
		}
		Metrics.CacheMisses.Inc()
	}

	detail, err := h.svc.Get(c.Context(), pollID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Poll not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch poll")
	}
	detail.Poll.Editable = authz.IsOwner(uid, detail.Poll.CreatorID)

	if h.cache != nil && uid == "" {
		if err := h.cache.SetPoll(c.Context(), pollID, detail); err != nil {
			middleware.Logger.Warn().Err(err).Str("poll_id", pollID).Msg("cache: set poll failed")
		}
	}

	return c.JSON(detail)
}

// Create handles POST /api/polls
func (h *PollHandler) Create(c fiber.Ctx) error {
	var req model.CreatePollRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	desc, errMsg := middleware.ValidateDescription(req.Description)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if errMsg := middleware.ValidateOptionTexts(req.Options); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	detail, err := h.svc.Create(c.Context(), middleware.UserID(c), title, desc, req.Options)
	if err != nil {
		if code, msg, ok := validationError(err); ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, code, msg)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create poll")
	}

	Metrics.PollsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// Update handles PUT /api/polls/:pollId
func (h *PollHandler) Update(c fiber.Ctx) error {
	pollID, errMsg := middleware.ValidatePollID(c.Params("pollId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.UpdatePollRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	desc, errMsg := middleware.ValidateDescription(req.Description)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if errMsg := middleware.ValidateOptionTexts(req.Options); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	detail, err := h.svc.Edit(c.Context(), middleware.UserID(c), pollID, title, desc, req.Options)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only the poll creator can edit it")
		case errors.Is(err, repository.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Poll not found")
		}
		if code, msg, ok := validationError(err); ok {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, code, msg)
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update poll")
	}

	return c.JSON(detail)
}

// Delete handles DELETE /api/polls/:pollId
func (h *PollHandler) Delete(c fiber.Ctx) error {
	pollID, errMsg := middleware.ValidatePollID(c.Params("pollId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	err := h.svc.Delete(c.Context(), middleware.UserID(c), pollID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only the poll creator can delete it")
		case errors.Is(err, repository.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Poll not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete poll")
	}

	return c.JSON(fiber.Map{"success": true})
}

// validationError maps service validation sentinels to API error codes.
func validationError(err error) (code, message string, ok bool) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return "MISSING_FIELDS", "title is required", true
	case errors.Is(err, service.ErrTooFewOptions):
		return "INVALID_FIELD", "poll needs at least two non-blank options", true
	case errors.Is(err, service.ErrDuplicateOption):
		return "INVALID_FIELD", "option texts must be unique", true
	}
	return "", "", false
}
