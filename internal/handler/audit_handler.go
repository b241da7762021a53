package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/service"
	"github.com/schooldesk/examvault-api/internal/utils"
)

// AuditHandler wires the audit log HTTP routes.
type AuditHandler struct {
	service   service.AuditService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service service.AuditService, validate *validator.Validate, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register attaches audit endpoints to the router group. The optional
// writeLimiter throttles the log-creation route.
func (h *AuditHandler) Register(router fiber.Router, writeLimiter fiber.Handler) {
	if writeLimiter != nil {
		router.Post("/log", writeLimiter, h.create)
	} else {
		router.Post("/log", h.create)
	}
	router.Get("/logs", h.list)
	router.Get("/stats", h.stats)
}

func (h *AuditHandler) create(c *fiber.Ctx) error {
	var payload dto.AuditLogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		}
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	ipAddress := payload.IPAddress
	if ipAddress == "" {
		ipAddress = c.IP()
	}

	userAgent := payload.UserAgent
	if userAgent == "" {
		userAgent = c.Get("User-Agent")
	}

	logged := h.service.Log(c.Context(), service.AuditEntry{
		UserID:       payload.UserID,
		UserEmail:    payload.UserEmail,
		ActionType:   models.ActionType(payload.ActionType),
		ResourceType: models.ResourceType(payload.ResourceType),
		ResourceID:   payload.ResourceID,
		ResourceName: payload.ResourceName,
		Details:      payload.Details,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		SchoolID:     payload.SchoolID,
	})
	if !logged {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create audit log")
	}

	return utils.SendSuccess(c, "audit log created", nil)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 100)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	req := dto.AuditLogListRequest{
		SchoolID:     c.Query("school_id"),
		UserID:       c.Query("user_id"),
		ActionType:   c.Query("action_type"),
		ResourceType: c.Query("resource_type"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		Limit:        limit,
		Offset:       offset,
	}

	logs, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit logs")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "audit logs retrieved", logs)
}

func (h *AuditHandler) stats(c *fiber.Ctx) error {
	days, err := parseQueryInt(c, "days", 30)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid days")
	}

	stats, err := h.service.Stats(c.Context(), c.Query("school_id"), days)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute audit stats")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "audit statistics retrieved", stats)
}
