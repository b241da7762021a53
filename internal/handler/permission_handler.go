package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/service"
	"github.com/schooldesk/examvault-api/internal/utils"
)

// PermissionHandler wires the permission resolution HTTP routes.
type PermissionHandler struct {
	service   service.PermissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPermissionHandler constructs the handler.
func NewPermissionHandler(service service.PermissionService, validate *validator.Validate, logger zerolog.Logger) *PermissionHandler {
	return &PermissionHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "permission_handler").Logger(),
	}
}

// Register attaches permission endpoints to the router group.
func (h *PermissionHandler) Register(router fiber.Router) {
	router.Post("/check", h.check)
	router.Get("/user/:user_id", h.userPermissions)
	router.Get("/roles", h.roles)
}

func (h *PermissionHandler) check(c *fiber.Ctx) error {
	var payload dto.PermissionCheckRequest
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

	result, err := h.service.Check(c.Context(), payload.UserID, payload.PermissionName)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "permission checked", result)
}

func (h *PermissionHandler) userPermissions(c *fiber.Ctx) error {
	result, err := h.service.PermissionsForUser(c.Context(), c.Params("user_id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "user permissions retrieved", result)
}

func (h *PermissionHandler) roles(c *fiber.Ctx) error {
	result, err := h.service.PermissionsForAllRoles(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "roles retrieved", result)
}

func (h *PermissionHandler) handleError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrUserNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}

	h.logger.Error().Err(err).Msg("permission lookup failed")
	return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
}
