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

// ConfigHandler wires the per-school configuration HTTP routes.
type ConfigHandler struct {
	service service.ConfigService
	logger  zerolog.Logger
}

// NewConfigHandler constructs the handler.
func NewConfigHandler(service service.ConfigService, logger zerolog.Logger) *ConfigHandler {
	return &ConfigHandler{
		service: service,
		logger:  logger.With().Str("component", "config_handler").Logger(),
	}
}

// Register attaches configuration endpoints to the router group.
func (h *ConfigHandler) Register(router fiber.Router) {
	router.Get("/school/:school_id", h.get)
	router.Post("/update", h.update)
	router.Delete("/school/:school_id/:config_key", h.delete)
}

func (h *ConfigHandler) get(c *fiber.Ctx) error {
	data := h.service.Get(c.Context(), c.Params("school_id"), c.Query("config_key"))
	return utils.SendSuccess(c, "configuration retrieved", data)
}

func (h *ConfigHandler) update(c *fiber.Ctx) error {
	var payload dto.SystemConfigUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updatedBy := c.Query("user_id")
	if updatedBy == "" {
		updatedBy = localOrHeader(c, "user_id")
	}

	entry, err := h.service.Update(c.Context(), payload, updatedBy)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		}
		h.logger.Error().Err(err).Msg("failed to update school config")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "configuration updated", entry)
}

func (h *ConfigHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("school_id"), c.Params("config_key")); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete school config")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "configuration deleted", nil)
}
