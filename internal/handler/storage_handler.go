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

// StorageHandler wires the signed URL and file version HTTP routes.
type StorageHandler struct {
	service   service.StorageService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStorageHandler constructs the handler.
func NewStorageHandler(service service.StorageService, validate *validator.Validate, logger zerolog.Logger) *StorageHandler {
	return &StorageHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "storage_handler").Logger(),
	}
}

// Register attaches storage endpoints to the router group.
func (h *StorageHandler) Register(router fiber.Router) {
	router.Post("/signed-url", h.signedURL)
	router.Post("/log-download", h.logDownload)
	router.Get("/file-versions/:exam_subject_id", h.fileVersions)
}

func (h *StorageHandler) signedURL(c *fiber.Ctx) error {
	var payload dto.SignedURLRequest
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

	result, err := h.service.SignedURL(c.Context(), payload, actorFromRequest(c))
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "file not found")
		}
		h.logger.Error().Err(err).Str("file_path", payload.FilePath).Msg("failed to generate signed url")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "signed url generated", result)
}

func (h *StorageHandler) logDownload(c *fiber.Ctx) error {
	var payload dto.DownloadLogRequest
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

	if payload.SchoolID == "" {
		payload.SchoolID = localOrHeader(c, "school_id")
	}

	if !h.service.LogDownload(c.Context(), payload, c.IP()) {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log download")
	}

	return utils.SendSuccess(c, "download logged", nil)
}

func (h *StorageHandler) fileVersions(c *fiber.Ctx) error {
	versions, err := h.service.FileVersions(c.Context(), c.Params("exam_subject_id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list file versions")
		return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SendSuccess(c, "file versions retrieved", versions)
}
