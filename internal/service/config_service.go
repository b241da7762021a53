package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/repository"
)

// ConfigService manages per-school configuration rows.
//
// Reads deliberately degrade to an empty payload instead of an error: a
// school with no configuration yet is the common case, not a failure.
type ConfigService interface {
	Get(ctx context.Context, schoolID, configKey string) interface{}
	Update(ctx context.Context, req dto.SystemConfigUpdateRequest, updatedBy string) (dto.SystemConfigResponse, error)
	Delete(ctx context.Context, schoolID, configKey string) error
}

type configService struct {
	repo      repository.SystemConfigRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewConfigService constructs the configuration service.
func NewConfigService(repo repository.SystemConfigRepository, validate *validator.Validate, logger zerolog.Logger) ConfigService {
	return &configService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "config_service").Logger(),
	}
}

// Get returns all rows for the school when configKey is empty, or the single
// matching row otherwise. Any retrieval problem, including "no row found",
// yields an empty object or list.
func (s *configService) Get(ctx context.Context, schoolID, configKey string) interface{} {
	if configKey == "" {
		entries, err := s.repo.ListBySchool(ctx, schoolID)
		if err != nil {
			s.logger.Warn().Err(err).Str("school_id", schoolID).Msg("failed to list school config")
			return []dto.SystemConfigResponse{}
		}
		return dto.NewSystemConfigResponseSlice(entries)
	}

	entry, err := s.repo.Get(ctx, schoolID, configKey)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("school_id", schoolID).
			Str("config_key", configKey).
			Msg("failed to read school config")
		return map[string]interface{}{}
	}

	return dto.NewSystemConfigResponse(entry)
}

func (s *configService) Update(ctx context.Context, req dto.SystemConfigUpdateRequest, updatedBy string) (dto.SystemConfigResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SystemConfigResponse{}, err
	}

	entry := models.SystemConfig{
		SchoolID:    req.SchoolID,
		ConfigKey:   req.ConfigKey,
		ConfigValue: datatypes.JSONMap(req.ConfigValue),
		Description: req.Description,
		UpdatedBy:   updatedBy,
	}

	if err := s.repo.Upsert(ctx, &entry); err != nil {
		return dto.SystemConfigResponse{}, fmt.Errorf("failed to upsert config: %w", err)
	}

	return dto.NewSystemConfigResponse(entry), nil
}

// Delete removes the key; deleting an absent key still succeeds.
func (s *configService) Delete(ctx context.Context, schoolID, configKey string) error {
	if err := s.repo.Delete(ctx, schoolID, configKey); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}
	return nil
}
