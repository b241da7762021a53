package dto

import (
	"time"

	"github.com/schooldesk/examvault-api/internal/models"
)

// SystemConfigUpdateRequest describes the upsert payload for a configuration key.
type SystemConfigUpdateRequest struct {
	SchoolID    string                 `json:"school_id" validate:"required"`
	ConfigKey   string                 `json:"config_key" validate:"required"`
	ConfigValue map[string]interface{} `json:"config_value" validate:"required"`
	Description string                 `json:"description"`
}

// SystemConfigResponse is the serialized representation of one configuration row.
type SystemConfigResponse struct {
	ID          uint                   `json:"id"`
	SchoolID    string                 `json:"school_id"`
	ConfigKey   string                 `json:"config_key"`
	ConfigValue map[string]interface{} `json:"config_value"`
	Description string                 `json:"description"`
	UpdatedBy   string                 `json:"updated_by"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewSystemConfigResponse converts a model into a DTO.
func NewSystemConfigResponse(model models.SystemConfig) SystemConfigResponse {
	return SystemConfigResponse{
		ID:          model.ID,
		SchoolID:    model.SchoolID,
		ConfigKey:   model.ConfigKey,
		ConfigValue: model.ConfigValue,
		Description: model.Description,
		UpdatedBy:   model.UpdatedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewSystemConfigResponseSlice converts a slice of models into DTOs.
func NewSystemConfigResponseSlice(entries []models.SystemConfig) []SystemConfigResponse {
	responses := make([]SystemConfigResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewSystemConfigResponse(entry))
	}
	return responses
}
