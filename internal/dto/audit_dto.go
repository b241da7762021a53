package dto

import (
	"time"

	"github.com/schooldesk/examvault-api/internal/models"
)

// AuditLogCreateRequest describes the payload for recording an audit event.
type AuditLogCreateRequest struct {
	UserID       string                 `json:"user_id"`
	UserEmail    string                 `json:"user_email" validate:"omitempty,email"`
	ActionType   string                 `json:"action_type" validate:"required,oneof=login logout upload view download delete create update export"`
	ResourceType string                 `json:"resource_type" validate:"required,oneof=pdf student exam score teacher report settings"`
	ResourceID   string                 `json:"resource_id"`
	ResourceName string                 `json:"resource_name"`
	Details      map[string]interface{} `json:"details"`
	IPAddress    string                 `json:"ip_address"`
	UserAgent    string                 `json:"user_agent"`
	SchoolID     string                 `json:"school_id"`
}

// AuditLogListRequest captures the supported audit log query filters.
type AuditLogListRequest struct {
	SchoolID     string
	UserID       string
	ActionType   string
	ResourceType string
	StartDate    string
	EndDate      string
	Limit        int
	Offset       int
}

// AuditLogResponse is the serialized representation of one audit entry.
type AuditLogResponse struct {
	ID           uint                   `json:"id"`
	UserID       string                 `json:"user_id"`
	UserEmail    string                 `json:"user_email"`
	ActionType   string                 `json:"action_type"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id"`
	ResourceName string                 `json:"resource_name"`
	Details      map[string]interface{} `json:"details"`
	IPAddress    string                 `json:"ip_address"`
	UserAgent    string                 `json:"user_agent"`
	SchoolID     string                 `json:"school_id"`
	CreatedAt    time.Time              `json:"created_at"`
}

// NewAuditLogResponse converts a model into a DTO.
func NewAuditLogResponse(model models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           model.ID,
		UserID:       model.UserID,
		UserEmail:    model.UserEmail,
		ActionType:   model.ActionType,
		ResourceType: model.ResourceType,
		ResourceID:   model.ResourceID,
		ResourceName: model.ResourceName,
		Details:      model.Details,
		IPAddress:    model.IPAddress,
		UserAgent:    model.UserAgent,
		SchoolID:     model.SchoolID,
		CreatedAt:    model.CreatedAt,
	}
}

// NewAuditLogResponseSlice converts a slice of models into DTOs.
func NewAuditLogResponseSlice(entries []models.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewAuditLogResponse(entry))
	}
	return responses
}

// AuditStatsResponse summarises audit activity per action and resource kind.
type AuditStatsResponse struct {
	TotalLogs  int64            `json:"total_logs"`
	ByAction   map[string]int64 `json:"by_action"`
	ByResource map[string]int64 `json:"by_resource"`
}
