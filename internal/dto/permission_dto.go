package dto

import "github.com/schooldesk/examvault-api/internal/models"

// PermissionCheckRequest asks whether a user may perform a named permission.
type PermissionCheckRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	PermissionName string `json:"permission_name" validate:"required"`
}

// PermissionCheckResponse carries the outcome of a permission check.
type PermissionCheckResponse struct {
	HasPermission bool   `json:"has_permission"`
	UserRole      string `json:"user_role"`
	Reason        string `json:"reason,omitempty"`
}

// PermissionDetail serializes one permission record.
type PermissionDetail struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
}

// NewPermissionDetail converts a model into a DTO.
func NewPermissionDetail(model models.Permission) PermissionDetail {
	return PermissionDetail{
		Name:         model.Name,
		Description:  model.Description,
		ResourceType: model.ResourceType,
		Action:       model.Action,
	}
}

// UserPermissionsResponse lists a user's role and its granted permissions.
type UserPermissionsResponse struct {
	Role        string             `json:"role"`
	Permissions []PermissionDetail `json:"permissions"`
}

// RolePermissionSummary is the short permission form used when enumerating roles.
type RolePermissionSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
