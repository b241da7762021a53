package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/repository"
)

// PermissionService resolves role membership for named permissions. It holds
// no state of its own; reference data is re-read on every call.
type PermissionService interface {
	Check(ctx context.Context, userID, permissionName string) (dto.PermissionCheckResponse, error)
	PermissionsForUser(ctx context.Context, userID string) (dto.UserPermissionsResponse, error)
	PermissionsForAllRoles(ctx context.Context) (map[string][]dto.RolePermissionSummary, error)
}

type permissionService struct {
	repo   repository.PermissionRepository
	logger zerolog.Logger
}

// NewPermissionService constructs the permission resolution service.
func NewPermissionService(repo repository.PermissionRepository, logger zerolog.Logger) PermissionService {
	return &permissionService{
		repo:   repo,
		logger: logger.With().Str("component", "permission_service").Logger(),
	}
}

func (s *permissionService) Check(ctx context.Context, userID, permissionName string) (dto.PermissionCheckResponse, error) {
	role, err := s.repo.RoleByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PermissionCheckResponse{}, ErrUserNotFound
		}
		return dto.PermissionCheckResponse{}, fmt.Errorf("failed to resolve user role: %w", err)
	}

	permission, err := s.repo.PermissionByName(ctx, permissionName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PermissionCheckResponse{
				HasPermission: false,
				UserRole:      role,
				Reason:        "Permission not found",
			}, nil
		}
		return dto.PermissionCheckResponse{}, fmt.Errorf("failed to resolve permission: %w", err)
	}

	granted, err := s.repo.HasRolePermission(ctx, role, permission.ID)
	if err != nil {
		return dto.PermissionCheckResponse{}, fmt.Errorf("failed to check role permission: %w", err)
	}

	return dto.PermissionCheckResponse{HasPermission: granted, UserRole: role}, nil
}

func (s *permissionService) PermissionsForUser(ctx context.Context, userID string) (dto.UserPermissionsResponse, error) {
	role, err := s.repo.RoleByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserPermissionsResponse{}, ErrUserNotFound
		}
		return dto.UserPermissionsResponse{}, fmt.Errorf("failed to resolve user role: %w", err)
	}

	permissions, err := s.repo.PermissionsForRole(ctx, role)
	if err != nil {
		return dto.UserPermissionsResponse{}, fmt.Errorf("failed to list role permissions: %w", err)
	}

	details := make([]dto.PermissionDetail, 0, len(permissions))
	for _, permission := range permissions {
		details = append(details, dto.NewPermissionDetail(permission))
	}

	return dto.UserPermissionsResponse{Role: role, Permissions: details}, nil
}

func (s *permissionService) PermissionsForAllRoles(ctx context.Context) (map[string][]dto.RolePermissionSummary, error) {
	result := make(map[string][]dto.RolePermissionSummary, len(models.AllRoles()))

	for _, role := range models.AllRoles() {
		permissions, err := s.repo.PermissionsForRole(ctx, role.String())
		if err != nil {
			return nil, fmt.Errorf("failed to list permissions for role %s: %w", role, err)
		}

		summaries := make([]dto.RolePermissionSummary, 0, len(permissions))
		for _, permission := range permissions {
			summaries = append(summaries, dto.RolePermissionSummary{
				Name:        permission.Name,
				Description: permission.Description,
			})
		}
		result[role.String()] = summaries
	}

	return result, nil
}
