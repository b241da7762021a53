package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schooldesk/examvault-api/internal/models"
)

// PermissionRepository reads the role/permission reference data. All tables
// involved are owned by an external schema and never written here.
type PermissionRepository interface {
	RoleByUserID(ctx context.Context, userID string) (string, error)
	PermissionByName(ctx context.Context, name string) (models.Permission, error)
	HasRolePermission(ctx context.Context, role string, permissionID uint) (bool, error)
	PermissionsForRole(ctx context.Context, role string) ([]models.Permission, error)
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository constructs the permission repository.
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) RoleByUserID(ctx context.Context, userID string) (string, error) {
	var profile models.TeacherProfile
	err := r.db.WithContext(ctx).
		Select("role").
		Where("id = ?", userID).
		First(&profile).Error
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

func (r *permissionRepository) PermissionByName(ctx context.Context, name string) (models.Permission, error) {
	var permission models.Permission
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&permission).Error
	return permission, err
}

func (r *permissionRepository) HasRolePermission(ctx context.Context, role string, permissionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RolePermission{}).
		Where("role = ? AND permission_id = ?", role, permissionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PermissionsForRole joins role_permissions to permissions so that links whose
// permission row is missing drop out of the result.
func (r *permissionRepository) PermissionsForRole(ctx context.Context, role string) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role = ?", role).
		Order("permissions.name ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
