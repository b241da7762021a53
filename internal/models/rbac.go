package models

import "time"

// UserRole enumerates the roles recognised by the platform.
type UserRole string

const (
	RoleSuperAdmin UserRole = "super-admin"
	RoleAdmin      UserRole = "admin"
	RoleTeacher    UserRole = "teacher"
	RoleViewer     UserRole = "viewer"
)

// String returns the primitive role value.
func (r UserRole) String() string { return string(r) }

// AllRoles lists every role in a stable order, used when enumerating
// role permission sets.
func AllRoles() []UserRole {
	return []UserRole{RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleViewer}
}

// TeacherProfile holds the role assignment for a platform user. The profile
// table is owned by the account-provisioning schema; this service only reads it.
type TeacherProfile struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	SchoolID  string    `gorm:"size:64;index" json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the profile table.
func (TeacherProfile) TableName() string { return "teacher_profiles" }

// Permission is a named capability, read-only reference data.
type Permission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description  string `gorm:"size:512" json:"description"`
	ResourceType string `gorm:"size:32" json:"resource_type"`
	Action       string `gorm:"size:32" json:"action"`
}

// TableName pins the permissions table.
func (Permission) TableName() string { return "permissions" }

// RolePermission links a role to a permission it is granted.
type RolePermission struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Role         string `gorm:"size:32;not null;uniqueIndex:idx_role_permission" json:"role"`
	PermissionID uint   `gorm:"not null;uniqueIndex:idx_role_permission" json:"permission_id"`
}

// TableName pins the role-permission link table.
func (RolePermission) TableName() string { return "role_permissions" }
