package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActionType enumerates the auditable user actions.
type ActionType string

const (
	ActionLogin    ActionType = "login"
	ActionLogout   ActionType = "logout"
	ActionUpload   ActionType = "upload"
	ActionView     ActionType = "view"
	ActionDownload ActionType = "download"
	ActionDelete   ActionType = "delete"
	ActionCreate   ActionType = "create"
	ActionUpdate   ActionType = "update"
	ActionExport   ActionType = "export"
)

// ResourceType enumerates the resource kinds an audit entry can reference.
type ResourceType string

const (
	ResourcePDF      ResourceType = "pdf"
	ResourceStudent  ResourceType = "student"
	ResourceExam     ResourceType = "exam"
	ResourceScore    ResourceType = "score"
	ResourceTeacher  ResourceType = "teacher"
	ResourceReport   ResourceType = "report"
	ResourceSettings ResourceType = "settings"
)

// String returns the primitive form persisted to the audit table.
func (a ActionType) String() string { return string(a) }

// String returns the primitive form persisted to the audit table.
func (r ResourceType) String() string { return string(r) }

// AuditLog records one user action against a resource. Rows are written once
// and never updated or deleted by this service.
type AuditLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       string            `gorm:"size:64;index" json:"user_id"`
	UserEmail    string            `gorm:"size:255" json:"user_email"`
	ActionType   string            `gorm:"size:32;not null;index" json:"action_type"`
	ResourceType string            `gorm:"size:32;not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"size:64" json:"resource_id"`
	ResourceName string            `gorm:"size:512" json:"resource_name"`
	Details      datatypes.JSONMap `gorm:"type:json" json:"details"`
	IPAddress    string            `gorm:"size:45" json:"ip_address"`
	UserAgent    string            `gorm:"size:255" json:"user_agent"`
	SchoolID     string            `gorm:"size:64;index" json:"school_id"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}

// TableName pins the audit trail table.
func (AuditLog) TableName() string { return "audit_logs" }
