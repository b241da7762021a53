package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/schooldesk/examvault-api/internal/models"
)

// AuditLogFilter narrows audit log queries. Absent fields impose no constraint;
// the date bounds are inclusive.
type AuditLogFilter struct {
	SchoolID     string
	UserID       string
	ActionType   string
	ResourceType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// AuditKinds carries only the action/resource columns, used for stats tallies.
type AuditKinds struct {
	ActionType   string
	ResourceType string
}

// AuditLogRepository persists and queries the audit trail.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error)
	ListKinds(ctx context.Context, schoolID string, since *time.Time) ([]AuditKinds, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("audit log insert affected no rows")
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entries []models.AuditLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditLogRepository) ListKinds(ctx context.Context, schoolID string, since *time.Time) ([]AuditKinds, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{}).Select("action_type", "resource_type")

	if schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var kinds []AuditKinds
	if err := query.Scan(&kinds).Error; err != nil {
		return nil, err
	}

	return kinds, nil
}
