package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/schooldesk/examvault-api/internal/models"
)

// SystemConfigRepository stores per-school configuration rows.
type SystemConfigRepository interface {
	ListBySchool(ctx context.Context, schoolID string) ([]models.SystemConfig, error)
	Get(ctx context.Context, schoolID, configKey string) (models.SystemConfig, error)
	Upsert(ctx context.Context, entry *models.SystemConfig) error
	Delete(ctx context.Context, schoolID, configKey string) error
}

type systemConfigRepository struct {
	db *gorm.DB
}

// NewSystemConfigRepository constructs the configuration repository.
func NewSystemConfigRepository(db *gorm.DB) SystemConfigRepository {
	return &systemConfigRepository{db: db}
}

func (r *systemConfigRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.SystemConfig, error) {
	var entries []models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("config_key ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *systemConfigRepository) Get(ctx context.Context, schoolID, configKey string) (models.SystemConfig, error) {
	var entry models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND config_key = ?", schoolID, configKey).
		First(&entry).Error
	return entry, err
}

// Upsert inserts or replaces the row identified by (school_id, config_key).
func (r *systemConfigRepository) Upsert(ctx context.Context, entry *models.SystemConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "school_id"}, {Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"config_value", "description", "updated_by", "updated_at",
		}),
	}).Create(entry).Error
}

// Delete removes the row by composite key. Deleting an absent key is not an error.
func (r *systemConfigRepository) Delete(ctx context.Context, schoolID, configKey string) error {
	return r.db.WithContext(ctx).
		Where("school_id = ? AND config_key = ?", schoolID, configKey).
		Delete(&models.SystemConfig{}).Error
}
