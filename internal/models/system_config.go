package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemConfig stores one configuration value scoped to a school. Writes are
// upserts keyed on (school_id, config_key).
type SystemConfig struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SchoolID    string            `gorm:"size:64;not null;uniqueIndex:idx_school_config" json:"school_id"`
	ConfigKey   string            `gorm:"size:128;not null;uniqueIndex:idx_school_config" json:"config_key"`
	ConfigValue datatypes.JSONMap `gorm:"type:json" json:"config_value"`
	Description string            `gorm:"size:512" json:"description"`
	UpdatedBy   string            `gorm:"size:64" json:"updated_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName pins the configuration table.
func (SystemConfig) TableName() string { return "system_config" }
