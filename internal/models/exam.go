package models

import "time"

// ExamFileVersion tracks one uploaded revision of an exam subject PDF.
type ExamFileVersion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ExamSubjectID string    `gorm:"size:64;not null;index" json:"exam_subject_id"`
	FilePath      string    `gorm:"size:512;not null" json:"file_path"`
	FileName      string    `gorm:"size:255" json:"file_name"`
	VersionNumber int       `gorm:"not null" json:"version_number"`
	UploadNotes   string    `gorm:"size:1024" json:"upload_notes"`
	UploadedBy    string    `gorm:"size:64" json:"uploaded_by"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the version history table.
func (ExamFileVersion) TableName() string { return "exam_file_versions" }
