package dto

import (
	"time"

	"github.com/schooldesk/examvault-api/internal/models"
)

// SignedURLRequest asks for a time-limited access URL for an exam PDF.
type SignedURLRequest struct {
	FilePath          string `json:"file_path" validate:"required"`
	ExpirationSeconds int    `json:"expiration_seconds" validate:"omitempty,gt=0"`
}

// SignedURLResponse carries the issued URL and its computed expiry.
type SignedURLResponse struct {
	SignedURL string    `json:"signed_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadLogRequest records a completed PDF download.
type DownloadLogRequest struct {
	FilePath      string `json:"file_path" validate:"required"`
	ExamSubjectID string `json:"exam_subject_id" validate:"required"`
	UserID        string `json:"user_id" validate:"required"`
	UserEmail     string `json:"user_email" validate:"required,email"`
	SchoolID      string `json:"school_id"`
}

// FileVersionResponse serializes one exam PDF revision.
type FileVersionResponse struct {
	ID            uint      `json:"id"`
	ExamSubjectID string    `json:"exam_subject_id"`
	FilePath      string    `json:"file_path"`
	FileName      string    `json:"file_name"`
	VersionNumber int       `json:"version_number"`
	UploadNotes   string    `json:"upload_notes"`
	UploadedBy    string    `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewFileVersionResponse converts a model into a DTO.
func NewFileVersionResponse(model models.ExamFileVersion) FileVersionResponse {
	return FileVersionResponse{
		ID:            model.ID,
		ExamSubjectID: model.ExamSubjectID,
		FilePath:      model.FilePath,
		FileName:      model.FileName,
		VersionNumber: model.VersionNumber,
		UploadNotes:   model.UploadNotes,
		UploadedBy:    model.UploadedBy,
		CreatedAt:     model.CreatedAt,
	}
}

// NewFileVersionResponseSlice converts a slice of models into DTOs.
func NewFileVersionResponseSlice(entries []models.ExamFileVersion) []FileVersionResponse {
	responses := make([]FileVersionResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewFileVersionResponse(entry))
	}
	return responses
}
