package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schooldesk/examvault-api/internal/models"
)

// ExamFileVersionRepository reads the exam PDF version history.
type ExamFileVersionRepository interface {
	Create(ctx context.Context, entry *models.ExamFileVersion) error
	ListByExamSubject(ctx context.Context, examSubjectID string) ([]models.ExamFileVersion, error)
}

type examFileVersionRepository struct {
	db *gorm.DB
}

// NewExamFileVersionRepository constructs the version history repository.
func NewExamFileVersionRepository(db *gorm.DB) ExamFileVersionRepository {
	return &examFileVersionRepository{db: db}
}

func (r *examFileVersionRepository) Create(ctx context.Context, entry *models.ExamFileVersion) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *examFileVersionRepository) ListByExamSubject(ctx context.Context, examSubjectID string) ([]models.ExamFileVersion, error) {
	var entries []models.ExamFileVersion
	err := r.db.WithContext(ctx).
		Where("exam_subject_id = ?", examSubjectID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
