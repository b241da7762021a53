package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/schooldesk/examvault-api/internal/models"
)

func TestExamFileVersionRepositoryListNewestFirst(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:file_versions?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ExamFileVersion{}))

	repo := NewExamFileVersionRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	versions := []models.ExamFileVersion{
		{ExamSubjectID: "math-101", FilePath: "math/v1.pdf", VersionNumber: 1, CreatedAt: now.Add(-time.Hour)},
		{ExamSubjectID: "math-101", FilePath: "math/v2.pdf", VersionNumber: 2, CreatedAt: now},
		{ExamSubjectID: "bio-201", FilePath: "bio/v1.pdf", VersionNumber: 1, CreatedAt: now},
	}
	for i := range versions {
		require.NoError(t, repo.Create(ctx, &versions[i]))
	}

	listed, err := repo.ListByExamSubject(ctx, "math-101")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, 2, listed[0].VersionNumber, "expected newest version first")

	empty, err := repo.ListByExamSubject(ctx, "absent")
	require.NoError(t, err)
	require.Empty(t, empty)
}
