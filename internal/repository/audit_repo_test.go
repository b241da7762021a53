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

func TestAuditLogRepositoryListFiltersAndOrders(t *testing.T) {
	db := setupAuditTestDB(t, "audit_list")
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	entries := []models.AuditLog{
		{UserID: "u1", ActionType: "view", ResourceType: "pdf", SchoolID: "s1", CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: "u2", ActionType: "download", ResourceType: "pdf", SchoolID: "s1", CreatedAt: now.Add(-1 * time.Hour)},
		{UserID: "u1", ActionType: "login", ResourceType: "settings", SchoolID: "s2", CreatedAt: now},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	all, err := repo.List(ctx, AuditLogFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "login", all[0].ActionType, "expected newest entry first")
	require.Equal(t, "view", all[2].ActionType)

	bySchool, err := repo.List(ctx, AuditLogFilter{SchoolID: "s1", Limit: 100})
	require.NoError(t, err)
	require.Len(t, bySchool, 2)

	byUser, err := repo.List(ctx, AuditLogFilter{UserID: "u2", Limit: 100})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	require.Equal(t, "download", byUser[0].ActionType)

	byAction, err := repo.List(ctx, AuditLogFilter{ActionType: "view", ResourceType: "pdf", Limit: 100})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
}

func TestAuditLogRepositoryDateBoundsAreInclusive(t *testing.T) {
	db := setupAuditTestDB(t, "audit_dates")
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	early := now.Add(-48 * time.Hour)
	mid := now.Add(-24 * time.Hour)
	for _, createdAt := range []time.Time{early, mid, now} {
		require.NoError(t, repo.Create(ctx, &models.AuditLog{
			ActionType:   "view",
			ResourceType: "pdf",
			CreatedAt:    createdAt,
		}))
	}

	window, err := repo.List(ctx, AuditLogFilter{StartDate: &early, EndDate: &mid, Limit: 100})
	require.NoError(t, err)
	require.Len(t, window, 2, "inclusive bounds must keep both boundary rows")

	after, err := repo.List(ctx, AuditLogFilter{StartDate: &now, Limit: 100})
	require.NoError(t, err)
	require.Len(t, after, 1)
}

func TestAuditLogRepositoryPagination(t *testing.T) {
	db := setupAuditTestDB(t, "audit_paging")
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.AuditLog{
			ActionType:   "create",
			ResourceType: "exam",
			CreatedAt:    now.Add(time.Duration(-i) * time.Minute),
		}))
	}

	first, err := repo.List(ctx, AuditLogFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.List(ctx, AuditLogFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotEqual(t, first[0].ID, second[0].ID)
}

func TestAuditLogRepositoryListKinds(t *testing.T) {
	db := setupAuditTestDB(t, "audit_kinds")
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rows := []models.AuditLog{
		{ActionType: "view", ResourceType: "pdf", SchoolID: "s1", CreatedAt: now},
		{ActionType: "view", ResourceType: "pdf", SchoolID: "s1", CreatedAt: now.Add(-time.Hour)},
		{ActionType: "delete", ResourceType: "student", SchoolID: "s1", CreatedAt: now.Add(-60 * 24 * time.Hour)},
		{ActionType: "login", ResourceType: "settings", SchoolID: "s2", CreatedAt: now},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	since := now.Add(-30 * 24 * time.Hour)
	kinds, err := repo.ListKinds(ctx, "s1", &since)
	require.NoError(t, err)
	require.Len(t, kinds, 2, "old rows and other schools must be excluded")
	for _, kind := range kinds {
		require.Equal(t, "view", kind.ActionType)
		require.Equal(t, "pdf", kind.ResourceType)
	}
}

func setupAuditTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}
