package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/repository"
)

// Actor identifies the caller on whose behalf a storage operation runs.
// The values arrive from identity headers and are recorded verbatim.
type Actor struct {
	UserID    string
	UserEmail string
	SchoolID  string
}

// SignedURLProvider issues time-limited access URLs for stored objects.
type SignedURLProvider interface {
	Exists(ctx context.Context, filePath string) (bool, error)
	SignedURL(ctx context.Context, filePath string, ttl time.Duration) (string, error)
}

// StorageService issues signed exam PDF URLs and serves the version history.
type StorageService interface {
	SignedURL(ctx context.Context, req dto.SignedURLRequest, actor Actor) (dto.SignedURLResponse, error)
	LogDownload(ctx context.Context, req dto.DownloadLogRequest, ipAddress string) bool
	FileVersions(ctx context.Context, examSubjectID string) ([]dto.FileVersionResponse, error)
}

type storageService struct {
	provider   SignedURLProvider
	versions   repository.ExamFileVersionRepository
	audit      AuditService
	defaultTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewStorageService constructs the storage service.
func NewStorageService(provider SignedURLProvider, versions repository.ExamFileVersionRepository, audit AuditService, defaultTTL time.Duration, logger zerolog.Logger) StorageService {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}

	return &storageService{
		provider:   provider,
		versions:   versions,
		audit:      audit,
		defaultTTL: defaultTTL,
		logger:     logger.With().Str("component", "storage_service").Logger(),
		now:        time.Now,
	}
}

// SignedURL obtains a time-limited URL for the file and records a view audit
// event. The audit write happens only after the URL has been issued, and a
// failed write never rolls the issuance back.
func (s *storageService) SignedURL(ctx context.Context, req dto.SignedURLRequest, actor Actor) (dto.SignedURLResponse, error) {
	ttl := s.defaultTTL
	if req.ExpirationSeconds > 0 {
		ttl = time.Duration(req.ExpirationSeconds) * time.Second
	}

	exists, err := s.provider.Exists(ctx, req.FilePath)
	if err != nil {
		return dto.SignedURLResponse{}, fmt.Errorf("failed to look up object: %w", err)
	}
	if !exists {
		return dto.SignedURLResponse{}, ErrObjectNotFound
	}

	signedURL, err := s.provider.SignedURL(ctx, req.FilePath, ttl)
	if err != nil {
		return dto.SignedURLResponse{}, fmt.Errorf("failed to generate signed url: %w", err)
	}

	expiresAt := s.now().UTC().Add(ttl)

	logged := s.audit.Log(ctx, AuditEntry{
		UserID:       actor.UserID,
		UserEmail:    actor.UserEmail,
		ActionType:   models.ActionView,
		ResourceType: models.ResourcePDF,
		ResourceName: req.FilePath,
		SchoolID:     actor.SchoolID,
		Details: map[string]interface{}{
			"file_path":          req.FilePath,
			"expiration_seconds": int(ttl / time.Second),
		},
	})
	if !logged {
		s.logger.Warn().Str("file_path", req.FilePath).Msg("signed url issued but view event was not recorded")
	}

	return dto.SignedURLResponse{SignedURL: signedURL, ExpiresAt: expiresAt}, nil
}

// LogDownload delegates to the audit logger's download shorthand.
func (s *storageService) LogDownload(ctx context.Context, req dto.DownloadLogRequest, ipAddress string) bool {
	return s.audit.LogPDFDownload(ctx, req.UserID, req.UserEmail, req.FilePath, req.ExamSubjectID, ipAddress, req.SchoolID)
}

func (s *storageService) FileVersions(ctx context.Context, examSubjectID string) ([]dto.FileVersionResponse, error) {
	entries, err := s.versions.ListByExamSubject(ctx, examSubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file versions: %w", err)
	}

	return dto.NewFileVersionResponseSlice(entries), nil
}
