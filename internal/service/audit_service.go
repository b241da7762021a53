package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/observability"
	"github.com/schooldesk/examvault-api/internal/repository"
)

const auditEventSubject = "examvault.audit.events"

// AuditEntry captures the details required to persist one audit event.
type AuditEntry struct {
	UserID       string
	UserEmail    string
	ActionType   models.ActionType
	ResourceType models.ResourceType
	ResourceID   string
	ResourceName string
	Details      map[string]interface{}
	IPAddress    string
	UserAgent    string
	SchoolID     string
}

// AuditService is the single write path for audit events plus the filtered
// read and stats surface over them.
//
// Log reports failure as a boolean rather than an error so that audit
// logging never fails the operation it is attached to; callers that need
// strict visibility must check the result.
type AuditService interface {
	Log(ctx context.Context, entry AuditEntry) bool
	LogPDFView(ctx context.Context, userID, userEmail, pdfPath, examSubjectID, ipAddress, schoolID string) bool
	LogPDFDownload(ctx context.Context, userID, userEmail, pdfPath, examSubjectID, ipAddress, schoolID string) bool
	List(ctx context.Context, req dto.AuditLogListRequest) ([]dto.AuditLogResponse, error)
	Stats(ctx context.Context, schoolID string, days int) (dto.AuditStatsResponse, error)
}

type auditService struct {
	repo      repository.AuditLogRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	nats      *nats.Conn
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAuditService constructs the audit service. The Redis and NATS clients
// are optional; a nil client disables stats caching or event fan-out.
func NewAuditService(repo repository.AuditLogRepository, cache *redis.Client, cacheTTL time.Duration, natsConn *nats.Conn, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		nats:      natsConn,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "audit_service").Logger(),
		tracer:    otel.Tracer("github.com/schooldesk/examvault-api/internal/service/audit"),
		now:       time.Now,
	}
}

func (s *auditService) Log(ctx context.Context, entry AuditEntry) bool {
	action := strings.ToLower(strings.TrimSpace(entry.ActionType.String()))
	resource := strings.ToLower(strings.TrimSpace(entry.ResourceType.String()))
	if action == "" || resource == "" {
		s.logger.Error().Msg("audit entry missing action or resource type")
		return false
	}

	spanCtx, span := s.tracer.Start(ctx, "audit.log", trace.WithAttributes(
		attribute.String("audit.action_type", action),
		attribute.String("audit.resource_type", resource),
	))
	defer span.End()

	model := models.AuditLog{
		UserID:       entry.UserID,
		UserEmail:    entry.UserEmail,
		ActionType:   action,
		ResourceType: resource,
		ResourceID:   entry.ResourceID,
		ResourceName: s.sanitizer.Sanitize(entry.ResourceName),
		Details:      s.sanitizeDetails(entry.Details),
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		SchoolID:     entry.SchoolID,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(spanCtx, &model); err != nil {
		observability.AuditWriteFailures().Inc()
		s.logger.Error().Err(err).
			Str("action_type", action).
			Str("resource_type", resource).
			Msg("failed to persist audit log")
		return false
	}

	observability.AuditEvents().WithLabelValues(action, resource).Inc()
	s.publish(model)

	s.logger.Info().
		Str("action_type", action).
		Str("resource_type", resource).
		Msg("audit log created")

	return true
}

func (s *auditService) LogPDFView(ctx context.Context, userID, userEmail, pdfPath, examSubjectID, ipAddress, schoolID string) bool {
	return s.Log(ctx, AuditEntry{
		UserID:       userID,
		UserEmail:    userEmail,
		ActionType:   models.ActionView,
		ResourceType: models.ResourcePDF,
		ResourceID:   examSubjectID,
		ResourceName: pdfPath,
		Details:      map[string]interface{}{"file_path": pdfPath},
		IPAddress:    ipAddress,
		SchoolID:     schoolID,
	})
}

func (s *auditService) LogPDFDownload(ctx context.Context, userID, userEmail, pdfPath, examSubjectID, ipAddress, schoolID string) bool {
	return s.Log(ctx, AuditEntry{
		UserID:       userID,
		UserEmail:    userEmail,
		ActionType:   models.ActionDownload,
		ResourceType: models.ResourcePDF,
		ResourceID:   examSubjectID,
		ResourceName: pdfPath,
		Details:      map[string]interface{}{"file_path": pdfPath},
		IPAddress:    ipAddress,
		SchoolID:     schoolID,
	})
}

func (s *auditService) List(ctx context.Context, req dto.AuditLogListRequest) ([]dto.AuditLogResponse, error) {
	filter := repository.AuditLogFilter{
		SchoolID:     strings.TrimSpace(req.SchoolID),
		UserID:       strings.TrimSpace(req.UserID),
		ActionType:   strings.ToLower(strings.TrimSpace(req.ActionType)),
		ResourceType: strings.ToLower(strings.TrimSpace(req.ResourceType)),
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	start, err := parseFilterTime(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	filter.StartDate = start

	end, err := parseFilterTime(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	filter.EndDate = end

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewAuditLogResponseSlice(entries), nil
}

func (s *auditService) Stats(ctx context.Context, schoolID string, days int) (dto.AuditStatsResponse, error) {
	if days <= 0 {
		days = 30
	}

	cacheKey := fmt.Sprintf("audit:stats:%s:%d", schoolID, days)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.AuditStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("school_id", schoolID).Msg("audit stats cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read audit stats cache")
		}
	}

	since := s.now().UTC().AddDate(0, 0, -days)
	kinds, err := s.repo.ListKinds(ctx, schoolID, &since)
	if err != nil {
		return dto.AuditStatsResponse{}, err
	}

	response := dto.AuditStatsResponse{
		TotalLogs:  int64(len(kinds)),
		ByAction:   map[string]int64{},
		ByResource: map[string]int64{},
	}
	for _, kind := range kinds {
		action := kind.ActionType
		if action == "" {
			action = "unknown"
		}
		resource := kind.ResourceType
		if resource == "" {
			resource = "unknown"
		}
		response.ByAction[action]++
		response.ByResource[resource]++
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store audit stats cache")
			}
		}
	}

	return response, nil
}

// publish fans the persisted entry out to downstream consumers; delivery is
// best-effort and never affects the write result.
func (s *auditService) publish(model models.AuditLog) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(dto.NewAuditLogResponse(model))
	if err != nil {
		return
	}

	if err := s.nats.Publish(auditEventSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish audit event")
	}
}

func (s *auditService) sanitizeDetails(details map[string]interface{}) datatypes.JSONMap {
	if details == nil {
		return nil
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range details {
		if text, ok := value.(string); ok {
			sanitized[key] = s.sanitizer.Sanitize(text)
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func parseFilterTime(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("unsupported time value %q", trimmed)
}
