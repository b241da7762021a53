package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/service"
	"github.com/schooldesk/examvault-api/internal/utils"
)

type stubStorageService struct {
	signedResult   dto.SignedURLResponse
	signedErr      error
	lastActor      service.Actor
	downloadResult bool
	lastDownload   dto.DownloadLogRequest
	versionsResult []dto.FileVersionResponse
}

func (s *stubStorageService) SignedURL(ctx context.Context, req dto.SignedURLRequest, actor service.Actor) (dto.SignedURLResponse, error) {
	s.lastActor = actor
	return s.signedResult, s.signedErr
}

func (s *stubStorageService) LogDownload(ctx context.Context, req dto.DownloadLogRequest, ipAddress string) bool {
	s.lastDownload = req
	return s.downloadResult
}

func (s *stubStorageService) FileVersions(ctx context.Context, examSubjectID string) ([]dto.FileVersionResponse, error) {
	return s.versionsResult, nil
}

func newStorageTestApp(svc service.StorageService) *fiber.App {
	app := fiber.New()
	h := NewStorageHandler(svc, validator.New(), zerolog.Nop())
	h.Register(app.Group("/storage"))
	return app
}

func TestStorageHandlerSignedURL(t *testing.T) {
	svc := &stubStorageService{signedResult: dto.SignedURLResponse{
		SignedURL: "https://cdn.example.com/exams/math.pdf?token=abc",
		ExpiresAt: time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC),
	}}
	app := newStorageTestApp(svc)

	req := httptest.NewRequest(fiber.MethodPost, "/storage/signed-url", strings.NewReader(`{"file_path":"exams/math.pdf"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("user_id", "u1")
	req.Header.Set("user_email", "t@example.com")
	req.Header.Set("school_id", "s1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "u1", svc.lastActor.UserID, "identity headers must reach the service")
	require.Equal(t, "t@example.com", svc.lastActor.UserEmail)
	require.Equal(t, "s1", svc.lastActor.SchoolID)

	var envelope struct {
		Success bool                  `json:"success"`
		Data    dto.SignedURLResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, svc.signedResult.SignedURL, envelope.Data.SignedURL)
}

func TestStorageHandlerSignedURLMissingFile(t *testing.T) {
	app := newStorageTestApp(&stubStorageService{signedErr: service.ErrObjectNotFound})

	req := httptest.NewRequest(fiber.MethodPost, "/storage/signed-url", strings.NewReader(`{"file_path":"gone.pdf"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "file not found", envelope.Error)
}

func TestStorageHandlerSignedURLValidation(t *testing.T) {
	app := newStorageTestApp(&stubStorageService{})

	req := httptest.NewRequest(fiber.MethodPost, "/storage/signed-url", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStorageHandlerLogDownload(t *testing.T) {
	svc := &stubStorageService{downloadResult: true}
	app := newStorageTestApp(svc)

	body := `{"file_path":"exams/math.pdf","exam_subject_id":"math-101","user_id":"u1","user_email":"t@example.com"}`
	req := httptest.NewRequest(fiber.MethodPost, "/storage/log-download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("school_id", "s1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "s1", svc.lastDownload.SchoolID, "school must be filled from the identity header")
}

func TestStorageHandlerLogDownloadFailure(t *testing.T) {
	app := newStorageTestApp(&stubStorageService{downloadResult: false})

	body := `{"file_path":"exams/math.pdf","exam_subject_id":"math-101","user_id":"u1","user_email":"t@example.com"}`
	req := httptest.NewRequest(fiber.MethodPost, "/storage/log-download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "failed to log download", envelope.Error)
}

func TestStorageHandlerFileVersions(t *testing.T) {
	svc := &stubStorageService{versionsResult: []dto.FileVersionResponse{
		{ID: 2, ExamSubjectID: "math-101", VersionNumber: 2},
		{ID: 1, ExamSubjectID: "math-101", VersionNumber: 1},
	}}
	app := newStorageTestApp(svc)

	req := httptest.NewRequest(fiber.MethodGet, "/storage/file-versions/math-101", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                      `json:"success"`
		Data    []dto.FileVersionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 2)
	require.Equal(t, 2, envelope.Data[0].VersionNumber)
}
