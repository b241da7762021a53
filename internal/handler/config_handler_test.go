package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/examvault-api/internal/dto"
	"github.com/schooldesk/examvault-api/internal/service"
)

type stubConfigService struct {
	getResult     interface{}
	lastSchoolID  string
	lastConfigKey string
	updateResult  dto.SystemConfigResponse
	lastUpdatedBy string
	deleted       []string
}

func (s *stubConfigService) Get(ctx context.Context, schoolID, configKey string) interface{} {
	s.lastSchoolID = schoolID
	s.lastConfigKey = configKey
	return s.getResult
}

func (s *stubConfigService) Update(ctx context.Context, req dto.SystemConfigUpdateRequest, updatedBy string) (dto.SystemConfigResponse, error) {
	s.lastUpdatedBy = updatedBy
	return s.updateResult, nil
}

func (s *stubConfigService) Delete(ctx context.Context, schoolID, configKey string) error {
	s.deleted = append(s.deleted, schoolID+"/"+configKey)
	return nil
}

func newConfigTestApp(svc service.ConfigService) *fiber.App {
	app := fiber.New()
	h := NewConfigHandler(svc, zerolog.Nop())
	h.Register(app.Group("/config"))
	return app
}

func TestConfigHandlerGet(t *testing.T) {
	svc := &stubConfigService{getResult: []dto.SystemConfigResponse{{SchoolID: "s1", ConfigKey: "grading"}}}
	app := newConfigTestApp(svc)

	req := httptest.NewRequest(fiber.MethodGet, "/config/school/s1?config_key=grading", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "s1", svc.lastSchoolID)
	require.Equal(t, "grading", svc.lastConfigKey)

	var envelope struct {
		Success bool                       `json:"success"`
		Data    []dto.SystemConfigResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Len(t, envelope.Data, 1)
}

func TestConfigHandlerUpdate(t *testing.T) {
	svc := &stubConfigService{updateResult: dto.SystemConfigResponse{SchoolID: "s1", ConfigKey: "grading"}}
	app := newConfigTestApp(svc)

	body := `{"school_id":"s1","config_key":"grading","config_value":{"scale":"letter"}}`
	req := httptest.NewRequest(fiber.MethodPost, "/config/update?user_id=u1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "u1", svc.lastUpdatedBy, "updated_by must come from the user_id query parameter")
}

func TestConfigHandlerUpdateFallsBackToIdentityHeader(t *testing.T) {
	svc := &stubConfigService{}
	app := newConfigTestApp(svc)

	body := `{"school_id":"s1","config_key":"grading","config_value":{}}`
	req := httptest.NewRequest(fiber.MethodPost, "/config/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("user_id", "header-user")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "header-user", svc.lastUpdatedBy)
}

func TestConfigHandlerDelete(t *testing.T) {
	svc := &stubConfigService{}
	app := newConfigTestApp(svc)

	req := httptest.NewRequest(fiber.MethodDelete, "/config/school/s1/grading", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"s1/grading"}, svc.deleted)
}
