package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/middleware"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/service"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type stubAuthenticator struct{}

// Authenticate treats the bearer token as the user id.
func (stubAuthenticator) Authenticate(_ context.Context, header string) (service.Principal, error) {
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return service.Principal{}, apperror.Unauthorized("")
	}
	return service.NewPrincipal(token, token), nil
}

// newApp builds an app whose /api group authenticates "Bearer <user id>".
func newApp() (*fiber.App, fiber.Router) {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(testLogger())})
	api := app.Group("/api", middleware.SessionAuth(stubAuthenticator{}))
	return app, api
}

func doRequest(t *testing.T, app *fiber.App, method, path, user string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

type mockAttendanceService struct {
	upload  *service.Upload
	request dto.RecordAttendanceRequest
}

func (m *mockAttendanceService) Recent(context.Context, service.Principal) ([]dto.AttendanceItem, error) {
	return []dto.AttendanceItem{{StudentID: "AAI1", Date: "2024-01-01", AttendanceStatus: models.AttendancePresent}}, nil
}

func (m *mockAttendanceService) ByDate(_ context.Context, _ service.Principal, date string) ([]dto.AttendanceItem, error) {
	if date == "" {
		return nil, apperror.BadRequest("date is required")
	}
	return []dto.AttendanceItem{}, nil
}

func (m *mockAttendanceService) Record(_ context.Context, _ service.Principal, req dto.RecordAttendanceRequest) (service.RecordedAttendance, error) {
	m.request = req
	return service.RecordedAttendance{Count: len(req.Records), Inserted: []string{"AAI1"}}, nil
}

func (m *mockAttendanceService) SyncUpload(_ context.Context, _ service.Principal, upload service.Upload) (dto.AttendanceSyncResponse, error) {
	m.upload = &upload
	inserted, skipped := 2, 0
	return dto.AttendanceSyncResponse{Status: "ok", SourceKey: "attendance-sources/1_" + upload.Filename, Inserted: &inserted, Skipped: &skipped}, nil
}
