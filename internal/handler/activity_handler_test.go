package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/handler"
	"github.com/noah-isme/aviation-erp-api/internal/models"
	"github.com/noah-isme/aviation-erp-api/internal/service"
)

type mockActivityService struct {
	lastRequest dto.ActivityListRequest
}

func (m *mockActivityService) Record(context.Context, activity.Action, string, string) (*models.ActivityLog, error) {
	return &models.ActivityLog{}, nil
}

func (m *mockActivityService) List(_ context.Context, principal service.Principal, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	if err := service.EnsureSuperuser(principal); err != nil {
		return dto.ActivityListResponse{}, err
	}
	m.lastRequest = req
	return dto.ActivityListResponse{Items: []dto.ActivityResponse{}, Pagination: dto.PaginationMeta{Page: 1, PageSize: 50}}, nil
}

type mockUndoService struct {
	undone map[uint]bool
}

func (m *mockUndoService) Undo(_ context.Context, principal service.Principal, id uint) (dto.UndoResponse, error) {
	if err := service.EnsureSuperuser(principal); err != nil {
		return dto.UndoResponse{}, err
	}
	if id > 100 {
		return dto.UndoResponse{}, service.ErrActivityNotFound
	}
	if m.undone[id] {
		return dto.UndoResponse{}, service.ErrAlreadyUndone
	}
	m.undone[id] = true
	return dto.UndoResponse{Status: "ok", Message: "Action undone", ActivityID: id, ActionType: "fee_recorded", UndoLogID: id + 1}, nil
}

func newActivityApp() *fiber.App {
	app, api := newApp()
	handler.NewActivityHandler(&mockActivityService{}, &mockUndoService{undone: map[uint]bool{}}, testLogger()).Register(api.Group("/activity"))
	return app
}

func TestUndoHandlerStatuses(t *testing.T) {
	app := newActivityApp()

	resp := doRequest(t, app, http.MethodPost, "/api/activity/7/undo", "superuser", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.UndoResponse
	decodeResponse(t, resp, &body)
	require.Equal(t, uint(7), body.ActivityID)
	require.Equal(t, uint(8), body.UndoLogID)

	resp = doRequest(t, app, http.MethodPost, "/api/activity/7/undo", "superuser", nil, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var detail map[string]string
	decodeResponse(t, resp, &detail)
	require.Equal(t, "Activity already undone", detail["detail"])

	resp = doRequest(t, app, http.MethodPost, "/api/activity/404/undo", "superuser", nil, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/activity/abc/undo", "superuser", nil, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/activity/9/undo", "AAI101", nil, "")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestActivityListParsesQuery(t *testing.T) {
	svc := &mockActivityService{}
	app, api := newApp()
	handler.NewActivityHandler(svc, &mockUndoService{}, testLogger()).Register(api.Group("/activity"))

	resp := doRequest(t, app, http.MethodGet, "/api/activity?page=2&page_size=10&action_type=fee_recorded&undone=false", "superuser", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 2, svc.lastRequest.Page)
	require.Equal(t, 10, svc.lastRequest.PageSize)
	require.Equal(t, "fee_recorded", svc.lastRequest.ActionType)
	require.Equal(t, "false", svc.lastRequest.Undone)
}
