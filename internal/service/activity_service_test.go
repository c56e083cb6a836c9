package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/dto"
)

func TestActivityListFiltersAndFlagsUndoable(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	_, err := f.announcements.Create(ctx, superuser, dto.AnnouncementRequest{Title: "One"})
	require.NoError(t, err)
	_, err = f.attendance.SyncUpload(ctx, superuser, Upload{Filename: "notes.txt", Data: []byte("hello")})
	require.NoError(t, err)
	_, err = f.fee.Record(ctx, superuser, dto.RecordFeeRequest{StudentID: "AAI1", AmountPaid: 100}, nil)
	require.NoError(t, err)
	feeEntry := f.lastActivity(t)
	_, err = f.undo.Undo(ctx, superuser, feeEntry)
	require.NoError(t, err)

	list, err := f.activity.List(ctx, superuser, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 3, list.Pagination.TotalItems)
	require.Equal(t, 50, list.Pagination.PageSize)
	require.Equal(t, string(activity.TypeUndo), list.Items[0].ActionType)
	require.False(t, list.Items[0].Undoable)

	undone, err := f.activity.List(ctx, superuser, dto.ActivityListRequest{Undone: "true"})
	require.NoError(t, err)
	require.Len(t, undone.Items, 1)
	require.Equal(t, string(activity.TypeFeeRecorded), undone.Items[0].ActionType)

	announcements, err := f.activity.List(ctx, superuser, dto.ActivityListRequest{ActionType: string(activity.TypeAnnouncementCreated), PageSize: 1})
	require.NoError(t, err)
	require.Len(t, announcements.Items, 1)
	require.True(t, announcements.Items[0].Undoable)
	require.Equal(t, 1, announcements.Pagination.TotalPages)

	_, err = f.activity.List(ctx, superuser, dto.ActivityListRequest{Undone: "maybe"})
	require.Equal(t, 400, statusOf(err))

	_, err = f.activity.List(ctx, NewPrincipal("AAI1", "tok"), dto.ActivityListRequest{})
	require.Equal(t, 403, statusOf(err))
}
