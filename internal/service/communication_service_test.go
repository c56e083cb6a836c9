package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/dto"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAnnouncementsAreCachedAndInvalidated(t *testing.T) {
	mr, client := newTestRedis(t)
	f := newFixture(t, fixtureOptions{cache: client})
	ctx := context.Background()

	_, err := f.announcements.Create(ctx, superuser, dto.AnnouncementRequest{Title: "<b>Grooming</b> session", Message: "<script>x</script>Hall 2"})
	require.NoError(t, err)

	items, err := f.announcements.List(ctx, AnnouncementsPublicLimit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Grooming session", items[0].Title)
	require.Equal(t, "Hall 2", items[0].Message)
	require.True(t, mr.Exists(announcementsCachePrefix+"5"))

	// Publishing drops the cached list.
	_, err = f.announcements.Create(ctx, superuser, dto.AnnouncementRequest{Title: "Second"})
	require.NoError(t, err)
	require.False(t, mr.Exists(announcementsCachePrefix+"5"))

	items, err = f.announcements.List(ctx, AnnouncementsPublicLimit)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Second", items[0].Title)
}

func TestAnnouncementCreateIsSuperuserOnly(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	_, err := f.announcements.Create(context.Background(), NewPrincipal("AAI1", "tok"), dto.AnnouncementRequest{Title: "x"})
	require.Equal(t, 403, statusOf(err))

	_, err = f.announcements.Create(context.Background(), superuser, dto.AnnouncementRequest{Title: "<i></i>"})
	require.Equal(t, 400, statusOf(err))
}

func TestNotificationsTargetingAndReads(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	broadcast, err := f.notifications.Create(ctx, superuser, dto.NotificationRequest{Title: "Holiday", Message: "Campus closed"})
	require.NoError(t, err)
	require.Equal(t, "info", broadcast.Level)

	_, err = f.notifications.Create(ctx, superuser, dto.NotificationRequest{Title: "Fee reminder", Level: "warning", TargetUser: "AAI5"})
	require.NoError(t, err)

	_, err = f.notifications.Create(ctx, superuser, dto.NotificationRequest{Title: "Bad", Level: "urgent"})
	require.Equal(t, 400, statusOf(err))

	asha := NewPrincipal("AAI5", "tok")
	views, err := f.notifications.List(ctx, asha, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)

	other, err := f.notifications.List(ctx, NewPrincipal("AAI6", "tok"), 0)
	require.NoError(t, err)
	require.Len(t, other, 1)

	require.NoError(t, f.notifications.MarkRead(ctx, asha, broadcast.NotificationID))
	require.NoError(t, f.notifications.MarkRead(ctx, asha, broadcast.NotificationID))

	views, err = f.notifications.List(ctx, asha, 0)
	require.NoError(t, err)
	for _, view := range views {
		if view.NotificationID == broadcast.NotificationID {
			require.Equal(t, 1, view.IsRead)
		} else {
			require.Equal(t, 0, view.IsRead)
		}
	}
}
