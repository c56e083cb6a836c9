package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ERP_DATABASE_URL", "sqlite://erp.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 300*time.Second, cfg.SessionTimeout)
	require.Equal(t, "qwerty", cfg.SuperuserPassword)
	require.Equal(t, 2*time.Minute, cfg.AnnouncementsCacheTTL)
	require.Equal(t, 250000.0, cfg.CourseFees["cabin crew"])
	require.False(t, cfg.PaymentsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ERP_DATABASE_URL", "postgres://erp@localhost/erp")
	t.Setenv("ERP_APP_PORT", ":9090")
	t.Setenv("ERP_SESSION_TIMEOUT_SECONDS", "60")
	t.Setenv("ERP_RAZORPAY_KEY_ID", "rzp_test")
	t.Setenv("ERP_RAZORPAY_KEY_SECRET", "secret")
	t.Setenv("ERP_RAZORPAY_BASE_URL", "http://localhost:9999/")
	t.Setenv("ERP_FEES_COURSES", "Pilot Training=900000; Cabin Crew=260000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, time.Minute, cfg.SessionTimeout)
	require.True(t, cfg.PaymentsEnabled())
	require.Equal(t, "http://localhost:9999", cfg.RazorpayBaseURL)
	require.Equal(t, 900000.0, cfg.CourseFees["pilot training"])
	require.Equal(t, 260000.0, cfg.CourseFees["cabin crew"])
	require.Equal(t, 150000.0, cfg.CourseFees["ground operations"])
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ERP_DATABASE_URL", "")
	_, err := Load()
	require.ErrorContains(t, err, "database url")

	t.Setenv("ERP_DATABASE_URL", "sqlite://erp.db")
	t.Setenv("ERP_FEES_COURSES", "Cabin Crew")
	_, err = Load()
	require.ErrorContains(t, err, "invalid course fee entry")

	t.Setenv("ERP_FEES_COURSES", "")
	t.Setenv("ERP_CACHE_ANNOUNCEMENTS_TTL", "soon")
	_, err = Load()
	require.ErrorContains(t, err, "announcements cache ttl")
}

func TestDefaultCourseFeesAreNotMutated(t *testing.T) {
	fees, err := parseCourseFees("Cabin Crew=1")
	require.NoError(t, err)
	require.Equal(t, 1.0, fees["cabin crew"])
	require.Equal(t, 250000.0, DefaultCourseFees["cabin crew"])
}
