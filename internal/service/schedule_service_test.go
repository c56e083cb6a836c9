package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/dto"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

func TestAirlineFromRemark(t *testing.T) {
	cases := map[string]string{
		"Interview: Indigo":         "Indigo",
		"interview - Vistara":       "Vistara",
		"Air India interview today": "Air India",
		"mock round":                "Interview",
	}
	for remark, want := range cases {
		require.Equal(t, want, airlineFromRemark(remark), remark)
	}
}

func TestInterviewsMergeManualAndRemarkSources(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	_, err := f.schedule.CreateInterview(ctx, superuser, dto.InterviewRequest{AirlineName: "Akasa", InterviewDate: "2024-03-01"})
	require.NoError(t, err)
	_, err = f.attendance.Record(ctx, superuser, dto.RecordAttendanceRequest{
		Date: "2024-03-05",
		Records: []dto.AttendanceMark{
			{StudentID: "AAI9", StudentName: "Veda", AttendanceStatus: "A", Remarks: "Interview: Indigo"},
			{StudentID: "AAI8", StudentName: "Arjun", AttendanceStatus: "P", Remarks: "on time"},
		},
	})
	require.NoError(t, err)

	items, err := f.schedule.Interviews(ctx, superuser)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, dto.InterviewSourceAttendanceRemark, items[0].Source)
	require.Equal(t, "Indigo", items[0].AirlineName)
	require.Equal(t, "AAI9", items[0].StudentID)
	require.Regexp(t, `^attendance-\d+$`, items[0].InterviewID)
	require.Equal(t, dto.InterviewSourceManual, items[1].Source)
	require.Equal(t, "Akasa", items[1].AirlineName)

	scoped, err := f.schedule.Interviews(ctx, NewPrincipal("AAI8", "tok"))
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, dto.InterviewSourceManual, scoped[0].Source)
}

func TestTimetableIsFilteredForStudents(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	require.NoError(t, f.students.Create(ctx, &models.Student{StudentID: "AAI160", StudentName: "Riya", Course: "Cabin Crew", Batch: "C1"}))

	for _, req := range []dto.TimetableRequest{
		{Title: "Safety drill", DayOfWeek: "Monday"},
		{Title: "Galley service", DayOfWeek: "Tuesday", Course: "Cabin Crew", Batch: "C1"},
		{Title: "Ramp handling", DayOfWeek: "Tuesday", Course: "Ground Operations"},
	} {
		_, err := f.schedule.CreateTimetableEntry(ctx, superuser, req)
		require.NoError(t, err)
	}

	all, err := f.schedule.Timetable(ctx, superuser)
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := f.schedule.Timetable(ctx, NewPrincipal("AAI160", "tok"))
	require.NoError(t, err)
	titles := make([]string, 0, len(mine))
	for _, entry := range mine {
		titles = append(titles, entry.Title)
	}
	require.ElementsMatch(t, []string{"Safety drill", "Galley service"}, titles)

	_, err = f.schedule.CreateTimetableEntry(ctx, NewPrincipal("AAI160", "tok"), dto.TimetableRequest{Title: "x"})
	require.Equal(t, 403, statusOf(err))
}
