package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/aviation-erp-api/internal/activity"
	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

func setupTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	if migrate {
		require.NoError(t, database.Migrate(db))
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	missing, err := repo.FindByToken(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, repo.Create(ctx, &models.Session{Token: "tok", UserID: "AAI101", ExpiresAt: 100}))
	require.NoError(t, repo.UpdateExpiry(ctx, "tok", 400))

	found, err := repo.FindByToken(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, int64(400), found.ExpiresAt)

	require.NoError(t, repo.DeleteByUser(ctx, "AAI101"))
	found, err = repo.FindByToken(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestInsertCredentialIfAbsentNeverOverwrites(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	inserted, err := repo.InsertCredentialIfAbsent(ctx, &models.Credential{Username: "AAI101", PasswordHash: "first", Role: models.RoleStudent})
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.InsertCredentialIfAbsent(ctx, &models.Credential{Username: "AAI101", PasswordHash: "second", Role: models.RoleStudent})
	require.NoError(t, err)
	require.False(t, inserted)

	credential, err := repo.FindCredential(ctx, "AAI101")
	require.NoError(t, err)
	require.Equal(t, "first", credential.PasswordHash)
}

func TestStudentIDsWithoutCredential(t *testing.T) {
	db := setupTestDB(t, true)
	students := NewStudentRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, &models.Student{StudentID: "AAI101", StudentName: "Asha Rao"}))
	require.NoError(t, students.Create(ctx, &models.Student{StudentID: "AAI102", StudentName: "Ravi Kumar"}))
	_, err := sessions.InsertCredentialIfAbsent(ctx, &models.Credential{Username: "AAI101", PasswordHash: "x", Role: models.RoleStudent})
	require.NoError(t, err)

	ids, err := sessions.StudentIDsWithoutCredential(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"AAI102"}, ids)
}

func TestAttendanceInsertIfAbsentKeepsFirstMark(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	inserted, err := repo.InsertIfAbsent(ctx, &models.AttendanceRecord{StudentID: "AAI101", Date: "2024-05-01", AttendanceStatus: models.AttendancePresent})
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, &models.AttendanceRecord{StudentID: "AAI101", Date: "2024-05-01", AttendanceStatus: models.AttendanceAbsent})
	require.NoError(t, err)
	require.False(t, inserted)

	records, err := repo.ByDate(ctx, "2024-05-01", "AAI101")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.AttendancePresent, records[0].AttendanceStatus)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, AttendanceCounts{Present: 1}, counts)
}

func TestAttendanceReplaceAllUpsertsStudents(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewAttendanceRepository(db)
	students := NewStudentRepository(db)
	ctx := context.Background()

	_, err := repo.InsertIfAbsent(ctx, &models.AttendanceRecord{StudentID: "OLD1", Date: "2024-01-01", AttendanceStatus: models.AttendancePresent})
	require.NoError(t, err)

	result, err := repo.ReplaceAll(ctx, []models.AttendanceRecord{
		{StudentID: "AAI201", StudentName: "Meera", Course: "Cabin Crew", Batch: "B1", Date: "2024-05-02", AttendanceStatus: models.AttendancePresent, Remarks: "Indigo interview"},
		{StudentID: "AAI201", StudentName: "Meera", Course: "Cabin Crew", Batch: "B1", Date: "2024-05-02", AttendanceStatus: models.AttendanceAbsent},
	})
	require.NoError(t, err)
	require.Equal(t, SyncResult{Inserted: 1, Skipped: 1}, result)

	old, err := repo.ListByStudent(ctx, "OLD1")
	require.NoError(t, err)
	require.Empty(t, old)

	student, err := students.Get(ctx, "AAI201")
	require.NoError(t, err)
	require.NotNil(t, student)
	require.Equal(t, "Cabin Crew", student.Course)

	remarks, err := repo.InterviewRemarks(ctx, "")
	require.NoError(t, err)
	require.Len(t, remarks, 1)
}

func TestFeeTotals(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewFeeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Fee{StudentID: "AAI101", AmountTotal: 100000, AmountPaid: 20000}))
	require.NoError(t, repo.Create(ctx, &models.Fee{StudentID: "AAI101", AmountTotal: 120000, AmountPaid: 30000}))
	require.NoError(t, repo.Create(ctx, &models.Fee{StudentID: "AAI102", AmountTotal: 5000, AmountPaid: 5000}))

	totals, err := repo.StudentTotals(ctx, "AAI101")
	require.NoError(t, err)
	require.Equal(t, FeeTotals{Total: 220000, Paid: 50000, MaxTotal: 120000, Transactions: 2}, totals)

	empty, err := repo.StudentTotals(ctx, "AAI999")
	require.NoError(t, err)
	require.Equal(t, FeeTotals{}, empty)

	all, err := repo.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), all.Transactions)
	require.InDelta(t, 55000, all.Paid, 0.001)

	recent, err := repo.Recent(ctx, "AAI101", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.InDelta(t, 30000, recent[0].AmountPaid, 0.001)
}

func TestTimetableForMatchesBlankColumns(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateTimetableEntry(ctx, &models.TimetableEntry{Title: "Everyone", DayOfWeek: "Mon"}))
	require.NoError(t, repo.CreateTimetableEntry(ctx, &models.TimetableEntry{Title: "Crew B1", DayOfWeek: "Tue", Course: "Cabin Crew", Batch: "B1"}))
	require.NoError(t, repo.CreateTimetableEntry(ctx, &models.TimetableEntry{Title: "Ground", DayOfWeek: "Wed", Course: "Ground Operations"}))

	entries, err := repo.ListTimetableFor(ctx, "Cabin Crew", "B1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	all, err := repo.ListTimetable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestNotificationsForUserTracksReads(t *testing.T) {
	db := setupTestDB(t, true)
	repo := NewCommunicationRepository(db)
	ctx := context.Background()

	target := "AAI101"
	other := "AAI102"
	broadcast := models.Notification{Title: "Holiday", Level: "info"}
	mine := models.Notification{Title: "Fee reminder", Level: "warning", TargetUser: &target}
	theirs := models.Notification{Title: "Not yours", Level: "info", TargetUser: &other}
	require.NoError(t, repo.CreateNotification(ctx, &broadcast))
	require.NoError(t, repo.CreateNotification(ctx, &mine))
	require.NoError(t, repo.CreateNotification(ctx, &theirs))

	now := time.Now()
	require.NoError(t, repo.MarkNotificationRead(ctx, broadcast.NotificationID, target, now))
	require.NoError(t, repo.MarkNotificationRead(ctx, broadcast.NotificationID, target, now.Add(time.Hour)))

	items, err := repo.NotificationsFor(ctx, target, 30)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, mine.NotificationID, items[0].NotificationID)
	require.Equal(t, 0, items[0].IsRead)
	require.Equal(t, 1, items[1].IsRead)
}

func TestActivityLogCreatesTableLazily(t *testing.T) {
	db := setupTestDB(t, false)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	entries, total, err := repo.List(ctx, ActivityLogFilter{})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, entries)

	entry := models.ActivityLog{ActionType: string(activity.TypeFeeRecorded), Payload: map[string]interface{}{"fee_id": 7}, CreatedBy: models.SuperuserID}
	require.NoError(t, repo.Create(ctx, &entry))
	require.NotZero(t, entry.ID)

	undone := false
	entries, total, err = repo.List(ctx, ActivityLogFilter{ActionType: string(activity.TypeFeeRecorded), Undone: &undone})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, entry.ID, entries[0].ID)
}

func TestUndoRemovesStudentAndClaimsOnce(t *testing.T) {
	db := setupTestDB(t, true)
	logs := NewActivityLogRepository(db)
	students := NewStudentRepository(db)
	sessions := NewSessionRepository(db)
	repo := NewUndoRepository(db)
	ctx := context.Background()

	require.NoError(t, students.Create(ctx, &models.Student{StudentID: "AAI333", StudentName: "Kiran"}))
	_, err := sessions.InsertCredentialIfAbsent(ctx, &models.Credential{Username: "AAI333", PasswordHash: "x", Role: models.RoleStudent})
	require.NoError(t, err)
	require.NoError(t, sessions.Create(ctx, &models.Session{Token: "t1", UserID: "AAI333", ExpiresAt: 10}))

	entry := models.ActivityLog{ActionType: string(activity.TypeStudentAdded), Payload: map[string]interface{}{"student_id": "AAI333"}, CreatedBy: models.SuperuserID}
	require.NoError(t, logs.Create(ctx, &entry))

	revert := func(r activity.Reverter) error {
		return activity.StudentAdded{StudentID: "AAI333"}.Revert(ctx, r)
	}

	require.NoError(t, repo.Undo(ctx, entry.ID, time.Now(), revert))
	require.ErrorIs(t, repo.Undo(ctx, entry.ID, time.Now(), revert), ErrAlreadyClaimed)

	student, err := students.Get(ctx, "AAI333")
	require.NoError(t, err)
	require.Nil(t, student)
	credential, err := sessions.FindCredential(ctx, "AAI333")
	require.NoError(t, err)
	require.Nil(t, credential)
	session, err := sessions.FindByToken(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, session)

	stored, err := logs.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	require.True(t, stored.Undone)
	require.NotNil(t, stored.UndoneAt)
}

func TestUndoRollsBackClaimWhenRevertFails(t *testing.T) {
	db := setupTestDB(t, true)
	logs := NewActivityLogRepository(db)
	repo := NewUndoRepository(db)
	ctx := context.Background()

	entry := models.ActivityLog{ActionType: string(activity.TypeFeeRecorded), Payload: map[string]interface{}{"fee_id": 1}, CreatedBy: models.SuperuserID}
	require.NoError(t, logs.Create(ctx, &entry))

	boom := errors.New("boom")
	err := repo.Undo(ctx, entry.ID, time.Now(), func(activity.Reverter) error { return boom })
	require.ErrorIs(t, err, boom)

	stored, err := logs.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, stored.Undone)
}

func TestConcurrentUndoSucceedsExactlyOnce(t *testing.T) {
	db := setupTestDB(t, true)
	logs := NewActivityLogRepository(db)
	fees := NewFeeRepository(db)
	repo := NewUndoRepository(db)
	ctx := context.Background()

	fee := models.Fee{StudentID: "AAI101", AmountTotal: 1000, AmountPaid: 1000}
	require.NoError(t, fees.Create(ctx, &fee))
	entry := models.ActivityLog{ActionType: string(activity.TypeFeeRecorded), Payload: map[string]interface{}{"fee_id": fee.FeeID}, CreatedBy: models.SuperuserID}
	require.NoError(t, logs.Create(ctx, &entry))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		claimed   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Undo(ctx, entry.ID, time.Now(), func(r activity.Reverter) error {
				return activity.FeeRecorded{FeeID: fee.FeeID}.Revert(ctx, r)
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyClaimed):
				claimed++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, claimed)
}
