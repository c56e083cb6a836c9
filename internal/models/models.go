package models

// All returns every model managed by AutoMigrate, in dependency-free order.
func All() []interface{} {
	return []interface{}{
		&Session{},
		&Credential{},
		&Student{},
		&Fee{},
		&AttendanceRecord{},
		&TimetableEntry{},
		&InterviewStat{},
		&Announcement{},
		&Notification{},
		&NotificationRead{},
		&Admission{},
		&ActivityLog{},
	}
}
