package activity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type decoder func(payload map[string]interface{}) (Reversible, error)

// decoders holds one entry per Reversible variant; Decode rejects every other type.
var decoders = map[Type]decoder{
	TypeStudentAdded: func(p map[string]interface{}) (Reversible, error) {
		id, err := stringField(p, "student_id")
		if err != nil {
			return nil, err
		}
		return StudentAdded{StudentID: id}, nil
	},
	TypeAttendanceRecorded: func(p map[string]interface{}) (Reversible, error) {
		date, err := stringField(p, "date")
		if err != nil {
			return nil, err
		}
		ids, err := stringSliceField(p, "student_ids")
		if err != nil {
			return nil, err
		}
		return AttendanceRecorded{Date: date, StudentIDs: ids}, nil
	},
	TypeFeeRecorded: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "fee_id")
		if err != nil {
			return nil, err
		}
		action := FeeRecorded{FeeID: id}
		if sid, ok := p["student_id"].(string); ok {
			action.StudentID = sid
		}
		if amount, ok := p["amount_paid"].(float64); ok {
			action.AmountPaid = amount
		}
		return action, nil
	},
	TypeTimetableCreated: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "timetable_id")
		if err != nil {
			return nil, err
		}
		return TimetableCreated{TimetableID: id}, nil
	},
	TypeInterviewCreated: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "interview_id")
		if err != nil {
			return nil, err
		}
		return InterviewCreated{InterviewID: id}, nil
	},
	TypeAnnouncementCreated: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "announcement_id")
		if err != nil {
			return nil, err
		}
		return AnnouncementCreated{AnnouncementID: id}, nil
	},
	TypeNotificationCreated: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "notification_id")
		if err != nil {
			return nil, err
		}
		return NotificationCreated{NotificationID: id}, nil
	},
	TypeAdmissionSubmitted: func(p map[string]interface{}) (Reversible, error) {
		id, err := uintField(p, "admission_id")
		if err != nil {
			return nil, err
		}
		action := AdmissionSubmitted{AdmissionID: id}
		if email, ok := p["email"].(string); ok {
			action.Email = email
		}
		return action, nil
	},
}

// Decode rebuilds the reversible action stored under actionType.
// It fails with ErrNotUndoable for unknown or irreversible types and ErrBadPayload when keys are missing.
func Decode(actionType string, payload map[string]interface{}) (Reversible, error) {
	decode, ok := decoders[Type(strings.TrimSpace(actionType))]
	if !ok {
		return nil, ErrNotUndoable
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrBadPayload)
	}
	return decode(payload)
}

// IsReversible reports whether entries of actionType can be undone.
func IsReversible(actionType string) bool {
	_, ok := decoders[Type(actionType)]
	return ok
}

func stringField(p map[string]interface{}, key string) (string, error) {
	switch v := p[key].(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed, nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrBadPayload, key)
}

func uintField(p map[string]interface{}, key string) (uint, error) {
	switch v := p[key].(type) {
	case float64:
		if v > 0 && v == math.Trunc(v) {
			return uint(v), nil
		}
	case json.Number:
		if parsed, err := strconv.ParseUint(v.String(), 10, 64); err == nil && parsed > 0 {
			return uint(parsed), nil
		}
	case int:
		if v > 0 {
			return uint(v), nil
		}
	case int64:
		if v > 0 {
			return uint(v), nil
		}
	case uint:
		if v > 0 {
			return v, nil
		}
	case string:
		if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil && parsed > 0 {
			return uint(parsed), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrBadPayload, key)
}

func stringSliceField(p map[string]interface{}, key string) ([]string, error) {
	switch v := p[key].(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("%w: %s", ErrBadPayload, key)
			}
			out = append(out, strings.TrimSpace(s))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrBadPayload, key)
}
