package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/noah-isme/aviation-erp-api/internal/apperror"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

var requiredAttendanceColumns = []string{"student_id", "student_name", "course", "batch", "date", "attendance_status"}

var (
	isoDatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dashedDatePattern  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	compactDatePattern = regexp.MustCompile(`^\d{8}$`)
)

// normalizeAttendanceStatus maps P/Present and A/Absent to canonical values and capitalises anything else.
// An empty status counts as absent.
func normalizeAttendanceStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "p", "present":
		return models.AttendancePresent
	case "a", "absent":
		return models.AttendanceAbsent
	case "":
		return models.AttendanceAbsent
	default:
		r, size := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r)) + s[size:]
	}
}

// normalizeDate converts DD-MM-YYYY and DDMMYYYY to YYYY-MM-DD. Other inputs are returned trimmed.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "", isoDatePattern.MatchString(s):
		return s
	case dashedDatePattern.MatchString(s):
		parts := strings.Split(s, "-")
		return fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
	case compactDatePattern.MatchString(s):
		return fmt.Sprintf("%s-%s-%s", s[4:8], s[2:4], s[0:2])
	default:
		return s
	}
}

// parsedAttendance is the result of reading an attendance CSV.
type parsedAttendance struct {
	Records []models.AttendanceRecord
	Skipped int
}

// parseAttendanceCSV reads a header row plus data rows. Rows without a student id or date are skipped.
func parseAttendanceCSV(data []byte) (parsedAttendance, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return parsedAttendance{}, apperror.BadRequest(fmt.Sprintf("Invalid CSV: %v", err))
		}
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) < 2 {
		return parsedAttendance{}, apperror.BadRequest("CSV has no data rows")
	}

	index := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(header))
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	var missing []string
	for _, column := range requiredAttendanceColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return parsedAttendance{}, apperror.BadRequest("Missing CSV columns: " + strings.Join(missing, ", "))
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var parsed parsedAttendance
	for _, row := range rows[1:] {
		record := models.AttendanceRecord{
			StudentID:        cell(row, "student_id"),
			StudentName:      cell(row, "student_name"),
			Course:           cell(row, "course"),
			Batch:            cell(row, "batch"),
			Date:             normalizeDate(cell(row, "date")),
			AttendanceStatus: normalizeAttendanceStatus(cell(row, "attendance_status")),
			Remarks:          cell(row, "remarks"),
		}
		if record.StudentID == "" || record.Date == "" {
			parsed.Skipped++
			continue
		}
		parsed.Records = append(parsed.Records, record)
	}

	return parsed, nil
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
