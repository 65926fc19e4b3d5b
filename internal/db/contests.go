package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ContestRecord struct {
	Name                string
	Description         *string
	SubmissionsClosedAt *time.Time
	EndsAt              *time.Time
}

// LoadContests reads contests from a CSV and inserts the ones whose name is not yet known.
// Existing contests are left untouched.
func LoadContests(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	records, err := ReadContests(file)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := Contest{
			Name:                record.Name,
			Description:         record.Description,
			SubmissionsClosedAt: record.SubmissionsClosedAt,
			EndsAt:              record.EndsAt,
		}
		result := conn.Where(Contest{Name: entry.Name}).FirstOrCreate(&entry)
		if result.Error != nil {
			return inserted, result.Error
		}
		if result.RowsAffected > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// ReadContests parses rows of name,description,submissions_closed_at,ends_at.
// The first row is a header. Timestamps are RFC 3339; empty cells mean unset.
func ReadContests(r io.Reader) ([]ContestRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []ContestRecord
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		record := ContestRecord{Name: name}
		if description := cell(row, 1); description != "" {
			record.Description = &description
		}
		if record.SubmissionsClosedAt, err = parseTimeCell(cell(row, 2)); err != nil {
			return nil, fmt.Errorf("row %d submissions_closed_at: %w", i+1, err)
		}
		if record.EndsAt, err = parseTimeCell(cell(row, 3)); err != nil {
			return nil, fmt.Errorf("row %d ends_at: %w", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func parseTimeCell(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
