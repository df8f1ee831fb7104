package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shortlinks/internal/domain/models"
)

// Форматы без зоны читаются как UTC
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp принимает RFC3339 или ISO 8601 без часового пояса. Значение всегда в UTC.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: timestamp must be a string", models.ErrInvalidData)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO 8601 timestamp", models.ErrInvalidData, raw)
}

// TimePtr возвращает nil для отсутствующего значения
func (ts *Timestamp) TimePtr() *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}
