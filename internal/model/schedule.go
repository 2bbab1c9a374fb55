package model

import (
	"fmt"
	"strings"
	"time"
)

var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseSchedule reads a schedule timestamp. "", "none" and "-" clear the
// schedule and yield nil. Layouts without a zone are read in loc.
func ParseSchedule(v string, loc *time.Location) (*time.Time, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "none", "-":
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unrecognized schedule %q (use RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD)", ErrValidation, v)
}

// FormatSchedule renders an optional schedule for display.
func FormatSchedule(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
