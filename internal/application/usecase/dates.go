package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/MantenPro-api/internal/domain"
)

const dateOnly = "2006-01-02"

// ParseDate interpreta RFC3339 o YYYY-MM-DD. Las fechas sin hora se toman como
// medianoche en loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("fecha vacía: %w", domain.ErrInvalidInput)
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateOnly, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha %q: %w", value, domain.ErrInvalidInput)
}

// parseDateUpTo como ParseDate, pero una fecha sin hora cubre el día completo.
func parseDateUpTo(value string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(value, loc)
	if err != nil {
		return t, err
	}
	if len(strings.TrimSpace(value)) == len(dateOnly) {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return t, nil
}

// StartOfDay medianoche de t en su propia zona horaria.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
