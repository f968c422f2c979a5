package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"daybook/internal/application"
	"daybook/internal/domain"
)

// MaxRepeat caps how many occurrences one create expands to
const MaxRepeat = 366

// Repeat describes a recurrence for entry creation
type Repeat struct {
	Frequency string // daily, weekly or monthly; empty for a single entry
	Count     int
}

// IsZero reports whether no recurrence was requested
func (r Repeat) IsZero() bool {
	return r.Frequency == ""
}

// Validate checks the frequency and count
func (r Repeat) Validate() error {
	if r.IsZero() {
		return nil
	}
	if _, err := frequency(r.Frequency); err != nil {
		return err
	}
	if r.Count < 1 || r.Count > MaxRepeat {
		return &application.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("must be between 1 and %d, got: %d", MaxRepeat, r.Count),
		}
	}
	return nil
}

// Dates expands the recurrence starting on date into YYYY-MM-DD dates
func (r Repeat) Dates(date string) ([]string, error) {
	if r.IsZero() {
		return []string{date}, nil
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	start, err := domain.ParseDate(date, time.UTC)
	if err != nil {
		return nil, &application.ValidationError{Field: "date", Message: err.Error()}
	}
	freq, _ := frequency(r.Frequency)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Count:   r.Count,
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence: %w", err)
	}

	occ := rule.All()
	dates := make([]string, 0, len(occ))
	for _, t := range occ {
		dates = append(dates, domain.FormatDate(t))
	}
	return dates, nil
}

func frequency(s string) (rrule.Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return rrule.DAILY, nil
	case "weekly":
		return rrule.WEEKLY, nil
	case "monthly":
		return rrule.MONTHLY, nil
	default:
		return 0, &application.ValidationError{
			Field:   "repeat",
			Message: fmt.Sprintf("expected daily, weekly or monthly, got: %s", s),
		}
	}
}
