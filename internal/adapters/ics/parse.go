package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"daybook/internal/domain"
	applog "daybook/internal/log"
)

// MaxOccurrencesPerEvent caps how many dates one recurring event expands to
const MaxOccurrencesPerEvent = 500

// maxScannedOccurrences bounds how far a rule is walked looking for the
// window, so a rule starting long before from cannot spin forever.
const maxScannedOccurrences = 200 * MaxOccurrencesPerEvent

// Parse reads VEVENTs into entry drafts dated in loc. Recurring events are
// expanded within [from, to]; single events outside the window are skipped.
// A zero window keeps every single event and expands recurring ones from
// their DTSTART. Either way a recurring event yields at most
// MaxOccurrencesPerEvent drafts.
func Parse(r io.Reader, loc *time.Location, from, to time.Time) ([]domain.Draft, error) {
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		applog.Error("ics parse failed", err)
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var drafts []domain.Draft
	for _, ve := range cal.Events() {
		evDrafts, err := eventDrafts(ve, loc, from, to)
		if err != nil {
			applog.Debug("skipping event", "err", err)
			continue
		}
		drafts = append(drafts, evDrafts...)
	}
	return drafts, nil
}

func eventDrafts(ve *ical.VEvent, loc *time.Location, from, to time.Time) ([]domain.Draft, error) {
	var title, content string
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		content = p.Value
	}
	if title == "" {
		return nil, fmt.Errorf("event without summary")
	}

	start, allDay, err := eventStart(ve, loc)
	if err != nil {
		return nil, err
	}

	starts := []time.Time{start}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		starts, err = expand(p.Value, start, from, to)
		if err != nil {
			return nil, err
		}
	} else if !from.IsZero() && (start.Before(from) || start.After(to)) {
		return nil, nil
	}

	drafts := make([]domain.Draft, 0, len(starts))
	for _, s := range starts {
		s = s.In(loc)
		d := domain.Draft{Title: title, Content: content, Date: domain.FormatDate(s)}
		if !allDay {
			d.Time = s.Format(domain.TimeLayout)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// eventStart returns DTSTART and whether it is a date without time
func eventStart(ve *ical.VEvent, loc *time.Location) (time.Time, bool, error) {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return time.Time{}, false, fmt.Errorf("event without DTSTART")
	}

	allDay := !strings.Contains(p.Value, "T")
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}
	if allDay {
		day, err := time.ParseInLocation("20060102", strings.TrimSpace(p.Value), loc)
		if err != nil {
			return time.Time{}, true, fmt.Errorf("invalid all-day DTSTART %q", p.Value)
		}
		return day, true, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid DTSTART %q: %w", p.Value, err)
	}
	return start, false, nil
}

// expand walks the rule occurrence by occurrence, so the cap bounds the work
// and not just the result
func expand(rule string, start, from, to time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", rule, err)
	}
	r.DTStart(start)

	windowed := !from.IsZero()
	from, to = from.In(start.Location()), to.In(start.Location())

	var occ []time.Time
	next := r.Iterator()
	for scanned := 0; len(occ) < MaxOccurrencesPerEvent && scanned < maxScannedOccurrences; scanned++ {
		t, ok := next()
		if !ok {
			break
		}
		if windowed {
			if t.After(to) {
				break
			}
			if t.Before(from) {
				continue
			}
		}
		occ = append(occ, t)
	}
	if len(occ) == MaxOccurrencesPerEvent {
		applog.Debug("recurrence capped", "rule", rule, "max", MaxOccurrencesPerEvent)
	}
	return occ, nil
}
