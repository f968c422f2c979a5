package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// FirstHour is the first hour rendered by the day and week grids
	FirstHour = 6
	// LastHour is the label of the final hourly row. Its "24" prefix never
	// matches a valid time of day, so the row is always empty.
	LastHour = 24
	// HoursPerDay is the number of hourly buckets from FirstHour through LastHour
	HoursPerDay = LastHour - FirstHour + 1
	// DaysPerWeek is the number of day buckets in a week grid
	DaysPerWeek = 7
)

// BucketSpan is the length of time a bucket covers
type BucketSpan int

const (
	SpanHour BucketSpan = iota
	SpanDay
)

// Bucket is a time cell of a calendar grid with the entries placed in it
type Bucket struct {
	Span  BucketSpan
	Date  string    // YYYY-MM-DD
	Start time.Time // start of the cell
	Hour  int       // hour of day for SpanHour buckets, -1 for day buckets
	Label string

	// InPeriod is false for leading/trailing days of a month grid that belong
	// to the neighbouring months.
	InPeriod bool

	// Entries placed in this cell, ordered by time of day. Day buckets of a
	// week grid only hold untimed entries; timed ones live in Hours.
	Entries []DatedEntry

	// Hours subdivides a week grid day into hourly buckets
	Hours []Bucket
}

// CellCount returns the number of leaf cells of a grid
func CellCount(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		if len(b.Hours) > 0 {
			n += len(b.Hours)
			continue
		}
		n++
	}
	return n
}

// GridBuilder produces calendar grids. The zero value starts weeks on Sunday.
type GridBuilder struct {
	WeekStart time.Weekday
}

// Build returns the buckets for the period around anchor using Sunday week starts
func Build(anchor time.Time, g Granularity, entries []DatedEntry) []Bucket {
	return GridBuilder{WeekStart: time.Sunday}.Build(anchor, g, entries)
}

// Build returns the ordered buckets to render for the period containing anchor.
// It never modifies entries; every bucket gets its own copies.
func (gb GridBuilder) Build(anchor time.Time, g Granularity, entries []DatedEntry) []Bucket {
	byDate := indexByDate(entries)
	anchor = StartOfDay(anchor)

	switch g {
	case GranularityDay:
		return hourBuckets(anchor, byDate[FormatDate(anchor)])

	case GranularityWeek:
		start := WeekStartOf(anchor, gb.WeekStart)
		days := make([]Bucket, 0, DaysPerWeek)
		for i := 0; i < DaysPerWeek; i++ {
			day := start.AddDate(0, 0, i)
			onDay := byDate[FormatDate(day)]
			b := dayBucket(day, true, untimed(onDay))
			b.Label = day.Format("Mon, Jan 2")
			b.Hours = hourBuckets(day, onDay)
			days = append(days, b)
		}
		return days

	default:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		start := WeekStartOf(first, gb.WeekStart)
		end := WeekStartOf(last, gb.WeekStart).AddDate(0, 0, DaysPerWeek-1)

		var days []Bucket
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			b := dayBucket(day, day.Month() == anchor.Month(), byDate[FormatDate(day)])
			days = append(days, b)
		}
		return days
	}
}

// Untimed returns the entries of date that carry no time of day
func Untimed(date string, entries []DatedEntry) []DatedEntry {
	var out []DatedEntry
	for _, e := range entries {
		if e.Date == date && !e.HasTime() {
			out = append(out, e)
		}
	}
	return out
}

func dayBucket(day time.Time, inPeriod bool, entries []DatedEntry) Bucket {
	return Bucket{
		Span:     SpanDay,
		Date:     FormatDate(day),
		Start:    day,
		Hour:     -1,
		Label:    fmt.Sprintf("%d", day.Day()),
		InPeriod: inPeriod,
		Entries:  slices.Clone(entries),
	}
}

// hourBuckets splits one day into the hourly cells labeled 06:00 to 24:00.
// An entry lands in the cell whose two digit hour prefixes its time.
func hourBuckets(day time.Time, onDay []DatedEntry) []Bucket {
	hours := make([]Bucket, 0, HoursPerDay)
	date := FormatDate(day)
	for h := FirstHour; h <= LastHour; h++ {
		prefix := fmt.Sprintf("%02d", h)
		var placed []DatedEntry
		for _, e := range onDay {
			if e.HasTime() && strings.HasPrefix(e.Time, prefix) {
				placed = append(placed, e)
			}
		}
		hours = append(hours, Bucket{
			Span:     SpanHour,
			Date:     date,
			Start:    time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location()),
			Hour:     h,
			Label:    HourLabel(h),
			InPeriod: true,
			Entries:  placed,
		})
	}
	return hours
}

func untimed(entries []DatedEntry) []DatedEntry {
	var out []DatedEntry
	for _, e := range entries {
		if !e.HasTime() {
			out = append(out, e)
		}
	}
	return out
}

// indexByDate groups copies of entries by date, each group sorted by time
func indexByDate(entries []DatedEntry) map[string][]DatedEntry {
	byDate := make(map[string][]DatedEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	for date := range byDate {
		SortEntries(byDate[date])
	}
	return byDate
}
