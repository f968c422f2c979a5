package domain

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s, time.UTC)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestCursor_Advance(t *testing.T) {
	tests := []struct {
		name        string
		anchor      string
		granularity Granularity
		dir         Direction
		want        string
	}{
		{"day next", "2024-03-10", GranularityDay, Next, "2024-03-11"},
		{"day prev across month", "2024-03-01", GranularityDay, Prev, "2024-02-29"},
		{"week next", "2024-03-10", GranularityWeek, Next, "2024-03-17"},
		{"week prev across year", "2024-01-03", GranularityWeek, Prev, "2023-12-27"},
		{"month next", "2024-03-15", GranularityMonth, Next, "2024-04-15"},
		{"month prev across year", "2024-01-15", GranularityMonth, Prev, "2023-12-15"},
		{"month overflow normalizes forward", "2024-01-31", GranularityMonth, Next, "2024-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{Anchor: date(t, tt.anchor), Granularity: tt.granularity}
			got := FormatDate(c.Advance(tt.dir))
			if got != tt.want {
				t.Errorf("Advance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCursor_AdvanceIsReversible(t *testing.T) {
	// Months are only reversible where the day of month exists in every month.
	start := date(t, "2023-11-01")
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		for d := start; d.Before(start.AddDate(1, 0, 0)); d = d.AddDate(0, 0, 1) {
			if g == GranularityMonth && d.Day() > 28 {
				continue
			}
			c := Cursor{Anchor: d, Granularity: g}
			c.Step(Next)
			back := c.Advance(Prev)
			if !back.Equal(d) {
				t.Fatalf("%s: advance(advance(%s, next), prev) = %s", g, FormatDate(d), FormatDate(back))
			}
		}
	}
}

func TestCursor_SetGranularityKeepsAnchor(t *testing.T) {
	c := Cursor{Anchor: date(t, "2024-03-15"), Granularity: GranularityMonth}
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		c.SetGranularity(g)
		if FormatDate(c.Anchor) != "2024-03-15" {
			t.Fatalf("switching to %s moved anchor to %s", g, FormatDate(c.Anchor))
		}
	}
}

func TestNewCursor_StartsTodayInMonthView(t *testing.T) {
	now := time.Date(2024, 3, 15, 17, 45, 0, 0, time.UTC)
	c := NewCursor(now)
	if c.Granularity != GranularityMonth {
		t.Errorf("expected month granularity, got %s", c.Granularity)
	}
	if !c.Anchor.Equal(date(t, "2024-03-15")) {
		t.Errorf("expected anchor at start of day, got %v", c.Anchor)
	}
	if c.WeekStart != time.Sunday {
		t.Errorf("expected Sunday week start, got %v", c.WeekStart)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name        string
		anchor      string
		granularity Granularity
		weekStart   time.Weekday
		want        string
	}{
		{"month", "2024-03-15", GranularityMonth, time.Sunday, "March 2024"},
		{"week", "2024-03-15", GranularityWeek, time.Sunday, "Week of 3/10/2024 - 3/16/2024"},
		{"week starting monday", "2024-03-15", GranularityWeek, time.Monday, "Week of 3/11/2024 - 3/17/2024"},
		{"week spanning months", "2024-02-28", GranularityWeek, time.Sunday, "Week of 2/25/2024 - 3/2/2024"},
		{"day", "2024-03-15", GranularityDay, time.Sunday, "Friday, March 15, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{Anchor: date(t, tt.anchor), Granularity: tt.granularity, WeekStart: tt.weekStart}
			if got := c.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		day       string
		weekStart time.Weekday
		want      string
	}{
		{"2024-03-15", time.Sunday, "2024-03-10"},
		{"2024-03-10", time.Sunday, "2024-03-10"},
		{"2024-03-10", time.Monday, "2024-03-04"},
		{"2024-03-01", time.Sunday, "2024-02-25"},
	}
	for _, tt := range tests {
		got := FormatDate(WeekStartOf(date(t, tt.day), tt.weekStart))
		if got != tt.want {
			t.Errorf("WeekStartOf(%s, %v) = %s, want %s", tt.day, tt.weekStart, got, tt.want)
		}
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"day", GranularityDay, false},
		{"Week", GranularityWeek, false},
		{"month", GranularityMonth, false},
		{"", GranularityMonth, false},
		{"year", GranularityMonth, true},
	}
	for _, tt := range tests {
		got, err := ParseGranularity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGranularity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseGranularity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
