package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"daybook/internal/domain"
)

var (
	titleColor = color.New(color.Bold, color.Underline)
	doneColor  = color.New(color.Faint, color.CrossedOut)
	dimColor   = color.New(color.Faint)
	hourColor  = color.New(color.FgHiCyan)
)

func printTitle(s string) {
	_, _ = titleColor.Fprintln(color.Output, s)
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

func printEntries(entries []domain.DatedEntry) {
	if len(entries) == 0 {
		_, _ = dimColor.Fprintln(color.Output, "No entries.")
		return
	}
	tbl := newTable()
	tbl.AddRow("ID", "DATE", "TIME", "TITLE")
	for _, e := range entries {
		tbl.AddRow(e.ID, e.Date, timeOrDash(e.Time), entryTitle(e))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func entryTitle(e domain.DatedEntry) string {
	if e.Kind != domain.EntryKindTask {
		return e.Title
	}
	if e.Done {
		return doneColor.Sprint("[x] " + e.Title)
	}
	return "[ ] " + e.Title
}

func timeOrDash(t string) string {
	if t == "" {
		return "-"
	}
	return t
}

func printLists(lists []domain.ListRecord) {
	if len(lists) == 0 {
		_, _ = dimColor.Fprintln(color.Output, "No lists.")
		return
	}
	for i, l := range lists {
		if i > 0 {
			fmt.Fprintln(color.Output)
		}
		printTitle(fmt.Sprintf("%s (#%d, %d left)", l.Name, l.ID, l.Remaining()))
		tbl := newTable()
		for _, it := range l.Items {
			title := "[ ] " + it.Title
			if it.Done {
				title = doneColor.Sprint("[x] " + it.Title)
			}
			tbl.AddRow(fmt.Sprintf("%d", it.ID), title)
		}
		_, _ = fmt.Fprintln(color.Output, tbl)
	}
}

func printPhotos(photos []domain.Photo) {
	if len(photos) == 0 {
		_, _ = dimColor.Fprintln(color.Output, "No photos.")
		return
	}
	tbl := newTable()
	tbl.AddRow("ID", "UPLOADED", "TITLE", "URL")
	for _, p := range photos {
		tbl.AddRow(fmt.Sprintf("%d", p.ID), p.UploadedAt.Local().Format("2006-01-02 15:04"), p.Title, p.URL)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// printGrid renders a calendar grid. Month grids print one row per week,
// week and day grids print the hourly cells that hold entries.
func printGrid(title string, g domain.Granularity, buckets []domain.Bucket) {
	printTitle(title)
	switch g {
	case domain.GranularityMonth:
		printMonth(buckets)
	case domain.GranularityWeek:
		for _, day := range buckets {
			_, _ = hourColor.Fprintln(color.Output, day.Label)
			printCells(append([]domain.Bucket{{Label: "all day", Entries: day.Entries}}, day.Hours...))
		}
	default:
		printCells(buckets)
	}
}

func printMonth(buckets []domain.Bucket) {
	tbl := newTable()
	tbl.MaxColWidth = 14
	header := make([]interface{}, 0, domain.DaysPerWeek)
	for i := 0; i < domain.DaysPerWeek && i < len(buckets); i++ {
		header = append(header, buckets[i].Start.Format("Mon"))
	}
	tbl.AddRow(header...)

	for w := 0; w+domain.DaysPerWeek <= len(buckets); w += domain.DaysPerWeek {
		row := make([]interface{}, 0, domain.DaysPerWeek)
		for _, b := range buckets[w : w+domain.DaysPerWeek] {
			cell := b.Label
			if !b.InPeriod {
				cell = dimColor.Sprint(cell)
			}
			for _, e := range b.Entries {
				cell += "\n" + entryTitle(e)
			}
			row = append(row, cell)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printCells(cells []domain.Bucket) {
	tbl := newTable()
	for _, b := range cells {
		if len(b.Entries) == 0 {
			continue
		}
		titles := make([]string, 0, len(b.Entries))
		for _, e := range b.Entries {
			t := entryTitle(e)
			if e.HasTime() {
				t = e.Time + " " + t
			}
			titles = append(titles, t)
		}
		tbl.AddRow(hourColor.Sprint(b.Label), strings.Join(titles, "\n"))
	}
	if len(tbl.Rows) == 0 {
		_, _ = dimColor.Fprintln(color.Output, "  nothing scheduled")
		return
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
