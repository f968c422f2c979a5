// Package mcp exposes the daybook commands as MCP tools.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc *commands.Services) {
	s.AddTool(calendarTool(), calendarHandler(svc))
	s.AddTool(listEntriesTool(), listEntriesHandler(svc))
	s.AddTool(showListsTool(), showListsHandler(svc))
	s.AddTool(listPhotosTool(), listPhotosHandler(svc))
	s.AddTool(getProfileTool(), getProfileHandler(svc))
	s.AddTool(exportTool(), exportHandler(svc))
}

// --- calendar ---

func calendarTool() mcp.Tool {
	return mcp.NewTool("calendar",
		mcp.WithDescription("Show the calendar for the month, week or day around a date, with every calendar entry, task and note placed in its cell."),
		mcp.WithString("date",
			mcp.Description("Anchor date YYYY-MM-DD. Omit for today."),
		),
		mcp.WithString("view",
			mcp.Description("Granularity of the grid"),
			mcp.Enum("month", "week", "day"),
		),
		mcp.WithString("step",
			mcp.Description("Move the anchor one period before rendering"),
			mcp.Enum("next", "prev"),
		),
	)
}

func calendarHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cursor, err := cursorFrom(svc, req)
		if err != nil {
			return toolError(err)
		}

		res, err := commands.NewCalendarViewCommand(svc.Sessions, cursor, svc.EntryStores()...).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(res.Title)
		sb.WriteString("\n")
		renderBuckets(&sb, res.Buckets, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func cursorFrom(svc *commands.Services, req mcp.CallToolRequest) (domain.Cursor, error) {
	cursor := svc.Cursor()
	anchor, err := svc.ParseDate(req.GetString("date", ""))
	if err != nil {
		return cursor, err
	}
	cursor.Anchor = anchor

	g, err := domain.ParseGranularity(req.GetString("view", "month"))
	if err != nil {
		return cursor, err
	}
	cursor.SetGranularity(g)

	switch req.GetString("step", "") {
	case "next":
		cursor.Step(domain.Next)
	case "prev":
		cursor.Step(domain.Prev)
	case "":
	default:
		return cursor, fmt.Errorf("step must be next or prev")
	}
	return cursor, nil
}

// renderBuckets lists the non-empty cells of a grid
func renderBuckets(sb *strings.Builder, buckets []domain.Bucket, indent string) {
	for _, b := range buckets {
		if len(b.Entries) == 0 && len(b.Hours) == 0 {
			continue
		}
		if len(b.Entries) > 0 {
			label := b.Date
			if b.Span == domain.SpanHour {
				label = b.Date + " " + b.Label
			}
			fmt.Fprintf(sb, "%s%s\n", indent, label)
			for _, e := range b.Entries {
				fmt.Fprintf(sb, "%s  %s\n", indent, formatEntry(e))
			}
		}
		renderBuckets(sb, b.Hours, indent)
	}
}

// --- list_entries ---

func listEntriesTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List calendar entries, tasks or notes dated within an inclusive range."),
		mcp.WithString("kind",
			mcp.Description("Entry kind"),
			mcp.Enum("calendar", "task", "note"),
			mcp.Required(),
		),
		mcp.WithString("from", mcp.Description("First date YYYY-MM-DD. Omit for no lower bound.")),
		mcp.WithString("to", mcp.Description("Last date YYYY-MM-DD. Omit for no upper bound.")),
	)
}

func listEntriesHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := svc.Entries(domain.ParseEntryKind(req.GetString("kind", "")))
		if err != nil {
			return toolError(err)
		}
		entries, err := commands.NewListEntriesCommand(svc.Sessions, store,
			req.GetString("from", ""), req.GetString("to", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatEntry)
	}
}

// --- show_lists ---

func showListsTool() mcp.Tool {
	return mcp.NewTool("show_lists",
		mcp.WithDescription("Show the user's lists with their items as checklists."),
		mcp.WithNumber("list_id",
			mcp.Description("Show only this list. Omit for all lists."),
		),
	)
}

func showListsHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewShowListsCommand(svc.Sessions, svc.Lists)
		cmd.ListID = int64(req.GetInt("list_id", 0))
		cmd.Reload = true
		lists, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(lists, formatList)
	}
}

// --- list_photos ---

func listPhotosTool() mcp.Tool {
	return mcp.NewTool("list_photos",
		mcp.WithDescription("List the gallery photos, newest first."),
	)
}

func listPhotosHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		photos, err := commands.NewListPhotosCommand(svc.Sessions, svc.Photos).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(photos, formatPhoto)
	}
}

// --- get_profile ---

func getProfileTool() mcp.Tool {
	return mcp.NewTool("get_profile",
		mcp.WithDescription("Show the signed in user's profile."),
	)
}

func getProfileHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewGetProfileCommand(svc.Sessions, svc.Profiles).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		p := res.Profile
		text := fmt.Sprintf("name: %s\nemail: %s\nbio: %s\navatar: %s\n", p.Name, res.Email, p.Bio, p.Avatar)
		if res.Message != "" {
			text = res.Message + "\n" + text
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- export_calendar ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_calendar",
		mcp.WithDescription("Export calendar entries as an iCalendar (.ics) document."),
		mcp.WithString("from", mcp.Description("First date YYYY-MM-DD")),
		mcp.WithString("to", mcp.Description("Last date YYYY-MM-DD")),
	)
}

func exportHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var buf bytes.Buffer
		cmd := commands.NewExportCalendarCommand(svc.Sessions, svc.Calendar, svc.Codec, &buf)
		cmd.From = req.GetString("from", "")
		cmd.To = req.GetString("to", "")
		if _, err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e domain.DatedEntry) string {
	when := e.Date
	if e.HasTime() {
		when += " " + e.Time
	}
	mark := ""
	if e.Kind == domain.EntryKindTask {
		mark = "[ ] "
		if e.Done {
			mark = "[x] "
		}
	}
	return fmt.Sprintf("%s  %s  %s%s", e.ID, when, mark, e.Title)
}

func formatList(l domain.ListRecord) string {
	return fmt.Sprintf("#%d %s", l.ID, strings.TrimRight(l.PlainText(), "\n"))
}

func formatPhoto(p domain.Photo) string {
	return fmt.Sprintf("%d  %s  %s  %s", p.ID, p.UploadedAt.Format("2006-01-02 15:04"), p.Title, p.URL)
}
