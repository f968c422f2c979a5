package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

// RegisterWriteTools adds all mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc *commands.Services) {
	s.AddTool(createEntryTool(), createEntryHandler(svc))
	s.AddTool(updateEntryTool(), updateEntryHandler(svc))
	s.AddTool(deleteEntryTool(), deleteEntryHandler(svc))
	s.AddTool(toggleTaskTool(), toggleTaskHandler(svc))
	s.AddTool(createListTool(), createListHandler(svc))
	s.AddTool(deleteListTool(), deleteListHandler(svc))
	s.AddTool(addItemTool(), addItemHandler(svc))
	s.AddTool(deleteItemTool(), deleteItemHandler(svc))
	s.AddTool(toggleItemTool(), toggleItemHandler(svc))
	s.AddTool(addPhotoTool(), addPhotoHandler(svc))
	s.AddTool(deletePhotoTool(), deletePhotoHandler(svc))
	s.AddTool(updateProfileTool(), updateProfileHandler(svc))
}

func kindParam() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Description("Entry kind"),
		mcp.Enum("calendar", "task", "note"),
		mcp.Required(),
	)
}

// --- create_entry ---

func createEntryTool() mcp.Tool {
	return mcp.NewTool("create_entry",
		mcp.WithDescription("Create a calendar entry, task or note on a date, optionally repeating."),
		kindParam(),
		mcp.WithString("title", mcp.Description("Title"), mcp.Required()),
		mcp.WithString("date", mcp.Description("Date YYYY-MM-DD"), mcp.Required()),
		mcp.WithString("time", mcp.Description("Time of day HH:MM. Omit for an untimed entry.")),
		mcp.WithString("content", mcp.Description("Optional body text")),
		mcp.WithString("repeat",
			mcp.Description("Repeat the entry"),
			mcp.Enum("daily", "weekly", "monthly"),
		),
		mcp.WithNumber("count", mcp.Description("Number of occurrences when repeating")),
	)
}

func createEntryHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := svc.Entries(domain.ParseEntryKind(req.GetString("kind", "")))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewCreateEntryCommand(svc.Sessions, store, domain.Draft{
			Title:   req.GetString("title", ""),
			Content: req.GetString("content", ""),
			Date:    req.GetString("date", ""),
			Time:    req.GetString("time", ""),
		})
		cmd.Repeat = commands.Repeat{
			Frequency: req.GetString("repeat", ""),
			Count:     req.GetInt("count", 0),
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_entry ---

func updateEntryTool() mcp.Tool {
	return mcp.NewTool("update_entry",
		mcp.WithDescription("Change the title, content, date or time of an entry. Only the given fields change."),
		kindParam(),
		mcp.WithString("id", mcp.Description("Entry ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New body text")),
		mcp.WithString("date", mcp.Description("New date YYYY-MM-DD")),
		mcp.WithString("time", mcp.Description("New time HH:MM, or \"none\" to clear it")),
	)
}

func updateEntryHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := svc.Entries(domain.ParseEntryKind(req.GetString("kind", "")))
		if err != nil {
			return toolError(err)
		}

		var patch domain.EntryPatch
		args := req.GetArguments()
		if _, ok := args["title"]; ok {
			v := req.GetString("title", "")
			patch.Title = &v
		}
		if _, ok := args["content"]; ok {
			v := req.GetString("content", "")
			patch.Content = &v
		}
		if _, ok := args["date"]; ok {
			v := req.GetString("date", "")
			patch.Date = &v
		}
		if _, ok := args["time"]; ok {
			v := req.GetString("time", "")
			if v == "none" {
				v = ""
			}
			patch.Time = &v
		}

		result, err := commands.NewUpdateEntryCommand(svc.Sessions, store, req.GetString("id", ""), patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_entry ---

func deleteEntryTool() mcp.Tool {
	return mcp.NewTool("delete_entry",
		mcp.WithDescription("Delete a calendar entry, task or note by ID."),
		kindParam(),
		mcp.WithString("id", mcp.Description("Entry ID"), mcp.Required()),
	)
}

func deleteEntryHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		store, err := svc.Entries(domain.ParseEntryKind(req.GetString("kind", "")))
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteEntryCommand(svc.Sessions, store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- toggle_task ---

func toggleTaskTool() mcp.Tool {
	return mcp.NewTool("toggle_task",
		mcp.WithDescription("Mark a task done or not done. Without done the current state is flipped."),
		mcp.WithString("id", mcp.Description("Task ID"), mcp.Required()),
		mcp.WithBoolean("done", mcp.Description("Target state")),
	)
}

func toggleTaskHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewToggleTaskCommand(svc.Sessions, svc.Tasks, req.GetString("id", ""))
		if _, ok := req.GetArguments()["done"]; ok {
			done := req.GetBool("done", false)
			cmd.Done = &done
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- lists ---

func createListTool() mcp.Tool {
	return mcp.NewTool("create_list",
		mcp.WithDescription("Create a new empty list."),
		mcp.WithString("name", mcp.Description("List name"), mcp.Required()),
	)
}

func createListHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateListCommand(svc.Sessions, svc.Lists, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func deleteListTool() mcp.Tool {
	return mcp.NewTool("delete_list",
		mcp.WithDescription("Delete a list together with all of its items."),
		mcp.WithNumber("list_id", mcp.Description("List ID"), mcp.Required()),
	)
}

func deleteListHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listID := int64(req.GetInt("list_id", 0))
		result, err := commands.NewDeleteListCommand(svc.Sessions, svc.Lists, listID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func addItemTool() mcp.Tool {
	return mcp.NewTool("add_item",
		mcp.WithDescription("Append an item to a list."),
		mcp.WithNumber("list_id", mcp.Description("List ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("Item text"), mcp.Required()),
	)
}

func addItemHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listID := int64(req.GetInt("list_id", 0))
		result, err := commands.NewAddItemCommand(svc.Sessions, svc.Lists, listID, req.GetString("title", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func itemParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("list_id", mcp.Description("List ID"), mcp.Required()),
		mcp.WithNumber("item_id", mcp.Description("Item ID"), mcp.Required()),
	}
}

func deleteItemTool() mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription("Remove an item from a list.")}, itemParams()...)
	return mcp.NewTool("delete_item", opts...)
}

func deleteItemHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listID := int64(req.GetInt("list_id", 0))
		itemID := int64(req.GetInt("item_id", 0))
		result, err := commands.NewDeleteItemCommand(svc.Sessions, svc.Lists, listID, itemID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func toggleItemTool() mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription("Flip the done state of a list item.")}, itemParams()...)
	return mcp.NewTool("toggle_item", opts...)
}

func toggleItemHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listID := int64(req.GetInt("list_id", 0))
		itemID := int64(req.GetInt("item_id", 0))
		result, err := commands.NewToggleItemCommand(svc.Sessions, svc.Lists, listID, itemID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- gallery ---

func addPhotoTool() mcp.Tool {
	return mcp.NewTool("add_photo",
		mcp.WithDescription("Add a photo to the gallery from a URL or a local file path."),
		mcp.WithString("url", mcp.Description("Image URL")),
		mcp.WithString("file", mcp.Description("Local file to upload")),
		mcp.WithString("title", mcp.Description("Title, defaults to Untitled")),
	)
}

func addPhotoHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewAddPhotoCommand(svc.Sessions, svc.Photos,
			req.GetString("url", ""), req.GetString("file", ""), req.GetString("title", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func deletePhotoTool() mcp.Tool {
	return mcp.NewTool("delete_photo",
		mcp.WithDescription("Delete a gallery photo and its uploaded file."),
		mcp.WithNumber("id", mcp.Description("Photo ID"), mcp.Required()),
	)
}

func deletePhotoHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeletePhotoCommand(svc.Sessions, svc.Photos, int64(req.GetInt("id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- profile ---

func updateProfileTool() mcp.Tool {
	return mcp.NewTool("update_profile",
		mcp.WithDescription("Save the profile name, bio and avatar URL."),
		mcp.WithString("name", mcp.Description("Display name"), mcp.Required()),
		mcp.WithString("bio", mcp.Description("Short bio")),
		mcp.WithString("avatar", mcp.Description("Avatar URL")),
	)
}

func updateProfileHandler(svc *commands.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := domain.Profile{
			Name:   req.GetString("name", ""),
			Bio:    req.GetString("bio", ""),
			Avatar: req.GetString("avatar", ""),
		}
		result, err := commands.NewUpdateProfileCommand(svc.Sessions, svc.Profiles, p).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
