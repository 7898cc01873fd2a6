package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
)

func registerTools(srv *server.MCPServer, svc *Service, now func() time.Time) {
	registerGetAlmanacTool(srv, svc, now)
	registerUpdateJournalFieldTool(srv, svc, now)
	registerSaveProfileTool(srv, svc)
	registerAnalyzeDayTool(srv, svc, now)
	registerListHistoryTool(srv, svc)
}

func dateOption() mcp.ToolOption {
	return mcp.WithString("date",
		mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
	)
}

func registerGetAlmanacTool(srv *server.MCPServer, svc *Service, now func() time.Time) {
	tool := mcp.NewTool(
		"get_almanac",
		mcp.WithDescription("Return the traditional almanac for a day, generating and caching it when missing."),
		dateOption(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := ParseDay(args.Date, entry.Today(now()))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.FetchAlmanac(ctx, day))
	})
}

func registerUpdateJournalFieldTool(srv *server.MCPServer, svc *Service, now func() time.Time) {
	fields := make([]string, 0, len(entry.Fields()))
	for _, f := range entry.Fields() {
		fields = append(fields, string(f))
	}

	tool := mcp.NewTool(
		"update_journal_field",
		mcp.WithDescription("Set one field of a day's journal entry and save the entry."),
		dateOption(),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Journal field to change."),
			mcp.Enum(fields...),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value. mood takes 1-5, finance amounts take numbers, healthStatus takes Good, Fair or Poor."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date  string `json:"date"`
			Field string `json:"field"`
			Value string `json:"value"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := ParseDay(args.Date, entry.Today(now()))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		e, err := svc.UpdateJournalField(ctx, day, args.Field, args.Value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	})
}

func registerSaveProfileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_profile",
		mcp.WithDescription("Save the user's name and birth data. All fields are required."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name.")),
		mcp.WithString("birthDate", mcp.Required(), mcp.Description("Birth date as YYYY-MM-DD.")),
		mcp.WithString("birthTime", mcp.Required(), mcp.Description("Birth time as HH:mm.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var draft profile.Profile
		if err := request.BindArguments(&draft); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		p, err := svc.SaveProfile(ctx, draft)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerAnalyzeDayTool(srv *server.MCPServer, svc *Service, now func() time.Time) {
	tool := mcp.NewTool(
		"analyze_day",
		mcp.WithDescription("Generate a personal reading for a day from the profile, the almanac and the journal. Requires a saved profile and at least one journal note."),
		dateOption(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		day, err := ParseDay(args.Date, entry.Today(now()))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Analyze(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_history",
		mcp.WithDescription("List the days that have a journal entry, newest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := svc.History(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  items,
			"count": len(items),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
