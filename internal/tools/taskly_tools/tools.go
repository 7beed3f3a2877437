package taskly_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mytaskly/taskly-mcp/internal/facade"
)

// getAuthorizationFromArgs extracts the authorization argument. An empty
// string is fine here: credential validation happens in the facade so every
// transport rejects it the same way.
func getAuthorizationFromArgs(args map[string]interface{}) string {
	authorization, _ := args["authorization"].(string)
	return authorization
}

func getStringOrDefault(args map[string]interface{}, key, fallback string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// RegisterTasklyTools registers all task board tools with the MCP server.
func RegisterTasklyTools(s *mcpserver.MCPServer, f *facade.Facade) error {
	registerGetTasksTool(s, f)
	registerGetCategoriesTool(s, f)
	registerCreateNoteTool(s, f)
	registerHealthCheckTool(s, f)

	registered := []string{
		facade.OpGetTasks,
		facade.OpGetCategories,
		facade.OpCreateNote,
		facade.OpHealthCheck,
	}
	if err := facade.ValidateRegistration(registered); err != nil {
		return fmt.Errorf("failed to register taskly tools: %w", err)
	}
	return nil
}

func registerGetTasksTool(s *mcpserver.MCPServer, f *facade.Facade) {
	getTasksTool := mcp.NewTool(facade.OpGetTasks,
		mcp.WithDescription("Retrieve the authenticated user's tasks, formatted for mobile display"),
		mcp.WithString("authorization",
			mcp.Required(),
			mcp.Description("Bearer credential of the user, e.g. 'Bearer eyJ...'"),
		),
	)

	s.AddTool(getTasksTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		view, err := f.GetTasks(ctx, getAuthorizationFromArgs(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get tasks: %v", err)), nil
		}

		result, _ := json.MarshalIndent(view, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})
}

func registerGetCategoriesTool(s *mcpserver.MCPServer, f *facade.Facade) {
	getCategoriesTool := mcp.NewTool(facade.OpGetCategories,
		mcp.WithDescription("Retrieve the authenticated user's task categories"),
		mcp.WithString("authorization",
			mcp.Required(),
			mcp.Description("Bearer credential of the user, e.g. 'Bearer eyJ...'"),
		),
	)

	s.AddTool(getCategoriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		result, err := f.GetCategories(ctx, getAuthorizationFromArgs(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get categories: %v", err)), nil
		}

		payload, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(payload)), nil
	})
}

func registerCreateNoteTool(s *mcpserver.MCPServer, f *facade.Facade) {
	createNoteTool := mcp.NewTool(facade.OpCreateNote,
		mcp.WithDescription("Create a sticky note on the authenticated user's board"),
		mcp.WithString("authorization",
			mcp.Required(),
			mcp.Description("Bearer credential of the user, e.g. 'Bearer eyJ...'"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The text of the note"),
		),
		mcp.WithString("position_x",
			mcp.Description("Horizontal position on the board (default: '0')"),
			mcp.DefaultString(facade.DefaultNotePosition),
		),
		mcp.WithString("position_y",
			mcp.Description("Vertical position on the board (default: '0')"),
			mcp.DefaultString(facade.DefaultNotePosition),
		),
		mcp.WithString("color",
			mcp.Description("Note color as a hex value (default: '#FFEB3B')"),
			mcp.DefaultString(facade.DefaultNoteColor),
		),
	)

	s.AddTool(createNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		req := facade.NoteRequest{
			Title:     getStringOrDefault(args, "title", ""),
			PositionX: getStringOrDefault(args, "position_x", facade.DefaultNotePosition),
			PositionY: getStringOrDefault(args, "position_y", facade.DefaultNotePosition),
			Color:     getStringOrDefault(args, "color", facade.DefaultNoteColor),
		}

		note, err := f.CreateNote(ctx, getAuthorizationFromArgs(args), req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create note: %v", err)), nil
		}

		result, _ := json.MarshalIndent(note, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})
}

func registerHealthCheckTool(s *mcpserver.MCPServer, f *facade.Facade) {
	healthCheckTool := mcp.NewTool(facade.OpHealthCheck,
		mcp.WithDescription("Report the health of this server and of the backend"),
	)

	s.AddTool(healthCheckTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, _ := json.MarshalIndent(f.HealthCheck(ctx), "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	})
}
