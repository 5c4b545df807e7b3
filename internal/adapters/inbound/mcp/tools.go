package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/safeflag/safeflag/internal/adapters/outbound/config"
	"github.com/safeflag/safeflag/internal/adapters/outbound/gitinfo"
	"github.com/safeflag/safeflag/internal/adapters/outbound/scanner"
	"github.com/safeflag/safeflag/internal/application"
)

// registerTools registers all safeflag MCP tools on the given server.
func registerTools(s *server.MCPServer, sourcePath, configPath string) {
	// 1. safeflag_verify
	s.AddTool(
		mcplib.NewTool("safeflag_verify",
			mcplib.WithDescription("Verify that every feature flag referenced in code is declared in the flag configuration. Returns the full report as JSON."),
		),
		handleVerify(sourcePath, configPath),
	)

	// 2. safeflag_decide
	s.AddTool(
		mcplib.NewTool("safeflag_decide",
			mcplib.WithDescription("Evaluate the rollout gate for one flag and subject"),
			mcplib.WithString("flag",
				mcplib.Required(),
				mcplib.Description("Name of the flag to evaluate"),
			),
			mcplib.WithString("subject",
				mcplib.Required(),
				mcplib.Description("Subject identifier (typically a user id)"),
			),
			mcplib.WithString("environment",
				mcplib.Description("Current deployment environment"),
			),
		),
		handleDecide(configPath),
	)

	// 3. safeflag_list_flags
	s.AddTool(
		mcplib.NewTool("safeflag_list_flags",
			mcplib.WithDescription("Returns the declared flags and their rollout settings as JSON"),
		),
		handleListFlags(configPath),
	)
}

func handleVerify(sourcePath, configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewVerifyService(scanner.New(), config.New(), gitinfo.New())
		report, err := svc.Verify(sourcePath, configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("verification failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleDecide(configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		flagName, err := request.RequireString("flag")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		subjectID, err := request.RequireString("subject")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		environment, _ := request.GetArguments()["environment"].(string)

		svc := application.NewDecideService(config.New())
		decision, err := svc.Decide(configPath, flagName, subjectID, environment, time.Now())
		if err != nil {
			return errorResult(fmt.Sprintf("decide failed: %v", err)), nil
		}
		return jsonResult(decision)
	}
}

func handleListFlags(configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		flags, err := config.New().Load(configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		out := make([]map[string]interface{}, 0, flags.Len())
		for _, name := range flags.Names() {
			cfg, _ := flags.Get(name)
			out = append(out, map[string]interface{}{
				"name":               name,
				"enabled":            cfg.Enabled,
				"environments":       cfg.Environments,
				"rollout_percentage": cfg.RolloutPercentage,
				"enabled_subjects":   cfg.EnabledSubjects,
				"start_date":         cfg.StartDate,
				"end_date":           cfg.EndDate,
			})
		}
		return jsonResult(out)
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return mcplib.NewToolResultError(msg)
}
