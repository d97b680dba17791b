package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/agentrelay/internal/domain/tool"
)

// caller is the slice of Client the adapter needs; split out so tests can
// fake the transport.
type caller interface {
	Name() string
	CallTool(ctx context.Context, toolName string, arguments map[string]any) (*mcp.CallToolResult, error)
}

// ToolAdapter exposes one MCP tool as a tool.Tool. Names are namespaced
// "server_tool" so tools from different servers never collide in the
// registry.
type ToolAdapter struct {
	client         caller
	mcpTool        *mcp.Tool
	namespacedName string
}

var _ tool.Tool = (*ToolAdapter)(nil)

// NewToolAdapter creates an adapter for one MCP tool.
func NewToolAdapter(client caller, mcpTool *mcp.Tool) *ToolAdapter {
	return &ToolAdapter{
		client:         client,
		mcpTool:        mcpTool,
		namespacedName: fmt.Sprintf("%s_%s", client.Name(), mcpTool.Name),
	}
}

func (a *ToolAdapter) Name() string {
	return a.namespacedName
}

func (a *ToolAdapter) Description() string {
	desc := a.mcpTool.Description
	if desc == "" {
		desc = fmt.Sprintf("Tool provided by the %s MCP server", a.client.Name())
	}
	return desc
}

// InputSchema converts the SDK's schema value into the map form the registry
// validates against. An absent or unconvertible schema degrades to an open
// object schema.
func (a *ToolAdapter) InputSchema() map[string]any {
	open := map[string]any{"type": "object", "properties": map[string]any{}}
	if a.mcpTool.InputSchema == nil {
		return open
	}
	raw, err := json.Marshal(a.mcpTool.InputSchema)
	if err != nil {
		return open
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return open
	}
	return schema
}

func (a *ToolAdapter) Execute(ctx context.Context, params json.RawMessage) (string, error) {
	args := map[string]any{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &args); err != nil {
			return "", fmt.Errorf("mcp: invalid parameters for %s: %w", a.namespacedName, err)
		}
	}

	result, err := a.client.CallTool(ctx, a.mcpTool.Name, args)
	if err != nil {
		return "", err
	}
	if result.IsError {
		return "", fmt.Errorf("mcp: tool %s returned an error: %s", a.namespacedName, flattenContent(result.Content))
	}
	return flattenContent(result.Content), nil
}

// flattenContent joins MCP content items into one string result.
func flattenContent(content []mcp.Content) string {
	var parts []string
	for _, item := range content {
		switch c := item.(type) {
		case *mcp.TextContent:
			parts = append(parts, c.Text)
		case *mcp.ImageContent:
			parts = append(parts, fmt.Sprintf("[image: %s]", c.MIMEType))
		case *mcp.AudioContent:
			parts = append(parts, fmt.Sprintf("[audio: %s]", c.MIMEType))
		default:
			data, err := json.Marshal(item)
			if err != nil {
				parts = append(parts, fmt.Sprintf("[unknown content type %T]", item))
				continue
			}
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n")
}
