// Package mcp connects the relay to external MCP servers over stdio and
// exposes their tools through the relay's tool registry.
package mcp

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/agentrelay/internal/version"
)

// Client wraps the official MCP SDK client and one live session.
type Client struct {
	name    string
	client  *mcp.Client
	session *mcp.ClientSession
	tools   []*mcp.Tool
}

// NewClient spawns the MCP server process, connects over stdio, and collects
// its tool list.
func NewClient(ctx context.Context, name, command string, args []string, env map[string]string) (*Client, error) {
	cmd := exec.Command(command, args...)
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), formatEnvVars(env)...)
	}

	impl := &mcp.Implementation{
		Name:    "agentrelay",
		Version: version.Version,
	}
	client := mcp.NewClient(impl, nil)

	transport := &mcp.CommandTransport{Command: cmd}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("mcp: connect to server %q: %w", name, err)
	}

	var tools []*mcp.Tool
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("mcp: list tools from %q: %w", name, err)
		}
		tools = append(tools, tool)
	}

	return &Client{name: name, client: client, session: session, tools: tools}, nil
}

// Name returns the configured server name.
func (c *Client) Name() string {
	return c.name
}

// Tools returns the tool list collected at connect time.
func (c *Client) Tools() []*mcp.Tool {
	return c.tools
}

// CallTool executes one tool on the server.
func (c *Client) CallTool(ctx context.Context, toolName string, arguments map[string]any) (*mcp.CallToolResult, error) {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp: call tool %q on %q: %w", toolName, c.name, err)
	}
	return result, nil
}

// Close shuts down the session and the server process.
func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func formatEnvVars(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for key, value := range env {
		result = append(result, fmt.Sprintf("%s=%s", key, value))
	}
	return result
}
