package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/matiasleandrokruk/agentrelay/internal/domain/tool"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/config"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// Manager owns the connections to every configured MCP server for the
// lifetime of the process.
type Manager struct {
	clients []*Client
	logger  *logging.Logger
}

// NewManager connects to each configured server and registers its tools into
// the registry under namespaced names. A server that fails to connect fails
// startup: a misconfigured tool source should not be discovered at request
// time.
func NewManager(ctx context.Context, servers []config.MCPServer, registry *tool.Registry, logger *logging.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.New(nil)
	}
	m := &Manager{logger: logger}

	for _, srv := range servers {
		client, err := NewClient(ctx, srv.Name, srv.Command, srv.Args, srv.Env)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.clients = append(m.clients, client)

		for _, mcpTool := range client.Tools() {
			adapter := NewToolAdapter(client, mcpTool)
			if err := registry.Register(adapter); err != nil {
				m.Close()
				return nil, fmt.Errorf("mcp: register %s: %w", adapter.Name(), err)
			}
			logger.Info("registered MCP tool %s", adapter.Name())
		}
	}

	return m, nil
}

// Close shuts down every connected server.
func (m *Manager) Close() error {
	var errs []error
	for _, c := range m.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.clients = nil
	return errors.Join(errs...)
}
