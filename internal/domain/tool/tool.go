// Package tool defines the relay's tool contract and registry. Tools are
// named callbacks the hosted model may invoke during response generation;
// each declares a JSON schema for its input and produces a string result.
package tool

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrToolNotRegistered     = errors.New("tool not registered")
	ErrToolValidationFailed  = errors.New("tool params validation failed")
)

// Tool is the contract every relay tool implements.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// InputSchema returns the JSON schema for the tool's parameters.
	InputSchema() map[string]any

	// Execute runs the tool synchronously with the given parameters.
	Execute(ctx context.Context, params json.RawMessage) (string, error)
}
