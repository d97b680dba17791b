package tool

import (
	"context"
	"encoding/json"
	"time"
)

// BuiltinCurrentTime is the name of the built-in clock tool.
const BuiltinCurrentTime = "current_time"

// CurrentTimeTool reports the current wall-clock time in UTC as an ISO-8601
// (RFC 3339) string. It takes no parameters.
type CurrentTimeTool struct {
	// now is swappable for tests; nil means time.Now.
	now func() time.Time
}

func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{}
}

func (t *CurrentTimeTool) Name() string {
	return BuiltinCurrentTime
}

func (t *CurrentTimeTool) Description() string {
	return "Returns the current time in ISO 8601 format (UTC)."
}

func (t *CurrentTimeTool) InputSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"additionalProperties": false,
	}
}

func (t *CurrentTimeTool) Execute(_ context.Context, _ json.RawMessage) (string, error) {
	now := time.Now
	if t.now != nil {
		now = t.now
	}
	return now().UTC().Format(time.RFC3339), nil
}

// RegisterBuiltins registers the relay's built-in tools into the registry.
func RegisterBuiltins(r *Registry) error {
	return r.Register(NewCurrentTimeTool())
}
