package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// fakeTool is a minimal Tool for registry tests.
type fakeTool struct {
	name   string
	schema map[string]any
	out    string
	err    error
}

func (f *fakeTool) Name() string                { return f.name }
func (f *fakeTool) Description() string         { return "fake tool" }
func (f *fakeTool) InputSchema() map[string]any { return f.schema }
func (f *fakeTool) Execute(_ context.Context, _ json.RawMessage) (string, error) {
	return f.out, f.err
}

func openSchema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func TestRegister_RejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&fakeTool{name: "echo", schema: openSchema()}); err != nil {
		t.Fatalf("first Register error = %v", err)
	}
	err := r.Register(&fakeTool{name: "echo", schema: openSchema()})
	if !errors.Is(err, ErrToolAlreadyRegistered) {
		t.Fatalf("duplicate Register error = %v, want ErrToolAlreadyRegistered", err)
	}
}

func TestRegister_RejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "  ", schema: openSchema()}); err == nil {
		t.Fatal("expected error for blank tool name")
	}
}

func TestGetAndList(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha"} {
		if err := r.Register(&fakeTool{name: name, schema: openSchema()}); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	if _, err := r.Get("alpha"); err != nil {
		t.Errorf("Get(alpha) error = %v", err)
	}
	if _, err := r.Get("missing"); !errors.Is(err, ErrToolNotRegistered) {
		t.Errorf("Get(missing) error = %v, want ErrToolNotRegistered", err)
	}

	list := r.List()
	if len(list) != 2 || list[0].Name() != "alpha" || list[1].Name() != "zeta" {
		t.Errorf("List() not sorted by name: %v", []string{list[0].Name(), list[1].Name()})
	}
}

func TestExecute_ValidatesSchema(t *testing.T) {
	r := NewRegistry()
	schema := map[string]any{
		"type":                 "object",
		"required":             []any{"city"},
		"properties":           map[string]any{"city": map[string]any{"type": "string"}},
		"additionalProperties": false,
	}
	if err := r.Register(&fakeTool{name: "weather", schema: schema, out: "sunny"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		params  string
		wantErr bool
	}{
		{"valid", `{"city":"lisbon"}`, false},
		{"missing required", `{}`, true},
		{"unknown field", `{"city":"lisbon","units":"c"}`, true},
		{"not an object", `[1,2]`, true},
	}
	for _, tt := range tests {
		_, err := r.Execute(context.Background(), "weather", json.RawMessage(tt.params))
		if tt.wantErr && !errors.Is(err, ErrToolValidationFailed) {
			t.Errorf("%s: error = %v, want ErrToolValidationFailed", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error = %v", tt.name, err)
		}
	}
}

func TestExecute_EmptyParamsTreatedAsEmptyObject(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "noop", schema: openSchema(), out: "ok"}); err != nil {
		t.Fatal(err)
	}

	out, err := r.Execute(context.Background(), "noop", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q, want ok", out)
	}
}

func TestExecute_PropagatesToolError(t *testing.T) {
	r := NewRegistry()
	boom := fmt.Errorf("tool exploded")
	if err := r.Register(&fakeTool{name: "bad", schema: openSchema(), err: boom}); err != nil {
		t.Fatal(err)
	}

	_, err := r.Execute(context.Background(), "bad", json.RawMessage(`{}`))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped tool error", err)
	}
}
