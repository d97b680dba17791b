package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Registry holds the fixed set of tools available to the agent. Tools are
// registered once at startup; the registry is read-only afterwards and safe
// for concurrent use without locking.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its own name. Names are unique within the
// registry; registering a duplicate is an error.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return ErrToolNotRegistered
	}
	name := strings.TrimSpace(t.Name())
	if name == "" {
		return ErrToolNotRegistered
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, name)
	}
	r.tools[name] = t
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotRegistered, name)
	}
	return t, nil
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Execute validates params against the tool's declared schema and runs it.
func (r *Registry) Execute(ctx context.Context, name string, params json.RawMessage) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}
	if err := validateParams(t.InputSchema(), params); err != nil {
		return "", err
	}
	return t.Execute(ctx, params)
}

// validateParams enforces the minimal subset of JSON schema the registry
// cares about: required keys and additionalProperties=false.
func validateParams(schema map[string]any, params json.RawMessage) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	var input map[string]any
	if err := json.Unmarshal(params, &input); err != nil {
		return fmt.Errorf("%w: params must be a json object", ErrToolValidationFailed)
	}

	for _, key := range extractStringSlice(schema["required"]) {
		if _, ok := input[key]; !ok {
			return fmt.Errorf("%w: missing required field %q", ErrToolValidationFailed, key)
		}
	}

	allowAdditional := true
	if v, ok := schema["additionalProperties"].(bool); ok {
		allowAdditional = v
	}
	if allowAdditional {
		return nil
	}

	allowedProps := map[string]struct{}{}
	if props, ok := schema["properties"].(map[string]any); ok {
		for key := range props {
			allowedProps[key] = struct{}{}
		}
	}
	for key := range input {
		if _, ok := allowedProps[key]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrToolValidationFailed, key)
		}
	}

	return nil
}

func extractStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
