// Package agent implements the relay's agent client: a prompt goes in, the
// hosted model runs (invoking registered tools as it sees fit), and a single
// result comes back. The handler depends only on the Client interface.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client is the single-operation contract the relay invokes per request.
// Implementations must be safe for concurrent use; each Invoke call is an
// independent conversation with no shared per-request state.
type Client interface {
	Invoke(ctx context.Context, prompt string) (*Result, error)
}

// Kind discriminates the two result shapes an agent may produce.
type Kind string

const (
	KindText       Kind = "text"
	KindStructured Kind = "structured"
)

// Result is the tagged union returned by an agent invocation: either plain
// text or an already-serialized JSON document. It marshals as a JSON string
// or as the raw document respectively, so handlers can embed it verbatim in
// a response wrapper.
type Result struct {
	Kind       Kind
	Text       string
	Structured json.RawMessage

	// Turns is the number of model round-trips the invocation took.
	Turns int
}

// TextResult wraps plain model output.
func TextResult(text string) *Result {
	return &Result{Kind: KindText, Text: text}
}

// StructuredResult wraps a pre-serialized JSON document.
func StructuredResult(raw json.RawMessage) *Result {
	return &Result{Kind: KindStructured, Structured: raw}
}

// MarshalJSON serializes the active member of the union.
func (r *Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindText:
		return json.Marshal(r.Text)
	case KindStructured:
		if !json.Valid(r.Structured) {
			return nil, fmt.Errorf("agent: structured result is not valid JSON")
		}
		return r.Structured, nil
	default:
		return nil, fmt.Errorf("agent: unknown result kind %q", r.Kind)
	}
}
