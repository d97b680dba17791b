package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matiasleandrokruk/agentrelay/internal/domain/agent"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/audit"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// InvocationsHandler bridges POST /invocations to the agent client. The raw
// request body is the prompt: any content type, decoded as UTF-8 with
// best-effort replacement of invalid sequences, empty body allowed.
type InvocationsHandler struct {
	agent   agent.Client
	audit   *audit.Service
	logger  *logging.Logger
	modelID string
}

// NewInvocationsHandler creates the handler. audit may be nil (persistence
// disabled).
func NewInvocationsHandler(client agent.Client, auditSvc *audit.Service, logger *logging.Logger, modelID string) *InvocationsHandler {
	if logger == nil {
		logger = logging.New(nil)
	}
	return &InvocationsHandler{agent: client, audit: auditSvc, logger: logger, modelID: modelID}
}

type invocationResponse struct {
	Response *agent.Result `json:"response"`
}

// Invoke relays the request body to the agent and wraps its result. Any
// failure (body read, agent, model) is logged in full and surfaced to the
// caller as a generic 500. No timeout is applied to the agent call; the
// request context is the only cancellation path.
func (h *InvocationsHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(r, start, 0, err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	// Best-effort decode: invalid UTF-8 byte sequences become replacement
	// characters rather than rejecting the request.
	prompt := strings.ToValidUTF8(string(body), "�")
	h.logger.Info("invocation received: %d bytes", len(body))

	result, err := h.agent.Invoke(r.Context(), prompt)
	if err != nil {
		h.fail(r, start, len(body), err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	h.record(r, audit.Record{
		RequestedAt: start,
		PromptBytes: len(body),
		Outcome:     audit.OutcomeSuccess,
		DurationMS:  time.Since(start).Milliseconds(),
		Turns:       result.Turns,
	})
	writeJSON(w, http.StatusOK, invocationResponse{Response: result})
}

// fail logs the real error and audits the failed invocation. The caller
// still only ever sees the generic message.
func (h *InvocationsHandler) fail(r *http.Request, start time.Time, promptBytes int, err error) {
	h.logger.Error("invocation failed: %v", err)
	msg := err.Error()
	h.record(r, audit.Record{
		RequestedAt:  start,
		PromptBytes:  promptBytes,
		Outcome:      audit.OutcomeError,
		DurationMS:   time.Since(start).Milliseconds(),
		ErrorMessage: &msg,
	})
}

func (h *InvocationsHandler) record(r *http.Request, rec audit.Record) {
	rec.ModelID = h.modelID
	if err := h.audit.Log(r.Context(), rec); err != nil {
		// Auditing must never fail the request.
		h.logger.Error("audit write failed: %v", err)
	}
}
