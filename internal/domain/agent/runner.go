package agent

import (
	"context"
	"fmt"

	"github.com/matiasleandrokruk/agentrelay/internal/domain/tool"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/bedrock"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// ModelInvoker is the seam between the agent loop and the Bedrock client.
// bedrock.Client satisfies it; tests substitute a scripted fake.
type ModelInvoker interface {
	Invoke(ctx context.Context, request *bedrock.Request) (*bedrock.Response, error)
}

// Config bounds one agent invocation.
type Config struct {
	SystemPrompt string
	MaxTokens    int
	MaxTurns     int
}

// Runner is the Bedrock-backed Client. It owns the model handle and the tool
// registry for the lifetime of the process; both are read-only after
// construction, so Runner is safe for concurrent use.
type Runner struct {
	model  ModelInvoker
	tools  *tool.Registry
	logger *logging.Logger
	config Config
}

// NewRunner creates a Runner. A zero MaxTurns defaults to 8, a zero
// MaxTokens to 1024.
func NewRunner(model ModelInvoker, tools *tool.Registry, logger *logging.Logger, cfg Config) *Runner {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 8
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Runner{model: model, tools: tools, logger: logger, config: cfg}
}

// Invoke runs the tool-use loop: send the prompt with tool declarations,
// execute any tools the model requests, feed results back, and return the
// final text once the model stops. No timeout is applied here; ctx is the
// only way out of a hung model call.
func (r *Runner) Invoke(ctx context.Context, prompt string) (*Result, error) {
	messages := []bedrock.Message{
		{Role: bedrock.RoleUser, Content: []bedrock.ContentBlock{bedrock.TextBlock(prompt)}},
	}

	for turn := 1; turn <= r.config.MaxTurns; turn++ {
		resp, err := r.model.Invoke(ctx, &bedrock.Request{
			MaxTokens: r.config.MaxTokens,
			System:    r.config.SystemPrompt,
			Messages:  messages,
			Tools:     r.toolDeclarations(),
		})
		if err != nil {
			return nil, fmt.Errorf("model invocation failed on turn %d: %w", turn, err)
		}

		if resp.StopReason != bedrock.StopReasonToolUse {
			result := TextResult(resp.Text())
			result.Turns = turn
			return result, nil
		}

		// The model paused to call tools: run them and answer each
		// tool_use block with a tool_result block.
		messages = append(messages, bedrock.Message{
			Role:    bedrock.RoleAssistant,
			Content: resp.Content,
		})
		results := make([]bedrock.ContentBlock, 0, len(resp.ToolUses()))
		for _, use := range resp.ToolUses() {
			results = append(results, r.executeTool(ctx, use))
		}
		messages = append(messages, bedrock.Message{
			Role:    bedrock.RoleUser,
			Content: results,
		})
	}

	return nil, fmt.Errorf("max turns (%d) exceeded", r.config.MaxTurns)
}

// executeTool runs one requested tool. Failures are reported back to the
// model as an errored tool_result instead of aborting the invocation; the
// model decides how to proceed.
func (r *Runner) executeTool(ctx context.Context, use bedrock.ContentBlock) bedrock.ContentBlock {
	out, err := r.tools.Execute(ctx, use.Name, use.Input)
	if err != nil {
		r.logger.Tool("%s failed: %v", use.Name, err)
		return bedrock.ToolResultBlock(use.ID, err.Error(), true)
	}
	r.logger.Tool("%s -> %s", use.Name, out)
	return bedrock.ToolResultBlock(use.ID, out, false)
}

func (r *Runner) toolDeclarations() []bedrock.Tool {
	registered := r.tools.List()
	if len(registered) == 0 {
		return nil
	}
	out := make([]bedrock.Tool, 0, len(registered))
	for _, t := range registered {
		out = append(out, bedrock.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return out
}
