// Package bedrock implements the hosted-model backend: the Anthropic
// messages wire format and an InvokeModel client for AWS Bedrock.
package bedrock

import "encoding/json"

// Stop reasons returned by the model.
const (
	StopReasonEndTurn   = "end_turn"
	StopReasonToolUse   = "tool_use"
	StopReasonMaxTokens = "max_tokens"
)

// Content block types.
const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is the InvokeModel request body for Anthropic models on Bedrock.
type Request struct {
	AnthropicVersion string    `json:"anthropic_version"`
	Messages         []Message `json:"messages"`
	MaxTokens        int       `json:"max_tokens,omitempty"`
	System           string    `json:"system,omitempty"`
	Tools            []Tool    `json:"tools,omitempty"`
	StopSequences    []string  `json:"stop_sequences,omitempty"`
}

// Tool declares an invocable tool to the model.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

// Message is one turn in the conversation.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single content item. Type selects which of the optional
// fields are populated: text blocks carry Text; tool_use blocks carry ID,
// Name and Input; tool_result blocks carry ToolUseID and Content.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockTypeText, Text: text}
}

// ToolResultBlock builds a tool_result content block answering the tool_use
// block identified by toolUseID.
func ToolResultBlock(toolUseID, content string, isError bool) ContentBlock {
	return ContentBlock{
		Type:      BlockTypeToolResult,
		ToolUseID: toolUseID,
		Content:   content,
		IsError:   isError,
	}
}

// Response is the InvokeModel response body.
type Response struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Role         string         `json:"role"`
	Content      []ContentBlock `json:"content"`
	Model        string         `json:"model"`
	StopReason   string         `json:"stop_reason"`
	StopSequence string         `json:"stop_sequence"`
	Usage        *Usage         `json:"usage"`
}

// Usage reports token consumption for one invocation.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Text concatenates all text blocks in the response content.
func (r *Response) Text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			out += block.Text
		}
	}
	return out
}

// ToolUses returns all tool_use blocks in the response content.
func (r *Response) ToolUses() []ContentBlock {
	var out []ContentBlock
	for _, block := range r.Content {
		if block.Type == BlockTypeToolUse {
			out = append(out, block)
		}
	}
	return out
}
