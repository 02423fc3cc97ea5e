package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string

	// ToolCalls is set on assistant messages that requested tools.
	ToolCalls []ToolCall

	// ToolCallId and Name are set on tool-result messages.
	ToolCallId string
	Name       string
}

// ToolCall is a structured request from the model to invoke a named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Tool describes a callable function exposed to the model.
// Parameters is a JSON schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Response is the model's reply: plain content, tool calls, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model asked for tool execution.
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}

// Empty reports whether the response carries neither content nor tool calls.
// Some providers intermittently return such responses; callers should retry
// through a fallback invocation path before giving up.
func (r *Response) Empty() bool {
	return r == nil || (r.Content == "" && len(r.ToolCalls) == 0)
}

// StreamHandler receives incremental content deltas during ChatStream.
type StreamHandler func(delta string)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend.
type Provider interface {
	// Chat sends a chat history plus a tool catalog and returns the
	// response, which may contain tool calls.
	Chat(ctx context.Context, history []Message, tools []Tool, options ...Option) (*Response, error)

	// ChatStream behaves like Chat but pushes content deltas to onDelta as
	// they arrive. The returned Response carries the full content and any
	// tool calls once the stream completes.
	ChatStream(ctx context.Context, history []Message, tools []Tool, onDelta StreamHandler, options ...Option) (*Response, error)

	// Generate sends a single prompt without tools (fallback path).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
