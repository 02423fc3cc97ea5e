package tools

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// HandoffSetter flips a session into human-support mode. The operation must
// be idempotent since the model may request handoff on consecutive turns.
type HandoffSetter interface {
	SetHumanSupport(ctx context.Context, sessionId uuid.UUID) error
}

type RequestHumanSupportTool struct {
	sessions HandoffSetter
}

func NewRequestHumanSupportTool(sessions HandoffSetter) *RequestHumanSupportTool {
	return &RequestHumanSupportTool{sessions: sessions}
}

func (t *RequestHumanSupportTool) Name() string { return "request_human_support" }

func (t *RequestHumanSupportTool) Description() string {
	return "Escalate this conversation to a human support agent when the customer asks for a person " +
		"or the question cannot be answered with the available tools."
}

func (t *RequestHumanSupportTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"reason": {"type": "string", "description": "Short note for the human agent"}
		}
	}`)
}

func (t *RequestHumanSupportTool) Execute(ctx context.Context, call Call) (*Result, error) {
	if err := t.sessions.SetHumanSupport(ctx, call.SessionId); err != nil {
		return nil, err
	}
	return &Result{
		Content: jsonResult(map[string]string{
			"status": "A human agent has been notified and will take over this conversation.",
		}),
		Handoff: true,
	}, nil
}
