package tools

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// Call carries everything a tool needs about the current turn.
type Call struct {
	StoreId   uuid.UUID
	SessionId uuid.UUID
	Arguments json.RawMessage
}

// Result is what a tool hands back: Content is fed to the model as the tool
// turn, Products feed the turn's accumulated recommendation list, and
// Handoff marks that the session was switched to human support.
type Result struct {
	Content  string
	Products []entity.ProductRef
	Handoff  bool
}

// Tool is one entry of the fixed catalog offered to the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Execute(ctx context.Context, call Call) (*Result, error)
}

// Registry holds the catalog and dispatches calls by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Catalog returns the tool schemas in registration order for the model call.
func (r *Registry) Catalog() []llm.Tool {
	catalog := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		catalog = append(catalog, llm.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return catalog
}

// jsonResult marshals a tool payload for the model turn. Marshal failures
// degrade to an error string the model can read.
func jsonResult(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"error":"internal serialization failure"}`
	}
	return string(data)
}
