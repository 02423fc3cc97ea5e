package agent

import (
	"context"
	"fmt"
	"sync"

	"ai-commerce-chat-be/internal/constant"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/pkg/agent/tools"
	"ai-commerce-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// TurnInput is everything the orchestrator needs for one conversation turn.
// History is the bounded prior window, oldest first, without the new user
// message.
type TurnInput struct {
	StoreId      uuid.UUID
	SessionId    uuid.UUID
	SystemPrompt string
	History      []llm.Message
	UserMessage  string
}

// TurnOutput is the resolved assistant turn.
type TurnOutput struct {
	Content          string
	Products         []entity.ProductRef
	HandoffRequested bool
	ToolIterations   int
}

// Orchestrator drives the model's tool-calling cycle to convergence. The
// streaming and non-streaming entry points share the whole loop and differ
// only in how the final text is delivered.
type Orchestrator struct {
	provider llm.Provider
	registry *tools.Registry
}

func NewOrchestrator(provider llm.Provider, registry *tools.Registry) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		registry: registry,
	}
}

// RunTurn executes one blocking conversation turn.
func (o *Orchestrator) RunTurn(ctx context.Context, in TurnInput) (*TurnOutput, error) {
	return o.run(ctx, in, nil)
}

// StreamTurn executes one turn, forwarding text deltas as they arrive.
// Intermediate tool-calling invocations rarely produce text, so in practice
// only the final answer streams.
func (o *Orchestrator) StreamTurn(ctx context.Context, in TurnInput, onDelta llm.StreamHandler) (*TurnOutput, error) {
	return o.run(ctx, in, onDelta)
}

func (o *Orchestrator) run(ctx context.Context, in TurnInput, onDelta llm.StreamHandler) (*TurnOutput, error) {
	messages := make([]llm.Message, 0, len(in.History)+2)
	messages = append(messages, llm.Message{Role: constant.ChatRoleSystem, Content: in.SystemPrompt})
	messages = append(messages, in.History...)
	messages = append(messages, llm.Message{Role: constant.ChatRoleUser, Content: in.UserMessage})

	catalog := o.registry.Catalog()
	out := &TurnOutput{}
	seen := map[uuid.UUID]bool{}

	for iteration := 0; ; iteration++ {
		resp, err := o.invoke(ctx, messages, catalog, onDelta)
		if err != nil {
			return nil, fmt.Errorf("model invocation: %w", err)
		}

		if !resp.HasToolCalls() {
			out.Content = resp.Content
			if resp.Empty() {
				out.Content = o.fallback(ctx, in.UserMessage, onDelta)
			}
			return out, nil
		}

		if iteration >= constant.MaxToolIterations {
			out.Content = constant.MsgToolLoopExceeded
			if onDelta != nil {
				onDelta(out.Content)
			}
			return out, nil
		}
		out.ToolIterations = iteration + 1

		messages = append(messages, llm.Message{
			Role:      constant.ChatRoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		results := o.executeAll(ctx, in, resp.ToolCalls)
		for i, call := range resp.ToolCalls {
			result := results[i]
			messages = append(messages, llm.Message{
				Role:       constant.ChatRoleTool,
				Content:    result.Content,
				ToolCallId: call.ID,
				Name:       call.Name,
			})
			if result.Handoff {
				out.HandoffRequested = true
			}
			// First-seen-wins merge so re-searches never reorder what the
			// customer was already shown.
			for _, p := range result.Products {
				if seen[p.Id] {
					continue
				}
				seen[p.Id] = true
				out.Products = append(out.Products, p)
			}
		}
	}
}

// executeAll runs one iteration's tool calls concurrently, preserving call
// order in the results. A failed tool becomes an error payload the model
// can react to instead of aborting the turn.
func (o *Orchestrator) executeAll(ctx context.Context, in TurnInput, calls []llm.ToolCall) []*tools.Result {
	results := make([]*tools.Result, len(calls))
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call llm.ToolCall) {
			defer wg.Done()
			results[i] = o.executeOne(ctx, in, call)
		}(i, call)
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) executeOne(ctx context.Context, in TurnInput, call llm.ToolCall) *tools.Result {
	tool, ok := o.registry.Get(call.Name)
	if !ok {
		return &tools.Result{Content: fmt.Sprintf(`{"error":"unknown tool %q"}`, call.Name)}
	}

	result, err := tool.Execute(ctx, tools.Call{
		StoreId:   in.StoreId,
		SessionId: in.SessionId,
		Arguments: call.Arguments,
	})
	if err != nil {
		return &tools.Result{Content: fmt.Sprintf(`{"error":"tool failed: %s"}`, err.Error())}
	}
	return result
}

func (o *Orchestrator) invoke(ctx context.Context, messages []llm.Message, catalog []llm.Tool, onDelta llm.StreamHandler) (*llm.Response, error) {
	if onDelta != nil {
		return o.provider.ChatStream(ctx, messages, catalog, onDelta)
	}
	return o.provider.Chat(ctx, messages, catalog)
}

// fallback covers the model returning neither text nor tool calls: one
// plain completion retry, then the fixed unavailable message.
func (o *Orchestrator) fallback(ctx context.Context, userMessage string, onDelta llm.StreamHandler) string {
	text, err := o.provider.Generate(ctx,
		"Reply briefly and helpfully to this customer message: "+userMessage)
	if err != nil || text == "" {
		text = constant.MsgModelUnavailable
	}
	if onDelta != nil {
		onDelta(text)
	}
	return text
}
