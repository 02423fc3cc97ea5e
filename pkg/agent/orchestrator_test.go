package agent

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"ai-commerce-chat-be/internal/constant"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/pkg/agent/tools"
	"ai-commerce-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays canned responses in order.
type scriptedProvider struct {
	responses   []*llm.Response
	calls       int
	generated   string
	generateErr error
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, t []llm.Tool, opts ...llm.Option) (*llm.Response, error) {
	if s.calls >= len(s.responses) {
		return &llm.Response{}, nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func (s *scriptedProvider) ChatStream(ctx context.Context, history []llm.Message, t []llm.Tool, onDelta llm.StreamHandler, opts ...llm.Option) (*llm.Response, error) {
	resp, err := s.Chat(ctx, history, t)
	if err != nil {
		return nil, err
	}
	if resp.Content != "" && onDelta != nil {
		onDelta(resp.Content)
	}
	return resp, nil
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.generated, s.generateErr
}

// fakeTool records invocations and returns a fixed result. Tool calls in
// one iteration run concurrently, so the counter is guarded.
type fakeTool struct {
	name   string
	result *tools.Result
	mu     sync.Mutex
	calls  int
}

func (f *fakeTool) Name() string                { return f.name }
func (f *fakeTool) Description() string         { return "test tool" }
func (f *fakeTool) Parameters() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }

func (f *fakeTool) Execute(ctx context.Context, call tools.Call) (*tools.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.result, nil
}

func toolCall(name string) llm.ToolCall {
	return llm.ToolCall{ID: uuid.NewString(), Name: name, Arguments: json.RawMessage(`{}`)}
}

func testInput() TurnInput {
	return TurnInput{
		StoreId:      uuid.New(),
		SessionId:    uuid.New(),
		SystemPrompt: "You are a shop assistant.",
		UserMessage:  "show me sneakers",
	}
}

func TestRunTurnPlainTextAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Content: "We have great sneakers!"},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry())

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "We have great sneakers!", out.Content)
	assert.Empty(t, out.Products)
	assert.Equal(t, 0, out.ToolIterations)
}

func TestRunTurnExecutesToolsAndAccumulatesProducts(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	search := &fakeTool{name: "recommend_products", result: &tools.Result{
		Content: `{"products":[]}`,
		Products: []entity.ProductRef{
			{Id: p1, Title: "Running Sneakers"},
			{Id: p2, Title: "Trail Sneakers"},
		},
	}}
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{toolCall("recommend_products")}},
		{Content: "Here are two options."},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry(search))

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "Here are two options.", out.Content)
	assert.Equal(t, 1, search.calls)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "Running Sneakers", out.Products[0].Title)
}

func TestRunTurnProductMergeFirstSeenWins(t *testing.T) {
	shared := uuid.New()
	first := &fakeTool{name: "recommend_products", result: &tools.Result{
		Content:  `{}`,
		Products: []entity.ProductRef{{Id: shared, Title: "First Title"}},
	}}
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{toolCall("recommend_products"), toolCall("recommend_products")}},
		{Content: "done"},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry(first))

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "First Title", out.Products[0].Title)
	assert.Equal(t, 2, first.calls)
}

func TestRunTurnHandoffToolSetsFlag(t *testing.T) {
	handoff := &fakeTool{name: "request_human_support", result: &tools.Result{
		Content: `{"status":"ok"}`,
		Handoff: true,
	}}
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{toolCall("request_human_support")}},
		{Content: "A human agent will join shortly."},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry(handoff))

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.True(t, out.HandoffRequested)
}

func TestRunTurnIterationCap(t *testing.T) {
	search := &fakeTool{name: "recommend_products", result: &tools.Result{Content: `{}`}}

	// The model never stops asking for tools.
	var responses []*llm.Response
	for i := 0; i < constant.MaxToolIterations+2; i++ {
		responses = append(responses, &llm.Response{
			ToolCalls: []llm.ToolCall{toolCall("recommend_products")},
		})
	}
	provider := &scriptedProvider{responses: responses}
	o := NewOrchestrator(provider, tools.NewRegistry(search))

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, constant.MsgToolLoopExceeded, out.Content)
	assert.Equal(t, constant.MaxToolIterations, search.calls)
}

func TestRunTurnUnknownToolBecomesErrorPayload(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{toolCall("does_not_exist")}},
		{Content: "Sorry, I could not look that up."},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry())

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "Sorry, I could not look that up.", out.Content)
}

func TestRunTurnEmptyResponseFallsBackOnce(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*llm.Response{{}},
		generated: "Let me help you with that.",
	}
	o := NewOrchestrator(provider, tools.NewRegistry())

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "Let me help you with that.", out.Content)
}

func TestRunTurnEmptyFallbackFailureUsesFixedMessage(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{{}}}
	o := NewOrchestrator(provider, tools.NewRegistry())

	out, err := o.RunTurn(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, constant.MsgModelUnavailable, out.Content)
}

func TestStreamTurnForwardsDeltas(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.Response{
		{Content: "Streaming answer."},
	}}
	o := NewOrchestrator(provider, tools.NewRegistry())

	var streamed string
	out, err := o.StreamTurn(context.Background(), testInput(), func(delta string) {
		streamed += delta
	})

	require.NoError(t, err)
	assert.Equal(t, "Streaming answer.", out.Content)
	assert.Equal(t, "Streaming answer.", streamed)
}
