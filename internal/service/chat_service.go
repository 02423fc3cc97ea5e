package service

import (
	"context"
	"time"

	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/constant"
	"ai-commerce-chat-be/internal/dto"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/pkg/mailer"
	"ai-commerce-chat-be/internal/repository/memory"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/internal/websocket"
	"ai-commerce-chat-be/pkg/agent"
	"ai-commerce-chat-be/pkg/agent/history"
	agentprompt "ai-commerce-chat-be/pkg/agent/prompt"
	agentsession "ai-commerce-chat-be/pkg/agent/session"
	"ai-commerce-chat-be/pkg/campaign"
	"ai-commerce-chat-be/pkg/credits"
	"ai-commerce-chat-be/pkg/events"
	"ai-commerce-chat-be/pkg/llm"
	"ai-commerce-chat-be/pkg/msglog"
	pktNats "ai-commerce-chat-be/pkg/nats"
	"ai-commerce-chat-be/pkg/retrieval"
	"ai-commerce-chat-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	SendMessage(ctx context.Context, storeProfile *entity.Store, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	StreamMessage(ctx context.Context, storeProfile *entity.Store, req *dto.SendMessageRequest, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error)
	CreateSession(ctx context.Context, storeProfile *entity.Store, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetHistory(ctx context.Context, storeProfile *entity.Store, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	cfg            *config.Config
	uowFactory     unitofwork.RepositoryFactory
	sessionManager *agentsession.Manager
	sessionCache   *memory.SessionRepository
	gate           *credits.Gate
	matcher        *campaign.Matcher
	orchestrator   *agent.Orchestrator
	historyLoader  *history.Loader
	transcript     *msglog.Log
	hub            *websocket.Hub
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	logger         logger.ILogger
}

func NewChatService(
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	sessionManager *agentsession.Manager,
	sessionCache *memory.SessionRepository,
	gate *credits.Gate,
	matcher *campaign.Matcher,
	orchestrator *agent.Orchestrator,
	historyLoader *history.Loader,
	transcript *msglog.Log,
	hub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		cfg:            cfg,
		uowFactory:     uowFactory,
		sessionManager: sessionManager,
		sessionCache:   sessionCache,
		gate:           gate,
		matcher:        matcher,
		orchestrator:   orchestrator,
		historyLoader:  historyLoader,
		transcript:     transcript,
		hub:            hub,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		logger:         log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, storeProfile *entity.Store, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	return s.processTurn(ctx, storeProfile, req, nil)
}

func (s *chatService) StreamMessage(ctx context.Context, storeProfile *entity.Store, req *dto.SendMessageRequest, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	return s.processTurn(ctx, storeProfile, req, onDelta)
}

// processTurn is the shared turn pipeline: session resolution, credit gate,
// campaign short-circuit, handoff check, then the model's tool cycle. The
// streaming and blocking entry points differ only in onDelta.
func (s *chatService) processTurn(ctx context.Context, storeProfile *entity.Store, req *dto.SendMessageRequest, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	start := time.Now()

	session, err := s.sessionManager.Resolve(ctx, storeProfile.Id, req.GuestId, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	// Persistence must survive a client disconnect mid-stream.
	persistCtx := context.WithoutCancel(ctx)

	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatRoleUser,
		Content:       req.Message,
		CreatedAt:     time.Now(),
	}
	if err := s.persistMessage(persistCtx, userMsg); err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	}
	s.appendTranscript(persistCtx, session.Id, userMsg)
	s.notifyAgents(session, "customer_message", userMsg)

	// 1. Credit gate, before any paid work.
	allowed, remaining, err := s.gate.Allow(ctx, storeProfile.Id, s.cfg.Credits.AiResponseCost)
	if err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	}
	if !allowed {
		return s.fixedReply(persistCtx, session, req.Message, constant.MsgCreditsExhausted,
			constant.ResponseTypeManualHandoff, constant.UsageTypeManualHandoff, 0, remaining, start, onDelta)
	}

	// 2. Campaign short-circuit: no model call, flat keyword cost.
	if reply, handled, err := s.tryCampaign(ctx, persistCtx, storeProfile, session, req.Message, remaining, start, onDelta); err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	} else if handled {
		return reply, nil
	}

	// 3. Human handoff: keep the transcript flowing, generate nothing.
	if session.IsHumanSupport {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeManualHandoff, 0, true, start)
		return &dto.SendMessageResponse{
			Success:          true,
			SessionId:        session.Id,
			ResponseType:     constant.ResponseTypeManualHandoff,
			UserMessage:      req.Message,
			RemainingCredits: remaining,
			Performance:      dto.TurnPerformance{TotalMs: time.Since(start).Milliseconds()},
		}, nil
	}

	// 4. Model turn with the tool cycle.
	return s.modelTurn(ctx, persistCtx, storeProfile, session, req.Message, remaining, start, onDelta)
}

func (s *chatService) tryCampaign(ctx, persistCtx context.Context, storeProfile *entity.Store, session *entity.ChatSession, message string, remaining int, start time.Time, onDelta llm.StreamHandler) (*dto.SendMessageResponse, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	campaigns, err := uow.CampaignRepository().FindAll(ctx,
		specification.StoreOwnedBy{StoreID: storeProfile.Id},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, false, err
	}

	matched := s.matcher.Match(storeProfile.Id, campaigns, message)
	if matched == nil {
		return nil, false, nil
	}

	var products []entity.ProductRef
	if len(matched.ProductIds) > 0 {
		linked, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: matched.ProductIds})
		if err != nil {
			return nil, false, err
		}
		for _, p := range linked {
			products = append(products, entity.ProductRef{
				Id:     p.Id,
				Title:  p.Title,
				Handle: p.Handle,
				Price:  p.Price,
			})
		}
	}

	cost := s.cfg.Credits.KeywordCost
	reply, err := s.finishTurn(persistCtx, storeProfile, session, message, matched.ResponseMessage,
		products, constant.ResponseTypeKeyword, constant.UsageTypeKeywordResponse, cost, remaining, start, onDelta)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("ChatService", "Campaign short-circuit", map[string]interface{}{
		"store_id":    storeProfile.Id,
		"session_id":  session.Id,
		"campaign_id": matched.Id,
	})
	return reply, true, nil
}

func (s *chatService) modelTurn(ctx, persistCtx context.Context, storeProfile *entity.Store, session *entity.ChatSession, message string, remaining int, start time.Time, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	priorHistory, err := s.historyLoader.LoadConversationHistory(ctx, session.Id)
	if err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	}

	// The persisted user message is already in the window; the orchestrator
	// appends it itself.
	if n := len(priorHistory); n > 0 && priorHistory[n-1].Role == constant.ChatRoleUser && priorHistory[n-1].Content == message {
		priorHistory = priorHistory[:n-1]
	}

	runtime := s.loadRuntimeSession(session, storeProfile)
	systemPrompt := agentprompt.NewBuilder(storeProfile, runtime).Build()

	input := agent.TurnInput{
		StoreId:      storeProfile.Id,
		SessionId:    session.Id,
		SystemPrompt: systemPrompt,
		History:      priorHistory,
		UserMessage:  message,
	}

	turnCtx := ctx
	if s.cfg.Ai.ModelTimeoutSec > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Ai.ModelTimeoutSec)*time.Second)
		defer cancel()
	}

	modelStart := time.Now()
	var out *agent.TurnOutput
	if onDelta != nil {
		out, err = s.orchestrator.StreamTurn(turnCtx, input, onDelta)
	} else {
		out, err = s.orchestrator.RunTurn(turnCtx, input)
	}
	modelMs := time.Since(modelStart).Milliseconds()
	if err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		s.logger.Error("ChatService", "Model turn failed", map[string]interface{}{
			"store_id":   storeProfile.Id,
			"session_id": session.Id,
			"error":      err.Error(),
		})
		reply, ferr := s.finishTurnNoUsage(persistCtx, session, message, constant.MsgGenericError, nil,
			constant.ResponseTypeSystemError, remaining, start, onDelta)
		if ferr != nil {
			return nil, ferr
		}
		reply.Success = false
		return reply, nil
	}

	if out.HandoffRequested {
		s.onHandoff(persistCtx, storeProfile, session, message)
	}

	cost := s.cfg.Credits.AiResponseCost
	reply, err := s.finishTurn(persistCtx, storeProfile, session, message, out.Content,
		out.Products, constant.ResponseTypeAI, constant.UsageTypeAiResponse, cost, remaining, start, onDelta)
	if err != nil {
		s.recordUsage(persistCtx, storeProfile.Id, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	}
	reply.Performance.ModelMs = modelMs

	// Refinement follow-ups keep the previous search context alive.
	if !retrieval.IsRefinementQuery(message) {
		s.updateRuntimeSession(session, storeProfile, message, out.Products, runtime)
	}
	return reply, nil
}

// fixedReply persists a canned assistant turn (credit exhaustion) and
// records its usage event.
func (s *chatService) fixedReply(persistCtx context.Context, session *entity.ChatSession, userMessage, reply, responseType, usageType string, cost, remaining int, start time.Time, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	resp, err := s.finishTurnNoUsage(persistCtx, session, userMessage, reply, nil, responseType, remaining, start, onDelta)
	if err != nil {
		s.recordUsage(persistCtx, session.StoreId, session.Id, constant.UsageTypeSystemError, 0, false, start)
		return nil, err
	}
	s.recordUsage(persistCtx, session.StoreId, session.Id, usageType, cost, true, start)
	return resp, nil
}

// finishTurn persists the assistant message, deducts credits, records the
// usage event and assembles the response.
func (s *chatService) finishTurn(persistCtx context.Context, storeProfile *entity.Store, session *entity.ChatSession, userMessage, reply string, products []entity.ProductRef, responseType, usageType string, cost, remaining int, start time.Time, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	resp, err := s.finishTurnNoUsage(persistCtx, session, userMessage, reply, products, responseType, remaining, start, onDelta)
	if err != nil {
		return nil, err
	}

	if cost > 0 {
		uow := s.uowFactory.NewUnitOfWork(persistCtx)
		if err := uow.StoreRepository().AdjustCredits(persistCtx, storeProfile.Id, -cost); err != nil {
			s.logger.Error("ChatService", "Credit deduction failed", map[string]interface{}{
				"store_id": storeProfile.Id,
				"error":    err.Error(),
			})
		} else {
			resp.RemainingCredits = remaining - cost
		}
	}

	s.recordUsage(persistCtx, storeProfile.Id, session.Id, usageType, cost, true, start)
	return resp, nil
}

func (s *chatService) finishTurnNoUsage(persistCtx context.Context, session *entity.ChatSession, userMessage, reply string, products []entity.ProductRef, responseType string, remaining int, start time.Time, onDelta llm.StreamHandler) (*dto.SendMessageResponse, error) {
	assistantMsg := &entity.ChatMessage{
		Id:                  uuid.New(),
		ChatSessionId:       session.Id,
		Role:                constant.ChatRoleAssistant,
		Content:             reply,
		RecommendedProducts: products,
		CreatedAt:           time.Now(),
	}
	if err := s.persistMessage(persistCtx, assistantMsg); err != nil {
		return nil, err
	}
	s.appendTranscript(persistCtx, session.Id, assistantMsg)
	s.notifyAgents(session, "assistant_message", assistantMsg)

	// Canned and campaign replies never went through the model stream.
	if onDelta != nil && responseType != constant.ResponseTypeAI {
		onDelta(reply)
	}

	return &dto.SendMessageResponse{
		Success:          true,
		SessionId:        session.Id,
		ResponseType:     responseType,
		UserMessage:      userMessage,
		AssistantMessage: reply,
		Products:         toProductDTOs(products),
		RemainingCredits: remaining,
		Performance:      dto.TurnPerformance{TotalMs: time.Since(start).Milliseconds()},
	}, nil
}

// recordUsage writes exactly one usage event per turn, on every path.
func (s *chatService) recordUsage(persistCtx context.Context, storeId, sessionId uuid.UUID, usageType string, cost int, successful bool, start time.Time) {
	uow := s.uowFactory.NewUnitOfWork(persistCtx)
	sid := sessionId
	event := &entity.UsageEvent{
		Id:             uuid.New(),
		StoreId:        storeId,
		ChatSessionId:  &sid,
		RequestType:    usageType,
		CreditsUsed:    cost,
		WasSuccessful:  successful,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		CreatedAt:      time.Now(),
	}
	if err := uow.UsageEventRepository().Create(persistCtx, event); err != nil {
		s.logger.Error("ChatService", "Usage event write failed", map[string]interface{}{
			"store_id": storeId,
			"error":    err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewUsageRecorded(storeId.String(), sessionId.String(), usageType, cost, successful)
		if err := s.eventPublisher.Publish(persistCtx, evt); err != nil {
			s.logger.Warn("ChatService", "Usage event publish failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// onHandoff fans the escalation out to the agent desk, email and the bus.
func (s *chatService) onHandoff(persistCtx context.Context, storeProfile *entity.Store, session *entity.ChatSession, lastMessage string) {
	session.IsHumanSupport = true

	if s.hub != nil {
		s.hub.NotifyStore(storeProfile.Id, websocket.AgentEvent{
			Type:      "handoff_requested",
			SessionId: session.Id,
			Payload:   map[string]string{"last_message": lastMessage},
		})
	}

	if s.emailService != nil && storeProfile.SupportEmail != "" {
		go func() {
			if err := s.emailService.SendHandoffAlert(storeProfile.SupportEmail, storeProfile.Name, session.Id.String(), lastMessage); err != nil {
				s.logger.Warn("ChatService", "Handoff email failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	if s.eventPublisher != nil {
		email := ""
		if session.CustomerEmail != nil {
			email = *session.CustomerEmail
		}
		evt := events.NewHandoffRequested(storeProfile.Id.String(), session.Id.String(), email)
		if err := s.eventPublisher.Publish(persistCtx, evt); err != nil {
			s.logger.Warn("ChatService", "Handoff event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *chatService) persistMessage(persistCtx context.Context, msg *entity.ChatMessage) error {
	uow := s.uowFactory.NewUnitOfWork(persistCtx)
	return uow.ChatMessageRepository().Create(persistCtx, msg)
}

func (s *chatService) appendTranscript(persistCtx context.Context, sessionId uuid.UUID, msg *entity.ChatMessage) {
	if s.transcript == nil {
		return
	}
	if err := s.transcript.Append(persistCtx, sessionId.String(), msglog.Entry{
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}); err != nil {
		s.logger.Warn("ChatService", "Transcript append failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) notifyAgents(session *entity.ChatSession, eventType string, msg *entity.ChatMessage) {
	if s.hub == nil || !session.IsHumanSupport {
		return
	}
	s.hub.NotifyStore(session.StoreId, websocket.AgentEvent{
		Type:      eventType,
		SessionId: session.Id,
		Payload: map[string]string{
			"role":    msg.Role,
			"content": msg.Content,
		},
	})
}

func (s *chatService) loadRuntimeSession(session *entity.ChatSession, storeProfile *entity.Store) *store.Session {
	if cached, found := s.sessionCache.Get(session.Id.String()); found {
		return cached
	}
	return &store.Session{
		ID:      session.Id.String(),
		StoreID: storeProfile.Id.String(),
	}
}

func (s *chatService) updateRuntimeSession(session *entity.ChatSession, storeProfile *entity.Store, query string, products []entity.ProductRef, runtime *store.Session) {
	if runtime == nil {
		runtime = &store.Session{ID: session.Id.String(), StoreID: storeProfile.Id.String()}
	}
	runtime.LastQuery = query
	if len(products) > 0 {
		refs := make([]store.ProductRef, 0, len(products))
		for _, p := range products {
			refs = append(refs, store.ProductRef{
				ID:     p.Id.String(),
				Title:  p.Title,
				Handle: p.Handle,
				Price:  p.Price,
			})
		}
		runtime.LastProducts = refs
	}
	s.sessionCache.Save(runtime)
}

func (s *chatService) CreateSession(ctx context.Context, storeProfile *entity.Store, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	session, err := s.sessionManager.Resolve(ctx, storeProfile.Id, req.GuestId, req.CustomerEmail)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		IsGuest:   session.IsGuest,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, storeProfile *entity.Store, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.StoreOwnedBy{StoreID: storeProfile.Id},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, dto.ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := &dto.ChatHistoryResponse{
		SessionId:      session.Id,
		IsHumanSupport: session.IsHumanSupport,
		Messages:       make([]dto.ChatHistoryMessage, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, dto.ChatHistoryMessage{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Products:  toProductDTOs(m.RecommendedProducts),
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func toProductDTOs(products []entity.ProductRef) []dto.ProductRefDTO {
	if len(products) == 0 {
		return nil
	}
	out := make([]dto.ProductRefDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductRefDTO{
			Id:     p.Id,
			Title:  p.Title,
			Handle: p.Handle,
			Price:  p.Price,
		})
	}
	return out
}
