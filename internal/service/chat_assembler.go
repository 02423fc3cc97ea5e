package service

import (
	"time"

	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/pkg/mailer"
	"ai-commerce-chat-be/internal/repository/memory"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/internal/websocket"
	"ai-commerce-chat-be/pkg/agent"
	"ai-commerce-chat-be/pkg/agent/history"
	agentsession "ai-commerce-chat-be/pkg/agent/session"
	"ai-commerce-chat-be/pkg/agent/tools"
	"ai-commerce-chat-be/pkg/campaign"
	"ai-commerce-chat-be/pkg/credits"
	"ai-commerce-chat-be/pkg/embedding"
	"ai-commerce-chat-be/pkg/llm"
	"ai-commerce-chat-be/pkg/msglog"
	pktNats "ai-commerce-chat-be/pkg/nats"
	"ai-commerce-chat-be/pkg/retrieval"
)

// BuildChatService wires the full turn pipeline: the retrieval engine behind
// the recommend_products tool, the other seven tools over their repository
// adapters, the orchestrator, and the session manager. The container passes
// infrastructure in; everything repository-shaped is assembled here where the
// adapters live.
func BuildChatService(
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionRepository,
	embeddingProvider embedding.Provider,
	llmProvider llm.Provider,
	transcript *msglog.Log,
	hub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IChatService {
	engine := retrieval.NewEngine(
		NewQueryEmbedder(embeddingProvider, time.Duration(cfg.Ai.EmbedTimeoutSec)*time.Second),
		NewPgVectorIndex(uowFactory, time.Duration(cfg.Ai.SearchTimeoutSec)*time.Second),
		NewRelationalCatalog(uowFactory),
		cfg.Ai.GenericQueries,
		log,
	)

	adapters := newToolAdapters(uowFactory)
	registry := tools.NewRegistry(
		tools.NewRecommendProductsTool(engine),
		tools.NewSearchFaqTool(adapters),
		tools.NewGetActiveDiscountsTool(adapters),
		tools.NewGetStorePoliciesTool(adapters),
		tools.NewGetStoreProfileTool(adapters),
		tools.NewTrackOrderTool(adapters),
		tools.NewGetProductDetailsTool(adapters),
		tools.NewRequestHumanSupportTool(adapters),
	)

	orchestrator := agent.NewOrchestrator(llmProvider, registry)

	sessionManager := agentsession.NewManager(
		newSessionStoreAdapter(uowFactory),
		newMessageStoreAdapter(uowFactory),
		transcript,
	)

	return NewChatService(
		cfg,
		uowFactory,
		sessionManager,
		sessionCache,
		credits.NewGate(newCreditBalanceAdapter(uowFactory)),
		campaign.NewMatcher(),
		orchestrator,
		history.NewLoader(uowFactory),
		transcript,
		hub,
		eventPublisher,
		emailService,
		log,
	)
}
