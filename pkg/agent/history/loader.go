package history

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/constant"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads the bounded conversation window handed to the model.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLoader(uowFactory unitofwork.RepositoryFactory) *Loader {
	return &Loader{uowFactory: uowFactory}
}

// LoadConversationHistory returns the last N turns as model messages,
// oldest first. Tool turns are not replayed; assistant turns that carried
// product recommendations get a compact product list appended so pronoun
// references can resolve from memory.
func (l *Loader) LoadConversationHistory(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	// One turn is a user message plus an assistant message.
	recent, err := uow.ChatMessageRepository().FindRecent(ctx, sessionId, constant.HistoryWindowTurns*2)
	if err != nil {
		return nil, err
	}

	return ToModelMessages(recent), nil
}

// ToModelMessages converts persisted messages (chronological order) into
// the model history format.
func ToModelMessages(messages []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == constant.ChatRoleTool || msg.Role == constant.ChatRoleSystem {
			continue
		}
		content := msg.Content
		if msg.Role == constant.ChatRoleAssistant && len(msg.RecommendedProducts) > 0 {
			content += "\n\n[shown products: " + productSummary(msg.RecommendedProducts) + "]"
		}
		out = append(out, llm.Message{
			Role:    msg.Role,
			Content: content,
		})
	}
	return out
}

func productSummary(products []entity.ProductRef) string {
	type summary struct {
		Title string `json:"title"`
		Price string `json:"price"`
	}
	summaries := make([]summary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, summary{Title: p.Title, Price: p.Price})
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return ""
	}
	return string(data)
}
