package prompt

import (
	"strings"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/pkg/store"
)

// Builder assembles the system prompt for one chat turn.
type Builder struct {
	storeProfile *entity.Store
	session      *store.Session
}

func NewBuilder(storeProfile *entity.Store, session *store.Session) *Builder {
	return &Builder{
		storeProfile: storeProfile,
		session:      session,
	}
}

// Build creates the persona, guidelines and conversation memory sections.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeGuidelines(&prompt)
	b.writeRecentProducts(&prompt)

	return prompt.String()
}

func (b *Builder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<persona>\n")
	prompt.WriteString("You are the shopping assistant for \"")
	prompt.WriteString(b.storeProfile.Name)
	prompt.WriteString("\".\n")
	if b.storeProfile.Description != "" {
		prompt.WriteString(b.storeProfile.Description)
		prompt.WriteString("\n")
	}
	prompt.WriteString("You help customers find products, answer questions about orders, shipping and policies, and hand over to a human agent when needed.\n")
	prompt.WriteString("</persona>\n\n")
}

func (b *Builder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("- Use the available tools instead of guessing. Never invent products, prices or order statuses.\n")
	prompt.WriteString("- When the customer asks for products, call recommend_products. Pick the sort mode that matches their wording.\n")
	prompt.WriteString("- When the customer refers to something already shown (\"that one\", \"how much is it\"), answer from the recently shown products below instead of searching again.\n")
	prompt.WriteString("- Keep answers short and friendly. Mention at most a handful of products; the widget renders them as cards.\n")
	prompt.WriteString("- If the customer asks for a human, or you cannot help, call request_human_support.\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *Builder) writeRecentProducts(prompt *strings.Builder) {
	if b.session == nil || len(b.session.LastProducts) == 0 {
		return
	}

	prompt.WriteString("<recently_shown_products>\n")
	for _, p := range b.session.LastProducts {
		prompt.WriteString("- ")
		prompt.WriteString(p.Title)
		if p.Price != "" {
			prompt.WriteString(" (")
			prompt.WriteString(p.Price)
			prompt.WriteString(")")
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("</recently_shown_products>\n")
}
