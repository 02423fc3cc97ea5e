package tools

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
)

// FaqSearcher serves FAQ text search for the search_faq tool.
type FaqSearcher interface {
	SearchFaqs(ctx context.Context, storeId uuid.UUID, query string, limit int) ([]*entity.Faq, error)
}

// DiscountLister serves active discount lookups.
type DiscountLister interface {
	ActiveDiscounts(ctx context.Context, storeId uuid.UUID) ([]*entity.Discount, error)
}

// PolicyLister serves store policy lookups.
type PolicyLister interface {
	Policies(ctx context.Context, storeId uuid.UUID) ([]*entity.StorePolicy, error)
}

// StoreReader serves the store profile lookup.
type StoreReader interface {
	Store(ctx context.Context, storeId uuid.UUID) (*entity.Store, error)
}

// --- search_faq ---

type SearchFaqTool struct {
	faqs FaqSearcher
}

func NewSearchFaqTool(faqs FaqSearcher) *SearchFaqTool {
	return &SearchFaqTool{faqs: faqs}
}

func (t *SearchFaqTool) Name() string { return "search_faq" }

func (t *SearchFaqTool) Description() string {
	return "Look up the store's frequently asked questions for topics like shipping, returns, sizing or payment."
}

func (t *SearchFaqTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "The customer's question or topic"}
		},
		"required": ["query"]
	}`)
}

func (t *SearchFaqTool) Execute(ctx context.Context, call Call) (*Result, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		return &Result{Content: jsonResult(map[string]string{"error": "invalid arguments"})}, nil
	}

	faqs, err := t.faqs.SearchFaqs(ctx, call.StoreId, args.Query, 5)
	if err != nil {
		return nil, err
	}
	if len(faqs) == 0 {
		return &Result{Content: jsonResult(map[string]string{"message": "No FAQ entry covers this topic."})}, nil
	}

	type faqView struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	views := make([]faqView, 0, len(faqs))
	for _, f := range faqs {
		views = append(views, faqView{Question: f.Question, Answer: f.Answer})
	}
	return &Result{Content: jsonResult(map[string]interface{}{"faqs": views})}, nil
}

// --- get_active_discounts ---

type GetActiveDiscountsTool struct {
	discounts DiscountLister
}

func NewGetActiveDiscountsTool(discounts DiscountLister) *GetActiveDiscountsTool {
	return &GetActiveDiscountsTool{discounts: discounts}
}

func (t *GetActiveDiscountsTool) Name() string { return "get_active_discounts" }

func (t *GetActiveDiscountsTool) Description() string {
	return "List the discount codes and promotions currently running in this store."
}

func (t *GetActiveDiscountsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *GetActiveDiscountsTool) Execute(ctx context.Context, call Call) (*Result, error) {
	discounts, err := t.discounts.ActiveDiscounts(ctx, call.StoreId)
	if err != nil {
		return nil, err
	}
	if len(discounts) == 0 {
		return &Result{Content: jsonResult(map[string]string{"message": "There are no active discounts right now."})}, nil
	}

	type discountView struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Value       string `json:"value"`
		ExpiresAt   string `json:"expires_at,omitempty"`
	}
	views := make([]discountView, 0, len(discounts))
	for _, d := range discounts {
		v := discountView{Code: d.Code, Description: d.Description, Value: d.Value}
		if d.ExpiresAt != nil {
			v.ExpiresAt = d.ExpiresAt.Format("2006-01-02")
		}
		views = append(views, v)
	}
	return &Result{Content: jsonResult(map[string]interface{}{"discounts": views})}, nil
}

// --- get_store_policies ---

type GetStorePoliciesTool struct {
	policies PolicyLister
}

func NewGetStorePoliciesTool(policies PolicyLister) *GetStorePoliciesTool {
	return &GetStorePoliciesTool{policies: policies}
}

func (t *GetStorePoliciesTool) Name() string { return "get_store_policies" }

func (t *GetStorePoliciesTool) Description() string {
	return "Fetch the store's policies (returns, refunds, shipping, privacy)."
}

func (t *GetStorePoliciesTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"policy_type": {"type": "string", "description": "Optional filter such as 'returns' or 'shipping'"}
		}
	}`)
}

func (t *GetStorePoliciesTool) Execute(ctx context.Context, call Call) (*Result, error) {
	var args struct {
		PolicyType string `json:"policy_type"`
	}
	_ = json.Unmarshal(call.Arguments, &args)

	policies, err := t.policies.Policies(ctx, call.StoreId)
	if err != nil {
		return nil, err
	}

	type policyView struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	views := make([]policyView, 0, len(policies))
	for _, p := range policies {
		if args.PolicyType != "" && p.PolicyType != args.PolicyType {
			continue
		}
		views = append(views, policyView{Type: p.PolicyType, Content: p.Content})
	}
	if len(views) == 0 {
		return &Result{Content: jsonResult(map[string]string{"message": "No matching policy found."})}, nil
	}
	return &Result{Content: jsonResult(map[string]interface{}{"policies": views})}, nil
}

// --- get_store_profile ---

type GetStoreProfileTool struct {
	stores StoreReader
}

func NewGetStoreProfileTool(stores StoreReader) *GetStoreProfileTool {
	return &GetStoreProfileTool{stores: stores}
}

func (t *GetStoreProfileTool) Name() string { return "get_store_profile" }

func (t *GetStoreProfileTool) Description() string {
	return "Get the store's name, description and support contact."
}

func (t *GetStoreProfileTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *GetStoreProfileTool) Execute(ctx context.Context, call Call) (*Result, error) {
	store, err := t.stores.Store(ctx, call.StoreId)
	if err != nil {
		return nil, err
	}
	return &Result{Content: jsonResult(map[string]string{
		"name":          store.Name,
		"description":   store.Description,
		"support_email": store.SupportEmail,
		"domain":        store.ShopDomain,
	})}, nil
}
