package tools

import (
	"context"
	"encoding/json"

	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/pkg/retrieval"

	"github.com/google/uuid"
)

// Searcher is the retrieval surface the tool depends on.
type Searcher interface {
	Search(ctx context.Context, storeId string, query retrieval.Query) ([]retrieval.Candidate, error)
}

type recommendArgs struct {
	Query          string   `json:"query"`
	SortBy         string   `json:"sort_by"`
	MinPrice       *float64 `json:"min_price"`
	MaxPrice       *float64 `json:"max_price"`
	BoostAttribute string   `json:"boost_attribute"`
}

type recommendedProduct struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image,omitempty"`
}

// RecommendProductsTool runs the hybrid retrieval engine for the model.
type RecommendProductsTool struct {
	searcher Searcher
}

func NewRecommendProductsTool(searcher Searcher) *RecommendProductsTool {
	return &RecommendProductsTool{searcher: searcher}
}

func (t *RecommendProductsTool) Name() string { return "recommend_products" }

func (t *RecommendProductsTool) Description() string {
	return "Search the store catalog for products matching the customer's request. " +
		"Use sort_by 'price_asc' or 'price_desc' when the customer asks for cheapest or most expensive, " +
		"'newest' for recent additions, 'best_selling' for popular items, otherwise 'relevance'."
}

func (t *RecommendProductsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "What the customer is looking for"},
			"sort_by": {"type": "string", "enum": ["relevance", "price_asc", "price_desc", "newest", "best_selling"]},
			"min_price": {"type": "number", "description": "Lower price bound, if the customer gave one"},
			"max_price": {"type": "number", "description": "Upper price bound, if the customer gave one"},
			"boost_attribute": {"type": "string", "description": "A product type or tag the customer emphasized (e.g. 'leather', 'waterproof'), to rank matching products higher"}
		},
		"required": ["query"]
	}`)
}

func (t *RecommendProductsTool) Execute(ctx context.Context, call Call) (*Result, error) {
	var args recommendArgs
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		return &Result{Content: jsonResult(map[string]string{"error": "invalid arguments"})}, nil
	}

	sortBy := retrieval.SortMode(args.SortBy)
	switch sortBy {
	case retrieval.SortRelevance, retrieval.SortPriceAsc, retrieval.SortPriceDesc,
		retrieval.SortNewest, retrieval.SortBestSelling:
	default:
		sortBy = retrieval.SortRelevance
	}

	candidates, err := t.searcher.Search(ctx, call.StoreId.String(), retrieval.Query{
		Text:           args.Query,
		SortBy:         sortBy,
		MinPrice:       args.MinPrice,
		MaxPrice:       args.MaxPrice,
		BoostAttribute: args.BoostAttribute,
	})
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return &Result{Content: jsonResult(map[string]string{
			"message": "No matching products found. Suggest the customer rephrase or browse the catalog.",
		})}, nil
	}

	modelView := make([]recommendedProduct, 0, len(candidates))
	refs := make([]entity.ProductRef, 0, len(candidates))
	for _, c := range candidates {
		modelView = append(modelView, recommendedProduct{
			Id:    c.Id,
			Title: c.Title,
			Price: c.Price,
			Image: c.Image,
		})
		ref := entity.ProductRef{Title: c.Title, Handle: c.Handle, Price: c.Price}
		if id, err := uuid.Parse(c.Id); err == nil {
			ref.Id = id
		}
		refs = append(refs, ref)
	}

	return &Result{
		Content:  jsonResult(map[string]interface{}{"products": modelView}),
		Products: refs,
	}, nil
}
