package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ai-commerce-chat-be/internal/pkg/logger"
)

const (
	// MaxResults caps every ranked list handed back to the caller.
	MaxResults = 6

	relevanceTopK = 60
	priceSortTopK = 100

	// Keyword bonuses are applied per matching keyword, weighted by field.
	titleBonus  = 0.30
	tagBonus    = 0.15
	handleBonus = 0.08

	// Exact-name queries must surface the named product first regardless of
	// its raw vector score.
	exactMatchBonus     = 5.0
	titleContainsQBonus = 2.5

	// An attribute the customer explicitly emphasized outranks an ordinary
	// tag hit.
	attributeBoost = 0.25
)

// Engine turns a free-text query into a ranked, filtered product list by
// combining vector similarity with keyword boosting.
type Engine struct {
	embedder Embedder
	index    VectorIndex
	catalog  Catalog
	generics map[string]bool
	log      logger.ILogger
}

func NewEngine(embedder Embedder, index VectorIndex, catalog Catalog, genericQueries []string, log logger.ILogger) *Engine {
	generics := make(map[string]bool, len(genericQueries))
	for _, q := range genericQueries {
		generics[normalizeQuery(q)] = true
	}
	return &Engine{
		embedder: embedder,
		index:    index,
		catalog:  catalog,
		generics: generics,
		log:      log,
	}
}

// Search executes one retrieval request for a store. Recency and popularity
// sorts skip the vector index entirely.
func (e *Engine) Search(ctx context.Context, storeId string, query Query) ([]Candidate, error) {
	switch query.SortBy {
	case SortNewest:
		return e.catalog.Newest(ctx, storeId, MaxResults)
	case SortBestSelling:
		candidates, err := e.catalog.BestSelling(ctx, storeId, MaxResults)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			// No sales history yet, recency is the best popularity proxy.
			return e.catalog.Newest(ctx, storeId, MaxResults)
		}
		return candidates, nil
	}

	vector, err := e.embedder.Embed(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vector) == 0 {
		return nil, nil
	}

	topK := relevanceTopK
	if query.SortBy.IsPriceSort() {
		topK = priceSortTopK
	}

	candidates, err := e.index.Search(ctx, storeId, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	keywords := ExtractKeywords(query.Text)
	for i := range candidates {
		scoreCandidate(&candidates[i], query.Text, keywords)
	}

	if attr := normalizeQuery(query.BoostAttribute); attr != "" {
		for i := range candidates {
			c := &candidates[i]
			if strings.Contains(strings.ToLower(c.ProductType), attr) || tagsContain(c.Tags, attr) {
				c.Score += attributeBoost
				c.HasKeywordMatch = true
			}
		}
	}

	candidates = filterByPrice(candidates, query.MinPrice, query.MaxPrice)

	if query.SortBy.IsPriceSort() && !e.isGenericQuery(query.Text) {
		kept := candidates[:0]
		dropped := 0
		for _, c := range candidates {
			if c.HasKeywordMatch {
				kept = append(kept, c)
			} else {
				dropped++
			}
		}
		candidates = kept
		if dropped > 0 {
			e.log.Debug("RetrievalEngine", "Relevance gate dropped candidates", map[string]interface{}{
				"store_id": storeId,
				"query":    query.Text,
				"dropped":  dropped,
				"kept":     len(candidates),
			})
		}
	}

	switch query.SortBy {
	case SortPriceAsc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].RealPrice < candidates[j].RealPrice
		})
	case SortPriceDesc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].RealPrice > candidates[j].RealPrice
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
	}

	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}
	return candidates, nil
}

// scoreCandidate adds keyword and exact-match bonuses to the vector score
// and parses the display price into RealPrice.
func scoreCandidate(c *Candidate, queryText string, keywords []string) {
	c.RealPrice = parsePrice(c.Price)

	title := strings.ToLower(c.Title)
	handle := strings.ToLower(c.Handle)
	productType := strings.ToLower(c.ProductType)
	normalizedQuery := normalizeQuery(queryText)

	var bonus float64
	for _, kw := range keywords {
		switch {
		case strings.Contains(title, kw):
			bonus += titleBonus
			c.HasKeywordMatch = true
		case strings.Contains(productType, kw) || tagsContain(c.Tags, kw):
			bonus += tagBonus
			c.HasKeywordMatch = true
		case strings.Contains(handle, kw):
			bonus += handleBonus
			c.HasKeywordMatch = true
		}
	}

	if normalizedQuery != "" {
		if title == normalizedQuery || handle == normalizedQuery {
			bonus += exactMatchBonus
			c.HasKeywordMatch = true
		} else if strings.Contains(title, normalizedQuery) {
			bonus += titleContainsQBonus
			c.HasKeywordMatch = true
		}
	}

	c.Score += bonus
}

func tagsContain(tags []string, kw string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), kw) {
			return true
		}
	}
	return false
}

func filterByPrice(candidates []Candidate, min, max *float64) []Candidate {
	if min == nil && max == nil {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if min != nil && c.RealPrice < *min {
			continue
		}
		if max != nil && c.RealPrice > *max {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (e *Engine) isGenericQuery(text string) bool {
	return e.generics[normalizeQuery(text)]
}

func normalizeQuery(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), " ")
}

// parsePrice extracts a numeric value from a display price such as
// "$80.00" or "1,299". Unparseable prices become 0.
func parsePrice(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
