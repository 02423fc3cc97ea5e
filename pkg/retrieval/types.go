package retrieval

import "context"

// SortMode selects how a result list is ordered and which retrieval path
// is used to produce it.
type SortMode string

const (
	SortRelevance   SortMode = "relevance"
	SortPriceAsc    SortMode = "price_asc"
	SortPriceDesc   SortMode = "price_desc"
	SortNewest      SortMode = "newest"
	SortBestSelling SortMode = "best_selling"
)

// IsPriceSort reports whether the mode orders by price, which triggers the
// wider candidate fetch and the keyword relevance gate.
func (s SortMode) IsPriceSort() bool {
	return s == SortPriceAsc || s == SortPriceDesc
}

// Query is one retrieval request scoped to a single store. BoostAttribute
// optionally names a product type or tag the customer emphasized; matching
// candidates rank higher without excluding the rest.
type Query struct {
	Text           string
	SortBy         SortMode
	MinPrice       *float64
	MaxPrice       *float64
	BoostAttribute string
}

// Candidate is a product surfaced by the vector index or the relational
// fallback. Score starts as the raw vector similarity and is boosted in
// place during hybrid scoring.
type Candidate struct {
	Id          string
	Title       string
	Handle      string
	Price       string
	Image       string
	Tags        []string
	ProductType string
	Description string

	Score           float64
	RealPrice       float64
	HasKeywordMatch bool
}

// Embedder produces a query vector. Kept narrow so tests can stub it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex runs a tenant-scoped similarity search.
type VectorIndex interface {
	Search(ctx context.Context, storeId string, vector []float32, limit int) ([]Candidate, error)
}

// Catalog serves the relational paths that bypass the vector index.
type Catalog interface {
	Newest(ctx context.Context, storeId string, limit int) ([]Candidate, error)
	BestSelling(ctx context.Context, storeId string, limit int) ([]Candidate, error)
}
