package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vector, s.err
}

type stubIndex struct {
	candidates []Candidate
	err        error
	gotLimit   int
}

func (s *stubIndex) Search(ctx context.Context, storeId string, vector []float32, limit int) ([]Candidate, error) {
	s.gotLimit = limit
	// Return copies so score mutation does not leak between test cases.
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, s.err
}

type stubCatalog struct {
	newest      []Candidate
	bestSelling []Candidate
}

func (s *stubCatalog) Newest(ctx context.Context, storeId string, limit int) ([]Candidate, error) {
	return s.newest, nil
}

func (s *stubCatalog) BestSelling(ctx context.Context, storeId string, limit int) ([]Candidate, error) {
	return s.bestSelling, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestEngine(index *stubIndex, catalog *stubCatalog) *Engine {
	return NewEngine(
		&stubEmbedder{vector: []float32{0.1, 0.2, 0.3}},
		index,
		catalog,
		[]string{"products", "items", "best selling", "all products"},
		noopLogger{},
	)
}

func TestSearchPriceSortGatesIrrelevantCandidates(t *testing.T) {
	index := &stubIndex{candidates: []Candidate{
		{Id: "p1", Title: "Running Sneakers", Price: "$80.00", Score: 0.72},
		{Id: "p2", Title: "Leather Wallet", Price: "$40.00", Score: 0.68},
	}}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "sneakers",
		SortBy: SortPriceAsc,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].Id)
	assert.True(t, results[0].HasKeywordMatch)
	assert.Equal(t, priceSortTopK, index.gotLimit)
}

func TestSearchExactTitleQueryRanksFirst(t *testing.T) {
	index := &stubIndex{candidates: []Candidate{
		{Id: "p1", Title: "Canvas Tote Bag", Price: "$25.00", Score: 0.91},
		{Id: "p2", Title: "Classic Tote Bag", Price: "$30.00", Score: 0.55},
		{Id: "p3", Title: "Classic Tote Bag XL", Price: "$35.00", Score: 0.60},
	}}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "Classic Tote Bag",
		SortBy: SortRelevance,
	})

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "p2", results[0].Id)
}

func TestSearchGenericQuerySkipsRelevanceGate(t *testing.T) {
	index := &stubIndex{candidates: []Candidate{
		{Id: "p1", Title: "Leather Wallet", Price: "$40.00", Score: 0.42},
		{Id: "p2", Title: "Steel Bottle", Price: "$15.00", Score: 0.40},
	}}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "Products",
		SortBy: SortPriceAsc,
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p2", results[0].Id)
	assert.Equal(t, "p1", results[1].Id)
}

func TestSearchBoostAttributeRanksMatchingProductsHigher(t *testing.T) {
	index := &stubIndex{candidates: []Candidate{
		{Id: "p1", Title: "City Backpack", ProductType: "Backpack", Tags: []string{"canvas"}, Price: "$90.00", Score: 0.70},
		{Id: "p2", Title: "Commuter Backpack", ProductType: "Backpack", Tags: []string{"leather"}, Price: "$120.00", Score: 0.60},
	}}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:           "backpack",
		SortBy:         SortRelevance,
		BoostAttribute: "leather",
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p2", results[0].Id)
	assert.True(t, results[0].HasKeywordMatch)
}

func TestSearchAppliesStrictPriceFilter(t *testing.T) {
	min, max := 20.0, 60.0
	index := &stubIndex{candidates: []Candidate{
		{Id: "cheap", Title: "Sneaker Socks", Price: "$10.00", Score: 0.8},
		{Id: "mid", Title: "Trail Sneakers", Price: "$45.00", Score: 0.7},
		{Id: "pricey", Title: "Pro Sneakers", Price: "$120.00", Score: 0.9},
	}}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:     "sneakers",
		SortBy:   SortPriceAsc,
		MinPrice: &min,
		MaxPrice: &max,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mid", results[0].Id)
}

func TestSearchTruncatesToMaxResults(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, Candidate{
			Id:    fmt.Sprintf("p%d", i),
			Title: fmt.Sprintf("Sneaker Model %d", i),
			Price: "$50.00",
			Score: 0.5,
		})
	}
	index := &stubIndex{candidates: candidates}
	engine := newTestEngine(index, &stubCatalog{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "sneakers",
		SortBy: SortRelevance,
	})

	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
	assert.Equal(t, relevanceTopK, index.gotLimit)
}

func TestSearchEmptyEmbeddingReturnsEmptyNotError(t *testing.T) {
	engine := NewEngine(&stubEmbedder{vector: nil}, &stubIndex{}, &stubCatalog{}, nil, noopLogger{})

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "sneakers",
		SortBy: SortRelevance,
	})

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchBestSellingFallsBackToNewest(t *testing.T) {
	catalog := &stubCatalog{
		newest: []Candidate{{Id: "fresh", Title: "New Hoodie"}},
	}
	engine := newTestEngine(&stubIndex{}, catalog)

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "whatever",
		SortBy: SortBestSelling,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fresh", results[0].Id)
}

func TestSearchBestSellingUsesSalesWhenPresent(t *testing.T) {
	catalog := &stubCatalog{
		newest:      []Candidate{{Id: "fresh"}},
		bestSelling: []Candidate{{Id: "hot"}},
	}
	engine := newTestEngine(&stubIndex{}, catalog)

	results, err := engine.Search(context.Background(), "store-1", Query{
		Text:   "whatever",
		SortBy: SortBestSelling,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hot", results[0].Id)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"dollar prefix", "$80.00", 80.0},
		{"thousands separator", "1,299.50", 1299.5},
		{"plain integer", "45", 45.0},
		{"currency code", "IDR 50000", 50000.0},
		{"garbage", "call us", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePrice(tt.input))
		})
	}
}
