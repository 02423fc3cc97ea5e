package campaign

import (
	"testing"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaign(name string, keywords []string, active bool) *entity.Campaign {
	return &entity.Campaign{
		Id:              uuid.New(),
		StoreId:         uuid.New(),
		Name:            name,
		TriggerKeywords: keywords,
		ResponseMessage: "Check these out!",
		IsActive:        active,
	}
}

func TestMatchWordBoundary(t *testing.T) {
	matcher := NewMatcher()
	storeId := uuid.New()
	popular := newCampaign("Popular picks", []string{"popular"}, true)
	campaigns := []*entity.Campaign{popular}

	tests := []struct {
		name string
		text string
		want *entity.Campaign
	}{
		{"plain hit", "show me popular items", popular},
		{"no hit inside word", "that brand is unpopular here", nil},
		{"case insensitive", "POPULAR stuff please", popular},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(storeId, campaigns, tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchSynonyms(t *testing.T) {
	matcher := NewMatcher()
	storeId := uuid.New()
	arrivals := newCampaign("New drops", []string{"new arrivals"}, true)
	bestSellers := newCampaign("Top picks", []string{"best sellers"}, true)
	campaigns := []*entity.Campaign{arrivals, bestSellers}

	tests := []struct {
		name string
		text string
		want *entity.Campaign
	}{
		{"canonical phrase", "any new arrivals?", arrivals},
		{"synonym just in", "what's just in this week", arrivals},
		{"synonym latest", "show me the latest", arrivals},
		{"synonym trending", "what's trending right now", bestSellers},
		{"reverse direction", "show top rated products", bestSellers},
		{"unrelated", "do you ship to canada", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(storeId, campaigns, tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchFirstActiveWins(t *testing.T) {
	matcher := NewMatcher()
	storeId := uuid.New()
	first := newCampaign("Sale A", []string{"sale"}, true)
	second := newCampaign("Sale B", []string{"sale"}, true)

	got := matcher.Match(storeId, []*entity.Campaign{first, second}, "is there a sale on?")
	require.NotNil(t, got)
	assert.Equal(t, first.Id, got.Id)
}

func TestMatchSkipsInactiveCampaigns(t *testing.T) {
	matcher := NewMatcher()
	storeId := uuid.New()
	inactive := newCampaign("Old promo", []string{"sale"}, false)

	got := matcher.Match(storeId, []*entity.Campaign{inactive}, "any sale today?")
	assert.Nil(t, got)
}

func TestMatchRecompilesWhenCampaignsChange(t *testing.T) {
	matcher := NewMatcher()
	storeId := uuid.New()
	c := newCampaign("Promo", []string{"sale"}, true)

	got := matcher.Match(storeId, []*entity.Campaign{c}, "any sale today?")
	require.NotNil(t, got)

	// Deactivating must take effect despite the compiled cache.
	c.IsActive = false
	got = matcher.Match(storeId, []*entity.Campaign{c}, "any sale today?")
	assert.Nil(t, got)
}
