package campaign

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ai-commerce-chat-be/internal/entity"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// synonyms maps a canonical trigger phrase to alternate phrasings that
// should fire the same campaign. Matching is bidirectional: a campaign
// triggered by "best sellers" also fires on "popular" and vice versa.
var synonyms = map[string][]string{
	"best sellers": {"best seller", "best selling", "popular", "trending", "top rated", "top sellers"},
	"new arrivals": {"new arrival", "just in", "latest", "new in", "whats new"},
	"sale":         {"discount", "discounts", "deal", "deals", "promo", "promotion", "clearance"},
}

type compiledCampaign struct {
	campaignId uuid.UUID
	patterns   []*regexp.Regexp
}

// Matcher resolves incoming text against a store's active campaign trigger
// keywords. Compiled keyword sets are cached per store so the regexp work
// happens once per campaign revision, not per message.
type Matcher struct {
	cache *gocache.Cache
}

func NewMatcher() *Matcher {
	return &Matcher{
		cache: gocache.New(15*time.Minute, 5*time.Minute),
	}
}

// Match returns the first active campaign whose trigger keywords (or their
// synonyms) appear in text as whole words, or nil when nothing fires.
func (m *Matcher) Match(storeId uuid.UUID, campaigns []*entity.Campaign, text string) *entity.Campaign {
	if len(campaigns) == 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	compiled := m.compiledFor(storeId, campaigns)
	lowered := strings.ToLower(text)

	for _, cc := range compiled {
		for _, pattern := range cc.patterns {
			if pattern.MatchString(lowered) {
				for _, c := range campaigns {
					if c.Id == cc.campaignId {
						return c
					}
				}
			}
		}
	}
	return nil
}

func (m *Matcher) compiledFor(storeId uuid.UUID, campaigns []*entity.Campaign) []compiledCampaign {
	key := storeId.String() + ":" + fingerprint(campaigns)
	if cached, found := m.cache.Get(key); found {
		return cached.([]compiledCampaign)
	}

	var compiled []compiledCampaign
	for _, c := range campaigns {
		if !c.IsActive {
			continue
		}
		cc := compiledCampaign{campaignId: c.Id}
		for _, phrase := range expandKeywords(c.TriggerKeywords) {
			if p, err := compilePhrase(phrase); err == nil {
				cc.patterns = append(cc.patterns, p)
			}
		}
		if len(cc.patterns) > 0 {
			compiled = append(compiled, cc)
		}
	}

	m.cache.Set(key, compiled, gocache.DefaultExpiration)
	return compiled
}

// expandKeywords widens trigger phrases with the synonym table, deduplicated.
func expandKeywords(keywords []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(phrase string) {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" || seen[phrase] {
			return
		}
		seen[phrase] = true
		out = append(out, phrase)
	}

	for _, kw := range keywords {
		add(kw)
		normalized := strings.ToLower(strings.TrimSpace(kw))
		for canonical, alts := range synonyms {
			if normalized == canonical {
				for _, alt := range alts {
					add(alt)
				}
				continue
			}
			for _, alt := range alts {
				if normalized == alt {
					add(canonical)
					for _, sibling := range alts {
						add(sibling)
					}
					break
				}
			}
		}
	}
	return out
}

// compilePhrase builds a word-boundary pattern so "popular" never fires on
// "unpopular".
func compilePhrase(phrase string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// fingerprint changes whenever a store's campaign set changes, invalidating
// the compiled cache entry.
func fingerprint(campaigns []*entity.Campaign) string {
	h := sha1.New()
	for _, c := range campaigns {
		var updated int64
		if c.UpdatedAt != nil {
			updated = c.UpdatedAt.UnixNano()
		}
		fmt.Fprintf(h, "%s|%v|%s|%d;", c.Id, c.IsActive, strings.Join(c.TriggerKeywords, ","), updated)
	}
	return hex.EncodeToString(h.Sum(nil))
}
