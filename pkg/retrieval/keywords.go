package retrieval

import "strings"

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true,
	"your": true, "he": true, "she": true, "they": true, "them": true,
	"it": true, "its": true, "this": true, "that": true, "these": true,
	"those": true, "what": true, "which": true, "who": true, "how": true,
	"do": true, "does": true, "did": true, "have": true, "has": true,
	"had": true, "can": true, "could": true, "will": true, "would": true,
	"should": true, "may": true, "might": true, "shall": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "about": true, "under": true,
	"over": true, "not": true, "no": true, "so": true, "if": true,
	"show": true, "find": true, "give": true, "get": true, "want": true,
	"need": true, "looking": true, "please": true, "some": true, "any": true,
}

// pronounRefs are the conversational back-references that mark a follow-up
// about something already shown rather than a fresh product search.
var pronounRefs = map[string]bool{
	"it": true, "that": true, "this": true, "them": true,
	"those": true, "these": true, "one": true, "ones": true,
}

// attributeWords are follow-up attribute probes ("how much is it", "what
// color is that one") which carry no standalone product intent.
var attributeWords = map[string]bool{
	"much": true, "price": true, "cost": true, "costs": true,
	"color": true, "colour": true, "size": true, "sizes": true,
	"cheap": true, "cheaper": true, "expensive": true,
	"available": true, "stock": true, "big": true, "small": true,
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}

// ExtractKeywords lowercases and tokenizes the query, then drops stop words
// and tokens of two characters or fewer.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, tok := range tokenize(text) {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// IsRefinementQuery reports whether the text is a short pronoun follow-up
// ("how much is it") that should resolve against conversation memory
// instead of triggering a new search.
func IsRefinementQuery(text string) bool {
	words := tokenize(text)
	if len(words) == 0 || len(words) >= 5 {
		return false
	}

	hasPronoun := false
	for _, w := range words {
		if pronounRefs[w] {
			hasPronoun = true
			break
		}
	}
	if !hasPronoun {
		return false
	}

	// Any surviving keyword that is not the pronoun itself or a plain
	// attribute probe signals fresh product intent.
	for _, kw := range ExtractKeywords(text) {
		if !pronounRefs[kw] && !attributeWords[kw] {
			return false
		}
	}
	return true
}
