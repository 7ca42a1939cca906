package services

import (
	"regexp"
	"strings"
)

// Ordered politeness prefixes; each is stripped at most once from the start.
var requestPrefixes = []string{
	"can you",
	"could you",
	"please",
	"i want to",
	"i would like to",
	"i'd like to",
	"help me",
	"show me",
	"find me",
	"find",
	"look for",
	"search for",
	"get me",
	"what are",
	"any",
}

var eventKeywords = map[string]struct{}{
	"event": {}, "events": {}, "concert": {}, "show": {}, "festival": {},
	"meetup": {}, "talk": {}, "lecture": {}, "workshop": {}, "class": {},
	"market": {}, "fair": {}, "exhibition": {},
}

// Stop words removed when extracting the core phrase: articles, temporal
// words, and generic event nouns that carry no search signal of their own.
var coreStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "me": {}, "my": {}, "for": {}, "to": {},
	"in": {}, "near": {}, "around": {}, "at": {}, "this": {}, "today": {},
	"tomorrow": {}, "week": {}, "weekend": {}, "next": {}, "days": {},
	"day": {}, "free": {}, "event": {}, "events": {}, "concert": {},
	"show": {}, "festival": {}, "meetup": {}, "talk": {}, "lecture": {},
	"workshop": {}, "class": {}, "market": {}, "fair": {}, "exhibition": {},
}

var trailingPunctuation = regexp.MustCompile(`[?!.]+$`)

// QueryFormattingService turns free-text user input into a search query
// biased toward free, event-domain results. Pure and deterministic; it never
// needs an external NLP service.
type QueryFormattingService struct{}

// NewQueryFormattingService creates a new query formatting service.
func NewQueryFormattingService() *QueryFormattingService {
	return &QueryFormattingService{}
}

// Format normalizes raw user input into a concise search query. Empty input
// yields empty output; input that reduces to nothing after stripping falls
// back to the trimmed original so the caller never gets an unusable query.
func (s *QueryFormattingService) Format(raw string) string {
	if raw == "" {
		return ""
	}

	query := strings.ToLower(strings.TrimSpace(raw))
	query = strings.TrimSpace(trailingPunctuation.ReplaceAllString(query, ""))

	// Each prefix is stripped at most once, in list order, so stacked
	// politeness ("can you find me ...") unwinds fully.
	for _, prefix := range requestPrefixes {
		if strings.HasPrefix(query, prefix+" ") {
			query = strings.TrimSpace(strings.TrimPrefix(query, prefix+" "))
		}
	}

	query = strings.Join(strings.Fields(query), " ")

	if query == "" {
		return strings.TrimSpace(raw)
	}

	corePhrase := extractCorePhrase(query)

	// Order matters below: the keyword check runs on the prefix-stripped
	// text, before "free" is prepended and the phrase is appended.
	if !containsEventKeyword(query) {
		query += " events"
	}

	if !strings.Contains(query, "free") {
		query = "free " + query
	}

	if corePhrase != "" {
		query += ` "` + corePhrase + `"`
	}

	return query
}

func containsEventKeyword(query string) bool {
	for _, token := range strings.Fields(query) {
		if _, ok := eventKeywords[token]; ok {
			return true
		}
	}
	return false
}

// extractCorePhrase keeps a short, focused phrase to quote: at most the first
// four tokens that survive stop-word removal.
func extractCorePhrase(query string) string {
	var tokens []string
	for _, token := range strings.Fields(query) {
		if _, ok := coreStopwords[token]; ok {
			continue
		}
		tokens = append(tokens, token)
		if len(tokens) == 4 {
			break
		}
	}
	return strings.Join(tokens, " ")
}
