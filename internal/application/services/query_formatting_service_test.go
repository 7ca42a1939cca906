package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_StripsRequestPrefix(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("Can you find me jazz shows?")

	assert.NotContains(t, formatted, "can you")
	assert.NotContains(t, formatted, "find me")
	assert.Contains(t, formatted, "free")
	assert.Contains(t, formatted, `"jazz shows"`)
}

func TestFormat_UnwindsStackedPrefixes(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("could you help me look for poetry readings")

	assert.NotContains(t, formatted, "could you")
	assert.NotContains(t, formatted, "help me")
	assert.NotContains(t, formatted, "look for")
	assert.Contains(t, formatted, "poetry readings")
}

func TestFormat_AppendsEventsKeyword(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("jazz in the park")

	assert.Contains(t, formatted, "events")
}

func TestFormat_KeepsExistingEventKeyword(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("free jazz concert")

	assert.Equal(t, 1, strings.Count(formatted, "concert"))
	assert.NotContains(t, formatted, " events")
}

func TestFormat_PrependsFree(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("comedy shows downtown")

	assert.True(t, strings.HasPrefix(formatted, "free "))
}

func TestFormat_IdempotentOnFreeAndKeyword(t *testing.T) {
	svc := NewQueryFormattingService()

	first := svc.Format("free jazz events")
	second := svc.Format(first)

	assert.NotContains(t, second, "free free")
	assert.Equal(t, 1, strings.Count(second, " events"))
}

func TestFormat_FallbackNeverEmpty(t *testing.T) {
	svc := NewQueryFormattingService()

	assert.Equal(t, "", svc.Format(""))
	assert.Equal(t, "", svc.Format("   "))
	// Reduces to nothing after punctuation stripping: fall back to the
	// trimmed original instead of an empty query.
	assert.Equal(t, "?!?", svc.Format(" ?!? "))
}

func TestFormat_QuotesCorePhrase(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("show me outdoor salsa dancing tonight")

	assert.Contains(t, formatted, `"outdoor salsa dancing tonight"`)
}

func TestFormat_CorePhraseCappedAtFourTokens(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("loud outdoor salsa dancing lessons somewhere")

	assert.Contains(t, formatted, `"loud outdoor salsa dancing"`)
	assert.NotContains(t, formatted, `"loud outdoor salsa dancing lessons"`)
}

func TestFormat_NoQuotedPhraseWhenAllStopwords(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("events this weekend")

	assert.NotContains(t, formatted, `"`)
}

func TestFormat_StripsTrailingPunctuation(t *testing.T) {
	svc := NewQueryFormattingService()

	formatted := svc.Format("what are free concerts!!!")

	assert.NotContains(t, formatted, "!")
	assert.NotContains(t, formatted, "what are")
}
