package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithStrategy(t *testing.T) {
	assert.Equal(t, "free jazz events", WithStrategy("free jazz events", ""))

	biased := WithStrategy("free jazz events", DomainStrategies[0])
	assert.True(t, strings.HasPrefix(biased, "free jazz events "))
	assert.Contains(t, biased, "site:eventbrite.com")
}

func TestDomainStrategies_TargetFreeListings(t *testing.T) {
	for _, strategy := range DomainStrategies {
		lower := strings.ToLower(strategy)
		assert.True(t,
			strings.Contains(lower, "free") ||
				strings.Contains(lower, "no cover charge") ||
				strings.Contains(lower, "no tickets required"),
			"strategy %q should bias toward free listings", strategy)
	}
}
