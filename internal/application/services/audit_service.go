package services

import (
	"strings"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
)

// Cost indicators scanned in order; the first match decides the verdict.
var costIndicators = []string{
	"ticket",
	"pay",
	"paid entry",
	"cover charge",
	"admission",
	"suggested donation",
	"drink minimum",
	"cost",
	"price",
	"fee",
}

type hiddenCostWarning struct {
	phrase  string
	message string
}

var hiddenCostWarnings = []hiddenCostWarning{
	{"suggested donation", "Event includes suggested donation"},
	{"drink minimum", "Event has drink minimum requirement"},
	{"cover charge", "Event has cover charge"},
	{"membership", "Event may require membership"},
}

// AuditService verifies that events are truly free. Classification is a fast,
// explainable lexical filter, not a semantic model.
type AuditService struct{}

// NewAuditService creates a new audit service.
func NewAuditService() *AuditService {
	return &AuditService{}
}

// Classify inspects an event description for cost indicators. The single
// context-sensitive rule: "ticket" co-occurring with "free" is treated as a
// false positive ("free tickets available") and scanning continues.
func (s *AuditService) Classify(description string) entities.Verdict {
	if description == "" {
		return entities.VerdictUnknown
	}

	lower := strings.ToLower(description)

	for _, indicator := range costIndicators {
		if !strings.Contains(lower, indicator) {
			continue
		}
		if indicator == "ticket" && strings.Contains(lower, "free") {
			continue
		}
		return entities.VerdictPaid
	}

	return entities.VerdictFree
}

// Warnings reports potential hidden costs. Advisory only; warnings never
// change the verdict.
func (s *AuditService) Warnings(description string) []string {
	lower := strings.ToLower(description)

	var warnings []string
	for _, w := range hiddenCostWarnings {
		if strings.Contains(lower, w.phrase) {
			warnings = append(warnings, w.message)
		}
	}
	return warnings
}

// ClassifyWithWarnings bundles the verdict and warnings for standalone
// verification callers.
func (s *AuditService) ClassifyWithWarnings(description string) entities.Classification {
	return entities.Classification{
		Verdict:  s.Classify(description),
		Warnings: s.Warnings(description),
	}
}
