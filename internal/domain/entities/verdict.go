package entities

// Verdict is the outcome of classifying one event description
type Verdict string

const (
	VerdictFree Verdict = "FREE"
	VerdictPaid Verdict = "PAID"

	// VerdictConditional is reserved for nuanced analysis (e.g. a semantic
	// reviewer); the lexical path never produces it but callers must handle it.
	VerdictConditional Verdict = "CONDITIONAL"

	VerdictUnknown Verdict = "UNKNOWN"
)

// Classification bundles a verdict with its advisory warnings. Warnings are
// independent of the verdict and never change it.
type Classification struct {
	Verdict  Verdict  `json:"verdict"`
	Warnings []string `json:"warnings"`
}
