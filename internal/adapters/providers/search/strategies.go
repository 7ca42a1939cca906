package search

// DomainStrategies are query suffixes biased toward listings that are
// explicitly free. Available policy for site-targeted discovery passes;
// compose one onto a built query with WithStrategy.
var DomainStrategies = []string{
	`site:eventbrite.com "free"`,
	`site:meetup.com "no cover charge"`,
	`"open to public" + "no tickets required"`,
}

// WithStrategy appends a domain strategy to an already-built query.
func WithStrategy(query, strategy string) string {
	if strategy == "" {
		return query
	}
	return query + " " + strategy
}
