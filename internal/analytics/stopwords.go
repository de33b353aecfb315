package analytics

// stopWords holds English function words and high-frequency fillers that
// carry no sentiment signal. Polarity-bearing words must never appear here;
// they would silently vanish from the scorer's counts.
var stopWords = map[string]struct{}{
	// Articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"each": {}, "some": {}, "any": {}, "no": {}, "all": {}, "both": {}, "few": {},
	"more": {}, "most": {}, "other": {}, "such": {}, "own": {}, "same": {},
	// Pronouns
	"i": {}, "me": {}, "my": {}, "we": {}, "us": {}, "our": {}, "you": {}, "your": {},
	"he": {}, "him": {}, "his": {}, "she": {}, "her": {}, "hers": {}, "it": {}, "its": {},
	"they": {}, "them": {}, "their": {}, "who": {}, "whom": {}, "which": {}, "what": {},
	// Auxiliaries and copulas
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {}, "having": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "shall": {}, "should": {},
	"may": {}, "might": {}, "must": {},
	// Conjunctions and complementizers
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "if": {}, "because": {},
	"while": {}, "although": {}, "though": {}, "than": {}, "then": {}, "when": {},
	"where": {}, "why": {}, "how": {},
	// Prepositions
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "from": {}, "with": {},
	"by": {}, "about": {}, "into": {}, "onto": {}, "over": {}, "under": {}, "after": {},
	"before": {}, "between": {}, "during": {}, "through": {}, "up": {}, "down": {},
	"out": {}, "off": {},
	// Adverbial fillers
	"not": {}, "very": {}, "too": {}, "also": {}, "just": {}, "only": {}, "again": {},
	"once": {}, "here": {}, "there": {}, "now": {},
}

func isStopWord(tok string) bool {
	_, ok := stopWords[tok]
	return ok
}
