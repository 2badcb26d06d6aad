package domain

// Tags emitted by the Swedish constituency grammar that the normalizer acts on.
const (
	// TagPlaceholder marks an intermediate phrase with no grammatical meaning of its own.
	TagPlaceholder = "XP"
	// TagVerb marks a bare verb.
	TagVerb = "VB"
	// TagVerbPhrase marks a verb phrase.
	TagVerbPhrase = "VP"
)
