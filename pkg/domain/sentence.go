package domain

import "time"

// Sentence is one span detected by the parser.
type Sentence struct {
	// Text is the surface text of the span.
	Text string `json:"text" yaml:"text"`
	// Parse is the bracketed constituency tree, e.g. "(S (NN hund) (VB sprang))".
	Parse string `json:"parse" yaml:"parse"`
}

// Analysis is the outcome of analysing a single submitted sentence.
type Analysis struct {
	ID string `json:"id"`
	// Input is the text exactly as submitted.
	Input string `json:"sentence"`
	// Span is the first sentence span the parser detected; only it is analysed.
	Span string `json:"span"`
	// Discarded counts the further spans that were ignored.
	Discarded int `json:"discarded"`

	Raw  *Node `json:"raw_tree"`
	Tree *Node `json:"tree"`

	// Bracketed is the normalized tree in bracket notation.
	Bracketed string `json:"bracketed"`
	// SVG is the rendered tree, suitable for inlining in HTML.
	SVG string `json:"svg,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
