package domain

import (
	"errors"
	"fmt"
)

// ErrParse is returned when the external parser fails or detects no sentence.
var ErrParse = errors.New("parse failed")

// ErrNoSentence is returned when the parser finds no sentence span in the input.
var ErrNoSentence = fmt.Errorf("%w: no sentence detected", ErrParse)

// ErrDeserialize is returned when a bracketed parse string is malformed.
var ErrDeserialize = errors.New("malformed parse tree")

// ErrNormalize is returned when rewriting a tree fails unexpectedly.
var ErrNormalize = errors.New("normalization failed")

// ErrRender is returned when the tree graphic cannot be generated.
var ErrRender = errors.New("render failed")
