package memory

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/aretw0/frasig/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Parser implements ports.SentenceParser from a fixed set of known parses.
// It stands in for the statistical parser in tests and offline demos.
type Parser struct {
	mu     sync.RWMutex
	parses map[string]string
}

// FixtureFile is the YAML layout read by LoadFixtures.
type FixtureFile struct {
	Sentences []domain.Sentence `yaml:"sentences" json:"sentences"`
}

// NewParser creates a Parser answering with the given sentence → parse pairs.
func NewParser(parses map[string]string) *Parser {
	p := &Parser{parses: make(map[string]string, len(parses))}
	for text, parse := range parses {
		p.parses[strings.TrimSpace(text)] = parse
	}
	return p
}

// LoadFixtures reads a YAML fixture file into a Parser.
func LoadFixtures(path string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}

	p := NewParser(nil)
	for i, s := range file.Sentences {
		if strings.TrimSpace(s.Text) == "" || strings.TrimSpace(s.Parse) == "" {
			return nil, fmt.Errorf("fixture %d in %s: text and parse are required", i, path)
		}
		p.Add(s.Text, s.Parse)
	}
	return p, nil
}

// Add registers (or replaces) the parse for a sentence.
func (p *Parser) Add(text, parse string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parses[strings.TrimSpace(text)] = parse
}

// Len returns the number of known sentences.
func (p *Parser) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.parses)
}

var sentenceEnd = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Parse splits text at sentence-final punctuation and answers each span from
// the fixtures. A text registered as a whole is returned as a single sentence.
// Only an unknown first span is an error; later unknown spans are returned
// with an empty parse.
func (p *Parser) Parse(ctx context.Context, text string) ([]domain.Sentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.Sentence{}, nil
	}
	if parse, ok := p.parses[text]; ok {
		return []domain.Sentence{{Text: text, Parse: parse}}, nil
	}

	var out []domain.Sentence
	for _, span := range sentenceEnd.FindAllString(text, -1) {
		span = strings.TrimSpace(span)
		if span == "" {
			continue
		}
		parse, ok := p.parses[span]
		if !ok && len(out) == 0 {
			return nil, fmt.Errorf("%w: no fixture for %q", domain.ErrNoSentence, span)
		}
		out = append(out, domain.Sentence{Text: span, Parse: parse})
	}
	return out, nil
}
