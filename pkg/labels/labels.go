// Package labels maps the tags of the Swedish constituency grammar to the
// display names shown in rendered trees.
package labels

import (
	"maps"
	"sort"
)

// Table maps grammar tags to display labels.
type Table map[string]string

// Swedish is the built-in inventory. The tag set is closed and defined by the
// parser's grammar, so every entry is spelled out.
var Swedish = Table{
	// Phrases
	"S":    "Sats",
	"NP":   "NP",
	"VP":   "VP",
	"PP":   "PP",
	"ADJP": "AdjP",
	"AP":   "AdjP",
	"ADVP": "AdvP",
	"AVP":  "AdvP",
	"PRN":  "Parentes",

	// Parts of speech
	"NN":   "Subst",
	"PM":   "Egennamn", // proper names of people and places
	"VB":   "Verb",
	"JJ":   "Adj",
	"AB":   "Adv",
	"PN":   "Pron",
	"PS":   "Poss. pron.",
	"HP":   "Rel. pron.", // "som"
	"HA":   "Rel. adv.",  // "där"
	"P":    "Prep",
	"KN":   "Konj",
	"SN":   "Subj",
	"IE":   "Inf-märke", // "att"
	"DT":   "Determinerare",
	"RG":   "Räkn Grundtal",
	"RO":   "Räkn Ordningstal",
	"PC":   "Particip",
	"PL":   "Partikel",
	"UO":   "Utl",
	"INTJ": "Interj",

	// Punctuation
	"MAD": "Skilj",
	"MID": "Skilj",
	"PAD": "Par",
}

// Default returns a copy of the Swedish table that callers may modify.
func Default() Table {
	return maps.Clone(Swedish)
}

// Lookup returns the display label for tag, or tag itself when it is not in the table.
func (t Table) Lookup(tag string) string {
	if label, ok := t[tag]; ok {
		return label
	}
	return tag
}

// Merge returns a new table with overrides applied on top of t.
func (t Table) Merge(overrides map[string]string) Table {
	out := make(Table, len(t)+len(overrides))
	maps.Copy(out, t)
	maps.Copy(out, overrides)
	return out
}

// Tags returns the tags of the table in sorted order.
func (t Table) Tags() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
