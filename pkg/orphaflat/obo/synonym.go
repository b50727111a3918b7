package obo

import (
	"regexp"
	"strings"
)

// synonymPattern matches: "text" TYPE [SUBTYPE] [source, ...]
// e.g. "Abnormality of body height" EXACT layperson []
var synonymPattern = regexp.MustCompile(`^"([^"]+)"\s+(\w+)(?:\s+(\w+))?\s*\[(.*?)\]`)

// Synonym is the decomposed form of a compound synonym annotation.
type Synonym struct {
	Text   string
	Type   string // scope plus optional subtype, space-separated
	Source string

	// Matched distinguishes a synonym that genuinely has no type from
	// one whose annotation failed to parse and was carried verbatim.
	Matched bool
}

// ParseSynonym decomposes a synonym annotation string. Input that does
// not match the expected shape degrades to the raw string as the text
// with empty type and source; it never fails.
func ParseSynonym(s string) Synonym {
	m := synonymPattern.FindStringSubmatch(s)
	if m == nil {
		return Synonym{Text: s}
	}
	typ := m[2]
	if m[3] != "" {
		typ += " " + m[3]
	}
	return Synonym{
		Text:    strings.TrimSpace(m[1]),
		Type:    strings.TrimSpace(typ),
		Source:  strings.TrimSpace(m[4]),
		Matched: true,
	}
}
