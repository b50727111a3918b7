// Package obo parses the HPO ontology in OBO tag-block format and
// flattens its terms to the fixed CSV contract.
package obo

import (
	"bufio"
	"io"
	"strings"
)

const (
	termMarker        = "[Term]"
	scannerBufferSize = 1 << 20 // 1 MB
)

// multiValued lists the tags that accumulate across repeated
// occurrences. Any other tag keeps only its last-seen value.
var multiValued = map[string]bool{
	"synonym":         true,
	"xref":            true,
	"alt_id":          true,
	"is_a":            true,
	"intersection_of": true,
	"disjoint_from":   true,
}

// Term maps a tag name to its raw values, in first-seen order for
// multi-valued tags.
type Term map[string][]string

// First returns the first value recorded for tag, or "".
func (t Term) First(tag string) string {
	if vs := t[tag]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Has reports whether the tag carried at least one value.
func (t Term) Has(tag string) bool { return len(t[tag]) > 0 }

// TermScanner yields one Term per completed [Term] block, holding only
// the current block in memory. It follows the bufio.Scanner shape:
//
//	sc := NewTermScanner(r)
//	for sc.Scan() {
//		term := sc.Term()
//	}
//	if err := sc.Err(); err != nil { ... }
type TermScanner struct {
	sc    *bufio.Scanner
	block []string
	term  Term
	eof   bool
	err   error
}

// NewTermScanner prepares a scanner over an OBO-format stream.
func NewTermScanner(r io.Reader) *TermScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)
	return &TermScanner{sc: sc}
}

// Scan advances to the next [Term] block. Blocks whose first line is
// not the [Term] marker (the file header, [Typedef] stanzas) are
// discarded silently.
func (ts *TermScanner) Scan() bool {
	if ts.err != nil || ts.eof {
		return false
	}
	for ts.sc.Scan() {
		line := strings.TrimRight(ts.sc.Text(), " \t\r")
		switch {
		case line == termMarker:
			// A new block finalizes any open one first.
			block := ts.block
			ts.block = []string{line}
			if t := buildTerm(block); t != nil {
				ts.term = t
				return true
			}
		case line == "" && len(ts.block) > 0:
			block := ts.block
			ts.block = nil
			if t := buildTerm(block); t != nil {
				ts.term = t
				return true
			}
		case len(ts.block) > 0 || strings.TrimSpace(line) != "":
			ts.block = append(ts.block, line)
		}
	}
	ts.eof = true
	if err := ts.sc.Err(); err != nil {
		ts.err = err
		return false
	}
	if len(ts.block) > 0 {
		block := ts.block
		ts.block = nil
		if t := buildTerm(block); t != nil {
			ts.term = t
			return true
		}
	}
	return false
}

// Term returns the block produced by the last successful Scan.
func (ts *TermScanner) Term() Term { return ts.term }

// Err returns the first error encountered while reading.
func (ts *TermScanner) Err() error { return ts.err }

// buildTerm realizes a finalized block. Blocks not opened by the
// [Term] marker yield nil.
func buildTerm(lines []string) Term {
	if len(lines) == 0 || lines[0] != termMarker {
		return nil
	}

	term := make(Term)
	var current string

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Indented lines continue the previous tag's last value.
		if line[0] == ' ' || line[0] == '\t' {
			if vs := term[current]; current != "" && len(vs) > 0 {
				vs[len(vs)-1] += " " + strings.TrimSpace(line)
			}
			continue
		}

		tag, value := cutTagValue(line)
		current = tag
		if value == "" {
			continue
		}
		if multiValued[tag] {
			term[tag] = append(term[tag], value)
		} else {
			term[tag] = []string{value}
		}
	}
	return term
}

// cutTagValue splits a line on the first ": ", leaving later colons in
// the value.
func cutTagValue(line string) (string, string) {
	tag, value, ok := strings.Cut(line, ": ")
	if !ok {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(tag), strings.TrimSpace(value)
}
