package obo

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
)

// Columns is the fixed output contract for ontology terms.
var Columns = []string{
	"id", "name", "definition", "comment",
	"synonyms", "synonym_types",
	"xrefs", "alt_ids", "is_a",
	"created_date", "obsolete",
}

// Convert flattens an OBO ontology file to CSV. Blocks without an id
// tag (header stanzas, metadata) are skipped silently.
func Convert(in, out string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("hpo-terms", in, out)

	f, err := os.Open(in)
	if err != nil {
		return rep, fmt.Errorf("open ontology file: %w", err)
	}
	defer f.Close()

	w, err := tabular.Create(out, Columns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	sc := NewTermScanner(f)
	for sc.Scan() {
		term := sc.Term()
		if !term.Has("id") {
			continue
		}
		rep.Records++

		var synonyms, synonymTypes []string
		for _, raw := range term["synonym"] {
			syn := ParseSynonym(raw)
			if !syn.Matched {
				rep.Unmatched++
			}
			synonyms = append(synonyms, syn.Text)
			if syn.Type != "" {
				synonymTypes = append(synonymTypes, syn.Type)
			}
		}

		obsolete := "false"
		if term.Has("is_obsolete") {
			obsolete = "true"
		}

		row := map[string]string{
			"id":            term.First("id"),
			"name":          term.First("name"),
			"definition":    term.First("def"),
			"comment":       term.First("comment"),
			"synonyms":      strings.Join(synonyms, "; "),
			"synonym_types": strings.Join(synonymTypes, "; "),
			"xrefs":         strings.Join(term["xref"], "; "),
			"alt_ids":       strings.Join(term["alt_id"], "; "),
			"is_a":          strings.Join(term["is_a"], "; "),
			"created_date":  term.First("creation_date"),
			"obsolete":      obsolete,
		}
		if err := w.Write(row); err != nil {
			return rep, fmt.Errorf("write term row: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("read ontology file: %w", err)
	}
	if err := w.Close(); err != nil {
		return rep, fmt.Errorf("finish output: %w", err)
	}

	rep.Rows = w.Rows()
	rep.Elapsed = time.Since(start)
	log.Info("converted ontology terms", "report", rep)
	return rep, nil
}
