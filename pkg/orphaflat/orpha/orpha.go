// Package orpha flattens the Orphanet disorder dumps: nomenclature,
// gene associations, disorder-disorder associations, and the streamed
// disorder-HPO phenotype links. Each converter reads one dump and
// writes one fixed-column CSV.
package orpha

import (
	"fmt"
	"os"

	"github.com/medgraph/orphaflat/pkg/orphaflat/internalerr"
	"github.com/medgraph/orphaflat/pkg/orphaflat/xmlnav"
)

// readDisorders loads a full-tree dump and returns every Disorder
// element. A dump with no disorders at all means a schema mismatch or
// the wrong file; that aborts the conversion.
func readDisorders(path string) ([]*xmlnav.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	root, err := xmlnav.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse dump %s: %w", path, err)
	}
	disorders := root.Descendants("Disorder")
	if len(disorders) == 0 {
		return nil, fmt.Errorf("%w: no Disorder elements in %s", internalerr.ErrNoRecords, path)
	}
	return disorders, nil
}

// firstChildText tries each candidate child name in order and returns
// the first non-empty text. The tag carrying the same concept drifts
// across dump releases, so candidates are held as ordered lists.
func firstChildText(n *xmlnav.Node, candidates []string) string {
	for _, name := range candidates {
		if t := n.ChildText(name, ""); t != "" {
			return t
		}
	}
	return ""
}
