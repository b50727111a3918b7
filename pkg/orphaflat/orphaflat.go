// Package orphaflat flattens semi-structured rare-disease dump files
// (the HPO ontology, the Orphanet XML dumps, the HPO phenotype
// annotation file) into fixed-column CSV for loading into a property
// graph. Each conversion reads one input artifact end to end and
// writes one output artifact; conversions share no state.
package orphaflat

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/medgraph/orphaflat/pkg/orphaflat/hpoa"
	"github.com/medgraph/orphaflat/pkg/orphaflat/internalerr"
	"github.com/medgraph/orphaflat/pkg/orphaflat/obo"
	"github.com/medgraph/orphaflat/pkg/orphaflat/orpha"
	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
)

// Dataset kinds accepted by Run and by the manifest.
const (
	KindHPOTerms             = "hpo-terms"
	KindNomenclature         = "nomenclature"
	KindGeneAssociations     = "gene-associations"
	KindDisorderAssociations = "disorder-associations"
	KindPhenotypeLinks       = "phenotype-links"
	KindAnnotations          = "annotations"
)

// Options configures a conversion.
type Options struct {
	// Language selects language-tagged text fields in the XML dumps.
	Language string
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ConvertFunc runs one conversion from an input path to an output path.
type ConvertFunc func(in, out string, opts Options) (report.Report, error)

var converters = map[string]ConvertFunc{
	KindHPOTerms: func(in, out string, opts Options) (report.Report, error) {
		return obo.Convert(in, out, opts.Logger)
	},
	KindNomenclature: func(in, out string, opts Options) (report.Report, error) {
		return orpha.ConvertNomenclature(in, out, opts.Language, opts.Logger)
	},
	KindGeneAssociations: func(in, out string, opts Options) (report.Report, error) {
		return orpha.ConvertGeneAssociations(in, out, opts.Language, opts.Logger)
	},
	KindDisorderAssociations: func(in, out string, opts Options) (report.Report, error) {
		return orpha.ConvertDisorderAssociations(in, out, opts.Language, opts.Logger)
	},
	KindPhenotypeLinks: func(in, out string, opts Options) (report.Report, error) {
		return orpha.ConvertPhenotypeLinks(in, out, opts.Logger)
	},
	KindAnnotations: func(in, out string, opts Options) (report.Report, error) {
		return hpoa.Convert(in, out, opts.Logger)
	},
}

// Known reports whether kind names a registered conversion.
func Known(kind string) bool {
	_, ok := converters[kind]
	return ok
}

// Kinds returns the registered dataset kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(converters))
	for k := range converters {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Run executes the conversion registered for kind.
func Run(kind, in, out string, opts Options) (report.Report, error) {
	fn, ok := converters[kind]
	if !ok {
		return report.Report{}, fmt.Errorf("%w: %q", internalerr.ErrUnknownDataset, kind)
	}
	return fn(in, out, opts.withDefaults())
}
