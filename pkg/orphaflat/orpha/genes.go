package orpha

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
	"github.com/medgraph/orphaflat/pkg/orphaflat/xmlnav"
)

// RefSources is the closed set of external-reference sources emitted
// as Ref_<Source> columns. A source outside this list is logged and
// counted, not emitted.
var RefSources = []string{
	"HGNC", "Ensembl", "OMIM", "SwissProt",
	"Genatlas", "ClinVar", "Reactome",
}

// GeneColumns is the output contract for the gene-association dump:
// one row per disorder-gene association.
var GeneColumns = geneColumns()

func geneColumns() []string {
	cols := []string{
		"DisorderID", "OrphaCode", "DisorderName", "ExpertLink",
		"DisorderType", "DisorderGroup",
		"SourceOfValidation", "AssociationType", "AssociationStatus",
		"GeneID", "GeneName", "GeneSymbol", "GeneSynonyms",
		"GeneType", "GeneLocus", "LocusKey",
	}
	for _, s := range RefSources {
		cols = append(cols, "Ref_"+s)
	}
	return cols
}

// ConvertGeneAssociations flattens the gene-association dump. Each
// association carrying a gene yields one row repeating the disorder's
// fields; a disorder with no qualifying associations yields none.
func ConvertGeneAssociations(in, out, lang string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("gene-associations", in, out)

	disorders, err := readDisorders(in)
	if err != nil {
		return rep, err
	}

	w, err := tabular.Create(out, GeneColumns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	known := make(map[string]bool, len(RefSources))
	for _, s := range RefSources {
		known[s] = true
	}

	for _, d := range disorders {
		rep.Records++
		base := map[string]string{
			"DisorderID":    d.Get("id"),
			"OrphaCode":     d.ChildText("OrphaCode", ""),
			"DisorderName":  d.ChildTextLang("Name", lang, ""),
			"ExpertLink":    d.ChildTextLang("ExpertLink", lang, ""),
			"DisorderType":  d.First("DisorderType").ChildText("Name", ""),
			"DisorderGroup": d.First("DisorderGroup").ChildText("Name", ""),
		}

		for _, assoc := range d.First("DisorderGeneAssociationList").All("DisorderGeneAssociation") {
			gene := assoc.First("Gene")
			if gene == nil {
				rep.Skipped++
				log.Warn("association without gene", "disorder", base["OrphaCode"])
				continue
			}

			row := make(map[string]string, len(GeneColumns))
			for k, v := range base {
				row[k] = v
			}
			row["SourceOfValidation"] = assoc.ChildText("SourceOfValidation", "")
			row["AssociationType"] = assoc.First("DisorderGeneAssociationType").ChildText("Name", "")
			row["AssociationStatus"] = assoc.First("DisorderGeneAssociationStatus").ChildText("Name", "")
			addGeneFields(row, gene, lang, known, &rep, log)

			if err := w.Write(row); err != nil {
				return rep, fmt.Errorf("write association row: %w", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return rep, fmt.Errorf("finish output: %w", err)
	}

	rep.Rows = w.Rows()
	rep.Elapsed = time.Since(start)
	log.Info("converted gene associations", "report", rep)
	return rep, nil
}

func addGeneFields(row map[string]string, gene *xmlnav.Node, lang string, known map[string]bool, rep *report.Report, log *slog.Logger) {
	row["GeneID"] = gene.Get("id")
	row["GeneName"] = gene.ChildTextLang("Name", lang, "")
	row["GeneSymbol"] = gene.ChildText("Symbol", "")
	row["GeneType"] = gene.First("GeneType").ChildText("Name", "")

	var synonyms []string
	for _, s := range gene.First("SynonymList").All("Synonym") {
		if t := strings.TrimSpace(s.Text); t != "" {
			synonyms = append(synonyms, t)
		}
	}
	row["GeneSynonyms"] = strings.Join(synonyms, "; ")

	if locus := gene.First("LocusList").First("Locus"); locus != nil {
		row["GeneLocus"] = locus.ChildText("GeneLocus", "")
		row["LocusKey"] = locus.ChildText("LocusKey", "")
	}

	for _, ext := range gene.First("ExternalReferenceList").All("ExternalReference") {
		source := ext.ChildText("Source", "")
		ref := ext.ChildText("Reference", "")
		if source == "" || ref == "" {
			continue
		}
		if !known[source] {
			rep.UnknownSources++
			log.Warn("unknown external-reference source", "source", source, "gene", row["GeneSymbol"])
			continue
		}
		row["Ref_"+source] = ref
	}
}
