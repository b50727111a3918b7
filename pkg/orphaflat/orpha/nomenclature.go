package orpha

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/medgraph/orphaflat/internal/htmltext"
	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
	"github.com/medgraph/orphaflat/pkg/orphaflat/xmlnav"
)

// NomenclatureColumns is the output contract for the single-entity
// nomenclature dump: one row per disorder.
var NomenclatureColumns = []string{
	"id", "OrphaCode", "Name", "ExpertLink", "Synonyms",
	"DisorderType", "DisorderGroup", "ExternalReferences", "Definition",
}

// definitionPaths are the candidate locations of a disorder's summary
// text, tried in order. Some entries only carry auto-generated info.
var definitionPaths = [][]string{
	{"TextSectionList", "TextSection", "Contents"},
	{"TextAuto", "Info"},
}

// ConvertNomenclature flattens the nomenclature dump. Every disorder
// yields exactly one row.
func ConvertNomenclature(in, out, lang string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("nomenclature", in, out)

	disorders, err := readDisorders(in)
	if err != nil {
		return rep, err
	}

	w, err := tabular.Create(out, NomenclatureColumns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	for _, d := range disorders {
		rep.Records++
		if err := w.Write(nomenclatureRow(d, lang)); err != nil {
			return rep, fmt.Errorf("write disorder row: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return rep, fmt.Errorf("finish output: %w", err)
	}

	rep.Rows = w.Rows()
	rep.Elapsed = time.Since(start)
	log.Info("converted nomenclature", "report", rep)
	return rep, nil
}

func nomenclatureRow(d *xmlnav.Node, lang string) map[string]string {
	var synonyms []string
	for _, s := range d.First("SynonymList").All("Synonym") {
		if t := strings.TrimSpace(s.Text); t != "" {
			synonyms = append(synonyms, t)
		}
	}

	var refs []string
	for _, ext := range d.First("ExternalReferenceList").All("ExternalReference") {
		source := ext.ChildText("Source", "")
		ref := ext.ChildText("Reference", "")
		if source != "" || ref != "" {
			refs = append(refs, source+":"+ref)
		}
	}

	return map[string]string{
		"id":                 d.Get("id"),
		"OrphaCode":          d.ChildText("OrphaCode", ""),
		"Name":               d.ChildTextLang("Name", lang, ""),
		"ExpertLink":         d.ChildTextLang("ExpertLink", lang, ""),
		"Synonyms":           strings.Join(synonyms, "; "),
		"DisorderType":       d.First("DisorderType").ChildText("Name", ""),
		"DisorderGroup":      d.First("DisorderGroup").ChildText("Name", ""),
		"ExternalReferences": strings.Join(refs, "; "),
		"Definition":         definitionText(d),
	}
}

// definitionText resolves the summary text through the ordered
// fallback locations, collapsing any inline markup.
func definitionText(d *xmlnav.Node) string {
	si := d.First("SummaryInformationList").First("SummaryInformation")
	if si == nil {
		return ""
	}
	for _, path := range definitionPaths {
		n := si
		for _, name := range path {
			n = n.First(name)
		}
		if n != nil {
			if t := strings.TrimSpace(n.Text); t != "" {
				return htmltext.Flatten(t)
			}
		}
	}
	return ""
}
