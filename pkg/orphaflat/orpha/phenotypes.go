package orpha

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
	"github.com/medgraph/orphaflat/pkg/orphaflat/xmlnav"
)

// PhenotypeColumns is the output contract for disorder-HPO edges.
var PhenotypeColumns = []string{"start_orpha_id", "end_hp_id", "frequency"}

// Candidate tag names per concept, tried in order. The phenotype dump
// has drifted across releases; new variants belong in these lists, not
// in new code paths.
var (
	orphaIDTags         = []string{"OrphaNumber", "OrphaCode"}
	hpoIDTags           = []string{"HPOId", "HPO_ID", "Id", "ID"}
	frequencyContainers = []string{"Frequency", "HPOFrequency"}
)

// ConvertPhenotypeLinks flattens the disorder-HPO association dump.
// This is the largest dump, so it is parsed in a single forward pass
// that holds one association element in memory at a time. An element
// missing either endpoint identifier is skipped without error.
func ConvertPhenotypeLinks(in, out string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("phenotype-links", in, out)

	f, err := os.Open(in)
	if err != nil {
		return rep, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	w, err := tabular.Create(out, PhenotypeColumns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	err = xmlnav.Stream(f, "DisorderHPOTermAssociation", func(elem *xmlnav.Node) error {
		rep.Records++

		orpha := firstChildText(elem.First("Disorder"), orphaIDTags)
		hp := firstChildText(elem.First("HPO"), hpoIDTags)
		if orpha == "" || hp == "" {
			rep.Skipped++
			return nil
		}

		return w.Write(map[string]string{
			"start_orpha_id": "ORPHA:" + orpha,
			"end_hp_id":      NormalizeHPID(hp),
			"frequency":      frequencyText(elem),
		})
	})
	if err != nil {
		return rep, fmt.Errorf("parse dump %s: %w", in, err)
	}
	if err := w.Close(); err != nil {
		return rep, fmt.Errorf("finish output: %w", err)
	}

	rep.Rows = w.Rows()
	rep.Elapsed = time.Since(start)
	log.Info("converted phenotype links", "report", rep)
	return rep, nil
}

// NormalizeHPID canonicalizes an HPO term id: HP_0001250 -> HP:0001250.
func NormalizeHPID(id string) string {
	return strings.ToUpper(strings.ReplaceAll(id, "_", ":"))
}

// frequencyText resolves the frequency qualifier from the first
// present container, preferring its Name child over direct text.
// Absence degrades to "".
func frequencyText(elem *xmlnav.Node) string {
	for _, name := range frequencyContainers {
		block := elem.First(name)
		if block == nil {
			continue
		}
		if t := block.ChildText("Name", ""); t != "" {
			return t
		}
		return strings.TrimSpace(block.Text)
	}
	return ""
}
