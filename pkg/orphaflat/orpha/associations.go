package orpha

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
)

// AssociationColumns is the output contract for the disorder-disorder
// association dump: one row per association.
var AssociationColumns = []string{
	"OrphaCode", "DisorderName", "ExpertLink", "TotalAssociations",
	"DisorderId", "RootId", "IsCycle",
	"TargetId", "TargetOrphaCode", "TargetName",
	"AssociationType",
}

// ConvertDisorderAssociations flattens the disorder-disorder
// association dump, repeating the source disorder's fields on every
// association row.
func ConvertDisorderAssociations(in, out, lang string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("disorder-associations", in, out)

	disorders, err := readDisorders(in)
	if err != nil {
		return rep, err
	}

	w, err := tabular.Create(out, AssociationColumns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	for _, d := range disorders {
		rep.Records++

		assocList := d.First("DisorderDisorderAssociationList")
		if assocList == nil {
			continue
		}
		total, err := strconv.Atoi(assocList.Get("count"))
		if err != nil {
			total = 0
		}

		base := map[string]string{
			"OrphaCode":         d.ChildText("OrphaCode", ""),
			"DisorderName":      d.ChildTextLang("Name", lang, ""),
			"ExpertLink":        d.ChildTextLang("ExpertLink", lang, ""),
			"TotalAssociations": strconv.Itoa(total),
			"DisorderId":        d.Get("id"),
		}

		for _, assoc := range assocList.All("DisorderDisorderAssociation") {
			row := make(map[string]string, len(AssociationColumns))
			for k, v := range base {
				row[k] = v
			}
			row["AssociationType"] = assoc.First("DisorderDisorderAssociationType").ChildText("Name", "")

			// RootDisorder points back at the association's root and
			// flags self-referencing cycles.
			row["IsCycle"] = "false"
			if root := assoc.First("RootDisorder"); root != nil {
				row["RootId"] = root.Get("id")
				if cycle, ok := root.Attr["cycle"]; ok {
					row["IsCycle"] = cycle
				}
			}

			if target := assoc.First("TargetDisorder"); target != nil {
				row["TargetId"] = target.Get("id")
				row["TargetOrphaCode"] = target.ChildText("OrphaCode", "")
				row["TargetName"] = target.ChildTextLang("Name", lang, "")
			}

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
	log.Info("converted disorder associations", "report", rep)
	return rep, nil
}
