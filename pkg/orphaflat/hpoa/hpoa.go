// Package hpoa parses the HPO phenotype annotation file: a run of
// #-prefixed metadata lines, one tab-separated header line, then one
// annotation per line.
package hpoa

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/medgraph/orphaflat/pkg/orphaflat/report"
	"github.com/medgraph/orphaflat/pkg/orphaflat/tabular"
)

// Columns is the fixed output contract, matching the annotation file's
// twelve tab-separated fields.
var Columns = []string{
	"database_id", "disease_name", "qualifier", "hpo_id",
	"reference", "evidence", "onset", "frequency", "sex",
	"modifier", "aspect", "biocuration",
}

const fieldCount = 12

// Annotation is one parsed data line.
type Annotation struct {
	DatabaseID  string
	DiseaseName string
	Qualifier   string
	HPOID       string
	Reference   string
	Evidence    string
	Onset       string
	Frequency   string
	Sex         string
	Modifier    string
	Aspect      string
	Biocuration string
}

// ParseLine splits one data line into an annotation. A line that does
// not carry exactly twelve tab-separated fields is rejected.
func ParseLine(line string) (Annotation, error) {
	fields := strings.Split(strings.TrimSpace(line), "\t")
	if len(fields) != fieldCount {
		return Annotation{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	return Annotation{
		DatabaseID:  fields[0],
		DiseaseName: fields[1],
		Qualifier:   fields[2],
		HPOID:       fields[3],
		Reference:   fields[4],
		Evidence:    fields[5],
		Onset:       fields[6],
		Frequency:   fields[7],
		Sex:         fields[8],
		Modifier:    fields[9],
		Aspect:      fields[10],
		Biocuration: fields[11],
	}, nil
}

func (a Annotation) row() map[string]string {
	return map[string]string{
		"database_id":  a.DatabaseID,
		"disease_name": a.DiseaseName,
		"qualifier":    a.Qualifier,
		"hpo_id":       a.HPOID,
		"reference":    a.Reference,
		"evidence":     a.Evidence,
		"onset":        a.Onset,
		"frequency":    a.Frequency,
		"sex":          a.Sex,
		"modifier":     a.Modifier,
		"aspect":       a.Aspect,
		"biocuration":  a.Biocuration,
	}
}

// Metadata holds the key/value pairs from the #-prefixed file header,
// in first-seen order.
type Metadata struct {
	Keys   []string
	Values map[string]string
}

// Get returns the value for key, or "".
func (m Metadata) Get(key string) string { return m.Values[key] }

func (m *Metadata) add(line string) {
	key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	value = strings.Trim(strings.TrimSpace(value), `"`)
	if _, seen := m.Values[key]; !seen {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

// Convert flattens the annotation file to CSV. Metadata lines are
// carried through as comment lines ahead of the header; malformed
// data lines are logged, counted, and skipped.
func Convert(in, out string, log *slog.Logger) (report.Report, error) {
	start := time.Now()
	rep := report.New("annotations", in, out)

	f, err := os.Open(in)
	if err != nil {
		return rep, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	w, err := tabular.Create(out, Columns)
	if err != nil {
		return rep, err
	}
	defer w.Close()

	meta, err := convert(f, w, &rep, log)
	if err != nil {
		return rep, err
	}
	if err := w.Close(); err != nil {
		return rep, fmt.Errorf("finish output: %w", err)
	}

	rep.Rows = w.Rows()
	rep.Elapsed = time.Since(start)
	log.Info("converted annotations", "report", rep,
		"version", meta.Get("version"), "description", meta.Get("description"))
	return rep, nil
}

func convert(r io.Reader, w *tabular.Writer, rep *report.Report, log *slog.Logger) (Metadata, error) {
	meta := Metadata{Values: make(map[string]string)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<20)

	// Metadata run, then exactly one header line.
	inHeader := true
	headerSeen := false
	for sc.Scan() {
		line := sc.Text()

		if inHeader {
			if strings.HasPrefix(line, "#") {
				meta.add(line)
				continue
			}
			inHeader = false
			for _, key := range meta.Keys {
				if err := w.Comment("# " + key + ": " + meta.Get(key)); err != nil {
					return meta, fmt.Errorf("write metadata: %w", err)
				}
			}
		}
		if !headerSeen {
			// The first non-metadata line names the source columns.
			headerSeen = true
			continue
		}

		rep.Records++
		ann, err := ParseLine(line)
		if err != nil {
			rep.Skipped++
			log.Warn("skipping annotation line", "error", err, "line", strings.TrimSpace(line))
			continue
		}
		if err := w.Write(ann.row()); err != nil {
			return meta, fmt.Errorf("write annotation row: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return meta, fmt.Errorf("read annotation file: %w", err)
	}
	return meta, nil
}
