package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medgraph/orphaflat/pkg/orphaflat/internalerr"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
language: en
datasets:
  - kind: hpo-terms
    input: data/raw/hp.obo
    output: data/processed/hp.csv
  - kind: phenotype-links
    input: data/raw/en_product4.xml
    output: data/processed/edges_disease_hpo.csv
`)
	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", m.Language)
	require.Len(t, m.Datasets, 2)
	assert.Equal(t, "hpo-terms", m.Datasets[0].Kind)
	assert.Equal(t, "data/raw/hp.obo", m.Datasets[0].Input)
}

func TestLoadDefaultsLanguage(t *testing.T) {
	path := writeManifest(t, `
datasets:
  - kind: hpo-terms
    input: in.obo
    output: out.csv
`)
	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, m.Language)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeManifest(t, "datasets: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	known := func(kind string) bool { return kind == "hpo-terms" }

	tests := []struct {
		name     string
		manifest Manifest
		wantErr  error
	}{
		{
			name: "valid",
			manifest: Manifest{Datasets: []Dataset{
				{Kind: "hpo-terms", Input: "in", Output: "out"},
			}},
		},
		{
			name:     "no datasets",
			manifest: Manifest{},
			wantErr:  internalerr.ErrInvalidConfig,
		},
		{
			name: "unknown kind",
			manifest: Manifest{Datasets: []Dataset{
				{Kind: "bogus", Input: "in", Output: "out"},
			}},
			wantErr: internalerr.ErrUnknownDataset,
		},
		{
			name: "missing output",
			manifest: Manifest{Datasets: []Dataset{
				{Kind: "hpo-terms", Input: "in"},
			}},
			wantErr: internalerr.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.manifest.Validate(known)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
