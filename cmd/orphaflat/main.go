// Package main provides the orphaflat binary: one subcommand per dump
// conversion plus a manifest-driven batch run.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/medgraph/orphaflat/pkg/orphaflat"
	"github.com/medgraph/orphaflat/pkg/orphaflat/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		logLevel string
		language string
	)

	cmd := &cobra.Command{
		Use:   "orphaflat",
		Short: "Flatten rare-disease dump files to CSV",
		Long: `Orphaflat converts the HPO ontology, the Orphanet XML dumps, and the
HPO phenotype annotation file into fixed-column CSV files for loading
into a property graph.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&language, "lang", config.DefaultLanguage, "Language code for language-tagged text fields")

	conversions := []struct {
		use, short, kind string
	}{
		{"hpo", "Convert the HPO ontology (OBO) to CSV", orphaflat.KindHPOTerms},
		{"nomenclature", "Convert the Orphanet nomenclature dump to CSV", orphaflat.KindNomenclature},
		{"genes", "Convert the Orphanet gene-association dump to CSV", orphaflat.KindGeneAssociations},
		{"associations", "Convert the Orphanet disorder-association dump to CSV", orphaflat.KindDisorderAssociations},
		{"phenotypes", "Convert the Orphanet disorder-HPO dump to CSV (streamed)", orphaflat.KindPhenotypeLinks},
		{"annotations", "Convert the HPO phenotype annotation file to CSV", orphaflat.KindAnnotations},
	}
	for _, c := range conversions {
		cmd.AddCommand(convertCmd(c.use, c.short, c.kind, &language))
	}
	cmd.AddCommand(runCmd(&language))

	return cmd
}

// convertCmd builds a subcommand taking exactly an input and an output
// path.
func convertCmd(use, short, kind string, language *string) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := orphaflat.Options{Language: *language, Logger: slog.Default()}
			_, err := orphaflat.Run(kind, in, out, opts)
			return err
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Input file path")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV path")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// runCmd executes every dataset listed in a manifest, in order. The
// first failing conversion aborts the run.
func runCmd(language *string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every conversion listed in a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := manifest.Validate(orphaflat.Known); err != nil {
				return err
			}

			lang := manifest.Language
			if cmd.Root().PersistentFlags().Changed("lang") {
				lang = *language
			}
			opts := orphaflat.Options{Language: lang, Logger: slog.Default()}

			for _, d := range manifest.Datasets {
				if _, err := orphaflat.Run(d.Kind, d.Input, d.Output, opts); err != nil {
					return fmt.Errorf("dataset %s: %w", d.Kind, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Manifest file path (YAML)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
