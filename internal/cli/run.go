package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fieldsift/fieldsift/internal/export"
	"github.com/fieldsift/fieldsift/internal/model"
	"github.com/fieldsift/fieldsift/internal/pipeline"
	"github.com/fieldsift/fieldsift/internal/rules"
	"github.com/fieldsift/fieldsift/internal/textload"
)

var (
	rulesPath   string
	outPath     string
	outFormat   string
	concurrency int
	runTimeout  time.Duration
	approximate bool
	threshold   float64
	cacheDir    string
	noCache     bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <docs-dir-or-file>",
	Short: "Evaluate extraction rules against documents",
	Long: `Run evaluates every rule against every document and writes one
record per (document, rule) pair.

The argument is either a directory of documents (.txt, .pdf, .html)
or a single document file. Documents are processed in name order;
records keep that order with rules in declaration order inside each
document.

Example:
  fieldsift run ./invoices --rules rules.yaml
  fieldsift run ./invoices --rules rules.yaml --out results.xlsx --format xlsx
  fieldsift run invoice.pdf --rules rules.yaml --approximate --threshold 0.85`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&rulesPath, "rules", "rules.yaml", "rule file path")
	runCmd.Flags().StringVar(&outPath, "out", "results.csv", "output file path")
	runCmd.Flags().StringVar(&outFormat, "format", "", "output format: csv, json, or xlsx (default: from --out extension)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent document workers")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	runCmd.Flags().BoolVar(&approximate, "approximate", false, "tolerate misspelled anchors (fuzzy matching)")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0.8, "minimum anchor similarity in approximate mode")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "document text cache directory (default: $HOME/.fieldsift/cache)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable document text caching")
}

func runRun(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	log := newLogger()

	ruleFile, err := rules.Load(rulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, ruleFile, log)
	if err != nil {
		return err
	}

	paths, err := collectDocuments(target)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents found in %s", target)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Rules:      %d (%s)\n", len(p.Rules()), rulesPath)
		fmt.Fprintf(os.Stderr, "Documents:  %d\n", len(paths))
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.Workers)
		if cfg.Approximate.Enabled {
			fmt.Fprintf(os.Stderr, "Matching:   approximate (threshold %.2f)\n", cfg.Approximate.Threshold)
		} else {
			fmt.Fprintf(os.Stderr, "Matching:   exact\n")
		}
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if err := writeOutput(outPath, outFormat, result.Records); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSummary(result, outPath)
	return nil
}

func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Approximate.Enabled = approximate
	cfg.Approximate.Threshold = threshold
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache

	if cfg.Cache.Enabled {
		dir := cacheDir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			dir = filepath.Join(home, ".fieldsift", "cache")
		}
		cfg.Cache.Dir = dir
	}

	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
	}
	return cfg, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// collectDocuments accepts either a directory or a single document path
func collectDocuments(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}
	if info.IsDir() {
		return textload.ListDocuments(target)
	}
	return []string{target}, nil
}

func writeOutput(path, format string, records []model.Record) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch strings.ToLower(format) {
	case "csv", "":
		return export.WriteCSV(path, records)
	case "json":
		return export.WriteJSON(path, records)
	case "xlsx":
		return export.WriteXLSX(path, records)
	default:
		return fmt.Errorf("unknown output format %q (want csv, json, or xlsx)", format)
	}
}

func printSummary(result *pipeline.BatchResult, outPath string) {
	s := export.Summarize(result.Records)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Extraction Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:  %d\n", result.Documents)
	if len(result.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped:    %d\n", len(result.Skipped))
		for _, sk := range result.Skipped {
			fmt.Fprintf(os.Stderr, "    ✗ %s: %v\n", sk.Path, sk.Error)
		}
	}
	fmt.Fprintf(os.Stderr, "  Records:    %d\n", s.TotalRecords)
	fmt.Fprintf(os.Stderr, "  Found:      %d (%.1f%%)\n", s.Found, s.SuccessRate)
	fmt.Fprintf(os.Stderr, "  Not found:  %d\n", s.NotFound)
	fmt.Fprintf(os.Stderr, "  Elapsed:    %v\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outPath)
	fmt.Fprintf(os.Stderr, "\n")
}
