package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldsift/fieldsift/internal/extract"
	"github.com/fieldsift/fieldsift/internal/model"
	"github.com/fieldsift/fieldsift/internal/rules"
)

var checkRulesPath string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a rule file without running extraction",
	Long: `Check loads a rule file, validates every rule, and compiles the
patterns it would use at run time. It reports problems without touching
any documents.

Example:
  fieldsift check --rules rules.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkRulesPath, "rules", "rules.yaml", "rule file path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ruleFile, err := rules.Load(checkRulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	report := rules.Validate(ruleFile.Rules)
	for _, p := range report.Problems {
		marker := "⚠"
		if p.Fatal {
			marker = "✗"
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", marker, p)
	}

	cfg := model.DefaultConfig()
	settings := ruleFile.ApplySettings(cfg.Settings)
	if _, err := extract.CompileSet(report.Kept, settings); err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}

	if report.Fatal() {
		return fmt.Errorf("%d fatal problem(s) in %s", len(report.Problems), checkRulesPath)
	}

	alternatives := 0
	for _, r := range report.Kept {
		alternatives += len(r.Alternatives)
	}
	fmt.Fprintf(os.Stderr, "✓ %s: %d rules, %d alternatives, %d warning(s)\n",
		checkRulesPath, len(report.Kept), alternatives, len(report.Problems))
	return nil
}
