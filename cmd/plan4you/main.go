package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/refdata"
	"github.com/rgehrsitz/plan4you/internal/summary"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plan4you %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "plan4you",
	Short: "Medicaid/CHIP eligibility and health plan finder",
	Long: "Estimates a household's Medicaid and CHIP eligibility from the federal poverty level\n" +
		"and state income limits, then lists the marketplace plans that fit the household.",
	SilenceUsage: true,
}

// runtimeDeps is everything a command needs to compute recommendations.
type runtimeDeps struct {
	settings *config.Settings
	rules    *domain.RegulatoryConfig
	ref      *refdata.ReferenceData
	engine   *calculation.CalculationEngine
	advisor  *advisor.Advisor
	logger   calculation.Logger
	closers  []func() error
}

func (rt *runtimeDeps) Close() {
	for _, c := range rt.closers {
		_ = c()
	}
}

// loadRuntime resolves settings and flags, loads the rules and reference
// data, and wires the engine and advisor.
func loadRuntime(cmd *cobra.Command) (*runtimeDeps, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("benefits"); v != "" {
		settings.BenefitsPath = v
	}
	if v, _ := cmd.Flags().GetString("eligibility"); v != "" {
		settings.EligibilityPath = v
	}
	if v, _ := cmd.Flags().GetString("rules"); v != "" {
		settings.RulesPath = v
	}

	rt := &runtimeDeps{settings: settings, logger: calculation.NopLogger{}}
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		rt.logger = simpleCLILogger{}
	}

	parser := config.NewInputParser()
	rt.rules, err = parser.LoadRules(settings.RulesPath)
	if err != nil {
		return nil, err
	}

	rt.ref, err = refdata.Load(settings.BenefitsPath, settings.EligibilityPath)
	if err != nil {
		return nil, err
	}
	rt.logger.Infof("loaded %d benefit rows and %d state thresholds", len(rt.ref.Benefits()), len(rt.ref.Thresholds()))

	rt.engine = calculation.NewCalculationEngineWithConfig(*rt.rules)
	rt.engine.SetLogger(rt.logger)
	rt.engine.Debug = debugMode
	if settings.PlanCache {
		rt.engine.EnablePlanCache()
	}

	var summarizer summary.Summarizer
	summarize, _ := cmd.Flags().GetBool("summarize")
	if summarize {
		if !settings.SummariesEnabled() {
			return nil, fmt.Errorf("--summarize requires GEMINI_API_KEY to be set")
		}
		client, err := summary.NewGeminiClient(context.Background(), settings.GeminiAPIKey, settings.GeminiModel)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, client.Close)
		summarizer = summary.NewPromptSummarizer(client)
	}

	rt.advisor = advisor.New(rt.engine, rt.ref, summarizer)
	rt.advisor.Logger = rt.logger
	return rt, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("benefits", "", "Path to the benefits and cost sharing CSV (default from PLAN4YOU_BENEFITS_PATH)")
	pf.String("eligibility", "", "Path to the Medicaid/CHIP eligibility levels CSV (default from PLAN4YOU_ELIGIBILITY_PATH)")
	pf.String("rules", "", "Path to a rules YAML file overriding the built-in poverty guidelines")
	pf.Bool("summarize", false, "Generate advisory summaries with Gemini (requires GEMINI_API_KEY)")
	pf.Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(limitCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
