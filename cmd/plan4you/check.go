package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/rgehrsitz/plan4you/internal/output"
	"github.com/rgehrsitz/plan4you/internal/sequencing"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [profile-file]",
	Short: "Check eligibility and list matching plans for a household profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unsupported format %q (choose from %s)", format, strings.Join(output.FormatterNames(), ", "))
		}

		sortSpec, _ := cmd.Flags().GetString("sort")
		strategy, err := sequencing.CreateStrategy(sortSpec)
		if err != nil {
			return err
		}

		profile, err := config.NewInputParser().LoadProfileFromFile(args[0])
		if err != nil {
			return err
		}

		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		rec, err := rt.advisor.Recommend(cmd.Context(), *profile)
		if err != nil {
			return err
		}
		rec.Report.Plans = strategy.Order(rec.Report.Plans)

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(f, rec, fileExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(rec)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Validate a household profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfileFromFile(args[0])
		if err != nil {
			return err
		}
		rulesPath, _ := cmd.Flags().GetString("rules")
		if _, err := parser.LoadRules(rulesPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile for %s (%s, household of %d) is valid\n", profile.Name, profile.State, profile.HouseholdSize())
		return nil
	},
}

func fileExtension(format string) string {
	if format == "console" {
		return "txt"
	}
	return format
}

func init() {
	checkCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, yaml, html)")
	checkCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	checkCmd.Flags().String("sort", "standard", "Plan order: "+strings.Join(sequencing.StrategyNames(), ", ")+" (custom:ID1,ID2)")
}
