package main

import (
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/compare"
	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/rgehrsitz/plan4you/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [profile-file]",
	Short: "Compare eligibility and plan options across what-if household changes",
	Long: "Runs the household as-is and under each requested change, then reports how\n" +
		"eligibility and the number of matching plans move.\n\n" +
		transform.GetTemplateHelp(transform.CreateBuiltInTemplates()) +
		"\nCustom changes use --transform name:param=value, for example\n" +
		"  --transform set_income:amount=32000 --transform add_dependents:count=1",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templatesFlag, _ := cmd.Flags().GetString("templates")
		specs, _ := cmd.Flags().GetStringArray("transform")
		name, _ := cmd.Flags().GetString("name")
		format, _ := cmd.Flags().GetString("format")

		templates := transform.ParseTemplateList(templatesFlag)
		var scenarios []compare.Scenario
		if len(specs) > 0 {
			transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, compare.Scenario{Name: name, Transforms: transforms})
		}
		if len(templates) == 0 && len(scenarios) == 0 {
			return fmt.Errorf("nothing to compare: pass --templates or --transform")
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

		engine := compare.NewCompareEngine(rt.engine, rt.ref)
		compSet, err := engine.Compare(cmd.Context(), *profile, compare.CompareOptions{
			Templates:   templates,
			Scenarios:   scenarios,
			ProfilePath: args[0],
		})
		if err != nil {
			return err
		}

		var out string
		switch format {
		case "table", "console":
			out = (&compare.TableFormatter{}).Format(compSet)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		default:
			return fmt.Errorf("unsupported format %q (choose from table, compact, csv, json)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("templates", "", "Comma-separated built-in templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Custom change as name:param=value (repeatable, applied in order)")
	compareCmd.Flags().String("name", "custom", "Scenario name for the --transform changes")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
}
