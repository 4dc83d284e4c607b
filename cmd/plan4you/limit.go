package main

import (
	"fmt"

	"github.com/rgehrsitz/plan4you/internal/breakeven"
	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/spf13/cobra"
)

var limitCmd = &cobra.Command{
	Use:   "limit [profile-file]",
	Short: "Find the highest income at which the household keeps Medicaid/CHIP eligibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "console" && format != "json" {
			return fmt.Errorf("unsupported format %q (choose from console, json)", format)
		}
		table, _ := cmd.Flags().GetInt("table")

		profile, err := config.NewInputParser().LoadProfileFromFile(args[0])
		if err != nil {
			return err
		}

		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		solver := breakeven.NewDefaultSolver(rt.engine, rt.ref)
		var result interface{}
		var text string
		if table > 0 {
			rows, err := solver.LimitTable(cmd.Context(), *profile, table)
			if err != nil {
				return err
			}
			result, text = rows, (&breakeven.TableFormatter{}).FormatTable(rows)
		} else {
			res, err := solver.IncomeLimit(cmd.Context(), *profile)
			if err != nil {
				return err
			}
			result, text = res, (&breakeven.TableFormatter{}).Format(res)
		}

		if format == "json" {
			text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
			text += "\n"
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	limitCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	limitCmd.Flags().Int("table", 0, "Solve for households with 0..N dependents instead of the profile as given")
}
