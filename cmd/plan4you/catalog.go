package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/plan4you/internal/catalog"
	"github.com/rgehrsitz/plan4you/internal/config"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build and inspect prebuilt per-state plan catalogs",
	}
	catalogCmd.PersistentFlags().String("db", "", "Catalog database path (default from PLAN4YOU_CATALOG_DB)")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Precompute catalogs for every state in the benefits file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			store, err := catalog.NewStore(dbPath(cmd, rt.settings))
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := catalog.Build(cmd.Context(), store, rt.engine, rt.ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d catalogs for %d states\n", n, len(rt.ref.States()))
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [state]",
		Short: "Show a stored catalog, or list all catalogs when no state is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			store, err := catalog.NewStore(dbPath(cmd, settings))
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-6s %-7s %-9s %8s %9s\n", "State", "Dental", "Assisted", "Plans", "Benefits")
				for _, s := range list {
					fmt.Fprintf(out, "%-6s %-7t %-9t %8d %9d\n", s.Key.State, s.Key.WantsDental, s.Key.Assisted, s.PlanCount, s.BenefitCount)
				}
				return nil
			}

			dental, _ := cmd.Flags().GetBool("dental")
			assisted, _ := cmd.Flags().GetBool("assisted")
			entry, err := store.Find(cmd.Context(), catalog.Key{State: args[0], WantsDental: dental, Assisted: assisted})
			if err != nil {
				return fmt.Errorf("%s: %w", strings.ToUpper(args[0]), err)
			}
			fmt.Fprintf(out, "Catalog %s (dental=%t, assisted=%t), built %s\n",
				entry.Key.State, entry.Key.WantsDental, entry.Key.Assisted, entry.BuiltAt.Format("2006-01-02 15:04"))
			for _, p := range entry.Plans {
				fmt.Fprintf(out, "  %s  %d benefits\n", p.PlanID, len(p.Benefits))
			}
			fmt.Fprintf(out, "Total: %d plans\n", len(entry.Plans))
			return nil
		},
	}
	showCmd.Flags().Bool("dental", false, "Show the dental-only catalog")
	showCmd.Flags().Bool("assisted", false, "Show the catalog for Medicaid/CHIP-eligible households")

	catalogCmd.AddCommand(buildCmd, showCmd)
	return catalogCmd
}

func dbPath(cmd *cobra.Command, settings *config.Settings) string {
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		return v
	}
	return settings.CatalogDBPath
}
