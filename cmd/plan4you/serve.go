package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/plan4you/internal/catalog"
	"github.com/rgehrsitz/plan4you/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the eligibility API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = rt.settings.HTTPAddr
		}

		cfg := server.Config{Addr: addr, Advisor: rt.advisor, Logger: rt.logger}
		if withCatalog, _ := cmd.Flags().GetBool("catalog"); withCatalog {
			store, err := catalog.NewStore(rt.settings.CatalogDBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			cfg.Catalog = store
		}

		srv, err := server.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", srv.Addr())
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from PLAN4YOU_HTTP_ADDR)")
	serveCmd.Flags().Bool("catalog", false, "Serve prebuilt catalogs from PLAN4YOU_CATALOG_DB")
}
