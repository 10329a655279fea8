package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve practice sessions over a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.HTTPAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpapi.NewServer(rt.newMachine, rt.creds, httpapi.Options{
			AllowedOrigins: rt.cfg.AllowedOrigins,
			SessionTTL:     rt.cfg.SessionTTL,
			Logger:         rt.log,
			Metrics:        rt.metrics,
		})
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATHCOACH_HTTP_ADDR)")
}
