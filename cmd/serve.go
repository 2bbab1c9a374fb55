package cmd

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/rogersnm/reel/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve this session as a local JSON API",
	Long: `Serve exposes the current draft and projects over HTTP under /api until
interrupted. Run it from the shell to keep working on the same session
from other tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = cfg.Listen
		}

		// The server logs requests and lifecycle at info even when the CLI is quiet.
		if logLevel.Level() > slog.LevelInfo {
			prev := logLevel.Level()
			logLevel.Set(slog.LevelInfo)
			defer logLevel.Set(prev)
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Serving session %s on http://%s/api (Ctrl-C to stop)\n", sess.ID(), ln.Addr())
		return api.Serve(cmd.Context(), ln, api.NewServer(sess, logger), logger)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
