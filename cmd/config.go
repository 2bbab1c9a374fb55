package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/rogersnm/reel/internal/config"
	"github.com/rogersnm/reel/internal/logging"
	"github.com/rogersnm/reel/internal/markdown"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := cfg.Editor
		if editor == "" {
			editor = "(from $EDITOR)"
		}
		fields := []string{
			markdown.RenderField("editor", editor),
			markdown.RenderField("no_color", strconv.FormatBool(cfg.NoColor)),
			markdown.RenderField("log_level", cfg.LogLevel),
			markdown.RenderField("log_format", cfg.LogFormat),
			markdown.RenderField("listen", cfg.Listen),
		}
		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderEntityHeader(filepath.Join(dataDir, config.FileName), fields))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one setting and save it",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := *cfg
		if err := next.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(dataDir, &next); err != nil {
			return err
		}
		*cfg = next
		if args[0] == "log_level" {
			logLevel.Set(logging.ParseLevel(cfg.LogLevel))
			logger.Debug("log level changed", slog.String("level", cfg.LogLevel))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
