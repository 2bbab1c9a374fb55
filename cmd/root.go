package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/muesli/termenv"
	"github.com/rogersnm/reel/internal/config"
	"github.com/rogersnm/reel/internal/logging"
	"github.com/rogersnm/reel/internal/session"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	dataDir  string
	noColor  bool
	cfg      *config.Config
	sess     *session.Session
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

func defaultDataDir() string {
	if d := os.Getenv("REEL_DATA_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".reel")
	}
	return filepath.Join(home, ".reel")
}

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Plan video projects and track them from idea to upload",
	Long: `reel keeps one working session: a draft you fill in, and the projects
you create from it as they move through planning, scripting, recording,
editing, ready and uploaded.

Run without a command to start the interactive shell, or feed a script of
commands to 'reel run'. Nothing is written to disk except config.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Lines run from the shell share the session set up by the first command.
		if sess != nil && cfg != nil {
			return nil
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logLevel.Set(logging.ParseLevel(cfg.LogLevel))
		logger, err = logging.New(logging.Options{
			Format:  cfg.LogFormat,
			Leveler: logLevel,
		})
		if err != nil {
			return err
		}

		if noColor || cfg.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		sess = session.New(logger)
		logger.Debug("session started", slog.String("data_dir", dataDir))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Assigned here: runShell reaches back to rootCmd through execLine.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path (config lives here)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"run": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "reel commands, one per line, when the file argument is -",
				},
				Examples: []mtp.Example{
					{Description: "Run a script of commands", Command: "reel run plan.reel"},
					{Description: "Pipe commands and keep going past failures", Command: "printf 'draft title Intro\\ncreate\\nstats\\n' | reel run - --keep-going"},
				},
			},
			"draft title": {
				Examples: []mtp.Example{
					{Description: "Set the draft title", Command: "reel draft title \"Intro Video\""},
				},
			},
			"draft tag add": {
				Examples: []mtp.Example{
					{Description: "Add tags; duplicates are ignored", Command: "reel draft tag add tutorial intro"},
				},
			},
			"draft schedule": {
				Examples: []mtp.Example{
					{Description: "Schedule the upload", Command: "reel draft schedule \"2026-06-01 18:00\""},
					{Description: "Clear the schedule", Command: "reel draft schedule none"},
				},
			},
			"draft load": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Draft sheet with YAML frontmatter (title, tags, thumbnail, scheduled_date) and the description as body, when the file argument is -",
				},
				Examples: []mtp.Example{
					{Description: "Load a draft from a markdown file", Command: "reel draft load intro.md"},
				},
			},
			"create": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Created project <title> (<id>)",
				},
			},
			"project list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of projects with ID, title, status, tags and schedule",
				},
				Examples: []mtp.Example{
					{Description: "List projects being edited", Command: "reel project list --status editing"},
				},
			},
			"project advance": {
				Examples: []mtp.Example{
					{Description: "Move a project to its next stage", Command: "reel project advance VID-XXXXX"},
				},
			},
			"project move": {
				Examples: []mtp.Example{
					{Description: "Move a project to a named stage (must be the next one)", Command: "reel project move VID-XXXXX recording"},
				},
			},
			"project export": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Project as markdown with YAML frontmatter, unless --out is given",
				},
			},
			"stats": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Project counts per dashboard bucket and per stage",
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Matching projects with ID, title, matched field and snippet",
				},
				Examples: []mtp.Example{
					{Description: "Search titles, tags and descriptions", Command: "reel search tutorial"},
				},
			},
			"serve": {
				Examples: []mtp.Example{
					{Description: "Serve the session as a JSON API", Command: "reel serve --listen 127.0.0.1:7878"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// plainOutput reports whether rendering should avoid escape codes.
func plainOutput(cmd *cobra.Command) bool {
	if noColor || (cfg != nil && cfg.NoColor) {
		return true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return !ok || !isatty.IsTerminal(f.Fd())
}
