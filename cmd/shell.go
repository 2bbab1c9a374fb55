package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const prompt = "reel> "

var errNested = errors.New("shell and run cannot be started from inside a session script")

// inSession is set while lines are being executed so they cannot start
// another shell or script.
var inSession bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file|->",
	Short: "Run reel commands from a file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inSession {
			return errNested
		}
		keepGoing, _ := cmd.Flags().GetBool("keep-going")

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening script: %w", err)
			}
			defer f.Close()
			in = f
		}

		failed, err := runLines(cmd, in, false, !keepGoing)
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d line(s) failed", failed)
		}
		return nil
	},
}

func runShell(cmd *cobra.Command) error {
	if inSession {
		return errNested
	}
	in := cmd.InOrStdin()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if interactive {
		fmt.Fprintf(cmd.OutOrStdout(), "reel %s, session %s. Type 'help' for commands, 'exit' to quit.\n", version, sess.ID())
	}
	_, err := runLines(cmd, in, interactive, false)
	return err
}

// runLines executes each non-blank, non-comment line of r as a reel command.
// Failures are reported on stderr; with stopOnError the first one is
// returned instead. It returns the number of failed lines.
func runLines(cmd *cobra.Command, r io.Reader, showPrompt, stopOnError bool) (int, error) {
	inSession = true
	defer func() { inSession = false }()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	scanner := bufio.NewScanner(r)
	failed := 0
	lineNo := 0

	for {
		if showPrompt {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return failed, nil
		}

		err := execLine(line)
		if err == nil {
			continue
		}
		failed++
		if stopOnError {
			return failed, fmt.Errorf("line %d: %w", lineNo, err)
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	if showPrompt {
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("reading input: %w", err)
	}
	return failed, nil
}

// execLine splits line with shell quoting rules and runs it through the
// root command with fresh flag state.
func execLine(line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("parsing line: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	resetFlags(rootCmd)
	silence := rootCmd.SilenceErrors
	rootCmd.SilenceErrors = true
	defer func() { rootCmd.SilenceErrors = silence }()

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// resetFlags restores every subcommand flag to its default. Root persistent
// flags keep the values the process was started with.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if rootCmd.PersistentFlags().Lookup(f.Name) == f {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func init() {
	runCmd.Flags().Bool("keep-going", false, "continue past failing lines")
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(runCmd)
}
