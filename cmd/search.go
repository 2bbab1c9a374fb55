package cmd

import (
	"fmt"
	"strings"

	"github.com/rogersnm/reel/internal/markdown"
	"github.com/rogersnm/reel/internal/store"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search project titles, tags and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		results := sess.Search(strings.Join(args, " "))
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "  %s  %s  (%s)\n", r.ID, r.Title, r.Field)
			if r.Snippet != "" {
				fmt.Fprintf(out, "    %s\n", r.Snippet)
			}
		}
		return nil
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show projects grouped by stage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board := markdown.RenderBoard(sess.List(store.ProjectFilter{}))
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(board, "\n"))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, counts := sess.StatsByStatus()
		if byStage, _ := cmd.Flags().GetBool("by-stage"); !byStage {
			counts = nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderStats(stats, counts))
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("by-stage", false, "also count each of the six stages")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(statsCmd)
}
