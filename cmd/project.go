package cmd

import (
	"fmt"
	"os"

	"github.com/rogersnm/reel/internal/id"
	"github.com/rogersnm/reel/internal/markdown"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/store"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project from the draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := sess.Create()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect and move projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in creation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := projectFilterFromFlags(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderProjectTable(sess.List(filter)))
		return nil
	},
}

func projectFilterFromFlags(cmd *cobra.Command) (store.ProjectFilter, error) {
	var filter store.ProjectFilter
	if s, _ := cmd.Flags().GetString("status"); s != "" {
		st, err := model.ParseStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Status = st
	}
	filter.Tag, _ = cmd.Flags().GetString("tag")
	return filter, nil
}

// projectArg checks that v looks like a project id before it is looked up.
func projectArg(v string) (string, error) {
	if _, err := id.Parse(v); err != nil {
		return "", err
	}
	return v, nil
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := projectArg(args[0])
		if err != nil {
			return err
		}
		p, err := sess.Get(pid)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			data, err := markdown.MarshalProject(p)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			return nil
		}

		fmt.Fprint(out, markdown.RenderEntityHeader(p.Title, markdown.ProjectFields(p)))
		if p.Description != "" {
			rendered, err := markdown.RenderMarkdown(p.Description, plainOutput(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

var projectAdvanceCmd = &cobra.Command{
	Use:   "advance <id>",
	Short: "Move a project to its next stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := projectArg(args[0])
		if err != nil {
			return err
		}
		p, err := sess.Advance(pid)
		if err != nil {
			return err
		}
		printMoved(cmd, p)
		return nil
	},
}

var projectMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a project to a named stage (only the next stage is allowed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := projectArg(args[0])
		if err != nil {
			return err
		}
		target, err := model.ParseStatus(args[1])
		if err != nil {
			return err
		}
		p, err := sess.Transition(pid, target)
		if err != nil {
			return err
		}
		printMoved(cmd, p)
		return nil
	},
}

func printMoved(cmd *cobra.Command, p *model.Project) {
	next := "done"
	if a := p.Status.Action(); a != "" {
		next = "next: " + a
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (%s)\n", p.ID, markdown.RenderStatus(p.Status), next)
}

var projectExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a project as markdown with frontmatter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := projectArg(args[0])
		if err != nil {
			return err
		}
		p, err := sess.Get(pid)
		if err != nil {
			return err
		}
		data, err := markdown.MarshalProject(p)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.ID, outPath)
		return nil
	},
}

func init() {
	projectListCmd.Flags().String("status", "", "only projects in this stage")
	projectListCmd.Flags().String("tag", "", "only projects with this tag")
	projectShowCmd.Flags().Bool("raw", false, "print markdown with frontmatter instead of rendering")
	projectExportCmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectAdvanceCmd)
	projectCmd.AddCommand(projectMoveCmd)
	projectCmd.AddCommand(projectExportCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(createCmd)
}
