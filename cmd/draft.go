package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rogersnm/reel/internal/editor"
	"github.com/rogersnm/reel/internal/markdown"
	"github.com/rogersnm/reel/internal/model"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Edit the project draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDraft(cmd)
	},
}

func printDraft(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	f, pending := sess.DraftState()
	if pending == "" && sess.DraftIsEmpty() {
		fmt.Fprintln(out, "Draft is empty. Start with: draft title <text>")
		return nil
	}

	title := f.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled draft)"
	}
	thumb := f.Thumbnail
	if thumb == "" {
		thumb = "-"
	}
	fields := []string{
		markdown.RenderField("Status", markdown.RenderStatus(model.StatusPlanning)),
		markdown.RenderField("Tags", markdown.RenderTags(f.Tags)),
		markdown.RenderField("Thumbnail", thumb),
		markdown.RenderField("Scheduled", model.FormatSchedule(f.ScheduledDate)),
	}
	if pending != "" {
		fields = append(fields, markdown.RenderField("Tag input", pending))
	}
	fmt.Fprint(out, markdown.RenderEntityHeader(title, fields))

	if f.Description != "" {
		rendered, err := markdown.RenderMarkdown(f.Description, plainOutput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	}
	return nil
}

var draftTitleCmd = &cobra.Command{
	Use:   "title [text...]",
	Short: "Set the draft title (no text clears it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.SetTitle(strings.Join(args, " "))
		return nil
	},
}

var draftDescriptionCmd = &cobra.Command{
	Use:     "description [text...]",
	Aliases: []string{"desc"},
	Short:   "Set the draft description (markdown)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.SetDescription(strings.Join(args, " "))
		return nil
	},
}

var draftThumbnailCmd = &cobra.Command{
	Use:   "thumbnail [ref]",
	Short: "Set the thumbnail reference (no ref clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		sess.SetThumbnail(ref)
		return nil
	},
}

var draftScheduleCmd = &cobra.Command{
	Use:   "schedule <when|none>",
	Short: "Set the upload date (YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC 3339, or none)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := model.ParseSchedule(strings.Join(args, " "), time.Local)
		if err != nil {
			return err
		}
		sess.SetSchedule(t)
		fmt.Fprintf(cmd.OutOrStdout(), "Scheduled: %s\n", model.FormatSchedule(t))
		return nil
	},
}

var draftTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage draft tags",
}

var draftTagAddCmd = &cobra.Command{
	Use:   "add <tag>...",
	Short: "Add tags; duplicates are ignored",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, t := range args {
			added, err := sess.AddTag(t)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(out, "Added #%s\n", model.NormalizeTag(t))
			} else {
				fmt.Fprintf(out, "#%s is already tagged\n", model.NormalizeTag(t))
			}
		}
		return nil
	},
}

var draftTagRmCmd = &cobra.Command{
	Use:     "rm <tag>...",
	Aliases: []string{"remove"},
	Short:   "Remove tags",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, t := range args {
			if sess.RemoveTag(t) {
				fmt.Fprintf(out, "Removed #%s\n", t)
			} else {
				fmt.Fprintf(out, "#%s is not tagged\n", t)
			}
		}
		return nil
	},
}

var draftTagInputCmd = &cobra.Command{
	Use:   "input [text...]",
	Short: "Set the pending tag text without adding it",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.SetTagInput(strings.Join(args, " "))
		return nil
	},
}

var draftTagCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Add the pending tag text as a tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pending := sess.TagInput()
		added, err := sess.CommitTagInput()
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%s\n", model.NormalizeTag(pending))
		}
		return nil
	},
}

var draftLoadCmd = &cobra.Command{
	Use:   "load <file.md|->",
	Short: "Replace the draft with a markdown sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening draft: %w", err)
			}
			defer f.Close()
			r = f
		}
		fields, err := markdown.ParseDraft(r)
		if err != nil {
			return err
		}
		sess.ApplyDraft(fields)
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded draft %q\n", fields.Title)
		return nil
	},
}

var draftEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the draft in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := markdown.MarshalDraft(sess.Draft())
		if err != nil {
			return err
		}
		after, err := editor.Edit(editor.Command(cfg.Editor), before)
		if err != nil {
			return err
		}
		if bytes.Equal(before, after) {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}
		fields, err := markdown.ParseDraft(bytes.NewReader(after))
		if err != nil {
			return err
		}
		sess.ApplyDraft(fields)
		fmt.Fprintln(cmd.OutOrStdout(), "Draft updated.")
		return nil
	},
}

var draftResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every draft field",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.ResetDraft()
		fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
		return nil
	},
}

func init() {
	draftTagCmd.AddCommand(draftTagAddCmd)
	draftTagCmd.AddCommand(draftTagRmCmd)
	draftTagCmd.AddCommand(draftTagInputCmd)
	draftTagCmd.AddCommand(draftTagCommitCmd)

	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftTitleCmd)
	draftCmd.AddCommand(draftDescriptionCmd)
	draftCmd.AddCommand(draftThumbnailCmd)
	draftCmd.AddCommand(draftScheduleCmd)
	draftCmd.AddCommand(draftTagCmd)
	draftCmd.AddCommand(draftLoadCmd)
	draftCmd.AddCommand(draftEditCmd)
	draftCmd.AddCommand(draftWizardCmd)
	draftCmd.AddCommand(draftResetCmd)
	rootCmd.AddCommand(draftCmd)
}
