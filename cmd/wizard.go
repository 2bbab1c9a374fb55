package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/reel/internal/draft"
	"github.com/rogersnm/reel/internal/model"
	"github.com/spf13/cobra"
)

var draftWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in the draft step by step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := sess.Draft()
		w := newWizardValues(current)

		if err := w.form().Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return fmt.Errorf("wizard cancelled")
			}
			return err
		}

		fields, err := w.fields()
		if err != nil {
			return err
		}
		sess.ApplyDraft(fields)

		if !w.create {
			fmt.Fprintln(cmd.OutOrStdout(), "Draft saved. Run 'create' when you are ready.")
			return nil
		}
		p, err := sess.Create()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

// wizardValues holds the form-bound strings for one wizard run.
type wizardValues struct {
	title       string
	description string
	tags        string
	thumbnail   string
	schedule    string
	create      bool
}

func newWizardValues(f draft.Fields) *wizardValues {
	w := &wizardValues{
		title:       f.Title,
		description: f.Description,
		tags:        strings.Join(f.Tags, ", "),
		thumbnail:   f.Thumbnail,
	}
	if f.ScheduledDate != nil {
		w.schedule = model.FormatSchedule(f.ScheduledDate)
	}
	return w
}

func (w *wizardValues) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Video Title").
				Placeholder("Enter your video title...").
				Value(&w.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return draft.ErrEmptyTitle
					}
					return nil
				}),
			huh.NewText().
				Title("Video Description").
				Placeholder("Describe your video content...").
				Value(&w.description),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&w.tags),
		).Title("Plan Your Video"),
		huh.NewGroup(
			huh.NewNote().
				Title("Content Creation Stage").
				Description("Record or upload your video content. Use 'project advance' as recording and editing progress."),
		).Title("Create Content"),
		huh.NewGroup(
			huh.NewInput().
				Title("Thumbnail").
				Description("Path or URL, 1280x720 recommended").
				Value(&w.thumbnail),
		).Title("Optimize Details"),
		huh.NewGroup(
			huh.NewInput().
				Title("Schedule Upload").
				Description("YYYY-MM-DD or YYYY-MM-DD HH:MM, blank for none").
				Value(&w.schedule).
				Validate(func(s string) error {
					_, err := model.ParseSchedule(s, time.Local)
					return err
				}),
			huh.NewConfirm().
				Title("Create the project now?").
				Affirmative("Create Video Project").
				Negative("Keep drafting").
				Value(&w.create),
		).Title("Upload & Schedule"),
	)
}

func (w *wizardValues) fields() (draft.Fields, error) {
	when, err := model.ParseSchedule(w.schedule, time.Local)
	if err != nil {
		return draft.Fields{}, err
	}
	return draft.Fields{
		Title:         w.title,
		Description:   w.description,
		Tags:          splitTags(w.tags),
		Thumbnail:     w.thumbnail,
		ScheduledDate: when,
	}, nil
}

// splitTags splits a comma separated list, dropping blanks.
func splitTags(s string) model.Tags {
	var tags model.Tags
	for _, part := range strings.Split(s, ",") {
		if t := model.NormalizeTag(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
