package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/reel/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	actionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	stageStyles = map[model.Status]lipgloss.Style{
		model.StatusPlanning:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // white
		model.StatusScripting: lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // blue
		model.StatusRecording: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
		model.StatusEditing:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		model.StatusReady:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		model.StatusUploaded:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
	}
)

// RenderMarkdown renders a description for the terminal. Plain output uses
// glamour's notty style so no escape codes are emitted.
func RenderMarkdown(content string, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func StatusStyle(status model.Status) lipgloss.Style {
	if s, ok := stageStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderStatus(status model.Status) string {
	return StatusStyle(status).Render(string(status))
}

// RenderTags renders tags as "#a #b", or "-" when there are none.
func RenderTags(tags model.Tags) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = tagStyle.Render("#" + t)
	}
	return strings.Join(parts, " ")
}

// RenderAction names the button that advances a project, if any.
func RenderAction(status model.Status) string {
	a := status.Action()
	if a == "" {
		return "-"
	}
	return actionStyle.Render(a)
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// ProjectFields is the field block shown by project show.
func ProjectFields(p *model.Project) []string {
	thumb := p.Thumbnail
	if thumb == "" {
		thumb = "-"
	}
	return []string{
		RenderField("ID", p.ID),
		RenderField("Status", RenderStatus(p.Status)),
		RenderField("Next", RenderAction(p.Status)),
		RenderField("Tags", RenderTags(p.Tags)),
		RenderField("Thumbnail", thumb),
		RenderField("Scheduled", model.FormatSchedule(p.ScheduledDate)),
		RenderField("Created", p.CreatedAt.Format("2006-01-02 15:04:05")),
		RenderField("Updated", p.UpdatedAt.Format("2006-01-02 15:04:05")),
	}
}
