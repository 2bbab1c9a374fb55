package markdown

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/store"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderProjectTable(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{
			p.ID,
			p.Title,
			RenderStatus(p.Status),
			RenderTags(p.Tags),
			model.FormatSchedule(p.ScheduledDate),
		}
	}
	return renderTable([]string{"ID", "Title", "Status", "Tags", "Scheduled"}, rows)
}

// RenderStats shows the dashboard buckets followed by per-stage counts.
func RenderStats(s store.Stats, counts map[model.Status]int) string {
	rows := [][]string{
		{"Total", strconv.Itoa(s.Total)},
		{"In planning", strconv.Itoa(s.InPlanning)},
		{"Recording", strconv.Itoa(s.Recording)},
		{"Editing", strconv.Itoa(s.Editing)},
		{"Ready", strconv.Itoa(s.Ready)},
		{"Uploaded", strconv.Itoa(s.Uploaded)},
	}
	out := renderTable([]string{"Bucket", "Projects"}, rows)
	if counts == nil {
		return out
	}

	stageRows := make([][]string, len(model.Pipeline))
	for i, st := range model.Pipeline {
		stageRows[i] = []string{RenderStatus(st), strconv.Itoa(counts[st])}
	}
	return out + "\n" + renderTable([]string{"Stage", "Projects"}, stageRows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
