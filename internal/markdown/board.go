package markdown

import (
	"fmt"
	"strings"

	"github.com/rogersnm/reel/internal/model"
)

// RenderBoard draws the pipeline as a tree: one branch per stage, in order,
// with that stage's projects beneath it.
func RenderBoard(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects."
	}

	byStage := make(map[model.Status][]model.Project, len(model.Pipeline))
	for _, p := range projects {
		byStage[p.Status] = append(byStage[p.Status], p)
	}

	var sb strings.Builder
	for i, st := range model.Pipeline {
		if i > 0 {
			sb.WriteString("\n")
		}
		items := byStage[st]
		header := fmt.Sprintf("%s (%d)", st, len(items))
		if a := st.Action(); a != "" {
			header += "  next: " + a
		}
		sb.WriteString(StatusStyle(st).Bold(true).Render(header))
		sb.WriteString("\n")
		for j, p := range items {
			connector := "├── "
			if j == len(items)-1 {
				connector = "└── "
			}
			sb.WriteString(connector)
			sb.WriteString(StatusStyle(st).Render(fmt.Sprintf("%s %s", p.ID, p.Title)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
