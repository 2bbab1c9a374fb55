package store

import (
	"strings"
)

type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Field   string `json:"field"`
	Snippet string `json:"snippet,omitempty"`
}

// Search matches query case-insensitively against title, tags and
// description, in that order. Each project appears at most once.
func (r *Registry) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult
	for _, p := range r.projects {
		switch {
		case matchesQuery(q, p.Title):
			results = append(results, SearchResult{ID: p.ID, Title: p.Title, Field: "title"})
		case matchesAnyTag(q, p.Tags):
			results = append(results, SearchResult{
				ID: p.ID, Title: p.Title, Field: "tags",
				Snippet: "#" + strings.Join(p.Tags, " #"),
			})
		case matchesQuery(q, p.Description):
			results = append(results, SearchResult{
				ID: p.ID, Title: p.Title, Field: "description",
				Snippet: snippet(p.Description, q),
			})
		}
	}
	return results
}

func matchesQuery(q, text string) bool {
	return strings.Contains(strings.ToLower(text), q)
}

func matchesAnyTag(q string, tags []string) bool {
	for _, t := range tags {
		if matchesQuery(q, t) {
			return true
		}
	}
	return false
}

func snippet(body, query string) string {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, query)
	if idx < 0 {
		return ""
	}
	start := idx - 40
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + 40
	if end > len(body) {
		end = len(body)
	}
	s := body[start:end]
	if start > 0 {
		s = "..." + s
	}
	if end < len(body) {
		s = s + "..."
	}
	return strings.ReplaceAll(s, "\n", " ")
}
