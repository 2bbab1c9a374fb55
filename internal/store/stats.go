package store

import "github.com/rogersnm/reel/internal/model"

// Stats aggregates project counts per pipeline bucket. InPlanning covers both
// planning and scripting, so the bucket fields sum to Total.
type Stats struct {
	Total      int `json:"total"`
	InPlanning int `json:"in_planning"`
	Recording  int `json:"recording"`
	Editing    int `json:"editing"`
	Ready      int `json:"ready"`
	Uploaded   int `json:"uploaded"`
}

// Stats is recomputed from the current contents on every call.
func (r *Registry) Stats() Stats {
	s := Stats{Total: len(r.projects)}
	for _, p := range r.projects {
		switch p.Status {
		case model.StatusPlanning, model.StatusScripting:
			s.InPlanning++
		case model.StatusRecording:
			s.Recording++
		case model.StatusEditing:
			s.Editing++
		case model.StatusReady:
			s.Ready++
		case model.StatusUploaded:
			s.Uploaded++
		}
	}
	return s
}

// CountByStatus returns one count per pipeline stage, zeros included.
func (r *Registry) CountByStatus() map[model.Status]int {
	counts := make(map[model.Status]int, len(model.Pipeline))
	for _, s := range model.Pipeline {
		counts[s] = 0
	}
	for _, p := range r.projects {
		counts[p.Status]++
	}
	return counts
}
