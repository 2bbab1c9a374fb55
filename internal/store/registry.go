package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/rogersnm/reel/internal/model"
)

var (
	ErrNotFound          = errors.New("project not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicateID       = errors.New("duplicate project id")
)

// ProjectFilter narrows List. Zero fields match everything.
type ProjectFilter struct {
	Status model.Status
	Tag    string
}

func (f ProjectFilter) match(p *model.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Tag != "" && !p.Tags.Contains(f.Tag) {
		return false
	}
	return true
}

// Registry is the authoritative, insertion-ordered collection of promoted
// projects. It is not safe for concurrent use; callers serialize access.
type Registry struct {
	projects []*model.Project
	index    map[string]int
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
		now:   now,
	}
}

// Add stores a freshly promoted project. An id already present is a
// programming error reported as ErrDuplicateID.
func (r *Registry) Add(p *model.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	r.index[p.ID] = len(r.projects)
	r.projects = append(r.projects, p.Clone())
	return nil
}

func (r *Registry) Get(projectID string) (*model.Project, error) {
	p, err := r.lookup(projectID)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Transition moves a project to target. Only the immediate successor of the
// current status is accepted; uploaded accepts nothing.
func (r *Registry) Transition(projectID string, target model.Status) (*model.Project, error) {
	p, err := r.lookup(projectID)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateStatus(target); err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s, no further transitions", ErrInvalidTransition, p.ID, p.Status)
	}
	if !p.Status.CanTransitionTo(target) {
		next, _ := p.Status.Next()
		return nil, fmt.Errorf("%w: %s cannot move from %s to %s (next is %s)", ErrInvalidTransition, p.ID, p.Status, target, next)
	}
	p.Status = target
	p.UpdatedAt = r.now()
	return p.Clone(), nil
}

// Advance moves a project to the successor of its current status.
func (r *Registry) Advance(projectID string) (*model.Project, error) {
	p, err := r.lookup(projectID)
	if err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s, no further transitions", ErrInvalidTransition, p.ID, p.Status)
	}
	next, _ := p.Status.Next()
	return r.Transition(projectID, next)
}

// List returns copies of the matching projects in insertion order.
func (r *Registry) List(filter ProjectFilter) []model.Project {
	out := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if filter.match(p) {
			out = append(out, *p.Clone())
		}
	}
	return out
}

func (r *Registry) lookup(projectID string) (*model.Project, error) {
	i, ok := r.index[projectID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
	}
	return r.projects[i], nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
