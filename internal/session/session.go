// Package session owns one user's draft and project registry for the
// lifetime of a process. Every method is serialized on a single mutex so a
// session can back concurrent hosts such as the HTTP API.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogersnm/reel/internal/draft"
	"github.com/rogersnm/reel/internal/id"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/store"
)

type Session struct {
	mu       sync.Mutex
	id       string
	draft    *draft.Draft
	registry *store.Registry
	ids      draft.IDSource
	log      *slog.Logger
}

func New(logger *slog.Logger) *Session {
	sid := uuid.NewString()
	return &Session{
		id:       sid,
		draft:    draft.New(),
		registry: store.NewRegistry(),
		ids:      id.NewGenerator(),
		log:      logger.With(slog.String("session_id", sid)),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Draft returns a snapshot of the in-progress project.
func (s *Session) Draft() draft.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Snapshot()
}

// DraftState returns the draft snapshot and the pending tag input together.
func (s *Session) DraftState() (draft.Fields, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Snapshot(), s.draft.TagInput()
}

func (s *Session) DraftIsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.IsEmpty()
}

func (s *Session) TagInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.TagInput()
}

func (s *Session) SetTitle(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetTitle(v)
}

func (s *Session) SetDescription(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetDescription(v)
}

func (s *Session) SetThumbnail(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetThumbnail(v)
}

func (s *Session) SetSchedule(t *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetSchedule(t)
}

func (s *Session) SetTagInput(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetTagInput(v)
}

func (s *Session) AddTag(tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.draft.AddTag(tag)
	if err != nil {
		s.log.Debug("tag rejected", slog.String("tag", tag), slog.String("error", err.Error()))
	}
	return added, err
}

func (s *Session) CommitTagInput() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.CommitTagInput()
}

func (s *Session) RemoveTag(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.RemoveTag(tag)
}

// ApplyDraft replaces the draft fields wholesale.
func (s *Session) ApplyDraft(f draft.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Apply(f)
}

func (s *Session) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Reset()
}

// Create promotes the draft and registers the resulting project.
func (s *Session) Create() (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.draft.Promote(s.ids)
	if err != nil {
		s.log.Debug("promotion rejected", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.registry.Add(p); err != nil {
		s.log.Error("registering project failed", slog.String("project_id", p.ID), slog.String("error", err.Error()))
		return nil, err
	}
	s.log.Info("project created",
		slog.String("project_id", p.ID),
		slog.String("title", p.Title),
		slog.Int("tags", len(p.Tags)))
	return p, nil
}

func (s *Session) Transition(projectID string, target model.Status) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logTransition(projectID, target, func() (*model.Project, error) {
		return s.registry.Transition(projectID, target)
	})
}

func (s *Session) Advance(projectID string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logTransition(projectID, "", func() (*model.Project, error) {
		return s.registry.Advance(projectID)
	})
}

func (s *Session) logTransition(projectID string, target model.Status, fn func() (*model.Project, error)) (*model.Project, error) {
	p, err := fn()
	if err != nil {
		s.log.Debug("transition rejected",
			slog.String("project_id", projectID),
			slog.String("target", string(target)),
			slog.String("error", err.Error()))
		return nil, err
	}
	s.log.Info("status changed", slog.String("project_id", p.ID), slog.String("status", string(p.Status)))
	return p, nil
}

func (s *Session) Get(projectID string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(projectID)
}

func (s *Session) List(filter store.ProjectFilter) []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List(filter)
}

// StatsByStatus returns the dashboard buckets and the per-stage counts from
// one view of the registry.
func (s *Session) StatsByStatus() (store.Stats, map[model.Status]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Stats(), s.registry.CountByStatus()
}

func (s *Session) Search(query string) []store.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Search(query)
}
