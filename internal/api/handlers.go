package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogersnm/reel/internal/id"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/session"
	"github.com/rogersnm/reel/internal/store"
)

// Handler serves one session over HTTP.
type Handler struct {
	sess *session.Session
	log  *slog.Logger
	loc  *time.Location
}

func NewHandler(sess *session.Session, logger *slog.Logger) *Handler {
	return &Handler{sess: sess, log: logger, loc: time.Local}
}

func (h *Handler) draftResponse() DraftResponse {
	return newDraftResponse(h.sess.DraftState())
}

// projectID returns the {id} path parameter once it parses as a project id.
func projectID(r *http.Request) (string, error) {
	v := chi.URLParam(r, "id")
	if _, err := id.Parse(v); err != nil {
		return "", err
	}
	return v, nil
}

// GetDraft handles GET /api/draft.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draftResponse())
}

// PatchDraft handles PATCH /api/draft. The schedule is parsed before any
// field is written so a bad date leaves the draft untouched.
func (h *Handler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	var req PatchDraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var schedule *time.Time
	if req.ScheduledDate != nil {
		t, err := model.ParseSchedule(*req.ScheduledDate, h.loc)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		schedule = t
	}

	if req.Title != nil {
		h.sess.SetTitle(*req.Title)
	}
	if req.Description != nil {
		h.sess.SetDescription(*req.Description)
	}
	if req.Thumbnail != nil {
		h.sess.SetThumbnail(*req.Thumbnail)
	}
	if req.ScheduledDate != nil {
		h.sess.SetSchedule(schedule)
	}
	if req.TagInput != nil {
		h.sess.SetTagInput(*req.TagInput)
	}
	writeJSON(w, http.StatusOK, h.draftResponse())
}

// AddTag handles POST /api/draft/tags.
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req AddTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var (
		added bool
		err   error
	)
	if req.Tag == nil {
		added, err = h.sess.CommitTagInput()
	} else {
		added, err = h.sess.AddTag(*req.Tag)
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{Changed: added, Draft: h.draftResponse()})
}

// RemoveTag handles DELETE /api/draft/tags/{tag}. Removing an absent tag is
// not an error.
func (h *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the segment escaped.
	tag := chi.URLParam(r, "tag")
	if r.URL.RawPath != "" {
		v, err := url.PathUnescape(tag)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("invalid tag: %v", err)))
			return
		}
		tag = v
	}
	removed := h.sess.RemoveTag(tag)
	writeJSON(w, http.StatusOK, TagResponse{Changed: removed, Draft: h.draftResponse()})
}

// Promote handles POST /api/draft/promote.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	p, err := h.sess.Create()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListProjects handles GET /api/projects?status=&tag=.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.ProjectFilter
	if s := q.Get("status"); s != "" {
		st, err := model.ParseStatus(s)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		filter.Status = st
	}
	filter.Tag = q.Get("tag")

	projects := h.sess.List(filter)
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: projects, Total: len(projects)})
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	p, err := h.sess.Get(pid)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Transition handles POST /api/projects/{id}/transition.
func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var req TransitionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target, err := model.ParseStatus(req.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	p, err := h.sess.Transition(pid, target)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Advance handles POST /api/projects/{id}/advance.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	pid, err := projectID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	p, err := h.sess.Advance(pid)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, byStatus := h.sess.StatsByStatus()
	writeJSON(w, http.StatusOK, StatsResponse{Stats: stats, ByStatus: byStatus})
}

// Search handles GET /api/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	results := h.sess.Search(q)
	if results == nil {
		results = []store.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
