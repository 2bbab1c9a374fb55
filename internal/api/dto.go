package api

import (
	"time"

	"github.com/rogersnm/reel/internal/draft"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/store"
)

// DraftResponse is the draft as seen by clients, tag input buffer included.
type DraftResponse struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Tags          model.Tags `json:"tags"`
	Thumbnail     string     `json:"thumbnail"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	TagInput      string     `json:"tag_input"`
}

func newDraftResponse(f draft.Fields, tagInput string) DraftResponse {
	tags := f.Tags
	if tags == nil {
		tags = model.Tags{}
	}
	return DraftResponse{
		Title:         f.Title,
		Description:   f.Description,
		Tags:          tags,
		Thumbnail:     f.Thumbnail,
		ScheduledDate: f.ScheduledDate,
		TagInput:      tagInput,
	}
}

// PatchDraftRequest updates only the fields that are present.
// scheduled_date accepts the same layouts as the CLI; "" or "none" clears it.
type PatchDraftRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Thumbnail     *string `json:"thumbnail"`
	ScheduledDate *string `json:"scheduled_date"`
	TagInput      *string `json:"tag_input"`
}

// AddTagRequest adds tag, or commits the tag input buffer when tag is absent.
type AddTagRequest struct {
	Tag *string `json:"tag"`
}

type TagResponse struct {
	Changed bool          `json:"changed"`
	Draft   DraftResponse `json:"draft"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type ProjectListResponse struct {
	Projects []model.Project `json:"projects"`
	Total    int             `json:"total"`
}

type StatsResponse struct {
	store.Stats
	ByStatus map[model.Status]int `json:"by_status"`
}

type SearchResponse struct {
	Results []store.SearchResult `json:"results"`
}
