// Package draft holds the in-progress video project and gates its promotion
// into a registered project.
package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogersnm/reel/internal/model"
)

var (
	ErrEmptyTitle = fmt.Errorf("%w: title is required", model.ErrValidation)
	ErrEmptyTag   = fmt.Errorf("%w: tag is empty", model.ErrValidation)
)

// IDSource assigns ids to promoted projects.
type IDSource interface {
	Next() (string, error)
}

// Fields is a read-only view of a draft, also used for bulk assignment.
type Fields struct {
	Title         string     `yaml:"title"`
	Description   string     `yaml:"-"`
	Tags          model.Tags `yaml:"tags,omitempty"`
	Thumbnail     string     `yaml:"thumbnail,omitempty"`
	ScheduledDate *time.Time `yaml:"scheduled_date,omitempty"`
}

// Draft is the scratch record for a project that does not exist yet. Its
// status is implicitly planning.
type Draft struct {
	title       string
	description string
	tags        model.Tags
	thumbnail   string
	schedule    *time.Time
	tagInput    string

	now func() time.Time
}

func New() *Draft {
	return &Draft{now: now}
}

func (d *Draft) SetTitle(v string)       { d.title = v }
func (d *Draft) SetDescription(v string) { d.description = v }
func (d *Draft) SetThumbnail(v string)   { d.thumbnail = v }
func (d *Draft) SetTagInput(v string)    { d.tagInput = v }
func (d *Draft) TagInput() string        { return d.tagInput }

// SetSchedule assigns the schedule; nil clears it.
func (d *Draft) SetSchedule(t *time.Time) {
	if t == nil {
		d.schedule = nil
		return
	}
	v := *t
	d.schedule = &v
}

// AddTag appends tag after trimming. A duplicate is a no-op reported as
// added=false; an empty tag is rejected with ErrEmptyTag. The tag input
// buffer is cleared only when the tag is appended.
func (d *Draft) AddTag(tag string) (bool, error) {
	if model.NormalizeTag(tag) == "" {
		return false, ErrEmptyTag
	}
	tags, added := d.tags.With(tag)
	if !added {
		return false, nil
	}
	d.tags = tags
	d.tagInput = ""
	return true, nil
}

// CommitTagInput adds whatever is in the tag input buffer.
func (d *Draft) CommitTagInput() (bool, error) {
	return d.AddTag(d.tagInput)
}

func (d *Draft) RemoveTag(tag string) bool {
	tags, removed := d.tags.Without(tag)
	if removed {
		d.tags = tags
	}
	return removed
}

func (d *Draft) Snapshot() Fields {
	f := Fields{
		Title:       d.title,
		Description: d.description,
		Tags:        d.tags.Clone(),
		Thumbnail:   d.thumbnail,
	}
	if d.schedule != nil {
		v := *d.schedule
		f.ScheduledDate = &v
	}
	return f
}

// Apply replaces every field with f. Tags are re-added one by one so empty
// and duplicate entries in f are dropped. A pending tag input survives.
func (d *Draft) Apply(f Fields) {
	d.title = f.Title
	d.description = f.Description
	d.thumbnail = f.Thumbnail
	d.SetSchedule(f.ScheduledDate)
	d.tags = nil
	pending := d.tagInput
	for _, t := range f.Tags {
		// Empty and duplicate tags are skipped, not reported.
		_, _ = d.AddTag(t)
	}
	d.tagInput = pending
}

// Promote turns the draft into a planning-stage project and resets the
// draft. With an empty title nothing happens and ErrEmptyTitle is returned.
func (d *Draft) Promote(ids IDSource) (*model.Project, error) {
	title := strings.TrimSpace(d.title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	pid, err := ids.Next()
	if err != nil {
		return nil, err
	}

	ts := d.now()
	p := &model.Project{
		ID:          pid,
		Title:       title,
		Description: d.description,
		Tags:        d.tags.Clone(),
		Thumbnail:   d.thumbnail,
		Status:      model.StatusPlanning,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if p.Tags == nil {
		p.Tags = model.Tags{}
	}
	if d.schedule != nil {
		v := *d.schedule
		p.ScheduledDate = &v
	}
	d.Reset()
	return p, nil
}

// Reset returns the draft to its empty default.
func (d *Draft) Reset() {
	d.title = ""
	d.description = ""
	d.tags = nil
	d.thumbnail = ""
	d.schedule = nil
	d.tagInput = ""
}

// IsEmpty reports whether no field has been set.
func (d *Draft) IsEmpty() bool {
	return d.title == "" && d.description == "" && len(d.tags) == 0 &&
		d.thumbnail == "" && d.schedule == nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
