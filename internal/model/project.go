package model

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID            string     `yaml:"id" json:"id"`
	Title         string     `yaml:"title" json:"title"`
	Description   string     `yaml:"-" json:"description"`
	Tags          Tags       `yaml:"tags,omitempty" json:"tags"`
	Thumbnail     string     `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Status        Status     `yaml:"status" json:"status"`
	ScheduledDate *time.Time `yaml:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	CreatedAt     time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `yaml:"updated_at" json:"updated_at"`
}

func (p *Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: project title is required", ErrValidation)
	}
	if err := ValidateStatus(p.Status); err != nil {
		return err
	}
	seen := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty tag", ErrValidation)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate tag %q", ErrValidation, t)
		}
		seen[t] = true
	}
	return nil
}

// Clone returns a deep copy so callers cannot reach registry-owned slices or
// timestamps.
func (p *Project) Clone() *Project {
	c := *p
	c.Tags = p.Tags.Clone()
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		c.ScheduledDate = &d
	}
	return &c
}
