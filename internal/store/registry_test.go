package store

import (
	"testing"
	"time"

	"github.com/rogersnm/reel/internal/draft"
	"github.com/rogersnm/reel/internal/id"
	"github.com/rogersnm/reel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) (*Registry, *draft.Draft, *id.Generator) {
	t.Helper()
	reg := NewRegistry()
	reg.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	return reg, draft.New(), id.NewGenerator()
}

func createProject(t *testing.T, reg *Registry, d *draft.Draft, ids *id.Generator, title string, tags ...string) *model.Project {
	t.Helper()
	d.SetTitle(title)
	for _, tag := range tags {
		_, err := d.AddTag(tag)
		require.NoError(t, err)
	}
	p, err := d.Promote(ids)
	require.NoError(t, err)
	require.NoError(t, reg.Add(p))
	return p
}

func TestAdd_DuplicateID(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")

	err := reg.Add(p)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, reg.List(ProjectFilter{}), 1)
}

func TestAdd_RejectsInvalidProject(t *testing.T) {
	reg, _, _ := setupRegistry(t)
	err := reg.Add(&model.Project{ID: "VID-ABCDE", Status: model.StatusPlanning})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, reg.List(ProjectFilter{}))
}

func TestAdd_StoresCopy(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One", "a")
	p.Tags[0] = "mutated"
	p.Status = model.StatusUploaded

	got, err := reg.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Tags{"a"}, got.Tags)
	assert.Equal(t, model.StatusPlanning, got.Status)
}

func TestIntroVideoScenario(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "Intro Video", "tutorial", "intro")

	all := reg.List(ProjectFilter{})
	require.Len(t, all, 1)
	assert.Equal(t, model.StatusPlanning, all[0].Status)
	assert.Equal(t, model.Tags{"tutorial", "intro"}, all[0].Tags)

	_, err := reg.Transition(p.ID, model.StatusScripting)
	require.NoError(t, err)
	_, err = reg.Transition(p.ID, model.StatusRecording)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Stats().Recording)

	_, err = reg.Transition(p.ID, model.StatusUploaded)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	got, _ := reg.Get(p.ID)
	assert.Equal(t, model.StatusRecording, got.Status)
}

func TestTransition_UnknownID(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	createProject(t, reg, d, ids, "One")
	before := reg.List(ProjectFilter{})

	_, err := reg.Transition("nonexistent-id", model.StatusScripting)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, reg.List(ProjectFilter{}))
}

func TestTransition_InvalidStatus(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")
	_, err := reg.Transition(p.ID, "published")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestTransition_NoRegressionOrSelf(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")
	_, err := reg.Advance(p.ID)
	require.NoError(t, err)

	_, err = reg.Transition(p.ID, model.StatusPlanning)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = reg.Transition(p.ID, model.StatusScripting)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "next is recording")
}

func TestTransition_UpdatesTimestamp(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")
	moved, err := reg.Advance(p.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), moved.UpdatedAt)
	assert.Equal(t, p.CreatedAt, moved.CreatedAt)
}

func TestAdvance_WalksWholePipelineThenStops(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")

	seen := []model.Status{model.StatusPlanning}
	for {
		moved, err := reg.Advance(p.ID)
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidTransition)
			break
		}
		seen = append(seen, moved.Status)
	}
	assert.Equal(t, model.Pipeline, seen)

	for _, s := range model.Pipeline {
		_, err := reg.Transition(p.ID, s)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
	got, _ := reg.Get(p.ID)
	assert.Equal(t, model.StatusUploaded, got.Status)
}

func TestTransition_StatusNeverDecreases(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "One")

	// Throw every target at the project repeatedly; observed statuses must be
	// non-decreasing along the pipeline.
	last := 0
	for round := 0; round < 3; round++ {
		for _, target := range model.Pipeline {
			reg.Transition(p.ID, target)
			got, err := reg.Get(p.ID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.Status.Index(), last)
			last = got.Status.Index()
		}
	}
	assert.Equal(t, model.StatusUploaded.Index(), last)
}

func TestList_InsertionOrderAndFilter(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	a := createProject(t, reg, d, ids, "A", "go")
	b := createProject(t, reg, d, ids, "B")
	c := createProject(t, reg, d, ids, "C", "go")
	reg.Advance(b.ID)

	all := reg.List(ProjectFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "C", all[2].Title)

	planning := reg.List(ProjectFilter{Status: model.StatusPlanning})
	require.Len(t, planning, 2)
	assert.Equal(t, a.ID, planning[0].ID)
	assert.Equal(t, c.ID, planning[1].ID)

	tagged := reg.List(ProjectFilter{Tag: "go", Status: model.StatusPlanning})
	assert.Len(t, tagged, 2)

	assert.Empty(t, reg.List(ProjectFilter{Tag: "Go"}))
}

func TestList_ReturnsCopies(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "A", "go")
	list := reg.List(ProjectFilter{})
	list[0].Tags[0] = "changed"
	list[0].Status = model.StatusUploaded

	got, _ := reg.Get(p.ID)
	assert.Equal(t, model.Tags{"go"}, got.Tags)
	assert.Equal(t, model.StatusPlanning, got.Status)
}

func TestStats_BucketsSumToTotal(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	for i := 0; i < len(model.Pipeline); i++ {
		p := createProject(t, reg, d, ids, "P")
		for j := 0; j < i; j++ {
			_, err := reg.Advance(p.ID)
			require.NoError(t, err)
		}
	}

	s := reg.Stats()
	assert.Equal(t, len(reg.List(ProjectFilter{})), s.Total)
	assert.Equal(t, 2, s.InPlanning)
	assert.Equal(t, 1, s.Recording)
	assert.Equal(t, 1, s.Editing)
	assert.Equal(t, 1, s.Ready)
	assert.Equal(t, 1, s.Uploaded)
	assert.LessOrEqual(t, s.InPlanning+s.Recording+s.Editing+s.Uploaded, s.Total)
	assert.Equal(t, s.Total, s.InPlanning+s.Recording+s.Editing+s.Ready+s.Uploaded)
}

func TestStats_Empty(t *testing.T) {
	reg, _, _ := setupRegistry(t)
	assert.Equal(t, Stats{}, reg.Stats())
}

func TestCountByStatus(t *testing.T) {
	reg, d, ids := setupRegistry(t)
	p := createProject(t, reg, d, ids, "A")
	createProject(t, reg, d, ids, "B")
	reg.Advance(p.ID)

	counts := reg.CountByStatus()
	assert.Len(t, counts, len(model.Pipeline))
	assert.Equal(t, 1, counts[model.StatusPlanning])
	assert.Equal(t, 1, counts[model.StatusScripting])
	assert.Equal(t, 0, counts[model.StatusUploaded])
}
