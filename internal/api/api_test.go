package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogersnm/reel/internal/logging"
	"github.com/rogersnm/reel/internal/model"
	"github.com/rogersnm/reel/internal/session"
	"github.com/rogersnm/reel/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) (*session.Session, http.Handler) {
	t.Helper()
	sess := session.New(logging.Discard())
	return sess, NewServer(sess, logging.Discard())
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthLive(t *testing.T) {
	_, h := testEnv(t)
	w := do(t, h, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDraftLifecycle(t *testing.T) {
	_, h := testEnv(t)

	w := do(t, h, http.MethodPatch, "/api/draft", map[string]string{
		"title":          "Intro Video",
		"scheduled_date": "2026-06-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	d := decode[DraftResponse](t, w)
	assert.Equal(t, "Intro Video", d.Title)
	require.NotNil(t, d.ScheduledDate)

	for _, tag := range []string{"tutorial", "intro", "tutorial"} {
		w = do(t, h, http.MethodPost, "/api/draft/tags", map[string]string{"tag": tag})
		require.Equal(t, http.StatusOK, w.Code)
	}
	tr := decode[TagResponse](t, w)
	assert.False(t, tr.Changed)
	assert.Equal(t, model.Tags{"tutorial", "intro"}, tr.Draft.Tags)

	w = do(t, h, http.MethodDelete, "/api/draft/tags/intro", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tr = decode[TagResponse](t, w)
	assert.True(t, tr.Changed)
	assert.Equal(t, model.Tags{"tutorial"}, tr.Draft.Tags)

	w = do(t, h, http.MethodPost, "/api/draft/promote", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[model.Project](t, w)
	assert.Regexp(t, `^VID-[A-Z2-9]{5}$`, p.ID)
	assert.Equal(t, model.StatusPlanning, p.Status)

	w = do(t, h, http.MethodGet, "/api/draft", nil)
	d = decode[DraftResponse](t, w)
	assert.Equal(t, "", d.Title)
	assert.Equal(t, model.Tags{}, d.Tags)
	assert.Nil(t, d.ScheduledDate)
}

func TestPatchDraft_BadSchedule(t *testing.T) {
	sess, h := testEnv(t)
	w := do(t, h, http.MethodPatch, "/api/draft", map[string]string{
		"title":          "Kept out",
		"scheduled_date": "next tuesday",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "", sess.Draft().Title)
}

func TestAddTag_CommitsTagInput(t *testing.T) {
	sess, h := testEnv(t)
	sess.SetTagInput("  vlog ")

	w := do(t, h, http.MethodPost, "/api/draft/tags", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	tr := decode[TagResponse](t, w)
	assert.True(t, tr.Changed)
	assert.Equal(t, model.Tags{"vlog"}, tr.Draft.Tags)
	assert.Equal(t, "", tr.Draft.TagInput)
}

func TestAddTag_Empty(t *testing.T) {
	_, h := testEnv(t)
	w := do(t, h, http.MethodPost, "/api/draft/tags", map[string]string{"tag": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBadJSON(t *testing.T) {
	_, h := testEnv(t)
	w := do(t, h, http.MethodPatch, "/api/draft", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON body", decode[errResponse](t, w).Error)
}

func TestPromote_EmptyTitle(t *testing.T) {
	sess, h := testEnv(t)
	w := do(t, h, http.MethodPost, "/api/draft/promote", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, sess.List(store.ProjectFilter{}))
}

func createProject(t *testing.T, sess *session.Session, title string, tags ...string) *model.Project {
	t.Helper()
	sess.SetTitle(title)
	for _, tag := range tags {
		_, err := sess.AddTag(tag)
		require.NoError(t, err)
	}
	p, err := sess.Create()
	require.NoError(t, err)
	return p
}

func TestProjects_ListAndGet(t *testing.T) {
	sess, h := testEnv(t)

	w := do(t, h, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":[],"total":0}`, w.Body.String())

	a := createProject(t, sess, "First", "vlog")
	b := createProject(t, sess, "Second")
	_, err := sess.Advance(b.ID)
	require.NoError(t, err)

	list := decode[ProjectListResponse](t, do(t, h, http.MethodGet, "/api/projects", nil))
	require.Equal(t, 2, list.Total)
	assert.Equal(t, a.ID, list.Projects[0].ID)

	list = decode[ProjectListResponse](t, do(t, h, http.MethodGet, "/api/projects?status=scripting", nil))
	require.Len(t, list.Projects, 1)
	assert.Equal(t, b.ID, list.Projects[0].ID)

	list = decode[ProjectListResponse](t, do(t, h, http.MethodGet, "/api/projects?tag=vlog", nil))
	require.Len(t, list.Projects, 1)
	assert.Equal(t, a.ID, list.Projects[0].ID)

	w = do(t, h, http.MethodGet, "/api/projects?status=archived", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodGet, "/api/projects/"+a.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "First", decode[model.Project](t, w).Title)

	w = do(t, h, http.MethodGet, "/api/projects/VID-ZZZZZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransition(t *testing.T) {
	sess, h := testEnv(t)
	p := createProject(t, sess, "Intro")

	w := do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/transition", TransitionRequest{Status: "scripting"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.StatusScripting, decode[model.Project](t, w).Status)

	w = do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/transition", TransitionRequest{Status: "uploaded"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/transition", TransitionRequest{Status: "bogus"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/projects/VID-ZZZZZ/transition", TransitionRequest{Status: "scripting"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, err := sess.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScripting, got.Status)
}

func TestAdvance_ToTerminal(t *testing.T) {
	sess, h := testEnv(t)
	p := createProject(t, sess, "Walk")

	for _, want := range model.Pipeline[1:] {
		w := do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/advance", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, decode[model.Project](t, w).Status)
	}
	w := do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/advance", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStats(t *testing.T) {
	sess, h := testEnv(t)
	createProject(t, sess, "One")
	p := createProject(t, sess, "Two")
	_, err := sess.Advance(p.ID)
	require.NoError(t, err)

	w := do(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	s := decode[StatsResponse](t, w)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.InPlanning)
	assert.Equal(t, 1, s.ByStatus[model.StatusScripting])
	assert.Equal(t, 0, s.ByStatus[model.StatusUploaded])
}

func TestSearch(t *testing.T) {
	sess, h := testEnv(t)
	createProject(t, sess, "Gopher tutorial", "go")

	w := do(t, h, http.MethodGet, "/api/search?q=GOPHER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[SearchResponse](t, w)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "title", res.Results[0].Field)

	w = do(t, h, http.MethodGet, "/api/search?q=nothing", nil)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	_, h := testEnv(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, h, logging.Discard()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health/live")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestProjectRoutes_MalformedID(t *testing.T) {
	_, h := testEnv(t)

	w := do(t, h, http.MethodGet, "/api/projects/not-an-id", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid project id")

	w = do(t, h, http.MethodPost, "/api/projects/VID-00000/transition", TransitionRequest{Status: "scripting"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/api/projects/vid-abcde/advance", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRemoveTag_EscapedSlash(t *testing.T) {
	sess, h := testEnv(t)
	_, err := sess.AddTag("a/b")
	require.NoError(t, err)

	w := do(t, h, http.MethodDelete, "/api/draft/tags/a%2Fb", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tr := decode[TagResponse](t, w)
	assert.True(t, tr.Changed)
	assert.Equal(t, model.Tags{}, tr.Draft.Tags)
}
