package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montage-edit/montage"
	httpadapter "github.com/montage-edit/montage/pkg/adapters/http"
	"github.com/montage-edit/montage/pkg/adapters/memory"
	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
)

func seedCatalog(t *testing.T) *memory.Catalog {
	t.Helper()
	r := func(start, dur float64) *opentime.TimeRange {
		tr := opentime.NewRange(opentime.New(start, 1), opentime.New(dur, 1))
		return &tr
	}

	video, err := core.NewTrack("video",
		core.NewClip("intro", r(0, 2)),
		core.NewClip("body", r(0, 4)),
	)
	require.NoError(t, err)
	audio, err := core.NewTrack("audio", core.NewGap(opentime.New(6, 1)))
	require.NoError(t, err)
	stack, err := core.NewStack("tracks", video, audio)
	require.NoError(t, err)

	catalog := memory.NewCatalog()
	tl := montage.New("demo", montage.WithTracks(stack))
	require.NoError(t, catalog.Save(context.Background(), "demo", tl))
	return catalog
}

func TestServer_GetTimeline(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines/demo", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Timeline", doc["kind"])
	assert.Equal(t, "demo", doc["name"])
}

func TestServer_GetTimeline_NotFound(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestServer_List(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var body struct {
		Timelines []string `json:"timelines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Timelines, "demo")
}

func TestServer_ChildrenAtTime(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines/demo/children?value=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var body struct {
		Children []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Both tracks overlap t=1 in the stack's frame.
	assert.Len(t, body.Children, 2)
}

func TestServer_ChildrenAtTime_MissingValue(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines/demo/children", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestServer_TopClipAtTime(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	req := httptest.NewRequest("GET", "/timelines/demo/top-clip?value=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var body struct {
		Clip *struct {
			Name string `json:"name"`
		} `json:"clip"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Clip)
	assert.Equal(t, "intro", body.Clip.Name)
}

func TestServer_Metrics(t *testing.T) {
	handler := httpadapter.NewHandler(seedCatalog(t), nil)

	// Generate one request, then scrape.
	warm := httptest.NewRequest("GET", "/timelines", nil)
	handler.ServeHTTP(httptest.NewRecorder(), warm)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "montage_http_requests_total")
}
