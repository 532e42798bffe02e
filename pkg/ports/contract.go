package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
)

// RunCatalogContract runs a suite of tests to verify that a Catalog
// implementation adheres to the defined interface contract.
func RunCatalogContract(t *testing.T, catalog Catalog) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		tl := contractTimeline(t, "contract cut")

		err := catalog.Save(ctx, name, tl)
		require.NoError(t, err, "Save should not return error")

		loaded, err := catalog.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, tl.Name(), loaded.Name())
		assert.Equal(t, tl.Tracks().Len(), loaded.Tracks().Len())

		wantDuration, err := tl.Duration()
		require.NoError(t, err)
		gotDuration, err := loaded.Duration()
		require.NoError(t, err)
		assert.True(t, wantDuration.Equal(gotDuration), "duration must survive storage")
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := catalog.Load(ctx, name)
		require.NoError(t, err)

		// Mutating the loaded copy must not leak into the stored version.
		loaded.SetName("mutated")
		require.NoError(t, loaded.Tracks().DeleteAt(0))

		again, err := catalog.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "contract cut", again.Name())
		assert.Equal(t, 1, again.Tracks().Len())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := catalog.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrTimelineNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, catalog.Save(ctx, name, contractTimeline(t, "contract cut")))

		require.NoError(t, catalog.Delete(ctx, name))

		_, err := catalog.Load(ctx, name)
		assert.ErrorIs(t, err, ErrTimelineNotFound, "Load after Delete should return ErrTimelineNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, catalog.Save(ctx, id1, contractTimeline(t, "one")))
		require.NoError(t, catalog.Save(ctx, id2, contractTimeline(t, "two")))

		defer func() {
			_ = catalog.Delete(ctx, id1)
			_ = catalog.Delete(ctx, id2)
		}()

		names, err := catalog.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}

func contractTimeline(t *testing.T, name string) *montage.Timeline {
	t.Helper()
	r := opentime.NewRange(opentime.New(0, 24), opentime.New(48, 24))

	video, err := core.NewTrack("video", core.NewClip("a", &r), core.NewClip("b", &r))
	require.NoError(t, err)
	audio, err := core.NewTrack("audio", core.NewClip("music", &r))
	require.NoError(t, err)
	stack, err := core.NewStack("tracks", video, audio)
	require.NoError(t, err)

	return montage.New(name, montage.WithTracks(stack))
}
