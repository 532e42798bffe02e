package core

import (
	"testing"

	"github.com/montage-edit/montage/pkg/opentime"
)

// buildNestedTree returns:
//
//	stack "root"
//	├── track "video"  [clipA 2s][clipB 2s]
//	└── track "audio"  [gap 1s][clipC 3s]
func buildNestedTree(t *testing.T) (*Stack, map[string]Composable) {
	t.Helper()
	clipA := NewClip("clipA", rangePtr(0, 2, 1))
	clipB := NewClip("clipB", rangePtr(0, 2, 1))
	clipC := NewClip("clipC", rangePtr(0, 3, 1))
	gap := NewGap(opentime.New(1, 1))
	gap.SetName("gap")

	video := mustTrack(t, "video", clipA, clipB)
	audio := mustTrack(t, "audio", gap, clipC)
	root := mustStack(t, "root", video, audio)

	return root, map[string]Composable{
		"clipA": clipA, "clipB": clipB, "clipC": clipC, "gap": gap,
		"video": video, "audio": audio,
	}
}

func collect(t *testing.T, w *Walker) []string {
	t.Helper()
	var names []string
	for w.Next() {
		names = append(names, w.Value().Name())
	}
	if err := w.Err(); err != nil {
		t.Fatal(err)
	}
	return names
}

func TestWalker_DepthFirstOrder(t *testing.T) {
	root, _ := buildNestedTree(t)

	got := collect(t, root.EachChild(nil, nil))
	want := []string{"video", "clipA", "clipB", "audio", "gap", "clipC"}
	if len(got) != len(want) {
		t.Fatalf("walk = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("walk = %v, want %v", got, want)
		}
	}
}

func TestWalker_Restartable(t *testing.T) {
	root, _ := buildNestedTree(t)

	first := collect(t, root.EachChild(nil, nil))
	second := collect(t, root.EachChild(nil, nil))
	if len(first) != len(second) {
		t.Fatal("a fresh walker must reproduce the traversal")
	}

	// Stopping early is just not pulling further.
	w := root.EachChild(nil, nil)
	if !w.Next() {
		t.Fatal("expected at least one descendant")
	}
	if w.Value().Name() != "video" {
		t.Errorf("first descendant = %q, want video", w.Value().Name())
	}
}

func TestWalker_KindFilter(t *testing.T) {
	root, _ := buildNestedTree(t)

	got := collect(t, root.EachChild(nil, OfKind[*Clip]()))
	want := []string{"clipA", "clipB", "clipC"}
	if len(got) != len(want) {
		t.Fatalf("clips = %v, want %v", got, want)
	}

	tracks := collect(t, root.EachChild(nil, OfKind[*Track]()))
	if len(tracks) != 2 {
		t.Fatalf("tracks = %v, want 2 entries", tracks)
	}
}

func TestWalker_SearchRange(t *testing.T) {
	root, _ := buildNestedTree(t)

	// Nothing overlaps a window far past the composition.
	empty := opentime.NewRange(opentime.New(100, 1), opentime.New(5, 1))
	if got := collect(t, root.EachChild(&empty, nil)); len(got) != 0 {
		t.Errorf("walk = %v, want empty", got)
	}

	// A window covering everything yields every descendant.
	full := opentime.NewRange(opentime.New(0, 1), opentime.New(100, 1))
	if got := collect(t, root.EachChild(&full, nil)); len(got) != 6 {
		t.Errorf("walk = %v, want all 6 descendants", got)
	}

	// A window over the second half of the video track prunes clipA; overlap
	// is re-derived locally at each level, so the audio track's children are
	// judged against the same window in their own frame.
	second := opentime.NewRange(opentime.New(3, 1), opentime.New(1, 1))
	got := collect(t, root.EachChild(&second, nil))
	for _, name := range got {
		if name == "clipA" || name == "gap" {
			t.Errorf("%s does not overlap [3, 4) and must be pruned", name)
		}
	}
}

func TestChildrenAtTime(t *testing.T) {
	root, nodes := buildNestedTree(t)

	// Both tracks overlap t=0.5 in the stack's frame.
	at, err := root.ChildrenAtTime(opentime.New(0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(at) != 2 {
		t.Fatalf("stack children at 0.5 = %d, want 2", len(at))
	}

	// A track returns at most one child per instant.
	video := nodes["video"].(*Track)
	at, err = video.ChildrenAtTime(opentime.New(3, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(at) != 1 || at[0].Name() != "clipB" {
		t.Fatalf("video children at 3 = %v, want [clipB]", at)
	}

	// Past the end of everything.
	at, err = video.ChildrenAtTime(opentime.New(10, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(at) != 0 {
		t.Errorf("children at 10 = %d, want 0", len(at))
	}
}

func TestTopClipAtTime(t *testing.T) {
	root, _ := buildNestedTree(t)

	// At t=0.5 the first overlapping child is the video track; descend into
	// it and land on clipA.
	got, err := root.TopClipAtTime(opentime.New(0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name() != "clipA" {
		t.Fatalf("top clip at 0.5 = %v, want clipA", got)
	}
}

func TestTopClipAtTime_SkipsInvisible(t *testing.T) {
	gap := NewGap(opentime.New(4, 1))
	clip := NewClip("under", rangePtr(0, 4, 1))
	top := mustTrack(t, "top", gap)
	bottom := mustTrack(t, "bottom", clip)
	stack := mustStack(t, "stack", top, bottom)
	_ = clip

	// The gap's track is first in overlay order, and descending into it
	// reaches no visible leaf.
	got, err := top.TopClipAtTime(opentime.New(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("track of gaps must yield nil, got %v", got)
	}
	_ = bottom
	_ = stack
}

func TestTopClipAtTime_AllInvisible(t *testing.T) {
	track := mustTrack(t, "gaps", NewGap(opentime.New(2, 1)), NewGap(opentime.New(2, 1)))

	got, err := track.TopClipAtTime(opentime.New(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil when every overlapping child is invisible, got %v", got)
	}
}
