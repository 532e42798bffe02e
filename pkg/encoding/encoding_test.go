package encoding

import (
	"errors"
	"testing"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
)

func sampleTimeline(t *testing.T) *montage.Timeline {
	t.Helper()
	r := func(start, dur float64) *opentime.TimeRange {
		tr := opentime.NewRange(opentime.New(start, 24), opentime.New(dur, 24))
		return &tr
	}

	intro := core.NewClip("intro", r(0, 48))
	body := core.NewClip("body", r(12, 96))
	body.Metadata()["take"] = "final"
	video, err := core.NewTrack("video", intro, core.NewGap(opentime.New(24, 24)), body)
	if err != nil {
		t.Fatal(err)
	}
	video.SetSourceRange(r(10, 100))

	music := core.NewClip("music", r(0, 120))
	audio, err := core.NewTrack("audio", music)
	if err != nil {
		t.Fatal(err)
	}

	stack, err := core.NewStack("tracks", video, audio)
	if err != nil {
		t.Fatal(err)
	}

	tl := montage.New("demo cut",
		montage.WithTracks(stack),
		montage.WithGlobalStart(opentime.New(86400, 24)),
	)
	tl.Metadata()["editor"] = "rj"
	return tl
}

func TestRoundTrip_JSON(t *testing.T) {
	original := sampleTimeline(t)

	data, err := Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, err := Unmarshal(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	assertEquivalent(t, original, rebuilt)
}

func TestRoundTrip_YAML(t *testing.T) {
	original := sampleTimeline(t)

	data, err := MarshalYAML(original)
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, err := UnmarshalYAML(data, nil)
	if err != nil {
		t.Fatal(err)
	}

	assertEquivalent(t, original, rebuilt)
}

// assertEquivalent checks structure and resolved ranges rather than raw
// bytes, since key order is not guaranteed.
func assertEquivalent(t *testing.T, original, rebuilt *montage.Timeline) {
	t.Helper()

	if rebuilt.Name() != original.Name() {
		t.Errorf("name = %q, want %q", rebuilt.Name(), original.Name())
	}
	if rebuilt.GlobalStart() == nil || !rebuilt.GlobalStart().Equal(*original.GlobalStart()) {
		t.Error("global start must survive the round trip")
	}
	if rebuilt.Metadata()["editor"] != "rj" {
		t.Error("timeline metadata must survive the round trip")
	}
	if rebuilt.Tracks().Len() != original.Tracks().Len() {
		t.Fatalf("track count = %d, want %d", rebuilt.Tracks().Len(), original.Tracks().Len())
	}

	// Walk both trees in step and compare kinds, names and placements.
	ow := original.Tracks().EachChild(nil, nil)
	rw := rebuilt.Tracks().EachChild(nil, nil)
	for ow.Next() {
		if !rw.Next() {
			t.Fatal("rebuilt tree is missing descendants")
		}
		o, r := ow.Value(), rw.Value()
		if o.Kind() != r.Kind() || o.Name() != r.Name() {
			t.Fatalf("node mismatch: %s %q vs %s %q", o.Kind(), o.Name(), r.Kind(), r.Name())
		}
		if o.Parent() != nil {
			or, oerr := original.Tracks().RangeOfChild(o, nil)
			rr, rerr := rebuilt.Tracks().RangeOfChild(r, nil)
			if oerr != nil || rerr != nil {
				t.Fatalf("range resolution failed: %v / %v", oerr, rerr)
			}
			if !or.StartTime.Equal(rr.StartTime) || !or.Duration.Equal(rr.Duration) {
				t.Errorf("%q placement = %s, want %s", r.Name(), rr, or)
			}
		}
	}
	if rw.Next() {
		t.Fatal("rebuilt tree has extra descendants")
	}

	// Child metadata survives.
	found := false
	w := rebuilt.EachClip(nil)
	for w.Next() {
		if w.Value().Name() == "body" {
			found = w.Value().Metadata()["take"] == "final"
		}
	}
	if !found {
		t.Error("clip metadata must survive the round trip")
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Not JSON", `{{`},
		{"Wrong Kind", `{"kind": "Clip", "tracks": {"kind": "Stack"}}`},
		{"Missing Tracks", `{"kind": "Timeline"}`},
		{"Unknown Node Kind", `{"kind": "Timeline", "tracks": {"kind": "Stack", "children": [{"kind": "Transition"}]}}`},
		{"Leaf With Children", `{"kind": "Timeline", "tracks": {"kind": "Stack", "children": [{"kind": "Clip", "children": [{"kind": "Clip"}]}]}}`},
		{"Non-Stack Root", `{"kind": "Timeline", "tracks": {"kind": "Track"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.data), nil)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecodeMetadata(t *testing.T) {
	clip := core.NewClip("a", nil)
	clip.Metadata()["reel"] = "A012"
	clip.Metadata()["scene"] = 7

	var out struct {
		Reel  string `mapstructure:"reel"`
		Scene int    `mapstructure:"scene"`
	}
	if err := DecodeMetadata(clip, &out); err != nil {
		t.Fatal(err)
	}
	if out.Reel != "A012" || out.Scene != 7 {
		t.Errorf("decoded = %+v", out)
	}
}
