package chanmix

import "testing"

const crossfadeTimeline = `{
	"duration": 3,
	"loop": true,
	"resetPose": true,
	"animations": [{"name": "idle", "duration": 1}, {"name": "walk", "duration": 2}, {"name": "wave", "duration": 1}],
	"tracks": [
		{"channel": 1, "clips": [
			{"animation": "wave", "start": 0.5, "duration": 1, "postExtrapolation": "loop", "postExtrapolationTime": 5}
		]},
		{"channel": 0, "clips": [
			{"animation": "idle", "start": 0, "duration": 2, "blendOut": 1},
			{"animation": "walk", "start": 1, "duration": 2, "blendIn": 1, "speed": 1.5}
		]}
	]
}`

func TestLoadTimeline(t *testing.T) {
	pose := &Pose{}
	tl, err := LoadTimeline([]byte(crossfadeTimeline), pose)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := tl.Director
	if d.Duration != 3 || !d.Loop || !d.Mixer.ResetPose {
		t.Errorf("director = duration %v loop %v reset %v", d.Duration, d.Loop, d.Mixer.ResetPose)
	}
	if len(d.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(d.Tracks))
	}
	walk := d.Tracks[1].Clips[1]
	if walk.Animation != tl.Data.FindAnimation("walk") || walk.AnimationDuration != 2 || walk.Speed != 1.5 || walk.BlendIn != 1 {
		t.Errorf("walk clip = %+v", walk)
	}
	if d.Tracks[0].Clips[0].PostExtrapolation != ExtrapolateLoop {
		t.Error("post-extrapolation not parsed")
	}
}

func TestTimelineSample(t *testing.T) {
	pose := &Pose{}
	tl, err := LoadTimeline([]byte(crossfadeTimeline), pose)
	if err != nil {
		t.Fatal(err)
	}

	tl.Director.Sample(1.25)

	// Channel 0: idle fading out underneath walk, then channel 1's wave.
	want := []struct {
		anim   string
		time   float32
		weight float32
	}{
		{"idle", 1.25, 1},
		{"walk", 0.25, 0.25},
		{"wave", 0.75, 1},
	}
	if tl.State.Len() != len(want) {
		t.Fatalf("tracks = %d, want %d", tl.State.Len(), len(want))
	}
	for i, w := range want {
		e := tl.State.Track(i)
		if e.Animation.Name != w.anim || e.TrackTime != w.time || e.Alpha != w.weight {
			t.Errorf("track %d = %s t=%v w=%v, want %+v", i, e.Animation.Name, e.TrackTime, e.Alpha, w)
		}
	}
	if tl.State.Track(1).TimeScale != 1.5 {
		t.Errorf("walk speed = %v, want 1.5", tl.State.Track(1).TimeScale)
	}
	if pose.Resets != 1 || len(pose.Layers) != 3 {
		t.Errorf("pose = %d resets, %d layers", pose.Resets, len(pose.Layers))
	}

	// Past the crossfade only walk remains on channel 0, and wave loops.
	tl.Director.Sample(2.75)
	if tl.State.Len() < 2 || tl.State.Track(0).Animation.Name != "walk" || tl.State.Track(1).Animation.Name != "wave" {
		t.Fatalf("tracks after crossfade: %+v, %+v", tl.State.Track(0), tl.State.Track(1))
	}
	if tl.State.Track(2) != nil {
		t.Error("track 2 should be cleared once the crossfade ends")
	}
	if got := tl.State.Track(1).TrackTime; got != 0.25 {
		t.Errorf("looped wave time = %v, want 0.25", got)
	}
}

func TestLoadTimeline_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"no tracks", `{"animations": [{"name": "a", "duration": 1}], "tracks": []}`},
		{"unnamed animation", `{"animations": [{"duration": 1}], "tracks": [{"clips": []}]}`},
		{"duplicate animation", `{"animations": [{"name": "a"}, {"name": "a"}], "tracks": [{"clips": []}]}`},
		{"unknown clip animation", `{"animations": [{"name": "a", "duration": 1}],
			"tracks": [{"clips": [{"animation": "b", "duration": 1}]}]}`},
		{"zero clip duration", `{"animations": [{"name": "a", "duration": 1}],
			"tracks": [{"clips": [{"animation": "a", "start": 1}]}]}`},
		{"unknown extrapolation", `{"animations": [{"name": "a", "duration": 1}],
			"tracks": [{"clips": [{"animation": "a", "duration": 1, "preExtrapolation": "bounce"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTimeline([]byte(tt.json), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}
