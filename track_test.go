package chanmix

import "testing"

func TestSkeletonDataLookup(t *testing.T) {
	idle := &Animation{Name: "idle", Duration: 1}
	d := NewSkeletonData(idle, nil, &Animation{Name: "walk", Duration: 2})

	if d.FindAnimation("idle") != idle {
		t.Error("FindAnimation(idle) did not return the registered animation")
	}
	if d.FindAnimation("jump") != nil {
		t.Error("FindAnimation(jump) should be nil")
	}
	if got := d.Names(); len(got) != 2 || got[0] != "idle" || got[1] != "walk" {
		t.Errorf("Names = %v", got)
	}

	replacement := &Animation{Name: "idle", Duration: 3}
	d.Add(replacement)
	if d.FindAnimation("idle") != replacement || len(d.Animations()) != 2 || d.Animations()[0] != replacement {
		t.Error("Add with an existing name should replace in place")
	}

	var nilData *SkeletonData
	if nilData.FindAnimation("idle") != nil || nilData.Animations() != nil || len(nilData.Names()) != 0 {
		t.Error("nil SkeletonData should behave as empty")
	}
}

func TestTrackEntryAnimationTime(t *testing.T) {
	anim := &Animation{Name: "a", Duration: 2}
	tests := []struct {
		name      string
		trackTime float32
		loop      bool
		want      float32
	}{
		{"inside", 0.5, false, 0.5},
		{"past end clamps", 3, false, 2},
		{"negative clamps", -1, false, 0},
		{"loop wraps", 5, true, 1},
		{"loop negative wraps positive", -0.5, true, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &TrackEntry{Animation: anim, TrackTime: tt.trackTime, Loop: tt.loop}
			if got := e.AnimationTime(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	var empty *TrackEntry
	if empty.Playing() || empty.AnimationTime() != 0 {
		t.Error("nil entry should not be playing")
	}
	zero := &TrackEntry{Animation: &Animation{Name: "z"}, TrackTime: 4}
	if zero.AnimationTime() != 0 {
		t.Error("zero-length animation should report time 0")
	}
}

func TestTrackStateSetAndClear(t *testing.T) {
	data := testData()
	s := NewTrackState(data)

	e := s.SetAnimation(3, data.FindAnimation("walk"), true)
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if e.TrackIndex != 3 || e.TimeScale != 1 || e.Alpha != 1 || !e.Loop {
		t.Errorf("fresh entry = %+v", e)
	}
	if s.Track(0) != nil || s.Track(-1) != nil || s.Track(9) != nil {
		t.Error("empty and out-of-range tracks should be nil")
	}

	if _, ok := s.SetAnimationByName(1, "nope", false); ok {
		t.Error("SetAnimationByName with unknown name should report false")
	}
	if _, ok := s.SetAnimationByName(1, "idle", false); !ok || s.Track(1).Animation.Name != "idle" {
		t.Error("SetAnimationByName(idle) failed")
	}

	s.ClearTrack(3)
	s.ClearTrack(42)
	if s.Track(3) != nil {
		t.Error("ClearTrack did not clear")
	}
	s.SetAnimation(1, nil, false)
	if s.Track(1) != nil {
		t.Error("SetAnimation(nil) should clear")
	}
	s.SetAnimation(0, data.FindAnimation("idle"), false)
	s.ClearTracks()
	if s.Len() != 4 || s.Track(0) != nil {
		t.Error("ClearTracks should empty without shrinking")
	}
}

func TestTrackStateUpdateAndApply(t *testing.T) {
	data := testData()
	s := NewTrackState(data)
	a := s.SetAnimation(0, data.FindAnimation("idle"), true)
	b := s.SetAnimation(2, data.FindAnimation("walk"), false)
	b.TimeScale = 2
	b.Alpha = 0.5

	s.Update(0.25)
	if a.TrackTime != 0.25 || b.TrackTime != 0.5 {
		t.Errorf("track times = %v, %v", a.TrackTime, b.TrackTime)
	}

	pose := &Pose{}
	s.Apply(pose)
	s.Apply(nil)
	if len(pose.Layers) != 2 {
		t.Fatalf("layers = %+v", pose.Layers)
	}
	if pose.Layers[0].Animation != "idle" || pose.Layers[1].Animation != "walk" || pose.Layers[1].Alpha != 0.5 {
		t.Errorf("layers out of order: %+v", pose.Layers)
	}

	pose.SetToSetupPose()
	if len(pose.Layers) != 0 || pose.Resets != 1 {
		t.Errorf("SetToSetupPose: %+v", pose)
	}
}

func TestTrackStateEnsureAnimationReuses(t *testing.T) {
	data := testData()
	s := NewTrackState(data)
	idle := data.FindAnimation("idle")

	first := s.ensureAnimation(0, idle, true, 0.1, 0.5)
	first.TimeScale = 3
	second := s.ensureAnimation(0, idle, true, 0.4, 0.9)
	if second != first {
		t.Fatal("same animation should reuse the entry")
	}
	if second.TrackTime != 0.4 || second.Alpha != 0.9 || second.TimeScale != 3 {
		t.Errorf("reused entry = %+v", second)
	}

	third := s.ensureAnimation(0, data.FindAnimation("walk"), true, 0, 1)
	if third == first || third.TimeScale != 1 {
		t.Error("different animation should start a fresh entry")
	}
	if s.ensureAnimation(0, nil, true, 0, 1) != nil || s.Track(0) != nil {
		t.Error("nil animation should clear the track")
	}
}
