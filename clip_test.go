package chanmix

import "testing"

func TestClipTimingWindows(t *testing.T) {
	c := ClipTiming{
		Start: 2, Duration: 3,
		PreExtrapolation: ExtrapolateHold, PreExtrapolationTime: 1,
		PostExtrapolation: ExtrapolateLoop, PostExtrapolationTime: 2,
	}
	if c.End() != 5 || c.ExtrapolatedStart() != 1 || c.ExtrapolatedDuration() != 6 {
		t.Errorf("end=%v start=%v duration=%v", c.End(), c.ExtrapolatedStart(), c.ExtrapolatedDuration())
	}
	for _, cursor := range []float64{1, 3, 7} {
		if !c.Contains(cursor) {
			t.Errorf("Contains(%v) = false", cursor)
		}
	}
	for _, cursor := range []float64{0.99, 7.01} {
		if c.Contains(cursor) {
			t.Errorf("Contains(%v) = true", cursor)
		}
	}

	plain := ClipTiming{Start: 2, Duration: 3, PreExtrapolationTime: 1, PostExtrapolation: ExtrapolateHold}
	if plain.HasPreExtrapolation() || plain.HasPostExtrapolation() {
		t.Error("extrapolation needs both a mode and a length")
	}
	if plain.Contains(1.5) || !plain.Contains(2) || !plain.Contains(4.99) || plain.Contains(5) {
		t.Error("plain window should be [start, end)")
	}
	if !c.Contains(c.End()) {
		t.Error("a post-extrapolated clip should contain its body end")
	}
}

func TestClipTimingHolds(t *testing.T) {
	c := ClipTiming{
		Start: 2, Duration: 3,
		PreExtrapolation: ExtrapolateLoop, PreExtrapolationTime: 1,
		PostExtrapolation: ExtrapolateHold, PostExtrapolationTime: 2,
	}
	tests := []struct {
		cursor float64
		want   bool
	}{
		{1.5, false}, // looped pre-extrapolation
		{2, false},
		{4.99, false},
		{5, true},
		{7, true},
	}
	for _, tt := range tests {
		if got := c.Holds(tt.cursor); got != tt.want {
			t.Errorf("Holds(%v) = %v, want %v", tt.cursor, got, tt.want)
		}
	}

	cont := ClipTiming{Duration: 1, PreExtrapolation: ExtrapolateContinue, PreExtrapolationTime: 1}
	if !cont.Holds(-0.5) || cont.Holds(1) {
		t.Error("continue pre-extrapolation should hold only before the body")
	}
}

func TestClipTimingIsPrimary(t *testing.T) {
	c := ClipTiming{
		Start: 10, Duration: 4, BlendIn: 1, BlendOut: 1,
		PreExtrapolation: ExtrapolateHold, PreExtrapolationTime: 2,
		PostExtrapolation: ExtrapolateHold, PostExtrapolationTime: 2,
	}
	tests := []struct {
		cursor float64
		want   bool
	}{
		{8.5, true},   // pre-extrapolation
		{10.5, true},  // blend-in
		{12, true},    // body
		{13.5, false}, // blend-out
		{14, true},    // post-extrapolation
		{15.9, true},  // post-extrapolation
		{16.5, false}, // past everything
		{7, false},    // before everything
	}
	for _, tt := range tests {
		if got := c.IsPrimary(tt.cursor); got != tt.want {
			t.Errorf("IsPrimary(%v) = %v, want %v", tt.cursor, got, tt.want)
		}
	}

	// Blend-in takes precedence over blend-out when the ramps overlap.
	short := ClipTiming{Start: 0, Duration: 1, BlendIn: 0.8, BlendOut: 0.8}
	if !short.IsPrimary(0.5) {
		t.Error("overlapping ramps: blend-in should win")
	}
	if short.IsPrimary(0.9) {
		t.Error("past blend-in inside blend-out should be background")
	}
}

func TestClipTimingWeight(t *testing.T) {
	c := ClipTiming{Start: 0, Duration: 4, BlendIn: 1, BlendOut: 2, PostExtrapolation: ExtrapolateHold, PostExtrapolationTime: 1}
	tests := []struct {
		cursor float64
		want   float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1.5, 1},
		{3, 0.5},
		{4, 1}, // post-extrapolated
		{6, 0},
	}
	for _, tt := range tests {
		if got := c.Weight(tt.cursor); !approx(got, tt.want, 1e-6) {
			t.Errorf("Weight(%v) = %v, want %v", tt.cursor, got, tt.want)
		}
	}

	noPost := ClipTiming{Start: 0, Duration: 1}
	if noPost.Weight(1) != 0 {
		t.Error("the end of a clip without post-extrapolation weighs 0")
	}
	overlap := ClipTiming{Start: 0, Duration: 1, BlendIn: 1, BlendOut: 1}
	if got := overlap.Weight(0.75); !approx(got, 0.25, 1e-6) {
		t.Errorf("overlapping ramps: got %v, want 0.25", got)
	}
}

func TestExtrapolatedTrackTime(t *testing.T) {
	const length = 2
	body := ClipTiming{Start: 10, Duration: 3}
	tests := []struct {
		name   string
		pre    Extrapolation
		post   Extrapolation
		cursor float64
		want   float32
	}{
		{"inside verbatim", ExtrapolateNone, ExtrapolateNone, 12.5, 2.5},
		{"none before", ExtrapolateNone, ExtrapolateNone, 9, 0},
		{"none after", ExtrapolateNone, ExtrapolateNone, 14, 0},
		{"hold before", ExtrapolateHold, ExtrapolateNone, 8, 0},
		{"hold after clamps to duration", ExtrapolateNone, ExtrapolateHold, 20, 3},
		{"continue after", ExtrapolateNone, ExtrapolateContinue, 13, 3},
		{"loop after", ExtrapolateNone, ExtrapolateLoop, 13.5, 1.5},
		{"loop before", ExtrapolateLoop, ExtrapolateNone, 9.5, 1.5},
		{"loop far before", ExtrapolateLoop, ExtrapolateNone, 4.25, 0.25},
		{"pingpong after even period", ExtrapolateNone, ExtrapolatePingPong, 14.5, 0.5},
		{"pingpong after odd period", ExtrapolateNone, ExtrapolatePingPong, 13.5, 0.5},
		{"pingpong before", ExtrapolatePingPong, ExtrapolateNone, 7.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := body
			c.PreExtrapolation = tt.pre
			c.PostExtrapolation = tt.post
			if got := c.ExtrapolatedTrackTime(tt.cursor, length); !approx(got, tt.want, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	loop := ClipTiming{Start: 1, Duration: 1, PostExtrapolation: ExtrapolateLoop}
	if got := loop.ExtrapolatedTrackTime(5, 0); got != 0 {
		t.Errorf("zero-length animation: got %v, want 0", got)
	}
}

func TestExtrapolatedTrackTimeLoopPeriodicity(t *testing.T) {
	const length = 0.75
	c := ClipTiming{Start: 3, Duration: 0.5, PreExtrapolation: ExtrapolateLoop, PostExtrapolation: ExtrapolateLoop}
	for k := range 5 {
		for _, x := range []float64{0, 0.125, 0.5, 0.625} {
			a := c.ExtrapolatedTrackTime(c.Start-float64(k)*length+x, length)
			b := c.ExtrapolatedTrackTime(c.Start+x, length)
			if !approx(a, b, 1e-5) {
				t.Errorf("k=%d x=%v: %v != %v", k, x, a, b)
			}
		}
	}
}

func TestExtrapolatedTrackTimePingPongSymmetry(t *testing.T) {
	const length = 1.5
	c := ClipTiming{Start: 2, Duration: 0.25, PostExtrapolation: ExtrapolatePingPong}
	end := c.End()
	for _, x := range []float64{0.25, 0.5, 1, 1.25, 1.5} {
		// Overruns are measured from Start, so place both cursors past End.
		a := c.ExtrapolatedTrackTime(c.Start+2*length-x, length)
		b := c.ExtrapolatedTrackTime(c.Start+x, length)
		if c.Start+x < end {
			continue
		}
		if !approx(a, b, 1e-5) {
			t.Errorf("x=%v: %v != %v", x, a, b)
		}
	}
}

func TestExtrapolationText(t *testing.T) {
	for x := ExtrapolateNone; x <= ExtrapolateContinue; x++ {
		b, err := x.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Extrapolation
		if err := got.UnmarshalText(b); err != nil || got != x {
			t.Errorf("%s: got %v, %v", b, got, err)
		}
	}
	var x Extrapolation
	if err := x.UnmarshalText([]byte("PINGPONG")); err != nil || x != ExtrapolatePingPong {
		t.Errorf("case-insensitive parse: %v, %v", x, err)
	}
	if err := x.UnmarshalText([]byte("bounce")); err == nil {
		t.Error("expected error for unknown extrapolation")
	}
	if _, err := Extrapolation(9).MarshalText(); err == nil {
		t.Error("expected error marshalling an unknown value")
	}
}
