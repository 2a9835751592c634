package chanmix

import (
	"fmt"
	"math"
	"strings"
)

// Extrapolation selects how a clip's local time is derived when the timeline
// cursor lies outside the clip's [Start, End) body.
type Extrapolation uint8

const (
	ExtrapolateNone     Extrapolation = iota // local time is 0
	ExtrapolateHold                          // clamp to the nearest body edge
	ExtrapolateLoop                          // wrap modulo the animation length
	ExtrapolatePingPong                      // alternate forward and mirrored periods
	ExtrapolateContinue                      // as Hold; the engine keeps the last pose
)

var extrapolationNames = [...]string{"none", "hold", "loop", "pingPong", "continue"}

func (x Extrapolation) String() string {
	if int(x) < len(extrapolationNames) {
		return extrapolationNames[x]
	}
	return fmt.Sprintf("Extrapolation(%d)", x)
}

// MarshalText implements encoding.TextMarshaler.
func (x Extrapolation) MarshalText() ([]byte, error) {
	if int(x) >= len(extrapolationNames) {
		return nil, fmt.Errorf("unknown extrapolation %d", x)
	}
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (x *Extrapolation) UnmarshalText(b []byte) error {
	for i, n := range extrapolationNames {
		if strings.EqualFold(n, string(b)) {
			*x = Extrapolation(i)
			return nil
		}
	}
	return fmt.Errorf("unknown extrapolation %q", b)
}

// ClipTiming places a clip on a timeline. All times are in seconds of
// timeline cursor.
type ClipTiming struct {
	Start    float64
	Duration float64

	// BlendIn and BlendOut are the lengths of the ramps at the start and end
	// of the body during which the clip's weight changes.
	BlendIn  float64
	BlendOut float64

	PreExtrapolation      Extrapolation
	PostExtrapolation     Extrapolation
	PreExtrapolationTime  float64
	PostExtrapolationTime float64
}

// End returns the end of the clip body.
func (c ClipTiming) End() float64 {
	return c.Start + c.Duration
}

// HasPreExtrapolation reports whether the clip extends before its body.
func (c ClipTiming) HasPreExtrapolation() bool {
	return c.PreExtrapolation != ExtrapolateNone && c.PreExtrapolationTime > 0
}

// HasPostExtrapolation reports whether the clip extends past its body.
func (c ClipTiming) HasPostExtrapolation() bool {
	return c.PostExtrapolation != ExtrapolateNone && c.PostExtrapolationTime > 0
}

// ExtrapolatedStart returns where the clip's evaluation window begins.
func (c ClipTiming) ExtrapolatedStart() float64 {
	if c.HasPreExtrapolation() {
		return c.Start - c.PreExtrapolationTime
	}
	return c.Start
}

// ExtrapolatedDuration returns the length of the evaluation window.
func (c ClipTiming) ExtrapolatedDuration() float64 {
	d := c.Duration
	if c.HasPreExtrapolation() {
		d += c.PreExtrapolationTime
	}
	if c.HasPostExtrapolation() {
		d += c.PostExtrapolationTime
	}
	return d
}

// Contains reports whether cursor lies inside the evaluation window. The
// start is inclusive. The end is inclusive only when the clip extends past its
// body, so a plain clip stops contributing at End.
func (c ClipTiming) Contains(cursor float64) bool {
	start := c.ExtrapolatedStart()
	end := start + c.ExtrapolatedDuration()
	if !c.HasPostExtrapolation() {
		return cursor >= start && cursor < end
	}
	return cursor >= start && cursor <= end
}

// Holds reports whether cursor lies in an extrapolated region whose mode
// freezes the animation at a body edge. A held track must not wrap its time.
func (c ClipTiming) Holds(cursor float64) bool {
	var mode Extrapolation
	switch {
	case cursor < c.Start && c.HasPreExtrapolation():
		mode = c.PreExtrapolation
	case cursor >= c.End() && c.HasPostExtrapolation():
		mode = c.PostExtrapolation
	default:
		return false
	}
	return mode == ExtrapolateHold || mode == ExtrapolateContinue
}

// IsPrimary reports whether the clip drives its channel's primary track at
// cursor. Pre- and post-extrapolated regions and the blend-in ramp are
// primary; the blend-out ramp is background so that the next clip can take
// over; the rest of the body is primary.
func (c ClipTiming) IsPrimary(cursor float64) bool {
	end := c.End()
	switch {
	case c.HasPreExtrapolation() && cursor >= c.ExtrapolatedStart() && cursor < c.Start:
		return true
	case c.HasPostExtrapolation() && cursor >= end && cursor <= end+c.PostExtrapolationTime:
		return true
	case c.BlendIn > 0 && cursor >= c.Start && cursor < c.Start+c.BlendIn:
		return true
	case c.BlendOut > 0 && cursor >= end-c.BlendOut && cursor < end:
		return false
	case cursor >= c.Start && cursor < end:
		return true
	}
	return false
}

// Weight returns the clip's contribution at cursor: a linear ramp through the
// blend windows, 1 in the rest of the body and in extrapolated regions, 0
// everywhere else. Where the ramps overlap the smaller weight applies.
func (c ClipTiming) Weight(cursor float64) float32 {
	if !c.Contains(cursor) {
		return 0
	}
	end := c.End()
	switch {
	case cursor < c.Start:
		return extrapolatedWeight(c.HasPreExtrapolation())
	case cursor >= end:
		return extrapolatedWeight(c.HasPostExtrapolation())
	}
	w := 1.0
	if c.BlendIn > 0 && cursor < c.Start+c.BlendIn {
		w = min(w, (cursor-c.Start)/c.BlendIn)
	}
	if c.BlendOut > 0 && cursor > end-c.BlendOut {
		w = min(w, (end-cursor)/c.BlendOut)
	}
	return float32(w)
}

func extrapolatedWeight(extrapolated bool) float32 {
	if extrapolated {
		return 1
	}
	return 0
}

// ExtrapolatedTrackTime maps cursor onto the clip's local animation time.
// Inside the body the offset from Start is returned unchanged. Outside it the
// pre- or post-extrapolation mode applies, with Loop and PingPong measured in
// periods of animationLength.
func (c ClipTiming) ExtrapolatedTrackTime(cursor float64, animationLength float32) float32 {
	offset := cursor - c.Start
	if cursor >= c.Start && cursor < c.End() {
		return float32(offset)
	}
	if animationLength <= 0 {
		return 0
	}
	mode := c.PostExtrapolation
	if cursor < c.Start {
		mode = c.PreExtrapolation
	}
	length := float64(animationLength)

	switch mode {
	case ExtrapolateHold, ExtrapolateContinue:
		if offset < 0 {
			return 0
		}
		return float32(c.Duration)
	case ExtrapolateLoop:
		t := math.Mod(offset, length)
		if t < 0 {
			t += length
		}
		return float32(t)
	case ExtrapolatePingPong:
		over := math.Abs(offset)
		n := math.Floor(over / length)
		t := over - n*length
		if math.Mod(n, 2) == 1 {
			t = length - t
		}
		return float32(t)
	}
	return 0
}

// Clip is one authored animation on a channel track. H identifies the
// animation: an *Animation for a single skeleton, or a base name for the
// per-orientation sets of an OrientedAnimator.
type Clip[H comparable] struct {
	ClipTiming
	Animation H

	// AnimationDuration is the length of one period of the animation, used by
	// Loop and PingPong extrapolation.
	AnimationDuration float32

	// Speed is the playback rate written to the track. 0 plays at 1.
	Speed float32
}
