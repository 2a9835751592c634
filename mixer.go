package chanmix

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"
)

// ChannelAnimationData is one (animation, time, weight, speed) tuple written
// to a physical track.
type ChannelAnimationData[H comparable] struct {
	Animation H
	Time      float32
	Weight    float32
	Speed     float32 // 0 plays at 1

	// Hold marks a tuple frozen at a clip edge. Held tracks do not loop, so a
	// time equal to the animation length keeps the last pose.
	Hold bool
}

// Resolver turns an animation handle into an animation of one target's
// skeleton. A nil result clears the track.
type Resolver[H comparable] interface {
	Resolve(h H) *Animation
}

// DirectResolver resolves handles that already are animations.
type DirectResolver struct{}

// Resolve returns a unchanged.
func (DirectResolver) Resolve(a *Animation) *Animation { return a }

// NameResolver resolves animation names against Data. When Suffix is set the
// suffixed name is tried first, so one base name can address a differently
// named animation per orientation.
type NameResolver struct {
	Data   *SkeletonData
	Suffix string
}

// Resolve looks name+Suffix up, falling back to name.
func (r NameResolver) Resolve(name string) *Animation {
	if r.Suffix != "" {
		if a := r.Data.FindAnimation(name + r.Suffix); a != nil {
			return a
		}
	}
	return r.Data.FindAnimation(name)
}

// MixTarget is one track state the mixer writes to. Skeleton may be nil, in
// which case Apply only updates the tracks.
type MixTarget[H comparable] struct {
	State    *TrackState
	Resolver Resolver[H]
	Skeleton Skeleton
}

type channelFrame[H comparable] struct {
	channel    int
	primary    ChannelAnimationData[H]
	background []ChannelAnimationData[H]
}

func compareFrameChannel[H comparable](f *channelFrame[H], channel int) int {
	return cmp.Compare(f.channel, channel)
}

// Mixer aggregates per-channel data for one frame and commits it to one or
// more track states. A frame runs in two phases: BeginFrame and any number of
// SetChannelData calls gather, then Apply writes every channel in ascending
// order, background tuples first and the primary last.
type Mixer[H comparable] struct {
	targets []MixTarget[H]
	frames  []*channelFrame[H] // sorted by channel
	free    []*channelFrame[H]

	// ResetPose resets each skeleton to its setup pose before applying.
	ResetPose bool
}

// NewMixer creates a mixer writing to the given targets.
func NewMixer[H comparable](targets ...MixTarget[H]) *Mixer[H] {
	return &Mixer[H]{targets: targets}
}

// Targets returns the mixer's targets. The slice must not be modified.
func (m *Mixer[H]) Targets() []MixTarget[H] {
	return m.targets
}

// BeginFrame discards the channel data of the previous frame.
func (m *Mixer[H]) BeginFrame() {
	m.free = append(m.free, m.frames...)
	clear(m.frames)
	m.frames = m.frames[:0]
}

// SetChannelData records the tuples of channel for the current frame,
// replacing any recorded earlier in the frame. A zero primary handle leaves
// the channel's primary track empty. background is copied.
func (m *Mixer[H]) SetChannelData(channel int, primary ChannelAnimationData[H], background ...ChannelAnimationData[H]) {
	i, ok := slices.BinarySearchFunc(m.frames, channel, compareFrameChannel[H])
	var f *channelFrame[H]
	if ok {
		f = m.frames[i]
	} else {
		if n := len(m.free); n > 0 {
			f = m.free[n-1]
			m.free[n-1] = nil
			m.free = m.free[:n-1]
		} else {
			f = &channelFrame[H]{}
		}
		f.channel = channel
		m.frames = slices.Insert(m.frames, i, f)
	}
	f.primary = primary
	f.background = append(f.background[:0], background...)
}

// Channels returns the channels recorded this frame in ascending order.
func (m *Mixer[H]) Channels() []int {
	return lo.Map(m.frames, func(f *channelFrame[H], _ int) int { return f.channel })
}

// TrackCount returns the number of physical tracks the current frame needs.
func (m *Mixer[H]) TrackCount() int {
	return lo.SumBy(m.frames, func(f *channelFrame[H]) int { return 1 + len(f.background) })
}

// ApplyChannelsToState writes the current frame to every target's tracks.
// Tracks past the last one written are cleared.
func (m *Mixer[H]) ApplyChannelsToState() {
	n := m.TrackCount()
	for _, t := range m.targets {
		if t.State == nil || t.Resolver == nil {
			continue
		}
		t.State.Grow(n)
		idx := 0
		for _, f := range m.frames {
			for _, bg := range f.background {
				writeTrack(t, idx, bg)
				idx++
			}
			writeTrack(t, idx, f.primary)
			idx++
		}
		for ; idx < t.State.Len(); idx++ {
			t.State.ClearTrack(idx)
		}
	}
}

// Apply writes the current frame to every target and composites each target's
// tracks onto its skeleton.
func (m *Mixer[H]) Apply() {
	m.ApplyChannelsToState()
	for _, t := range m.targets {
		if t.State == nil || t.Skeleton == nil {
			continue
		}
		if m.ResetPose {
			t.Skeleton.SetToSetupPose()
		}
		t.State.Apply(t.Skeleton)
	}
}

func writeTrack[H comparable](t MixTarget[H], i int, d ChannelAnimationData[H]) {
	var zero H
	if d.Animation == zero {
		t.State.ClearTrack(i)
		return
	}
	anim := t.Resolver.Resolve(d.Animation)
	if anim == nil {
		t.State.ClearTrack(i)
		return
	}
	e := t.State.ensureAnimation(i, anim, !d.Hold, d.Time, d.Weight)
	e.Loop = !d.Hold
	e.TimeScale = d.Speed
	if e.TimeScale == 0 {
		e.TimeScale = 1
	}
}

// Director drives channel tracks into a mixer from a timeline cursor.
type Director[H comparable] struct {
	Mixer  *Mixer[H]
	Tracks []*ChannelTrack[H]

	// Duration bounds the cursor when positive. With Loop set the cursor
	// wraps; otherwise it clamps.
	Duration float64
	Loop     bool

	time float64
}

var (
	_ Updatable    = (*Director[string])(nil)
	_ FrameSampled = (*Director[string])(nil)
)

// NewDirector creates a director over tracks.
func NewDirector[H comparable](mixer *Mixer[H], tracks ...*ChannelTrack[H]) *Director[H] {
	return &Director[H]{Mixer: mixer, Tracks: tracks}
}

// Sample evaluates every track at cursor and applies the result. All channel
// data is gathered before anything is written to the tracks.
func (d *Director[H]) Sample(cursor float64) {
	d.time = cursor
	d.Mixer.BeginFrame()
	for _, t := range d.Tracks {
		s := t.Sample(cursor)
		d.Mixer.SetChannelData(s.Channel, s.Primary, s.Background...)
	}
	d.Mixer.Apply()
}

// Update advances the cursor by dt and samples.
func (d *Director[H]) Update(dt float32) {
	t := d.time + float64(dt)
	if d.Duration > 0 {
		if d.Loop {
			t = math.Mod(t, d.Duration)
			if t < 0 {
				t += d.Duration
			}
		} else {
			t = min(max(t, 0), d.Duration)
		}
	}
	d.Sample(t)
}

// SetTime moves the cursor without sampling.
func (d *Director[H]) SetTime(t float64) {
	d.time = t
}

// Time returns the cursor.
func (d *Director[H]) Time() float64 {
	return d.time
}
