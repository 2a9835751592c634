package chanmix

import (
	"math"
	"slices"
)

// SkeletonData is the library of animations available to a skeleton.
type SkeletonData struct {
	animations []*Animation
	byName     map[string]*Animation
}

// NewSkeletonData creates a library from the given animations. A later
// animation with the same name as an earlier one replaces it in lookups.
func NewSkeletonData(anims ...*Animation) *SkeletonData {
	d := &SkeletonData{byName: make(map[string]*Animation, len(anims))}
	for _, a := range anims {
		d.Add(a)
	}
	return d
}

// Add registers an animation. Nil animations are ignored.
func (d *SkeletonData) Add(a *Animation) {
	if a == nil {
		return
	}
	if _, ok := d.byName[a.Name]; !ok {
		d.animations = append(d.animations, a)
	} else {
		i := slices.IndexFunc(d.animations, func(o *Animation) bool { return o.Name == a.Name })
		d.animations[i] = a
	}
	d.byName[a.Name] = a
}

// FindAnimation returns the animation called name, or nil.
func (d *SkeletonData) FindAnimation(name string) *Animation {
	if d == nil {
		return nil
	}
	return d.byName[name]
}

// Animations returns the animations in registration order. The slice must not
// be modified.
func (d *SkeletonData) Animations() []*Animation {
	if d == nil {
		return nil
	}
	return d.animations
}

// Names returns the animation names in registration order.
func (d *SkeletonData) Names() []string {
	names := make([]string, 0, len(d.Animations()))
	for _, a := range d.Animations() {
		names = append(names, a.Name)
	}
	return names
}

// Skeleton receives the composited track stack once per frame. Tracks are
// applied in ascending index order, so later tracks override earlier ones in
// proportion to their alpha.
type Skeleton interface {
	SetToSetupPose()
	ApplyAnimation(anim *Animation, time float32, loop bool, alpha float32)
}

// TrackEntry is one animation playing on one physical track.
type TrackEntry struct {
	Animation  *Animation
	TrackIndex int
	TrackTime  float32 // elapsed time since the entry started, scaled by TimeScale
	TimeScale  float32
	Alpha      float32 // blend weight in [0, 1]
	Loop       bool
}

// Playing reports whether the entry holds an animation. Safe on nil.
func (e *TrackEntry) Playing() bool {
	return e != nil && e.Animation != nil
}

// AnimationTime maps the entry's track time onto the animation's timeline:
// wrapped when looping, clamped to the duration otherwise.
func (e *TrackEntry) AnimationTime() float32 {
	if !e.Playing() {
		return 0
	}
	d := e.Animation.Duration
	if d <= 0 {
		return 0
	}
	if e.Loop {
		t := float32(math.Mod(float64(e.TrackTime), float64(d)))
		if t < 0 {
			t += d
		}
		return t
	}
	return min(max(e.TrackTime, 0), d)
}

// TrackState is the flat, growable array of physical animation tracks owned
// by one skeleton. It is the engine side of the mixer: channels are laid out
// onto it by an Animator or a Mixer.
type TrackState struct {
	data   *SkeletonData
	tracks []*TrackEntry
}

// NewTrackState creates an empty track array resolving names against data.
func NewTrackState(data *SkeletonData) *TrackState {
	return &TrackState{data: data}
}

// Data returns the animation library used for name lookups.
func (s *TrackState) Data() *SkeletonData {
	return s.data
}

// Len returns the number of physical tracks.
func (s *TrackState) Len() int {
	return len(s.tracks)
}

// Grow extends the array to at least n tracks. New tracks are empty.
func (s *TrackState) Grow(n int) {
	if n > len(s.tracks) {
		s.tracks = append(s.tracks, make([]*TrackEntry, n-len(s.tracks))...)
	}
}

// Track returns the entry at index i, or nil if the track is empty or out of
// range.
func (s *TrackState) Track(i int) *TrackEntry {
	if i < 0 || i >= len(s.tracks) {
		return nil
	}
	return s.tracks[i]
}

// SetAnimation replaces whatever plays on track i with a fresh entry for anim,
// growing the array if needed. A nil anim clears the track and returns nil.
func (s *TrackState) SetAnimation(i int, anim *Animation, loop bool) *TrackEntry {
	if anim == nil {
		s.ClearTrack(i)
		return nil
	}
	s.Grow(i + 1)
	e := &TrackEntry{
		Animation:  anim,
		TrackIndex: i,
		TimeScale:  1,
		Alpha:      1,
		Loop:       loop,
	}
	s.tracks[i] = e
	return e
}

// SetAnimationByName looks name up in the state's SkeletonData and starts it
// on track i. It reports false, leaving the track untouched, when no such
// animation exists.
func (s *TrackState) SetAnimationByName(i int, name string, loop bool) (*TrackEntry, bool) {
	anim := s.data.FindAnimation(name)
	if anim == nil {
		return nil, false
	}
	return s.SetAnimation(i, anim, loop), true
}

// ClearTrack empties track i. Out-of-range indices are ignored.
func (s *TrackState) ClearTrack(i int) {
	if i >= 0 && i < len(s.tracks) {
		s.tracks[i] = nil
	}
}

// ClearTracks empties every track without shrinking the array.
func (s *TrackState) ClearTracks() {
	clear(s.tracks)
}

// Update advances every playing entry by dt scaled by its TimeScale.
func (s *TrackState) Update(dt float32) {
	for _, e := range s.tracks {
		if e.Playing() {
			e.TrackTime += dt * e.TimeScale
		}
	}
}

// Apply composites every playing track onto sk in ascending index order.
func (s *TrackState) Apply(sk Skeleton) {
	if sk == nil {
		return
	}
	for _, e := range s.tracks {
		if e.Playing() {
			sk.ApplyAnimation(e.Animation, e.AnimationTime(), e.Loop, e.Alpha)
		}
	}
}

// setTrack stores e at index i and re-points its TrackIndex.
func (s *TrackState) setTrack(i int, e *TrackEntry) {
	s.Grow(i + 1)
	s.tracks[i] = e
	if e != nil {
		e.TrackIndex = i
	}
}

// replaceTracks swaps in a complete new track array, re-pointing every entry.
func (s *TrackState) replaceTracks(tracks []*TrackEntry) {
	for i, e := range tracks {
		if e != nil {
			e.TrackIndex = i
		}
	}
	s.tracks = tracks
}

// ensureAnimation drives track i towards anim at the given time and alpha.
// When the track already plays anim the entry is updated in place, keeping
// whatever playback state it carries; otherwise a fresh entry replaces it.
// A nil anim clears the track.
func (s *TrackState) ensureAnimation(i int, anim *Animation, loop bool, time, alpha float32) *TrackEntry {
	if anim == nil {
		s.ClearTrack(i)
		return nil
	}
	e := s.Track(i)
	if e == nil || e.Animation != anim {
		e = s.SetAnimation(i, anim, loop)
	}
	e.TrackTime = time
	e.Alpha = alpha
	return e
}

// PoseLayer is one animation applied to a Pose.
type PoseLayer struct {
	Animation string
	Time      float32
	Loop      bool
	Alpha     float32
}

// Pose is a Skeleton that records the layers applied to it since the last
// SetToSetupPose. It stands in for a real skeleton in tools and tests.
type Pose struct {
	Layers []PoseLayer
	Resets int
}

// SetToSetupPose discards every recorded layer.
func (p *Pose) SetToSetupPose() {
	p.Layers = p.Layers[:0]
	p.Resets++
}

// ApplyAnimation records a layer.
func (p *Pose) ApplyAnimation(anim *Animation, time float32, loop bool, alpha float32) {
	p.Layers = append(p.Layers, PoseLayer{Animation: anim.Name, Time: time, Loop: loop, Alpha: alpha})
}
