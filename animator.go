package chanmix

import (
	"log/slog"
)

// Animator layers and blends animations on a skeleton through numbered
// channels. Each channel has one primary track and a run of background tracks
// that hold the previous primaries while they fade out. Channels are laid out
// onto a single TrackState in ascending id order, so higher channels render
// above lower ones.
//
// Animator is driven by the caller: call Update(dt) once per frame, then
// Apply to composite the result onto a skeleton. It is not safe for
// concurrent use.
type Animator struct {
	data   *SkeletonData
	state  *TrackState
	alloc  *trackAllocator
	cfg    Config
	sink   EventSink
	logger *slog.Logger
}

var _ Controller = (*Animator)(nil)

// NewAnimator creates an Animator over the animations in data.
func NewAnimator(data *SkeletonData, cfg Config) *Animator {
	state := NewTrackState(data)
	a := &Animator{
		data:   data,
		state:  state,
		alloc:  newTrackAllocator(state, cfg.BackgroundTracks, cfg.Debug),
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	a.alloc.onRelayout = a.logRelayout
	return a
}

// SetLogger sets the logger used for diagnostics. A nil logger discards.
func (a *Animator) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	a.logger = l
}

// SetEventSink sets the optional receiver of channel transition events.
func (a *Animator) SetEventSink(sink EventSink) {
	a.sink = sink
}

// Data returns the animation library.
func (a *Animator) Data() *SkeletonData {
	return a.data
}

// State returns the physical track array the channels are laid out on.
func (a *Animator) State() *TrackState {
	return a.state
}

// Play starts the named animation on channel.
//
// With Queued and an animation already active on the channel's primary track,
// the request is stored and fires from Update once the active animation is
// within the blend time of its end. A channel that is fading out has nothing
// left to wait for, so a Queued play on it starts at once. With a blend time <= 0 the channel is
// cleared and the animation starts at full weight. Otherwise the current
// primary moves to a background track to fade out underneath, and the new
// animation fades in from weight 0.
//
// Unknown animation names are ignored.
func (a *Animator) Play(channel int, name string, opts ...Option) {
	anim := a.data.FindAnimation(name)
	if anim == nil {
		a.logger.Warn("play: animation not found", "channel", channel, "animation", name)
		return
	}
	req := newPlayRequest(a.cfg.Easing, opts)
	req.anim = anim

	if req.queued {
		if c := a.alloc.channel(channel); c != nil && c.state != channelStopping && a.alloc.entry(c.primary).Playing() {
			c.queued = &req
			c.queuedAt = a.alloc.entry(c.primary).AnimationTime()
			a.emit(Event{Type: EventQueued, Channel: channel, Animation: name, BlendTime: req.blendTime})
			return
		}
	}
	a.play(channel, req)
	a.emit(Event{Type: EventPlay, Channel: channel, Animation: name, BlendTime: max(req.blendTime, 0)})
}

func (a *Animator) play(id int, req playRequest) {
	c := a.alloc.channel(id)
	if c == nil {
		c = a.alloc.ensureChannel(id)
	} else {
		c.queued = nil
		if req.blendTime <= 0 {
			a.alloc.clearChannel(c)
		} else if a.alloc.entry(c.primary).Playing() {
			a.alloc.moveToBackground(c)
		}
	}

	e := a.state.SetAnimation(c.primary.index, req.anim, req.wrap.Loops())
	if req.blendTime > 0 {
		c.state = channelBlendingIn
		e.Alpha = 0
		c.lerpT = 0
		c.lerpSpeed = 1 / req.blendTime
		c.lerpEase = req.easing
		c.targetWeight = req.weight
	} else {
		c.state = channelPlaying
		e.Alpha = req.weight
	}
}

// Stop stops channel. With a blend time > 0 every playing track on the
// channel fades from its current weight to zero before being cleared;
// otherwise the channel is cleared at once. Pending queued requests are
// dropped. Unknown channels are ignored.
func (a *Animator) Stop(channel int, opts ...Option) {
	c := a.alloc.channel(channel)
	if c == nil {
		return
	}
	req := newPlayRequest(a.cfg.Easing, opts)
	c.queued = nil

	if req.blendTime <= 0 || !a.alloc.anyPlaying(c) {
		a.stopChannel(c)
		a.emit(Event{Type: EventStop, Channel: channel})
		return
	}

	c.state = channelStopping
	c.lerpT = 0
	c.lerpSpeed = 1 / req.blendTime
	c.lerpEase = req.easing
	c.primary.origWeight = weightOf(a.alloc.entry(c.primary))
	for j := range c.background {
		c.background[j].origWeight = weightOf(a.alloc.entry(c.background[j]))
	}
	a.emit(Event{Type: EventStop, Channel: channel, BlendTime: req.blendTime})
}

// StopAll clears every channel immediately.
func (a *Animator) StopAll() {
	for _, c := range a.alloc.channels {
		c.queued = nil
		a.stopChannel(c)
	}
}

func (a *Animator) stopChannel(c *channel) {
	a.alloc.clearChannel(c)
	c.state = channelStopped
}

// Update advances channel fades and queued requests by dt seconds, then
// advances the track times.
func (a *Animator) Update(dt float32) {
	// Queued requests may relayout the channel list, so iterate by index
	// over a list whose length never shrinks.
	for i := 0; i < len(a.alloc.channels); i++ {
		a.updateChannel(a.alloc.channels[i], dt)
	}
	a.state.Update(dt)
}

func (a *Animator) updateChannel(c *channel, dt float32) {
	switch c.state {
	case channelBlendingIn:
		c.lerpT += c.lerpSpeed * dt
		e := a.alloc.entry(c.primary)
		if c.lerpT >= 1 {
			if e != nil {
				e.Alpha = c.targetWeight
			}
			a.alloc.clearBackground(c, 0)
			c.state = channelPlaying
			a.emit(Event{Type: EventBlendComplete, Channel: c.id, Animation: animationName(e)})
		} else if e != nil {
			e.Alpha = c.lerpEase.Interpolate(0, c.targetWeight, c.lerpT)
		}

	case channelStopping:
		c.lerpT += c.lerpSpeed * dt
		if c.lerpT >= 1 {
			a.stopChannel(c)
			a.emit(Event{Type: EventStopComplete, Channel: c.id})
		} else {
			if e := a.alloc.entry(c.primary); e != nil {
				e.Alpha = c.lerpEase.Interpolate(c.primary.origWeight, 0, c.lerpT)
			}
			for _, s := range c.background {
				if e := a.alloc.entry(s); e != nil {
					e.Alpha = c.lerpEase.Interpolate(s.origWeight, 0, c.lerpT)
				}
			}
		}
	}

	if c.queued == nil {
		return
	}
	e := a.alloc.entry(c.primary)
	if !e.Playing() {
		return
	}
	// A looping primary wraps instead of reaching its end, so the end counts
	// as reached when it falls inside this frame or was wrapped past since
	// the last check.
	now := e.AnimationTime()
	wrapped := e.Loop && now < c.queuedAt
	c.queuedAt = now
	remaining := e.Animation.Duration - now
	if remaining > c.queued.blendTime && remaining > dt*e.TimeScale && !wrapped {
		return
	}
	req := *c.queued
	c.queued = nil
	req.queued = false
	req.blendTime = min(max(remaining, 0), req.blendTime)
	a.play(c.id, req)
	a.emit(Event{Type: EventQueuedStart, Channel: c.id, Animation: req.anim.Name, BlendTime: req.blendTime})
}

// Apply composites the physical tracks onto sk.
func (a *Animator) Apply(sk Skeleton) {
	a.state.Apply(sk)
}

// primaryEntry returns the entry on channel's primary track if it plays the
// named animation.
func (a *Animator) primaryEntry(channel int, name string) *TrackEntry {
	c := a.alloc.channel(channel)
	if c == nil {
		return nil
	}
	e := a.alloc.entry(c.primary)
	if !e.Playing() || e.Animation.Name != name {
		return nil
	}
	return e
}

// SetAnimationTime sets the track time of name if it is channel's primary
// animation.
func (a *Animator) SetAnimationTime(channel int, name string, time float32) {
	if e := a.primaryEntry(channel, name); e != nil {
		e.TrackTime = time
	}
}

// SetAnimationSpeed sets the time scale of name if it is channel's primary
// animation.
func (a *Animator) SetAnimationSpeed(channel int, name string, speed float32) {
	if e := a.primaryEntry(channel, name); e != nil {
		e.TimeScale = speed
	}
}

// SetAnimationWeight sets the weight of name if it is channel's primary
// animation.
func (a *Animator) SetAnimationWeight(channel int, name string, weight float32) {
	if e := a.primaryEntry(channel, name); e != nil {
		e.Alpha = weight
	}
}

// IsPlaying reports whether name is channel's primary animation.
func (a *Animator) IsPlaying(channel int, name string) bool {
	return a.primaryEntry(channel, name) != nil
}

// DoesAnimationExist reports whether the library has an animation called name.
func (a *Animator) DoesAnimationExist(name string) bool {
	return a.data.FindAnimation(name) != nil
}

// AnimationLength returns the duration of name, or 0 if it does not exist.
func (a *Animator) AnimationLength(name string) float32 {
	if anim := a.data.FindAnimation(name); anim != nil {
		return anim.Duration
	}
	return 0
}

// AnimationTime returns the track time of name on channel, or 0.
func (a *Animator) AnimationTime(channel int, name string) float32 {
	if e := a.primaryEntry(channel, name); e != nil {
		return e.TrackTime
	}
	return 0
}

// AnimationSpeed returns the time scale of name on channel, or 1.
func (a *Animator) AnimationSpeed(channel int, name string) float32 {
	if e := a.primaryEntry(channel, name); e != nil {
		return e.TimeScale
	}
	return 1
}

// AnimationWeight returns the weight of name on channel, or 0.
func (a *Animator) AnimationWeight(channel int, name string) float32 {
	if e := a.primaryEntry(channel, name); e != nil {
		return e.Alpha
	}
	return 0
}

// AnimationNames returns every animation name in the library.
func (a *Animator) AnimationNames() []string {
	return a.data.Names()
}

// PrimaryAnimation returns the animation on channel's primary track, or nil.
func (a *Animator) PrimaryAnimation(channel int) *Animation {
	c := a.alloc.channel(channel)
	if c == nil {
		return nil
	}
	if e := a.alloc.entry(c.primary); e.Playing() {
		return e.Animation
	}
	return nil
}

// SetPrimaryAnimation drives channel's primary track directly to name at the
// given time and weight, creating the channel if needed. An animation already
// on the track is updated in place rather than restarted. Unknown names are
// ignored.
func (a *Animator) SetPrimaryAnimation(channel int, name string, time, weight float32) {
	anim := a.data.FindAnimation(name)
	if anim == nil {
		a.logger.Warn("set primary: animation not found", "channel", channel, "animation", name)
		return
	}
	c := a.alloc.ensureChannel(channel)
	a.state.ensureAnimation(c.primary.index, anim, true, time, weight)
	c.state = channelPlaying
}

// ClearPrimaryAnimation empties channel's primary track.
func (a *Animator) ClearPrimaryAnimation(channel int) {
	if c := a.alloc.channel(channel); c != nil {
		a.state.ClearTrack(c.primary.index)
	}
}

// SetBackgroundAnimation drives background slot index of channel directly to
// name at the given time, at full weight. The channel grows when index is past
// its current background capacity. Unknown names and negative indices are
// ignored.
func (a *Animator) SetBackgroundAnimation(channel, index int, name string, time float32) {
	anim := a.data.FindAnimation(name)
	if anim == nil || index < 0 {
		return
	}
	c := a.alloc.ensureChannel(channel)
	a.alloc.ensureBackgroundSlots(c, index+1)
	a.state.ensureAnimation(c.background[index].index, anim, true, time, 1)
}

// ClearBackgroundAnimations empties channel's background tracks from slot
// from onward.
func (a *Animator) ClearBackgroundAnimations(channel, from int) {
	if c := a.alloc.channel(channel); c != nil {
		a.alloc.clearBackground(c, from)
	}
}

// Layout returns a snapshot of every physical track in index order.
func (a *Animator) Layout() []TrackInfo {
	infos := make([]TrackInfo, 0, a.state.Len())
	add := func(c *channel, s trackSlot, role Role, slot int) {
		info := TrackInfo{Index: s.index, Channel: c.id, Role: role, Slot: slot, Speed: 1}
		if e := a.alloc.entry(s); e.Playing() {
			info.Animation = e.Animation.Name
			info.Time = e.TrackTime
			info.Alpha = e.Alpha
			info.Speed = e.TimeScale
			info.Playing = true
		}
		infos = append(infos, info)
	}
	for _, c := range a.alloc.channels {
		for j, s := range c.background {
			add(c, s, RoleBackground, j)
		}
		add(c, c.primary, RolePrimary, -1)
	}
	return infos
}

func (a *Animator) emit(ev Event) {
	if a.sink != nil {
		a.sink.EmitEvent(ev)
	}
}

func (a *Animator) logRelayout(total int) {
	a.logger.Debug("track layout changed", "channels", len(a.alloc.channels), "tracks", total)
}

func weightOf(e *TrackEntry) float32 {
	if e.Playing() {
		return e.Alpha
	}
	return 0
}

func animationName(e *TrackEntry) string {
	if e.Playing() {
		return e.Animation.Name
	}
	return ""
}
