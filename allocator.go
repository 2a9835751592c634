package chanmix

import (
	"cmp"
	"slices"
)

// trackSlot maps one channel slot to a physical track index. index is -1
// until the slot is first laid out.
type trackSlot struct {
	index int
	// origWeight is the weight a stop fade starts from.
	origWeight float32
}

type channelState uint8

const (
	channelStopped channelState = iota
	channelPlaying
	channelBlendingIn
	channelStopping
)

// channel is one logical animation layer: a primary slot plus a growable run
// of background slots holding fading remnants.
type channel struct {
	id         int
	primary    trackSlot
	background []trackSlot
	state      channelState

	lerpT        float32
	lerpSpeed    float32
	lerpEase     Easing
	targetWeight float32

	queued   *playRequest
	queuedAt float32 // primary animation time at the last queued check
}

// trackAllocator lays channels out onto a TrackState. Every channel owns a
// contiguous block of 1+len(background) tracks; blocks are ordered by
// ascending channel id and each block ends with its primary slot, so a
// channel's primary renders above its own fades.
type trackAllocator struct {
	state            *TrackState
	channels         []*channel
	backgroundTracks int
	debug            bool

	// onRelayout is called after the layout changed shape.
	onRelayout func(total int)
}

func newTrackAllocator(state *TrackState, backgroundTracks int, debug bool) *trackAllocator {
	return &trackAllocator{
		state:            state,
		backgroundTracks: max(backgroundTracks, 0),
		debug:            debug,
	}
}

func compareChannelID(c *channel, id int) int {
	return cmp.Compare(c.id, id)
}

// channel returns the channel with the given id, or nil.
func (al *trackAllocator) channel(id int) *channel {
	i, ok := slices.BinarySearchFunc(al.channels, id, compareChannelID)
	if !ok {
		return nil
	}
	return al.channels[i]
}

// ensureChannel returns the channel with the given id, creating and laying it
// out when it does not exist yet.
func (al *trackAllocator) ensureChannel(id int) *channel {
	i, ok := slices.BinarySearchFunc(al.channels, id, compareChannelID)
	if ok {
		return al.channels[i]
	}
	c := &channel{
		id:         id,
		primary:    trackSlot{index: -1},
		background: make([]trackSlot, al.backgroundTracks),
	}
	for j := range c.background {
		c.background[j].index = -1
	}
	al.channels = slices.Insert(al.channels, i, c)
	al.relayout()
	return c
}

// totalTracks returns the number of physical tracks the layout occupies.
func (al *trackAllocator) totalTracks() int {
	n := 0
	for _, c := range al.channels {
		n += 1 + len(c.background)
	}
	return n
}

// relayout reassigns every slot's physical index from zero upward, carrying
// in-flight entries to their new positions. The new layout is built into a
// fresh slice so shifting one block never overwrites another.
func (al *trackAllocator) relayout() {
	next := make([]*TrackEntry, al.totalTracks())
	idx := 0
	place := func(s *trackSlot) {
		if s.index >= 0 {
			next[idx] = al.state.Track(s.index)
		}
		s.index = idx
		idx++
	}
	for _, c := range al.channels {
		for j := range c.background {
			place(&c.background[j])
		}
		place(&c.primary)
	}
	al.state.replaceTracks(next)

	if al.debug {
		debugCheckLayout(al)
	}
	if al.onRelayout != nil {
		al.onRelayout(len(next))
	}
}

// entry returns the entry currently on a slot's track.
func (al *trackAllocator) entry(s trackSlot) *TrackEntry {
	return al.state.Track(s.index)
}

// acquireFreeBackgroundSlot returns the index of a background slot of c that
// holds no animation. It prefers the first free slot after the last playing
// one. If every free slot sits below a playing one, playing entries are
// compacted downward first; if no slot is free at all, c grows by one slot,
// which shifts every later channel up by one track.
func (al *trackAllocator) acquireFreeBackgroundSlot(c *channel) int {
	free := -1
	hasFree := false
	for j, s := range c.background {
		if al.entry(s).Playing() {
			free = -1
			continue
		}
		hasFree = true
		if free == -1 {
			free = j
		}
	}
	if free >= 0 {
		return free
	}
	if hasFree {
		return al.compactBackground(c)
	}

	c.background = append(c.background, trackSlot{index: -1})
	al.relayout()
	return len(c.background) - 1
}

// compactBackground moves c's playing background entries down into the
// lowest slots, preserving their order, and returns the first free slot.
func (al *trackAllocator) compactBackground(c *channel) int {
	n := 0
	for j := range c.background {
		e := al.entry(c.background[j])
		if !e.Playing() {
			continue
		}
		if n != j {
			al.state.setTrack(c.background[n].index, e)
			al.state.ClearTrack(c.background[j].index)
			c.background[n].origWeight = c.background[j].origWeight
		}
		n++
	}
	return n
}

// moveToBackground relocates c's primary entry into a free background slot.
// The entry keeps its track time, speed and weight.
func (al *trackAllocator) moveToBackground(c *channel) {
	slot := al.acquireFreeBackgroundSlot(c)
	e := al.entry(c.primary)
	dst := &c.background[slot]
	al.state.setTrack(dst.index, e)
	al.state.ClearTrack(c.primary.index)
	if e != nil {
		dst.origWeight = e.Alpha
	}
}

// ensureBackgroundSlots grows c until it has at least n background slots.
func (al *trackAllocator) ensureBackgroundSlots(c *channel, n int) {
	if len(c.background) >= n {
		return
	}
	for len(c.background) < n {
		c.background = append(c.background, trackSlot{index: -1})
	}
	al.relayout()
}

// clearChannel empties every track of c.
func (al *trackAllocator) clearChannel(c *channel) {
	for _, s := range c.background {
		al.state.ClearTrack(s.index)
	}
	al.state.ClearTrack(c.primary.index)
}

// clearBackground empties c's background tracks from slot from onward.
func (al *trackAllocator) clearBackground(c *channel, from int) {
	for j := max(from, 0); j < len(c.background); j++ {
		al.state.ClearTrack(c.background[j].index)
	}
}

// anyPlaying reports whether any of c's tracks holds an animation.
func (al *trackAllocator) anyPlaying(c *channel) bool {
	if al.entry(c.primary).Playing() {
		return true
	}
	for _, s := range c.background {
		if al.entry(s).Playing() {
			return true
		}
	}
	return false
}
