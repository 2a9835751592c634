package chanmix

import (
	"fmt"
)

// debugCheckLayout panics with a descriptive message when the channel layout
// no longer matches the physical track array. Only called when Config.Debug is
// set; in release mode callers skip this entirely.
func debugCheckLayout(al *trackAllocator) {
	want := 0
	prev := 0
	for i, c := range al.channels {
		if i > 0 && c.id <= prev {
			panic(fmt.Sprintf("chanmix debug: channel %d listed after channel %d", c.id, prev))
		}
		prev = c.id
		for j, s := range c.background {
			debugCheckSlot(al, c, s, want, fmt.Sprintf("background slot %d", j))
			want++
		}
		debugCheckSlot(al, c, c.primary, want, "primary slot")
		want++
	}
	if n := al.state.Len(); n != want {
		panic(fmt.Sprintf("chanmix debug: layout covers %d tracks but the track state has %d", want, n))
	}
}

func debugCheckSlot(al *trackAllocator, c *channel, s trackSlot, want int, what string) {
	if s.index != want {
		panic(fmt.Sprintf("chanmix debug: channel %d %s at track %d, expected %d", c.id, what, s.index, want))
	}
	if e := al.state.Track(s.index); e != nil && e.TrackIndex != s.index {
		panic(fmt.Sprintf("chanmix debug: entry %q on track %d reports track index %d",
			animationName(e), s.index, e.TrackIndex))
	}
}
