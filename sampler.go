package chanmix

// Input pairs a clip with the weight an external evaluator assigned it for the
// current frame.
type Input[H comparable] struct {
	Clip   *Clip[H]
	Weight float32
}

// ChannelSample is one channel's reduction of its clips at a cursor: at most
// one primary tuple plus the background tuples underneath it.
type ChannelSample[H comparable] struct {
	Channel    int
	Primary    ChannelAnimationData[H]
	Background []ChannelAnimationData[H]
}

// ChannelTrack is the authored clip list of one channel.
type ChannelTrack[H comparable] struct {
	Channel int
	Clips   []*Clip[H]

	inputs []Input[H]
	bg     []ChannelAnimationData[H]
}

// Sample reduces the clips at cursor using each clip's own Weight.
func (t *ChannelTrack[H]) Sample(cursor float64) ChannelSample[H] {
	t.inputs = t.inputs[:0]
	for _, c := range t.Clips {
		if c != nil {
			t.inputs = append(t.inputs, Input[H]{Clip: c, Weight: c.Weight(cursor)})
		}
	}
	return t.SampleInputs(cursor, t.inputs)
}

// SampleInputs reduces inputs at cursor. Inputs with zero weight, a zero
// animation handle or a window that does not contain cursor are skipped.
// Every remaining input is classified with ClipTiming.IsPrimary: primaries
// supply the channel's primary tuple and the others become background tuples
// at weight 1.
//
// Clips are assumed not to overlap as primaries. When several qualify at once
// the last one in inputs wins and the earlier ones are dropped.
//
// The returned Background slice is reused by the next call.
func (t *ChannelTrack[H]) SampleInputs(cursor float64, inputs []Input[H]) ChannelSample[H] {
	var zero H
	out := ChannelSample[H]{Channel: t.Channel}
	t.bg = t.bg[:0]
	for _, in := range inputs {
		c := in.Clip
		if c == nil || in.Weight == 0 || c.Animation == zero || !c.Contains(cursor) {
			continue
		}
		speed := c.Speed
		if speed == 0 {
			speed = 1
		}
		d := ChannelAnimationData[H]{
			Animation: c.Animation,
			Time:      c.ExtrapolatedTrackTime(cursor, c.AnimationDuration),
			Weight:    in.Weight,
			Speed:     speed,
			Hold:      c.Holds(cursor),
		}
		if c.IsPrimary(cursor) {
			out.Primary = d
		} else {
			d.Weight = 1
			t.bg = append(t.bg, d)
		}
	}
	out.Background = t.bg
	return out
}
