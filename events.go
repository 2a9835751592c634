package chanmix

// EventSink is the interface for optional event forwarding. When set on an
// Animator, channel transitions are reported to it as they happen.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of channel transition.
type EventType uint8

const (
	EventPlay          EventType = iota // an animation started on a channel's primary track
	EventQueued                         // a Play request was deferred until the current animation nears its end
	EventQueuedStart                    // a deferred request fired
	EventBlendComplete                  // a blend-in finished and background fades were cleared
	EventStop                           // a channel started fading out
	EventStopComplete                   // a channel finished stopping and its tracks were cleared
)

var eventTypeNames = [...]string{"play", "queued", "queuedStart", "blendComplete", "stop", "stopComplete"}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries one channel transition.
type Event struct {
	Type      EventType
	Channel   int
	Animation string  // empty for stop events
	BlendTime float32 // fade length in seconds; 0 for hard cuts
}
