package chanmix

import (
	"fmt"
	"strings"
)

// Animation is a named, fixed-length animation owned by a SkeletonData.
// Animations are compared by pointer; two lookups of the same name in the same
// SkeletonData return the same *Animation.
type Animation struct {
	Name     string
	Duration float32
}

// WrapMode selects how an imperatively played animation behaves at its end.
// Only WrapLoop sets the track's loop flag; every other mode holds the last
// frame once the animation runs out.
type WrapMode uint8

const (
	WrapDefault      WrapMode = iota // play once, hold the last frame
	WrapOnce                         // play once, hold the last frame
	WrapLoop                         // wrap track time around the animation length
	WrapClampForever                 // play once, hold the last frame
)

var wrapModeNames = [...]string{"default", "once", "loop", "clampForever"}

func (m WrapMode) String() string {
	if int(m) < len(wrapModeNames) {
		return wrapModeNames[m]
	}
	return fmt.Sprintf("WrapMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m WrapMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (m *WrapMode) UnmarshalText(text []byte) error {
	for i, name := range wrapModeNames {
		if strings.EqualFold(name, string(text)) {
			*m = WrapMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown wrap mode %q", text)
}

// Loops reports whether the mode wraps track time.
func (m WrapMode) Loops() bool {
	return m == WrapLoop
}

// Role identifies the part a physical track plays inside its channel.
type Role uint8

const (
	RolePrimary    Role = iota // the channel's current animation
	RoleBackground             // a fading remnant of a previous primary
)

func (r Role) String() string {
	if r == RolePrimary {
		return "primary"
	}
	return "background"
}

// TrackInfo is a read-only snapshot of one physical track, as reported by
// Animator.Layout.
type TrackInfo struct {
	Index     int
	Channel   int
	Role      Role
	Slot      int // background slot within the channel; -1 for the primary
	Animation string
	Time      float32
	Alpha     float32
	Speed     float32
	Playing   bool
}

// Updatable is anything advanced once per frame by an external driver loop.
type Updatable interface {
	Update(dt float32)
}

// FrameSampled is anything evaluated at an absolute timeline cursor.
type FrameSampled interface {
	Sample(cursor float64)
}

// Controller is the imperative, channel-based animation API shared by
// Animator and OrientedAnimator.
type Controller interface {
	Updatable

	// Play starts name on channel. See Animator.Play.
	Play(channel int, name string, opts ...Option)
	// Stop stops everything playing on channel, optionally fading out.
	Stop(channel int, opts ...Option)
	// StopAll immediately clears every channel.
	StopAll()

	SetAnimationTime(channel int, name string, time float32)
	SetAnimationSpeed(channel int, name string, speed float32)
	SetAnimationWeight(channel int, name string, weight float32)

	IsPlaying(channel int, name string) bool
	DoesAnimationExist(name string) bool
	AnimationLength(name string) float32
	AnimationTime(channel int, name string) float32
	AnimationSpeed(channel int, name string) float32
	AnimationWeight(channel int, name string) float32
}
