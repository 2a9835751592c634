package chanmix

import (
	"github.com/samber/lo"
)

// AnimationSet is one orientation of a pseudo-3D character: a skeleton with
// its own animator. Animations whose name carries Suffix are preferred over
// the base name when both exist.
type AnimationSet struct {
	Animator *Animator
	Suffix   string
	Skeleton Skeleton
}

// OrientedAnimator drives several animation sets as one. Every call fans out
// to all sets with the base name resolved per set; queries aggregate over the
// sets.
type OrientedAnimator struct {
	sets []AnimationSet
}

var _ Controller = (*OrientedAnimator)(nil)

// NewOrientedAnimator creates an animator over sets.
func NewOrientedAnimator(sets ...AnimationSet) *OrientedAnimator {
	return &OrientedAnimator{sets: sets}
}

// Sets returns the animation sets. The slice must not be modified.
func (o *OrientedAnimator) Sets() []AnimationSet {
	return o.sets
}

// nameFor returns the animation name that set s plays for name.
func nameFor(s AnimationSet, name string) string {
	if s.Suffix != "" {
		if full := name + s.Suffix; s.Animator.DoesAnimationExist(full) {
			return full
		}
	}
	return name
}

// Play starts name on channel in every set, using each set's suffixed
// variant when it has one.
func (o *OrientedAnimator) Play(channel int, name string, opts ...Option) {
	for _, s := range o.sets {
		s.Animator.Play(channel, nameFor(s, name), opts...)
	}
}

// Stop stops channel in every set.
func (o *OrientedAnimator) Stop(channel int, opts ...Option) {
	for _, s := range o.sets {
		s.Animator.Stop(channel, opts...)
	}
}

// StopAll clears every channel of every set.
func (o *OrientedAnimator) StopAll() {
	for _, s := range o.sets {
		s.Animator.StopAll()
	}
}

// Update advances every set.
func (o *OrientedAnimator) Update(dt float32) {
	for _, s := range o.sets {
		s.Animator.Update(dt)
	}
}

// Apply composites every set onto its own skeleton.
func (o *OrientedAnimator) Apply() {
	for _, s := range o.sets {
		s.Animator.Apply(s.Skeleton)
	}
}

// SetAnimationTime sets the track time of name on channel in every set.
func (o *OrientedAnimator) SetAnimationTime(channel int, name string, time float32) {
	for _, s := range o.sets {
		s.Animator.SetAnimationTime(channel, nameFor(s, name), time)
	}
}

// SetAnimationSpeed sets the time scale of name on channel in every set.
func (o *OrientedAnimator) SetAnimationSpeed(channel int, name string, speed float32) {
	for _, s := range o.sets {
		s.Animator.SetAnimationSpeed(channel, nameFor(s, name), speed)
	}
}

// SetAnimationWeight sets the weight of name on channel in every set.
func (o *OrientedAnimator) SetAnimationWeight(channel int, name string, weight float32) {
	for _, s := range o.sets {
		s.Animator.SetAnimationWeight(channel, nameFor(s, name), weight)
	}
}

// IsPlaying reports whether any set plays name on channel.
func (o *OrientedAnimator) IsPlaying(channel int, name string) bool {
	return lo.SomeBy(o.sets, func(s AnimationSet) bool {
		return s.Animator.IsPlaying(channel, nameFor(s, name))
	})
}

// DoesAnimationExist reports whether every set has name.
func (o *OrientedAnimator) DoesAnimationExist(name string) bool {
	return lo.EveryBy(o.sets, func(s AnimationSet) bool {
		return s.Animator.DoesAnimationExist(nameFor(s, name))
	})
}

// AnimationLength returns the longest length of name across the sets, or 0.
func (o *OrientedAnimator) AnimationLength(name string) float32 {
	return o.maxOf(0, func(s AnimationSet) float32 {
		return s.Animator.AnimationLength(nameFor(s, name))
	})
}

// AnimationTime returns the largest track time of name on channel across the
// sets, or 0.
func (o *OrientedAnimator) AnimationTime(channel int, name string) float32 {
	return o.maxOf(0, func(s AnimationSet) float32 {
		return s.Animator.AnimationTime(channel, nameFor(s, name))
	})
}

// AnimationSpeed returns the largest time scale of name on channel across the
// sets, never less than 1.
func (o *OrientedAnimator) AnimationSpeed(channel int, name string) float32 {
	return o.maxOf(1, func(s AnimationSet) float32 {
		return s.Animator.AnimationSpeed(channel, nameFor(s, name))
	})
}

// AnimationWeight returns the largest weight of name on channel across the
// sets, or 0.
func (o *OrientedAnimator) AnimationWeight(channel int, name string) float32 {
	return o.maxOf(0, func(s AnimationSet) float32 {
		return s.Animator.AnimationWeight(channel, nameFor(s, name))
	})
}

// AnimationNames returns the union of every set's animation names.
func (o *OrientedAnimator) AnimationNames() []string {
	return lo.Uniq(lo.FlatMap(o.sets, func(s AnimationSet, _ int) []string {
		return s.Animator.AnimationNames()
	}))
}

func (o *OrientedAnimator) maxOf(floor float32, f func(AnimationSet) float32) float32 {
	return lo.Reduce(o.sets, func(acc float32, s AnimationSet, _ int) float32 {
		return max(acc, f(s))
	}, floor)
}

// NewOrientedMixer builds a timeline mixer addressing animations by base name
// across every set. Each set gets its own track state, separate from the one
// its Animator drives.
func NewOrientedMixer(sets ...AnimationSet) *Mixer[string] {
	targets := lo.Map(sets, func(s AnimationSet, _ int) MixTarget[string] {
		data := s.Animator.Data()
		return MixTarget[string]{
			State:    NewTrackState(data),
			Resolver: NameResolver{Data: data, Suffix: s.Suffix},
			Skeleton: s.Skeleton,
		}
	})
	return NewMixer(targets...)
}
