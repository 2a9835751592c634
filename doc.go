// Package chanmix is a layered animation-channel mixer for skeletal
// animation runtimes.
//
// A skeleton owns one flat array of physical tracks ([TrackState]). chanmix
// multiplexes numbered channels onto it: each channel has a primary track for
// its current animation and a run of background tracks holding the previous
// animations while they fade out. Channels are laid out in ascending id order,
// so higher channels render above lower ones, and every channel's primary sits
// above its own fades.
//
// # Imperative use
//
// [Animator] is driven by gameplay code. Call [Animator.Update] once per frame
// and then [Animator.Apply]:
//
//	data := chanmix.NewSkeletonData(idle, walk, wave)
//	a := chanmix.NewAnimator(data, chanmix.DefaultConfig())
//
//	a.Play(0, "walk", chanmix.WithWrap(chanmix.WrapLoop))
//	a.Play(0, "idle", chanmix.WithBlend(0.25), chanmix.WithEasing(chanmix.OutCubic))
//	a.Play(1, "wave", chanmix.WithBlend(0.1), chanmix.WithWeight(0.5))
//	a.Play(1, "idle", chanmix.Queued(), chanmix.WithBlend(0.2))
//
//	a.Update(dt)
//	a.Apply(skeleton)
//
// A blended Play moves the channel's current animation to a background track,
// where it keeps playing underneath while the new one fades in. Background
// tracks are reused once free and the channel grows when every one is busy,
// so an in-flight fade is never cut short. A Queued play waits until the
// current animation is within the blend time of its end.
//
// # Timelines
//
// For authored sequences, [ChannelTrack] reduces a list of [Clip] values at a
// timeline cursor into one primary and any number of background tuples per
// channel. A [Mixer] gathers those tuples for a frame and writes them to one
// or more track states; [Director] runs the gather and apply phases in order:
//
//	mixer := chanmix.NewMixer(chanmix.MixTarget[*chanmix.Animation]{
//		State:    chanmix.NewTrackState(data),
//		Resolver: chanmix.DirectResolver{},
//		Skeleton: skeleton,
//	})
//	d := chanmix.NewDirector(mixer, tracks...)
//	d.Update(dt)
//
// Clips extend past their body with [Extrapolation] modes, and their weights
// ramp through blend-in and blend-out windows.
//
// # Orientations
//
// [OrientedAnimator] drives several [AnimationSet] values as one, for
// characters drawn from a different skeleton per facing. Animations are
// addressed by base name; a set's suffixed variant is preferred when it
// exists. [NewOrientedMixer] builds the matching timeline mixer.
//
// # Tooling
//
// [LoadScript] and [LoadTimeline] read JSON descriptions used by the chanmix
// command and by tests. [Animator.Layout] reports the physical track stack.
package chanmix
