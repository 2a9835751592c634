// Package ecs provides ECS adapters for chanmix animators.
//
// [AnimatorComponent] attaches a [chanmix.Animator] to a [Donburi] entity and
// [UpdateAnimators] is the system that advances and applies every one of
// them once per frame. [NewDonburiSink] bridges an animator's channel events
// (fades completing, queued animations starting) into the world as typed
// events. Subscribe to [AnimatorEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	e := world.Create()
//	ecs.AddAnimator(world, e, animator, skeleton)
//
//	// each frame
//	ecs.UpdateAnimators(world, dt)
//	ecs.AnimatorEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
