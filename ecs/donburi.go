// Package ecs provides ECS adapters for chanmix.
package ecs

import (
	"github.com/phanxgames/chanmix"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimatorData attaches an animator to an entity. Skeleton may be nil, in
// which case UpdateAnimators only advances the animator.
type AnimatorData struct {
	Animator *chanmix.Animator
	Skeleton chanmix.Skeleton
}

// AnimatorComponent is the Donburi component holding an entity's animator.
var AnimatorComponent = donburi.NewComponentType[AnimatorData]()

// AnimatorEvent is a channel transition reported by an entity's animator.
type AnimatorEvent struct {
	Entity donburi.Entity
	chanmix.Event
}

// AnimatorEventType is the Donburi event type for animator events.
// Subscribe to this in your ECS systems to react to fades finishing and
// queued animations starting.
var AnimatorEventType = events.NewEventType[AnimatorEvent]()

var animatorQuery = donburi.NewQuery(filter.Contains(AnimatorComponent))

// UpdateAnimators advances every animator in world by dt and applies it to its
// skeleton.
func UpdateAnimators(world donburi.World, dt float32) {
	animatorQuery.Each(world, func(e *donburi.Entry) {
		d := AnimatorComponent.Get(e)
		if d.Animator == nil {
			return
		}
		d.Animator.Update(dt)
		if d.Skeleton != nil {
			d.Animator.Apply(d.Skeleton)
		}
	})
}

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink that publishes an animator's events for
// entity to AnimatorEventType. Consume them with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World, entity donburi.Entity) chanmix.EventSink {
	return &donburiSink{world: world, entity: entity}
}

func (s *donburiSink) EmitEvent(event chanmix.Event) {
	AnimatorEventType.Publish(s.world, AnimatorEvent{Entity: s.entity, Event: event})
}

// AddAnimator attaches a to entity and routes its events into world.
func AddAnimator(world donburi.World, entity donburi.Entity, a *chanmix.Animator, sk chanmix.Skeleton) {
	entry := world.Entry(entity)
	if !entry.HasComponent(AnimatorComponent) {
		entry.AddComponent(AnimatorComponent)
	}
	AnimatorComponent.SetValue(entry, AnimatorData{Animator: a, Skeleton: sk})
	a.SetEventSink(NewDonburiSink(world, entity))
}
