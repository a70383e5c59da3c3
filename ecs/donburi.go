package ecs

import (
	"github.com/phanxgames/koipond"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for koipond animation events.
// A subscriber receives every event a simulator or driver emits:
//
//   - [koipond.EventPetalRecycled]: Index is the petal, X and Y its new
//     normalized position above the top edge.
//   - [koipond.EventFishRetarget]: the turn timer fired; Heading is the new
//     target heading.
//   - [koipond.EventFishEdgeAvoid]: the fish entered the edge margin; Heading
//     points back toward the interior.
//   - [koipond.EventDriverState]: State is the driver's new lifecycle state.
var AnimationEventType = events.NewEventType[koipond.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to AnimationEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) koipond.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event koipond.Event) {
	AnimationEventType.Publish(s.world, event)
}

// SubscribeType subscribes fn to animation events of type t only.
func SubscribeType(world donburi.World, t koipond.EventType, fn func(donburi.World, koipond.Event)) {
	AnimationEventType.Subscribe(world, func(w donburi.World, e koipond.Event) {
		if e.Type == t {
			fn(w, e)
		}
	})
}
