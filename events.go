package koipond

// EventType identifies a kind of animation event.
type EventType uint8

const (
	EventPetalRecycled EventType = iota // a petal left the surface and was reset at the top
	EventFishRetarget                   // a fish's turn timer fired and picked a new heading
	EventFishEdgeAvoid                  // a fish near an edge was steered back toward the interior
	EventDriverState                    // the frame driver changed state
)

// String returns the event type's name.
func (t EventType) String() string {
	switch t {
	case EventPetalRecycled:
		return "petal-recycled"
	case EventFishRetarget:
		return "fish-retarget"
	case EventFishEdgeAvoid:
		return "fish-edge-avoid"
	case EventDriverState:
		return "driver-state"
	default:
		return "unknown"
	}
}

// EntityKind names the entity collection an event refers to.
type EntityKind uint8

const (
	EntityNone EntityKind = iota
	EntityPetal
	EntityFish
)

// Event describes something that happened during a simulation step or a
// driver transition. X and Y are normalized surface coordinates.
type Event struct {
	Type    EventType
	Entity  EntityKind
	Index   int
	X, Y    float64
	Heading float64
	State   DriverState
}

// EventSink receives animation events. Implementations must not retain the
// simulator or call back into it from EmitEvent.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) { f(event) }
