package ecs

import (
	"github.com/phanxgames/twisty"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MoveEventType is the Donburi event type for twisty move events.
// Subscribe to this in your ECS systems to react to moves starting and committing.
var MoveEventType = events.NewEventType[twisty.MoveEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Move events are published to MoveEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) twisty.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitMove(event twisty.MoveEvent) {
	MoveEventType.Publish(s.world, event)
}
