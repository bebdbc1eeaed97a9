// Package ecs provides ECS adapters for twisty's move events.
//
// The primary adapter is [NewDonburiSink], which bridges puzzle move events
// (started, committed) into a [Donburi] world as typed events. Subscribe to
// [MoveEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	puzzle.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
