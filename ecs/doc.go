// Package ecs bridges koipond animation events into an ECS world.
//
// [NewDonburiSink] publishes every simulator and driver event into a
// [Donburi] world as a typed event. Subscribe to [AnimationEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	driver.SetEventSink(sink)
//	ecs.SubscribeType(world, koipond.EventPetalRecycled, onRecycle)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
