// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "cogentcore.org/core/math32"

// TriggerEventType is the phase of a trigger overlap.
type TriggerEventType int32

const (
	// TriggerStart is emitted on the first step a body overlaps a trigger.
	TriggerStart TriggerEventType = iota

	// TriggerStay is emitted on every following step of the overlap.
	TriggerStay

	// TriggerExit is emitted on the first step the overlap has ended.
	TriggerExit
)

func (tt TriggerEventType) String() string {
	switch tt {
	case TriggerStart:
		return "Start"
	case TriggerStay:
		return "Stay"
	case TriggerExit:
		return "Exit"
	}
	return "TriggerEventType(?)"
}

// TriggerEvent reports an overlap between a trigger volume and a dynamic body.
type TriggerEvent struct {
	Trigger *Body
	Other   *Body
	Type    TriggerEventType
}

// ContactEvent reports a collision between a dynamic body and a solid.
// Normal points from Body2 towards Body1.
type ContactEvent struct {
	Body1  *Body
	Body2  *Body
	Normal math32.Vector3
	Depth  float32
}

// EventListener receives the events generated by [World.Step].
type EventListener interface {
	OnTrigger(ev TriggerEvent)
	OnContact(ev ContactEvent)
}

// ListenerFuncs adapts plain functions to an [EventListener].
// Nil functions are skipped.
type ListenerFuncs struct {
	Trigger func(ev TriggerEvent)
	Contact func(ev ContactEvent)
}

func (lf ListenerFuncs) OnTrigger(ev TriggerEvent) {
	if lf.Trigger != nil {
		lf.Trigger(ev)
	}
}

func (lf ListenerFuncs) OnContact(ev ContactEvent) {
	if lf.Contact != nil {
		lf.Contact(ev)
	}
}

// Listeners fans events out to several listeners, in order.
type Listeners []EventListener

func (ls Listeners) OnTrigger(ev TriggerEvent) {
	for _, l := range ls {
		l.OnTrigger(ev)
	}
}

func (ls Listeners) OnContact(ev ContactEvent) {
	for _, l := range ls {
		l.OnContact(ev)
	}
}
