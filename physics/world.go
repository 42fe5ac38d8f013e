// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics is a small in-process rigid body world: dynamic boxes
// integrated under gravity and applied forces, static solid and trigger
// boxes, segment raycasts with a hit callback, and trigger/contact events.
package physics

import (
	"fmt"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/math32"
)

// World owns all bodies and advances the dynamic ones.
type World struct {

	// gravity acceleration
	Gravity math32.Vector3

	// bodies by name, in insertion order
	bodies *keylist.List[string, *Body]

	// receives trigger and contact events, may be nil
	listener EventListener

	// trigger overlaps of the previous step
	overlaps map[overlapKey]bool
}

type overlapKey struct {
	trigger *Body
	other   *Body
}

// NewWorld returns an empty world with standard gravity.
func NewWorld() *World {
	return &World{
		Gravity:  math32.Vec3(0, -9.81, 0),
		bodies:   keylist.New[string, *Body](),
		overlaps: map[overlapKey]bool{},
	}
}

// SetEventListener sets the receiver of trigger and contact events.
func (w *World) SetEventListener(l EventListener) {
	w.listener = l
}

// Add adds a body, returning an error if the name is already taken.
func (w *World) Add(bd *Body) error {
	if bd.Name == "" {
		return fmt.Errorf("physics: body has no name")
	}
	if err := w.bodies.Add(bd.Name, bd); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	return nil
}

// Body returns the body with the given name.
func (w *World) Body(name string) (*Body, bool) {
	return w.bodies.AtTry(name)
}

// Remove destroys the body with the given name.
func (w *World) Remove(name string) bool {
	bd, ok := w.bodies.AtTry(name)
	if !ok {
		return false
	}
	for k := range w.overlaps {
		if k.trigger == bd || k.other == bd {
			delete(w.overlaps, k)
		}
	}
	return w.bodies.DeleteByKey(name)
}

// Bodies returns all bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies.Values
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return w.bodies.Len()
}

// Step advances the world by dt seconds: dynamic bodies are integrated,
// pushed out of solids, and events are sent to the listener.
// A non-positive dt does nothing.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, bd := range w.bodies.Values {
		if bd.IsDynamic() {
			bd.integrate(w.Gravity, dt)
		}
	}
	w.collide()
	w.triggers()
}

// collide resolves dynamic vs solid overlaps along the axis of least
// penetration and reports them as contacts.
func (w *World) collide() {
	for _, dyn := range w.bodies.Values {
		if !dyn.IsDynamic() {
			continue
		}
		for _, sld := range w.bodies.Values {
			if sld.Kind != Solid {
				continue
			}
			db := dyn.BBox()
			sb := sld.BBox()
			if !db.IntersectsBox(sb) {
				continue
			}
			nrm, depth := penetration(db, sb)
			if depth <= 0 {
				continue
			}
			dyn.State.Pos = dyn.State.Pos.Add(nrm.MulScalar(depth))
			if vn := dyn.State.LinVel.Dot(nrm); vn < 0 {
				dyn.State.LinVel = dyn.State.LinVel.Sub(nrm.MulScalar(vn))
			}
			if w.listener != nil {
				w.listener.OnContact(ContactEvent{Body1: dyn, Body2: sld, Normal: nrm, Depth: depth})
			}
		}
	}
}

// penetration returns the push-out direction for box a out of box b
// and the overlap depth along it.
func penetration(a, b math32.Box3) (math32.Vector3, float32) {
	ac := a.Center()
	bc := b.Center()
	best := float32(math32.Infinity)
	var nrm math32.Vector3
	for ax := range 3 {
		ov := min(component(a.Max, ax)-component(b.Min, ax), component(b.Max, ax)-component(a.Min, ax))
		if ov >= best {
			continue
		}
		best = ov
		s := float32(1)
		if component(ac, ax) < component(bc, ax) {
			s = -1
		}
		nrm = math32.Vector3{}
		switch ax {
		case 0:
			nrm.X = s
		case 1:
			nrm.Y = s
		case 2:
			nrm.Z = s
		}
	}
	return nrm, best
}

// triggers updates dynamic vs trigger overlaps and emits
// Start, Stay and Exit events.
func (w *World) triggers() {
	cur := map[overlapKey]bool{}
	for _, trg := range w.bodies.Values {
		if trg.Kind != Trigger {
			continue
		}
		tb := trg.BBox()
		for _, dyn := range w.bodies.Values {
			if !dyn.IsDynamic() || !dyn.BBox().IntersectsBox(tb) {
				continue
			}
			k := overlapKey{trigger: trg, other: dyn}
			cur[k] = true
			tp := TriggerStart
			if w.overlaps[k] {
				tp = TriggerStay
			}
			w.emitTrigger(TriggerEvent{Trigger: trg, Other: dyn, Type: tp})
		}
	}
	// exits in registry order for determinism
	for _, trg := range w.bodies.Values {
		if trg.Kind != Trigger {
			continue
		}
		for _, dyn := range w.bodies.Values {
			k := overlapKey{trigger: trg, other: dyn}
			if w.overlaps[k] && !cur[k] {
				w.emitTrigger(TriggerEvent{Trigger: trg, Other: dyn, Type: TriggerExit})
			}
		}
	}
	w.overlaps = cur
}

func (w *World) emitTrigger(ev TriggerEvent) {
	if w.listener != nil {
		w.listener.OnTrigger(ev)
	}
}
