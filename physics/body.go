// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"cogentcore.org/core/math32"
)

// Kind is the simulation role of a [Body].
type Kind int32

const (
	// Dynamic bodies are integrated every step and respond to forces.
	Dynamic Kind = iota

	// Solid bodies are static colliders (ground, walls).
	Solid

	// Trigger bodies are static, non-colliding volumes that only
	// emit overlap events.
	Trigger
)

var kindNames = [...]string{"Dynamic", "Solid", "Trigger"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// NoCheckpoint is the [Body.Checkpoint] value of bodies that are not
// track checkpoints.
const NoCheckpoint = -1

// Body is a box shaped rigid body. Static bodies (Solid and Trigger)
// are treated as axis aligned; their orientation is ignored.
type Body struct {

	// unique name, the key in the [World] registry
	Name string

	// simulation role
	Kind Kind

	// a Solid body that counts as a wall for contact reporting
	Wall bool

	// checkpoint index for Trigger bodies that mark a track checkpoint,
	// NoCheckpoint otherwise
	Checkpoint int

	// half sizes of the box along each local axis
	HalfExtents math32.Vector3

	// mass, only used for Dynamic bodies
	Mass float32

	// linear velocity damping per second
	LinearDamping float32

	// angular velocity damping per second
	AngularDamping float32

	// current physical state
	State State

	// accumulated world force for the current step
	force math32.Vector3

	// accumulated world torque for the current step
	torque math32.Vector3

	// inverse of the diagonal box inertia in local coordinates
	invInertia math32.Vector3
}

// NewDynamicBox returns a Dynamic box body with the given mass and pose.
func NewDynamicBox(name string, halfExtents math32.Vector3, mass float32, t Transform) *Body {
	bd := &Body{Name: name, Kind: Dynamic, Checkpoint: NoCheckpoint, HalfExtents: halfExtents, Mass: mass,
		LinearDamping: 0.1, AngularDamping: 0.5}
	bd.State.SetTransform(t)
	bd.updateInertia()
	return bd
}

// NewSolidBox returns a static colliding box centered at pos.
func NewSolidBox(name string, pos, halfExtents math32.Vector3, wall bool) *Body {
	bd := &Body{Name: name, Kind: Solid, Wall: wall, Checkpoint: NoCheckpoint, HalfExtents: halfExtents}
	bd.State.Pos = pos
	bd.State.Defaults()
	return bd
}

// NewTriggerBox returns a static trigger volume centered at pos,
// marking the given checkpoint index (or NoCheckpoint).
func NewTriggerBox(name string, pos, halfExtents math32.Vector3, checkpoint int) *Body {
	bd := &Body{Name: name, Kind: Trigger, Checkpoint: checkpoint, HalfExtents: halfExtents}
	bd.State.Pos = pos
	bd.State.Defaults()
	return bd
}

// IsDynamic returns true if the body is integrated by the world.
func (bd *Body) IsDynamic() bool {
	return bd.Kind == Dynamic
}

// IsCheckpoint returns true if the body is a trigger marking a checkpoint.
func (bd *Body) IsCheckpoint() bool {
	return bd.Kind == Trigger && bd.Checkpoint >= 0
}

func (bd *Body) updateInertia() {
	h := bd.HalfExtents
	m := bd.Mass / 3
	ix := m * (h.Y*h.Y + h.Z*h.Z)
	iy := m * (h.X*h.X + h.Z*h.Z)
	iz := m * (h.X*h.X + h.Y*h.Y)
	bd.invInertia = math32.Vec3(invOrZero(ix), invOrZero(iy), invOrZero(iz))
}

func invOrZero(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

// orientation returns the rotation used for frame conversions;
// static bodies are always axis aligned.
func (bd *Body) orientation() math32.Quat {
	if bd.Kind != Dynamic || bd.State.Quat.IsNil() {
		return math32.NewQuat(0, 0, 0, 1)
	}
	return bd.State.Quat
}

// WorldPoint transforms a point in body coordinates into world coordinates.
func (bd *Body) WorldPoint(local math32.Vector3) math32.Vector3 {
	return local.MulQuat(bd.orientation()).Add(bd.State.Pos)
}

// LocalPoint transforms a world point into body coordinates.
func (bd *Body) LocalPoint(world math32.Vector3) math32.Vector3 {
	return bd.LocalVector(world.Sub(bd.State.Pos))
}

// WorldVector rotates a body direction into world coordinates.
func (bd *Body) WorldVector(local math32.Vector3) math32.Vector3 {
	return local.MulQuat(bd.orientation())
}

// LocalVector rotates a world direction into body coordinates.
func (bd *Body) LocalVector(world math32.Vector3) math32.Vector3 {
	q := bd.orientation()
	inv := q.Inverse()
	return world.MulQuat(inv)
}

// LinearVelocity returns the world linear velocity.
func (bd *Body) LinearVelocity() math32.Vector3 {
	return bd.State.LinVel
}

// AngularVelocity returns the world angular velocity.
func (bd *Body) AngularVelocity() math32.Vector3 {
	return bd.State.AngVel
}

// SetLinearVelocity sets the world linear velocity.
func (bd *Body) SetLinearVelocity(v math32.Vector3) {
	bd.State.LinVel = v
}

// SetAngularVelocity sets the world angular velocity.
func (bd *Body) SetAngularVelocity(v math32.Vector3) {
	bd.State.AngVel = v
}

// Transform returns the current pose.
func (bd *Body) Transform() Transform {
	return bd.State.Transform()
}

// SetTransform teleports the body to the given pose.
func (bd *Body) SetTransform(t Transform) {
	bd.State.SetTransform(t)
}

// ApplyForce applies a world force at the center of mass.
func (bd *Body) ApplyForce(force math32.Vector3) {
	if bd.Kind != Dynamic {
		return
	}
	bd.force = bd.force.Add(force)
}

// ApplyForceAtWorldPosition applies a world force at a world point,
// adding the resulting torque about the center of mass.
func (bd *Body) ApplyForceAtWorldPosition(force, point math32.Vector3) {
	if bd.Kind != Dynamic {
		return
	}
	bd.force = bd.force.Add(force)
	arm := point.Sub(bd.State.Pos)
	bd.torque = bd.torque.Add(arm.Cross(force))
}

// ApplyLocalForceAtWorldPosition applies a force given in body
// coordinates at a world point.
func (bd *Body) ApplyLocalForceAtWorldPosition(force, point math32.Vector3) {
	bd.ApplyForceAtWorldPosition(bd.WorldVector(force), point)
}

// Force returns the world force accumulated since the last step.
func (bd *Body) Force() math32.Vector3 {
	return bd.force
}

// Torque returns the world torque accumulated since the last step.
func (bd *Body) Torque() math32.Vector3 {
	return bd.torque
}

// ClearForces resets the force and torque accumulators.
func (bd *Body) ClearForces() {
	bd.force = math32.Vector3{}
	bd.torque = math32.Vector3{}
}

// BBox returns the world axis aligned bounding box.
func (bd *Body) BBox() math32.Box3 {
	h := bd.HalfExtents
	if bd.Kind == Dynamic {
		q := bd.orientation()
		ax := math32.Vec3(h.X, 0, 0).MulQuat(q).Abs()
		ay := math32.Vec3(0, h.Y, 0).MulQuat(q).Abs()
		az := math32.Vec3(0, 0, h.Z).MulQuat(q).Abs()
		h = ax.Add(ay).Add(az)
	}
	return math32.Box3{Min: bd.State.Pos.Sub(h), Max: bd.State.Pos.Add(h)}
}

// integrate advances a Dynamic body by one step under the given gravity.
func (bd *Body) integrate(gravity math32.Vector3, dt float32) {
	st := &bd.State
	acc := gravity
	if bd.Mass > 0 {
		acc = acc.Add(bd.force.MulScalar(1 / bd.Mass))
	}
	st.LinVel = st.LinVel.Add(acc.MulScalar(dt))

	angAcc := bd.WorldVector(bd.LocalVector(bd.torque).Mul(bd.invInertia))
	st.AngVel = st.AngVel.Add(angAcc.MulScalar(dt))

	st.LinVel = st.LinVel.MulScalar(1 / (1 + dt*bd.LinearDamping))
	st.AngVel = st.AngVel.MulScalar(1 / (1 + dt*bd.AngularDamping))

	st.StepByLinVel(dt)
	st.StepByAngVel(dt)
	bd.ClearForces()
}
