// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"cogentcore.org/core/math32"
)

// Transform is a rigid pose: a position and an orientation.
type Transform struct {

	// position of the center of mass
	Pos math32.Vector3

	// orientation
	Quat math32.Quat
}

// NewTransform returns a transform at the given position rotated
// by yaw radians around the Y axis.
func NewTransform(pos math32.Vector3, yaw float32) Transform {
	return Transform{Pos: pos, Quat: math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), yaw)}
}

// State contains the basic physical state including position, orientation, velocity.
// Mass and shape live on the [Body].
type State struct {

	// position of center of mass of object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// linear velocity
	LinVel math32.Vector3

	// angular velocity, in world coordinates
	AngVel math32.Vector3
}

// Defaults sets defaults only if current values are nil
func (ps *State) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Transform returns the pose part of the state.
func (ps *State) Transform() Transform {
	return Transform{Pos: ps.Pos, Quat: ps.Quat}
}

// SetTransform sets the pose part of the state, leaving velocities alone.
func (ps *State) SetTransform(t Transform) {
	ps.Pos = t.Pos
	ps.Quat = t.Quat
	ps.Defaults()
}

// AngMotionMax is maximum angular motion that can be taken per update
const AngMotionMax = math.Pi / 4

// StepByAngVel steps the Quat rotation from angular velocity
func (ps *State) StepByAngVel(step float32) {
	ang := ps.AngVel.Length()
	if ang < 1e-6 {
		return
	}
	// limit the angular motion
	if ang*step > AngMotionMax {
		ang = AngMotionMax / step
	}
	axis := ps.AngVel.Normal()
	dq := math32.NewQuatAxisAngle(axis, ang*step)
	nq := dq.Mul(ps.Quat)
	nq.Normalize()
	ps.Quat = nq
}

// StepByLinVel steps the Pos from the linear velocity
func (ps *State) StepByLinVel(step float32) {
	ps.Pos = ps.Pos.Add(ps.LinVel.MulScalar(step))
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *State) SetEulerRotation(x, y, z float32) {
	ps.Quat = math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// EulerRotation returns the current rotation in Euler angles (degrees).
func (ps *State) EulerRotation() math32.Vector3 {
	return ps.Quat.ToEuler().MulScalar(math32.RadToDegFactor)
}
