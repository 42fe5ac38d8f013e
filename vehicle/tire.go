// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

import "cogentcore.org/core/math32"

const (
	// ThrottleGain scales the normal force into drive force at full throttle.
	ThrottleGain = 1.5

	// SpeedDrag scales the quadratic longitudinal speed correction.
	SpeedDrag = 0.003

	// MaxSlipRatio bounds the normalized slip angle.
	MaxSlipRatio = 2
)

// TireInput is the per-wheel input of [TireForce].
type TireInput struct {

	// contact surface normal
	Normal math32.Vector3

	// car velocity in the (possibly steered) wheel frame
	LocalVelocity math32.Vector3

	// suspension force of the wheel
	Force float32

	// throttle input in [-1,1]
	Throttle float32

	// slip angle of peak lateral force, in radians
	SlipAnglePeak float32
}

// Reject returns v minus its projection on the unit vector n,
// i.e. the part of v tangent to the plane with normal n.
func Reject(v, n math32.Vector3) math32.Vector3 {
	return v.Sub(n.MulScalar(v.Dot(n)))
}

// SlipAngle returns the wheel slip angle in radians, 0 at zero forward speed.
func SlipAngle(localVelocity math32.Vector3) float32 {
	if localVelocity.X == 0 {
		return 0
	}
	return math32.Atan(-localVelocity.Z / math32.Abs(localVelocity.X))
}

// LateralFactor is the slip angle normalized by the peak slip angle,
// clamped to ±[MaxSlipRatio].
func LateralFactor(localVelocity math32.Vector3, slipAnglePeak float32) float32 {
	return math32.Clamp(SlipAngle(localVelocity)/slipAnglePeak, -MaxSlipRatio, MaxSlipRatio)
}

// LongitudinalForce is the drive force along the wheel heading:
// throttle drive plus a speed correction that always opposes motion.
func LongitudinalForce(force, throttle, vx float32) float32 {
	drive := force * ThrottleGain * throttle
	drag := SpeedDrag * math32.Sign(vx) * math32.Clamp(-math32.Pow(vx, 2), -1000, 1000) * force
	return drive + drag
}

// TireForce returns the combined lateral and longitudinal tire force,
// tangent to the contact surface.
func TireForce(in TireInput) math32.Vector3 {
	fwd := Reject(math32.Vec3(1, 0, 0), in.Normal).Normal()
	right := Reject(math32.Vec3(0, 0, 1), in.Normal).Normal()
	lateral := in.Force * LateralFactor(in.LocalVelocity, in.SlipAnglePeak)
	longitudinal := LongitudinalForce(in.Force, in.Throttle, in.LocalVelocity.X)
	return right.MulScalar(lateral).Add(fwd.MulScalar(longitudinal))
}

// SteeredLocalVelocity expresses a world velocity in the frame of a wheel
// with the given body orientation, yawed by steerAngle radians.
func SteeredLocalVelocity(orientation math32.Quat, steerAngle float32, worldVel math32.Vector3) math32.Vector3 {
	q := orientation
	if steerAngle != 0 {
		q = q.Mul(math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), steerAngle))
	}
	inv := q.Inverse()
	return worldVel.MulQuat(inv)
}
