// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

import (
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
)

// WheelAnchors are the fixed wheel attachment points in body coordinates:
// front-right, front-left, rear-right, rear-left. X is forward, Z is right.
var WheelAnchors = [4]math32.Vector3{
	{X: 2, Y: -0.5, Z: 1},
	{X: 2, Y: -0.5, Z: -1},
	{X: -2, Y: -0.5, Z: 1},
	{X: -2, Y: -0.5, Z: -1},
}

// NumFrontWheels is the number of leading [WheelAnchors] that steer.
const NumFrontWheels = 2

// Config holds the vehicle tuning parameters.
type Config struct {

	// rest length of each suspension spring
	SpringLength float32 `default:"1"`

	// spring stiffness
	SpringK float32 `default:"500"`

	// damper coefficient
	DamperK float32 `default:"20"`

	// mass of the car body
	Mass float32 `default:"6"`

	// full length of the body box along X
	Length float32 `default:"5"`

	// full height of the body box along Y
	Height float32 `default:"0.85"`

	// full width of the body box along Z
	Width float32 `default:"2.5"`

	// number of radial perception rays
	RayCount int `default:"20"`

	// maximum perception range
	RayLength float32 `default:"30"`

	// perception rays start this far below the body center
	RayHeight float32 `default:"0.25"`

	// front wheel steering angle at full lock, in degrees
	SteerAngle float32 `default:"30"`

	// slip angle of peak lateral force, in degrees
	SlipAnglePeak float32 `default:"8"`
}

// Defaults sets the default tuning.
func (c *Config) Defaults() {
	c.SpringLength = 1
	c.SpringK = 500
	c.DamperK = 20
	c.Mass = 6
	c.Length = 5
	c.Height = 0.85
	c.Width = 2.5
	c.RayCount = 20
	c.RayLength = 30
	c.RayHeight = 0.25
	c.SteerAngle = 30
	c.SlipAnglePeak = 8
}

// HalfExtents returns the body box half sizes.
func (c *Config) HalfExtents() math32.Vector3 {
	return math32.Vec3(c.Length/2, c.Height/2, c.Width/2)
}

// ObservationLen returns the length of the observation vector:
// two values per ray plus velocity, angular velocity and checkpoint direction.
func (c *Config) ObservationLen() int {
	return 2*c.RayCount + 9
}

// NewBody returns the dynamic body for a car with this configuration.
func NewBody(name string, c *Config, t physics.Transform) *physics.Body {
	return physics.NewDynamicBox(name, c.HalfExtents(), c.Mass, t)
}
