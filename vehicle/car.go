// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vehicle implements the raycast car: per-wheel spring/damper
// suspension, a simplified slip-angle tire model, radial perception
// rays and the discrete control mapping.
package vehicle

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
)

// Body is the rigid body a [Car] drives, owned by the physics world.
type Body interface {
	WorldPoint(local math32.Vector3) math32.Vector3
	WorldVector(local math32.Vector3) math32.Vector3
	LocalVector(world math32.Vector3) math32.Vector3
	LinearVelocity() math32.Vector3
	AngularVelocity() math32.Vector3
	SetLinearVelocity(v math32.Vector3)
	SetAngularVelocity(v math32.Vector3)
	Transform() physics.Transform
	SetTransform(t physics.Transform)
	ApplyLocalForceAtWorldPosition(force, point math32.Vector3)
}

// Raycaster is the physics world query the car needs.
type Raycaster interface {
	Raycast(ray physics.Ray, cb physics.RaycastCallback)
}

// Wheel is the result of the last suspension update of one wheel.
type Wheel struct {

	// world position of the wheel, where forces are applied
	Start math32.Vector3

	// whether the spring ray hit the ground
	Contact bool

	// current spring length
	Length float32

	// spring plus damper force
	SuspensionForce float32

	// contact normal
	Normal math32.Vector3

	// force vector passed to the body for the tire
	TireForce math32.Vector3
}

// Car is a four wheel raycast vehicle.
type Car struct {

	// tuning parameters
	Config Config

	body  Body
	world Raycaster

	// spring lengths of the previous tick, for the damper term
	lastLength [4]float32

	wheels [4]Wheel

	input Axes

	cameraLocalPosition  math32.Vector3
	cameraLocalViewPoint math32.Vector3
}

// New returns a car driving the given body in the given world.
func New(cfg Config, body Body, world Raycaster) *Car {
	c := &Car{Config: cfg, body: body, world: world}
	for i := range c.lastLength {
		c.lastLength[i] = cfg.SpringLength
	}
	c.cameraLocalPosition = math32.Vec3(-6, 3, 0)
	c.cameraLocalViewPoint = math32.Vec3(0, 2, 0)
	return c
}

// Body returns the driven body.
func (c *Car) Body() Body {
	return c.body
}

// Tick applies suspension and tire forces of all wheels for a step of dt > 0.
func (c *Car) Tick(dt float32) {
	for i := range WheelAnchors {
		c.tickWheel(i, dt)
	}
}

func (c *Car) tickWheel(i int, dt float32) {
	cfg := &c.Config
	anchor := WheelAnchors[i]
	start := c.body.WorldPoint(anchor)
	end := c.body.WorldPoint(anchor.Add(math32.Vec3(0, -cfg.SpringLength, 0)))

	hit := physics.NewClosestHit()
	c.world.Raycast(physics.Ray{From: start, To: end}, hit.Callback)

	wh := &c.wheels[i]
	*wh = Wheel{Start: start, Length: cfg.SpringLength, Normal: hit.Normal}
	if NoHit(hit.HitFraction) {
		c.lastLength[i] = cfg.SpringLength
		return
	}

	force, length := Suspension(cfg.SpringLength, cfg.SpringK, cfg.DamperK, c.lastLength[i], hit.HitFraction, dt)
	c.body.ApplyLocalForceAtWorldPosition(hit.Normal.MulScalar(force), start)
	c.lastLength[i] = length

	var steer float32
	if i < NumFrontWheels && c.input.Right != 0 {
		steer = c.input.Right * -math32.DegToRad(cfg.SteerAngle)
	}
	lv := SteeredLocalVelocity(c.body.Transform().Quat, steer, c.body.LinearVelocity())
	tf := TireForce(TireInput{
		Normal:        hit.Normal,
		LocalVelocity: lv,
		Force:         force,
		Throttle:      c.input.Forward,
		SlipAnglePeak: math32.DegToRad(cfg.SlipAnglePeak),
	})
	c.body.ApplyLocalForceAtWorldPosition(tf, start)

	wh.Contact = true
	wh.Length = length
	wh.SuspensionForce = force
	wh.TireForce = tf
}

// Wheel returns the last update result of wheel i.
func (c *Car) Wheel(i int) Wheel {
	return c.wheels[i]
}

// SuspensionLength returns the persisted spring length of wheel i.
func (c *Car) SuspensionLength(i int) float32 {
	return c.lastLength[i]
}

// Input returns the current throttle and steering.
func (c *Car) Input() Axes {
	return c.input
}

// KeyPress handles a driving key going down.
func (c *Car) KeyPress(k Key) {
	c.input.Press(k)
}

// KeyRelease handles a driving key going up.
func (c *Car) KeyRelease(k Key) {
	c.input.Release(k)
}

// SetKeyboardInput sets the throttle and steering directly.
func (c *Car) SetKeyboardInput(forward, right float32) {
	c.input = Axes{Forward: forward, Right: right}
}

// SetAction applies a discrete action; invalid actions are neutral.
func (c *Car) SetAction(a Action) {
	if !a.IsValid() {
		slog.Warn("vehicle: invalid action, using neutral", "action", int32(a))
	}
	c.input = a.Axes()
}

// ResetInput zeroes throttle and steering.
func (c *Car) ResetInput() {
	c.input = Axes{}
}

// Respawn moves the car to the given pose at rest with neutral input.
func (c *Car) Respawn(t physics.Transform) {
	c.body.SetTransform(t)
	c.body.SetLinearVelocity(math32.Vector3{})
	c.body.SetAngularVelocity(math32.Vector3{})
	c.ResetInput()
}

// Position returns the body position.
func (c *Car) Position() math32.Vector3 {
	return c.body.Transform().Pos
}

// LocalVelocity returns the linear velocity in body coordinates.
func (c *Car) LocalVelocity() math32.Vector3 {
	return c.body.LocalVector(c.body.LinearVelocity())
}

// LocalAngularVelocity returns the angular velocity in body coordinates.
func (c *Car) LocalAngularVelocity() math32.Vector3 {
	return c.body.LocalVector(c.body.AngularVelocity())
}

// LocalDirectionTo returns the unit direction from the car to a world
// point, in body coordinates.
func (c *Car) LocalDirectionTo(target math32.Vector3) math32.Vector3 {
	return c.body.LocalVector(target.Sub(c.Position())).Normal()
}

// SetSpringLength changes the spring rest length.
func (c *Car) SetSpringLength(length float32) {
	c.Config.SpringLength = length
}

// SetSpringK changes the spring stiffness.
func (c *Car) SetSpringK(k float32) {
	c.Config.SpringK = k
}

// CameraPosition returns the chase camera position in world coordinates.
func (c *Car) CameraPosition() math32.Vector3 {
	return c.body.WorldPoint(c.cameraLocalPosition)
}

// CameraViewPoint returns the world point the chase camera looks at.
func (c *Car) CameraViewPoint() math32.Vector3 {
	return c.body.WorldPoint(c.cameraLocalViewPoint)
}

// SetCameraLocalPosition places the chase camera behind (x) and above (y)
// the car, in body coordinates.
func (c *Car) SetCameraLocalPosition(x, y float32) {
	c.cameraLocalPosition = math32.Vec3(x, y, 0)
}
