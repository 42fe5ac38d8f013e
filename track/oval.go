// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"cogentcore.org/core/math32"
)

// OvalConfig configures the generated elliptical track of [Oval].
type OvalConfig struct {

	// number of checkpoint gates
	Checkpoints int `default:"72"`

	// centerline semi-axis along X
	RadiusX float32 `default:"120"`

	// centerline semi-axis along Z
	RadiusZ float32 `default:"80"`

	// distance between the inner and outer walls
	Width float32 `default:"14"`

	// wall block height
	WallHeight float32 `default:"2"`

	// wall block size along the ground
	WallThickness float32 `default:"2"`

	// height of the checkpoint gates
	GateHeight float32 `default:"6"`

	// height the car body is spawned at
	SpawnHeight float32 `default:"1.45"`
}

func (oc *OvalConfig) Defaults() {
	oc.Checkpoints = 72
	oc.RadiusX = 120
	oc.RadiusZ = 80
	oc.Width = 14
	oc.WallHeight = 2
	oc.WallThickness = 2
	oc.GateHeight = 6
	oc.SpawnHeight = 1.45
}

// Oval returns an elliptical track driven in the direction of increasing
// angle in the XZ plane. Gates are thin boxes across the track, walls are
// rows of blocks along both edges, and the car spawns halfway between
// gate 0 and gate 1 facing gate 1.
func Oval(oc OvalConfig) *Track {
	n := oc.Checkpoints
	tr := &Track{Name: "oval"}
	margin := oc.Width + 20
	tr.Ground = Box{
		Name:        "Ground",
		Center:      Vec{0, -0.5, 0},
		HalfExtents: Vec{oc.RadiusX + margin, 0.5, oc.RadiusZ + margin},
	}

	half := oc.Width / 2
	for i := range n {
		th := 2 * math32.Pi * float32(i) / float32(n)
		c := ellipsePoint(oc.RadiusX, oc.RadiusZ, th)
		t := ellipseTangent(oc.RadiusX, oc.RadiusZ, th)
		he := Vec{half, oc.GateHeight / 2, 0.5}
		if math32.Abs(t.X) > math32.Abs(t.Z) {
			he = Vec{0.5, oc.GateHeight / 2, half}
		}
		c.Y = oc.GateHeight / 4
		tr.Checkpoints = append(tr.Checkpoints, Checkpoint{Index: i, Center: VecOf(c), HalfExtents: he})
	}

	wh := oc.WallThickness / 2
	off := half + wh
	tr.Walls = append(tr.Walls, wallRing(oc.RadiusX-off, oc.RadiusZ-off, wh, oc.WallHeight)...)
	tr.Walls = append(tr.Walls, wallRing(oc.RadiusX+off, oc.RadiusZ+off, wh, oc.WallHeight)...)

	th := math32.Pi / float32(n)
	pos := ellipsePoint(oc.RadiusX, oc.RadiusZ, th)
	pos.Y = oc.SpawnHeight
	dir := ellipseTangent(oc.RadiusX, oc.RadiusZ, th)
	tr.Spawn = Spawn{Pos: VecOf(pos), Yaw: math32.Atan2(-dir.Z, dir.X) * math32.RadToDegFactor}
	return tr
}

// wallRing returns touching wall blocks along an ellipse.
func wallRing(rx, rz, half, height float32) []Box {
	// Ramanujan's approximation of the ellipse perimeter
	h := (rx - rz) * (rx - rz) / ((rx + rz) * (rx + rz))
	perim := math32.Pi * (rx + rz) * (1 + 3*h/(10+math32.Sqrt(4-3*h)))
	n := int(math32.Ceil(perim / (2 * half)))
	walls := make([]Box, n)
	for i := range n {
		c := ellipsePoint(rx, rz, 2*math32.Pi*float32(i)/float32(n))
		c.Y = height / 2
		walls[i] = Box{Center: VecOf(c), HalfExtents: Vec{half, height / 2, half}}
	}
	return walls
}

func ellipsePoint(rx, rz, th float32) math32.Vector3 {
	return math32.Vec3(rx*math32.Cos(th), 0, rz*math32.Sin(th))
}

func ellipseTangent(rx, rz, th float32) math32.Vector3 {
	return math32.Vec3(-rx*math32.Sin(th), 0, rz*math32.Cos(th)).Normal()
}
