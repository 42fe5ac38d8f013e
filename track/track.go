// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package track defines race tracks (ground, walls, numbered checkpoint
// gates and a spawn pose), their TOML file format, and the lap progress
// tracker that turns checkpoint crossings into reward.
package track

import (
	"bytes"
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
	"github.com/pelletier/go-toml/v2"
)

// Vec is a 3D vector as stored in track files: [x, y, z].
type Vec [3]float32

// V3 returns the vector as a [math32.Vector3].
func (v Vec) V3() math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// VecOf returns v as a [Vec].
func VecOf(v math32.Vector3) Vec {
	return Vec{v.X, v.Y, v.Z}
}

// Spawn is the pose a car starts each episode from.
type Spawn struct {
	Pos Vec `toml:"pos"`

	// heading about the vertical axis, in degrees
	Yaw float32 `toml:"yaw"`
}

// Transform returns the spawn pose.
func (s Spawn) Transform() physics.Transform {
	return physics.NewTransform(s.Pos.V3(), math32.DegToRad(s.Yaw))
}

// Box is an axis-aligned static box.
type Box struct {
	Name        string `toml:"name,omitempty"`
	Center      Vec    `toml:"center"`
	HalfExtents Vec    `toml:"half_extents"`
}

// Checkpoint is a numbered trigger gate.
type Checkpoint struct {
	Index       int `toml:"index"`
	Center      Vec `toml:"center"`
	HalfExtents Vec `toml:"half_extents"`
}

// Track is a complete track definition.
type Track struct {
	Name        string       `toml:"name"`
	Spawn       Spawn        `toml:"spawn"`
	Ground      Box          `toml:"ground"`
	Walls       []Box        `toml:"walls"`
	Checkpoints []Checkpoint `toml:"checkpoints"`
}

// Parse reads and validates a track from TOML data.
func Parse(data []byte) (*Track, error) {
	tr := &Track{}
	if err := toml.Unmarshal(data, tr); err != nil {
		return nil, fmt.Errorf("track: parse: %w", err)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

// Load reads and validates a track file.
func Load(filename string) (*Track, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	tr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tr, nil
}

// Save writes the track to a TOML file.
func (tr *Track) Save(filename string) error {
	var b bytes.Buffer
	enc := toml.NewEncoder(&b)
	enc.SetIndentTables(true)
	if err := enc.Encode(tr); err != nil {
		return err
	}
	return os.WriteFile(filename, b.Bytes(), 0666)
}

// Validate checks that checkpoint indices are exactly 0..n-1 and that all
// boxes have a positive size.
func (tr *Track) Validate() error {
	n := len(tr.Checkpoints)
	if n == 0 {
		return errors.New("track: no checkpoints")
	}
	seen := make([]bool, n)
	for _, cp := range tr.Checkpoints {
		if cp.Index < 0 || cp.Index >= n {
			return fmt.Errorf("track: checkpoint index %d out of range [0,%d)", cp.Index, n)
		}
		if seen[cp.Index] {
			return fmt.Errorf("track: duplicate checkpoint index %d", cp.Index)
		}
		seen[cp.Index] = true
		if !positive(cp.HalfExtents) {
			return fmt.Errorf("track: checkpoint %d has non-positive size", cp.Index)
		}
	}
	if !positive(tr.Ground.HalfExtents) {
		return errors.New("track: ground has non-positive size")
	}
	for i, wl := range tr.Walls {
		if !positive(wl.HalfExtents) {
			return fmt.Errorf("track: wall %d has non-positive size", i)
		}
	}
	return nil
}

func positive(v Vec) bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}

// NumCheckpoints returns the number of checkpoint indices the track
// spans: the highest index plus one.
func (tr *Track) NumCheckpoints() int {
	n := 0
	for _, cp := range tr.Checkpoints {
		n = max(n, cp.Index+1)
	}
	return n
}

// Checkpoint returns the checkpoint with index i.
func (tr *Track) Checkpoint(i int) (Checkpoint, bool) {
	for _, cp := range tr.Checkpoints {
		if cp.Index == i {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// Build adds the ground, walls and checkpoint triggers to the world.
func (tr *Track) Build(w *physics.World) error {
	gname := tr.Ground.Name
	if gname == "" {
		gname = "Ground"
	}
	if err := w.Add(physics.NewSolidBox(gname, tr.Ground.Center.V3(), tr.Ground.HalfExtents.V3(), false)); err != nil {
		return err
	}
	for i, wl := range tr.Walls {
		name := wl.Name
		if name == "" {
			name = fmt.Sprintf("Wall %d", i)
		}
		if err := w.Add(physics.NewSolidBox(name, wl.Center.V3(), wl.HalfExtents.V3(), true)); err != nil {
			return err
		}
	}
	for _, cp := range tr.Checkpoints {
		name := fmt.Sprintf("Trigger %d", cp.Index)
		if err := w.Add(physics.NewTriggerBox(name, cp.Center.V3(), cp.HalfExtents.V3(), cp.Index)); err != nil {
			return err
		}
	}
	return nil
}
