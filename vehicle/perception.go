// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

import (
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
)

// Rays casts RayCount radial rays in the body horizontal plane and returns
// interleaved [hitFraction, checkpointFlag] pairs. The flag is 1 when the
// ray passed through the trigger of checkpoint nextCheckpoint before
// hitting anything solid.
func (c *Car) Rays(nextCheckpoint int) []float32 {
	cfg := &c.Config
	n := cfg.RayCount
	out := make([]float32, 0, 2*n)
	down := math32.Vec3(0, cfg.RayHeight, 0)
	origin := c.Position().Sub(down)
	for i := range n {
		theta := 2 * math32.Pi * float32(i) / float32(n)
		dir := math32.Vec3(math32.Cos(theta), 0, math32.Sin(theta)).MulScalar(cfg.RayLength)
		target := c.body.WorldPoint(dir).Sub(down)
		frac, flag := c.castPerception(physics.Ray{From: origin, To: target}, nextCheckpoint)
		fl := float32(0)
		if flag {
			fl = 1
		}
		out = append(out, frac, fl)
	}
	return out
}

// castPerception casts one perception ray, passing through trigger volumes
// and noting whether the sought checkpoint was crossed.
func (c *Car) castPerception(ray physics.Ray, checkpoint int) (float32, bool) {
	frac := float32(1)
	flag := false
	c.world.Raycast(ray, func(info physics.RaycastInfo) float32 {
		if c.isSelf(info.Body) {
			return physics.Continue
		}
		if info.Body.Kind == physics.Trigger {
			if info.Body.Checkpoint == checkpoint {
				flag = true
			}
			return physics.Continue
		}
		frac = info.HitFraction
		return info.HitFraction
	})
	return frac, flag
}

func (c *Car) isSelf(bd *physics.Body) bool {
	own, ok := c.body.(*physics.Body)
	return ok && own == bd
}
