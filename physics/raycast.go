// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"sort"

	"cogentcore.org/core/math32"
)

// Ray is a world space segment cast from From to To.
// Hit fractions are measured along this segment.
type Ray struct {
	From math32.Vector3
	To   math32.Vector3
}

// Point returns the world point at the given hit fraction.
func (r Ray) Point(fraction float32) math32.Vector3 {
	return r.From.Add(r.To.Sub(r.From).MulScalar(fraction))
}

// RaycastInfo describes one ray / body intersection.
type RaycastInfo struct {
	Body        *Body
	HitFraction float32
	WorldPoint  math32.Vector3
	WorldNormal math32.Vector3
}

// RaycastCallback is called for each intersected body in increasing
// hit fraction order. The return value controls the rest of the cast:
// a negative value ignores this hit and continues, 0 terminates the cast,
// and a value in (0,1] clips the ray so that farther hits are not reported.
type RaycastCallback func(info RaycastInfo) float32

// Continue is the [RaycastCallback] return value that ignores a hit.
const Continue float32 = -1

// ClosestHit collects the closest non-trigger hit of a cast.
// HitFraction is 1 and Normal is up when nothing was hit.
type ClosestHit struct {
	Body        *Body
	HitFraction float32
	Normal      math32.Vector3
}

// NewClosestHit returns a ClosestHit in its no-hit state.
func NewClosestHit() *ClosestHit {
	return &ClosestHit{HitFraction: 1, Normal: math32.Vec3(0, 1, 0)}
}

// HasHit returns true if something was hit.
func (ch *ClosestHit) HasHit() bool {
	return ch.Body != nil
}

// Callback is a [RaycastCallback] passing through trigger volumes.
func (ch *ClosestHit) Callback(info RaycastInfo) float32 {
	if info.Body.Kind == Trigger {
		return Continue
	}
	ch.Body = info.Body
	ch.HitFraction = info.HitFraction
	ch.Normal = info.WorldNormal
	return info.HitFraction
}

// Raycast casts the ray against every body in the world,
// reporting intersections to cb in increasing hit fraction order.
// Rays starting inside a box do not hit that box.
func (w *World) Raycast(ray Ray, cb RaycastCallback) {
	var hits []RaycastInfo
	for _, bd := range w.bodies.Values {
		if frac, nrm, ok := rayBox(ray, bd); ok {
			hits = append(hits, RaycastInfo{Body: bd, HitFraction: frac, WorldPoint: ray.Point(frac), WorldNormal: nrm})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].HitFraction < hits[j].HitFraction
	})
	maxFrac := float32(1)
	for _, h := range hits {
		if h.HitFraction > maxFrac {
			return
		}
		r := cb(h)
		switch {
		case r < 0:
			continue
		case r == 0:
			return
		default:
			maxFrac = min(r, maxFrac)
		}
	}
}

// RaycastClosest returns the closest non-trigger hit along the ray.
func (w *World) RaycastClosest(ray Ray) *ClosestHit {
	ch := NewClosestHit()
	w.Raycast(ray, ch.Callback)
	return ch
}

// rayBox intersects the ray with the body box in body coordinates
// (slab method), returning the entry fraction and world normal.
func rayBox(ray Ray, bd *Body) (float32, math32.Vector3, bool) {
	from := bd.LocalPoint(ray.From)
	dir := bd.LocalPoint(ray.To).Sub(from)
	h := bd.HalfExtents

	tmin := float32(-math32.Infinity)
	tmax := float32(math32.Infinity)
	axis := -1
	sign := float32(0)
	for a := range 3 {
		f, d, e := component(from, a), component(dir, a), component(h, a)
		if math32.Abs(d) < 1e-9 {
			if f < -e || f > e {
				return 0, math32.Vector3{}, false
			}
			continue
		}
		t1 := (-e - f) / d
		t2 := (e - f) / d
		s := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin = t1
			axis = a
			sign = s
		}
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, math32.Vector3{}, false
		}
	}
	if axis < 0 || tmin < 0 || tmin > 1 {
		return 0, math32.Vector3{}, false
	}
	var n math32.Vector3
	switch axis {
	case 0:
		n.X = sign
	case 1:
		n.Y = sign
	case 2:
		n.Z = sign
	}
	return tmin, bd.WorldVector(n), true
}

func component(v math32.Vector3, a int) float32 {
	switch a {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}
