// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

import "cogentcore.org/core/math32"

// hitEpsilon is the tolerance for treating a hit fraction as "no hit".
const hitEpsilon = 1.1920929e-07

// NoHit returns true if the hit fraction means the ray reached its end.
func NoHit(hitFraction float32) bool {
	return math32.Abs(1-hitFraction) <= hitEpsilon
}

// Suspension returns the spring plus damper force of one wheel and the
// current compressed length, given the previous tick length and the
// fraction of the spring ray at which the ground was hit. dt must be > 0.
func Suspension(springLength, springK, damperK, lastLength, hitFraction, dt float32) (force, length float32) {
	length = springLength * hitFraction
	deltaX := springLength - length
	force = springK * deltaX
	force += (lastLength - length) / dt * damperK
	return force, length
}
