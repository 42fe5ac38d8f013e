// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"

	"cogentcore.org/lab/base/randx"
	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
)

// Random picks actions at random, uniformly or with fixed weights.
// It ignores observations and rewards.
type Random struct {

	// per action probabilities, normalized; nil means uniform
	weights []float32

	rand randx.Rand
}

// NewRandom returns a seeded random policy. If weights are given there
// must be one per action; they are normalized to sum to 1.
func NewRandom(seed int64, weights ...float32) (*Random, error) {
	r := &Random{rand: randx.NewSysRand(seed)}
	if len(weights) == 0 {
		return r, nil
	}
	if len(weights) != int(vehicle.ActionsN) {
		return nil, fmt.Errorf("policy: %d action weights, want %d", len(weights), vehicle.ActionsN)
	}
	var sum float32
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("policy: negative action weight %g", w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("policy: action weights sum to zero")
	}
	r.weights = make([]float32, len(weights))
	for i, w := range weights {
		r.weights[i] = w / sum
	}
	return r, nil
}

func (r *Random) choose() vehicle.Action {
	if r.weights == nil {
		return vehicle.Action(r.rand.Intn(int(vehicle.ActionsN)))
	}
	return vehicle.Action(randx.PChoose32(r.weights, r.rand))
}

func (r *Random) Predict(obs []float32) (vehicle.Action, error) {
	return r.choose(), nil
}

func (r *Random) Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error) {
	return r.choose(), nil
}
