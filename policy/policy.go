// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package policy provides the control sources that choose a car's
// discrete action from an observation: human keyboard input, a random
// baseline, and a websocket bridge to an external learner.
package policy

import (
	"sync"

	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
)

// Policy chooses actions from observations.
// Predict is called on the first step of an episode, Learn on every
// following step with the reward earned since the previous call.
// On the terminal step the returned action is not applied.
type Policy interface {
	Predict(obs []float32) (vehicle.Action, error)
	Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error)
}

// Saver is implemented by policies that can persist what they learned.
type Saver interface {
	Save() error
}

// Idle always returns [vehicle.ActionNone].
type Idle struct{}

func (Idle) Predict(obs []float32) (vehicle.Action, error) {
	return vehicle.ActionNone, nil
}

func (Idle) Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error) {
	return vehicle.ActionNone, nil
}

// Keyboard turns held driving keys into actions. Key events may come
// from another goroutine than the one calling Predict and Learn.
type Keyboard struct {
	mu   sync.Mutex
	axes vehicle.Axes
}

// KeyPress records a driving key going down.
func (kb *Keyboard) KeyPress(k vehicle.Key) {
	kb.mu.Lock()
	kb.axes.Press(k)
	kb.mu.Unlock()
}

// KeyRelease records a driving key going up.
func (kb *Keyboard) KeyRelease(k vehicle.Key) {
	kb.mu.Lock()
	kb.axes.Release(k)
	kb.mu.Unlock()
}

// Axes returns the current key axes.
func (kb *Keyboard) Axes() vehicle.Axes {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.axes
}

func (kb *Keyboard) Predict(obs []float32) (vehicle.Action, error) {
	return kb.Axes().Action(), nil
}

func (kb *Keyboard) Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error) {
	return kb.Axes().Action(), nil
}
