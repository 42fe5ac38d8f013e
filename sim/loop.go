// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim advances an episode session at a fixed timestep from
// real elapsed time, and publishes copies of its state for readers
// running on other goroutines, such as a renderer.
package sim

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/episode"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
	"github.com/jinzhu/copier"
)

// Snapshot is a copy of the simulation state after a step.
type Snapshot struct {

	// total number of steps run
	Steps uint64

	// car body pose
	Pose physics.Transform

	// chase camera position and target
	Camera    math32.Vector3
	ViewPoint math32.Vector3

	// last observation
	Observation []float32

	// finished games and the score of the current one
	Game  int
	Score float32
}

// Loop runs a session at a fixed timestep.
// All access to the session must go through the loop once it runs.
type Loop struct {

	// fixed simulation step
	Step time.Duration

	// maximum number of steps per [Loop.Advance]; time beyond that is dropped.
	// Zero or less means no cap.
	Max int

	session *episode.Session

	mu    sync.Mutex
	acc   time.Duration
	steps uint64
	snap  Snapshot
}

// NewLoop returns a loop stepping s every step, at most maxSteps steps per
// advance. A maxSteps <= 0 means no cap.
func NewLoop(s *episode.Session, step time.Duration, maxSteps int) *Loop {
	l := &Loop{Step: step, Max: maxSteps, session: s}
	l.snap = l.snapshot(episode.StepResult{})
	return l
}

// Advance adds elapsed time to the accumulator and runs steps while at
// least one step of time is accumulated. It returns the number of steps run.
func (l *Loop) Advance(elapsed time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Step <= 0 {
		return 0
	}
	l.acc += elapsed
	dt := float32(l.Step.Seconds())
	n := 0
	var res episode.StepResult
	for l.acc >= l.Step && (l.Max <= 0 || n < l.Max) {
		res = l.session.Step(dt)
		l.acc -= l.Step
		l.steps++
		n++
	}
	if l.acc >= l.Step {
		slog.Debug("sim: falling behind, dropping time", "dropped", l.acc-l.acc%l.Step)
		l.acc %= l.Step
	}
	if n > 0 {
		l.snap = l.snapshot(res)
	}
	return n
}

func (l *Loop) snapshot(res episode.StepResult) Snapshot {
	car := l.session.Car
	return Snapshot{
		Steps:       l.steps,
		Pose:        car.Body().Transform(),
		Camera:      car.CameraPosition(),
		ViewPoint:   car.CameraViewPoint(),
		Observation: slices.Clone(res.Observation),
		Game:        l.session.Game(),
		Score:       l.session.Score(),
	}
}

// Snapshot returns a deep copy of the state published by the last step.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	var snap Snapshot
	errors.Log(copier.CopyWithOption(&snap, &l.snap, copier.Option{DeepCopy: true}))
	return snap
}

// Do runs f with exclusive access to the session, between steps.
func (l *Loop) Do(f func(s *episode.Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f(l.session)
}

// Run advances the loop in real time until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	tick := time.NewTicker(l.Step)
	defer tick.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			l.Advance(now.Sub(last))
			last = now
		}
	}
}
