// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package episode runs the per-tick control loop of one car on a track:
// it applies the vehicle forces, steps the physics world, assembles the
// observation, asks a policy for the next action and ends episodes on
// timeout, repeated wrong-way crossings or wall contact.
package episode

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
	"github.com/andreyka-konareyka/FuryEngine-sub000/policy"
	"github.com/andreyka-konareyka/FuryEngine-sub000/track"
	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
)

// CarName is the name of the car body in the world.
const CarName = "Car"

// Config holds the episode reward and termination parameters.
type Config struct {

	// subtracted from the reward of every learning step
	StepPenalty float32 `default:"0"`

	// reward of the step on which the time limit runs out
	TimeoutReward float32 `default:"-1"`

	// subtracted when the wrong-way crossing limit is reached
	BackTriggerPenalty float32 `default:"0.1"`

	// subtracted on wall contact
	ContactPenalty float32 `default:"0.1"`

	// local angular velocity is divided by this in the observation
	AngularSpeedNorm float32 `default:"2"`
}

func (c *Config) Defaults() {
	c.StepPenalty = 0
	c.TimeoutReward = -1
	c.BackTriggerPenalty = 0.1
	c.ContactPenalty = 0.1
	c.AngularSpeedNorm = 2
}

// Reason tells why an episode ended.
type Reason int32

const (
	// ReasonNone means the episode goes on.
	ReasonNone Reason = iota
	ReasonTimeout
	ReasonBackTriggers
	ReasonContact
)

var reasonNames = [...]string{"None", "Timeout", "BackTriggers", "Contact"}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("Reason(%d)", int32(r))
	}
	return reasonNames[r]
}

// StepResult is the outcome of one control step.
type StepResult struct {
	Observation []float32

	// action applied to the car; not applied on terminal steps
	Action vehicle.Action

	// reward passed to the policy; zero on the first step of an episode
	Reward float32

	// whether the episode ended and the car was respawned
	Terminal bool

	Reason Reason
}

// Session is one car driven by a policy on a track.
type Session struct {
	Config Config

	World    *physics.World
	Car      *vehicle.Car
	Track    *track.Track
	Progress *track.Progress
	Policy   policy.Policy
	Scores   *ScoreLog

	// next control step starts a new episode
	first bool

	terminal bool

	game  int
	score float32
	steps int
}

// New builds a world from the track with the car at its spawn pose and
// returns a session driving it with pol.
// The number of checkpoints in pc is taken from the track.
func New(cfg Config, tr *track.Track, vc vehicle.Config, pc track.ProgressConfig, pol policy.Policy) (*Session, error) {
	n := tr.NumCheckpoints()
	if n == 0 {
		return nil, fmt.Errorf("episode: track %q has no checkpoints", tr.Name)
	}
	if pc.Checkpoints != n {
		slog.Debug("episode: checkpoint count taken from track", "name", tr.Name, "config", pc.Checkpoints, "track", n)
		pc.Checkpoints = n
	}
	w := physics.NewWorld()
	if err := tr.Build(w); err != nil {
		return nil, fmt.Errorf("episode: building track %q: %w", tr.Name, err)
	}
	body := vehicle.NewBody(CarName, &vc, tr.Spawn.Transform())
	if err := w.Add(body); err != nil {
		return nil, fmt.Errorf("episode: %w", err)
	}
	s := &Session{
		Config:   cfg,
		World:    w,
		Car:      vehicle.New(vc, body, w),
		Track:    tr,
		Progress: track.NewProgress(pc, body),
		Policy:   pol,
		Scores:   NewScoreLog(),
		first:    true,
	}
	w.SetEventListener(s.Progress.Listener())
	return s, nil
}

// Tick applies the car forces and advances the world by dt.
// Checkpoint and contact events feed the progress tracker.
// A non-positive dt does nothing.
func (s *Session) Tick(dt float32) {
	if dt <= 0 {
		return
	}
	s.Car.Tick(dt)
	s.World.Step(dt)
}

// Observation returns the perception rays followed by the normalized
// local velocity, the normalized local angular velocity and the local
// direction to the next checkpoint. Computing it adds the direction
// shaping reward.
func (s *Session) Observation() []float32 {
	next := s.Progress.NextTrigger()
	obs := s.Car.Rays(next)
	vel := s.Car.LocalVelocity()
	nv := vel.MulScalar(1 / s.Progress.Config.SpeedNorm)
	av := s.Car.LocalAngularVelocity().MulScalar(1 / s.Config.AngularSpeedNorm)
	obs = append(obs, nv.X, nv.Y, nv.Z, av.X, av.Y, av.Z)

	var dir math32.Vector3
	if cp, ok := s.Track.Checkpoint(next); ok {
		dir = s.Progress.NextTriggerVector(s.Car.LocalDirectionTo(cp.Center.V3()), vel)
	} else {
		slog.Warn("episode: next checkpoint not found", "checkpoint", next)
	}
	return append(obs, dir.X, dir.Y, dir.Z)
}

// Control runs one control step: on the first step of an episode the
// policy predicts an action and pending reward is discarded; afterwards
// the reward is drained, the episode ending conditions are checked, and
// the policy learns from the step.
func (s *Session) Control() StepResult {
	obs := s.Observation()
	if s.first {
		s.first = false
		s.terminal = false
		s.Progress.TakeReward()
		a, err := s.Policy.Predict(obs)
		if err != nil {
			slog.Error("episode: predict", "err", err)
			a = vehicle.ActionNone
		}
		s.Car.SetAction(a)
		return StepResult{Observation: obs, Action: a}
	}

	reward := s.Progress.TakeReward() - s.Config.StepPenalty
	reason := ReasonNone
	switch {
	case !s.Progress.CheckTimeCounter():
		reward = s.Config.TimeoutReward
		reason = ReasonTimeout
	case !s.Progress.CheckBackTriggerCounter():
		reward -= s.Config.BackTriggerPenalty
		reason = ReasonBackTriggers
	case !s.Progress.CheckHasContact():
		reward -= s.Config.ContactPenalty
		reason = ReasonContact
	}

	if reason != ReasonNone {
		if _, err := s.Policy.Learn(obs, reward, true); err != nil {
			slog.Error("episode: learn", "err", err)
		}
		s.endGame(reason)
		return StepResult{Observation: obs, Reward: reward, Terminal: true, Reason: reason}
	}

	s.score += reward
	s.steps++
	a, err := s.Policy.Learn(obs, reward, false)
	if err != nil {
		slog.Error("episode: learn", "err", err)
		a = vehicle.ActionNone
	}
	s.Car.SetAction(a)
	return StepResult{Observation: obs, Action: a, Reward: reward}
}

func (s *Session) endGame(reason Reason) {
	slog.Info("episode ended", "game", s.game, "score", s.score, "steps", s.steps, "reason", reason)
	s.Scores.Add(s.game, s.score, s.steps, reason)
	s.score = 0
	s.steps = 0
	s.game++
	s.Respawn()
	s.terminal = true
}

// Step runs [Session.Tick] then [Session.Control].
func (s *Session) Step(dt float32) StepResult {
	s.Tick(dt)
	return s.Control()
}

// Respawn puts the car back at the spawn pose at rest, resets the
// progress counters, and makes the next control step start an episode.
func (s *Session) Respawn() {
	s.Car.Respawn(s.Track.Spawn.Transform())
	s.Progress.Reset()
	s.first = true
}

// TakeReward returns the reward accumulated since the last drain and
// zeroes it.
func (s *Session) TakeReward() float32 {
	return s.Progress.TakeReward()
}

// IsTerminal reports whether the last control step ended an episode.
// The car has already been respawned when it returns true.
func (s *Session) IsTerminal() bool {
	return s.terminal
}

// Game returns the number of finished games.
func (s *Session) Game() int {
	return s.game
}

// Score returns the reward summed over the current game.
func (s *Session) Score() float32 {
	return s.score
}
