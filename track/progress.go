// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
)

// ProgressConfig holds the lap bookkeeping parameters.
type ProgressConfig struct {

	// number of checkpoints around the track; indices wrap modulo this
	Checkpoints int `default:"72"`

	// number of backward crossings that ends an episode
	BackTriggerLimit int `default:"3"`

	// seconds allowed between forward checkpoint crossings
	TimeLimit float32 `default:"18"`

	// simulation step the time counter advances by, in seconds
	TimeStep float32 `default:"0.016666668"`

	// reward for each forward crossing, and penalty for each backward one
	CheckpointReward float32 `default:"0.1"`

	// scale of the direction shaping reward
	ShapingScale float32 `default:"0.05"`

	// multiplier on the shaping reward when driving away from the next checkpoint
	ShapingPenalty float32 `default:"1.2"`

	// local velocity is divided by this before shaping
	SpeedNorm float32 `default:"23"`
}

func (pc *ProgressConfig) Defaults() {
	pc.Checkpoints = 72
	pc.BackTriggerLimit = 3
	pc.TimeLimit = 18
	pc.TimeStep = 1.0 / 60
	pc.CheckpointReward = 0.1
	pc.ShapingScale = 0.05
	pc.ShapingPenalty = 1.2
	pc.SpeedNorm = 23
}

// TimeLimitSteps returns the number of steps [Progress.CheckTimeCounter]
// allows before reporting a timeout.
func (pc *ProgressConfig) TimeLimitSteps() int {
	return int(math32.Round(pc.TimeLimit / pc.TimeStep))
}

// Progress tracks checkpoint crossings of one car, accumulates its reward
// and signals the episode ending conditions. [Progress.Listener] feeds it
// from the world the car drives in.
type Progress struct {
	Config ProgressConfig

	// car body whose events count; nil accepts any dynamic body
	car *physics.Body

	lastTrigger  int
	backTriggers int
	hasContact   bool

	// time counted in whole steps
	steps int

	reward float32
}

// NewProgress returns a tracker for the given car body.
func NewProgress(cfg ProgressConfig, car *physics.Body) *Progress {
	return &Progress{Config: cfg, car: car}
}

// OnTriggerEnter handles the car entering the trigger of checkpoint n.
func (p *Progress) OnTriggerEnter(n int) {
	final := p.Config.Checkpoints - 1
	switch {
	case p.lastTrigger == 0 && n == final:
		p.regress()
	case p.lastTrigger == final && n == 0:
		p.advance()
	case p.lastTrigger < n:
		p.advance()
	default:
		p.regress()
	}
	p.lastTrigger = n
}

func (p *Progress) advance() {
	p.reward += p.Config.CheckpointReward
	p.steps = 0
}

func (p *Progress) regress() {
	p.reward -= p.Config.CheckpointReward
	p.backTriggers++
}

// CheckTimeCounter advances the time counter by one step and returns true
// while the time limit has not been reached. It returns false on timeout,
// without resetting.
func (p *Progress) CheckTimeCounter() bool {
	if p.steps < p.Config.TimeLimitSteps() {
		p.steps++
		return true
	}
	return false
}

// CheckBackTriggerCounter returns false, and resets the counter, once the
// backward crossing limit is reached.
func (p *Progress) CheckBackTriggerCounter() bool {
	if p.backTriggers < p.Config.BackTriggerLimit {
		return true
	}
	p.backTriggers = 0
	return false
}

// CheckHasContact returns false, clearing the latch, if a wall contact
// happened since the last check. True means no contact.
func (p *Progress) CheckHasContact() bool {
	if p.hasContact {
		p.hasContact = false
		return false
	}
	return true
}

// OnContact latches a wall contact.
func (p *Progress) OnContact() {
	p.hasContact = true
}

// Reset clears all counters for a new episode. Accumulated reward is kept
// until the next [Progress.TakeReward].
func (p *Progress) Reset() {
	p.lastTrigger = 0
	p.backTriggers = 0
	p.hasContact = false
	p.steps = 0
}

// TakeReward returns the accumulated reward and zeroes it.
func (p *Progress) TakeReward() float32 {
	r := p.reward
	p.reward = 0
	return r
}

// AddReward adds to the accumulated reward.
func (p *Progress) AddReward(r float32) {
	p.reward += r
}

// LastTrigger returns the index of the last checkpoint crossed.
func (p *Progress) LastTrigger() int {
	return p.lastTrigger
}

// NextTrigger returns the index of the checkpoint expected next.
func (p *Progress) NextTrigger() int {
	return (p.lastTrigger + 1) % p.Config.Checkpoints
}

// TimeCounter returns the time since the last forward crossing, in seconds.
func (p *Progress) TimeCounter() float32 {
	return float32(p.steps) * p.Config.TimeStep
}

// BackTriggerCounter returns the number of backward crossings.
func (p *Progress) BackTriggerCounter() int {
	return p.backTriggers
}

// NextTriggerVector adds the direction shaping reward for a car moving
// with local velocity localVel towards the next checkpoint, seen in the
// local direction localDir, and returns that direction normalized.
// Driving away is penalized ShapingPenalty times more than driving
// towards is rewarded.
func (p *Progress) NextTriggerVector(localDir, localVel math32.Vector3) math32.Vector3 {
	dir := localDir.Normal()
	d := localVel.MulScalar(1 / p.Config.SpeedNorm).Dot(dir)
	r := d * p.Config.ShapingScale
	if d < 0 {
		r *= p.Config.ShapingPenalty
	}
	p.reward += r
	return dir
}

func (p *Progress) isCar(bd *physics.Body) bool {
	return p.car == nil || bd == p.car
}

// OnTrigger counts checkpoint entries of the car. Stay and Exit are ignored.
func (p *Progress) OnTrigger(ev physics.TriggerEvent) {
	if ev.Type != physics.TriggerStart || !ev.Trigger.IsCheckpoint() || !p.isCar(ev.Other) {
		return
	}
	p.OnTriggerEnter(ev.Trigger.Checkpoint)
}

// OnContactEvent latches contacts between the car and wall bodies.
func (p *Progress) OnContactEvent(ev physics.ContactEvent) {
	switch {
	case p.isCar(ev.Body1) && ev.Body2.Wall:
		p.OnContact()
	case p.isCar(ev.Body2) && ev.Body1.Wall:
		p.OnContact()
	}
}

// Listener returns the world event listener driving this tracker.
func (p *Progress) Listener() physics.EventListener {
	return physics.ListenerFuncs{Trigger: p.OnTrigger, Contact: p.OnContactEvent}
}
