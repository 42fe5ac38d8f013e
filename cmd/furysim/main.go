// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command furysim runs headless driving episodes of a car on a track,
// controlled by a random, idle or remote policy, and logs the game scores.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"github.com/andreyka-konareyka/FuryEngine-sub000/episode"
	"github.com/andreyka-konareyka/FuryEngine-sub000/policy"
	"github.com/andreyka-konareyka/FuryEngine-sub000/sim"
	"github.com/andreyka-konareyka/FuryEngine-sub000/track"
	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
	"golang.org/x/sync/errgroup"
)

// Config is the configuration of a furysim run.
type Config struct {

	// Track is a TOML track file; a generated oval is used if empty.
	Track string `posarg:"0" required:"-"`

	// Policy chooses actions: random, idle or remote.
	Policy string `default:"random"`

	// URL of the remote learner, for the remote policy.
	URL string `default:"ws://localhost:8765/"`

	// Seed of the random policy.
	Seed int64 `default:"1"`

	// Episodes stops the run after this many games; 0 means no limit.
	Episodes int `default:"10"`

	// MaxSteps stops the run after this many steps; 0 means no limit.
	MaxSteps int `default:"0"`

	// Realtime runs the simulation at wall clock speed until interrupted
	// or the episode limit is reached.
	Realtime bool

	// Scores is a CSV file to write the per game scores to.
	Scores string

	// SaveTrack writes the track used to this TOML file.
	SaveTrack string

	// Debug enables debug logging.
	Debug bool

	// Oval configures the generated track.
	Oval track.OvalConfig

	// Vehicle tuning.
	Vehicle vehicle.Config

	// Progress holds the lap bookkeeping parameters.
	Progress track.ProgressConfig

	// Episode holds the reward and termination parameters.
	Episode episode.Config
}

func main() {
	opts := cli.DefaultOptions("furysim", "Headless driving episodes for training and evaluating car policies.")
	opts.DefaultFiles = []string{"furysim.toml"}
	cli.Run(opts, &Config{}, Run)
}

// Run runs driving episodes and logs their scores.
func Run(c *Config) error { //cli:cmd -root
	logx.UserLevel = slog.LevelInfo
	if c.Debug {
		logx.UserLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logx.UserLevel})))

	if c.Episodes <= 0 && c.MaxSteps <= 0 && !c.Realtime {
		return errors.New("furysim: set Episodes or MaxSteps, or run in Realtime")
	}
	tr, err := loadTrack(c)
	if err != nil {
		return err
	}
	if c.SaveTrack != "" {
		if err := tr.Save(c.SaveTrack); err != nil {
			return err
		}
	}
	pol, err := newPolicy(c)
	if err != nil {
		return err
	}
	if rm, ok := pol.(*policy.Remote); ok {
		defer func() { errors.Log(rm.Close()) }()
	}

	s, err := episode.New(c.Episode, tr, c.Vehicle, c.Progress, pol)
	if err != nil {
		return err
	}
	slog.Info("furysim: starting", "track", tr.Name, "checkpoints", len(tr.Checkpoints), "policy", c.Policy)
	if c.Realtime {
		runRealtime(c, s)
	} else {
		runFast(c, s)
	}
	slog.Info("furysim: done", "games", s.Game())

	if c.Scores != "" {
		if err := s.Scores.SaveCSV(c.Scores); err != nil {
			return err
		}
	}
	if sv, ok := pol.(policy.Saver); ok {
		errors.Log(sv.Save())
	}
	return nil
}

func loadTrack(c *Config) (*track.Track, error) {
	if c.Track == "" {
		c.Oval.Checkpoints = c.Progress.Checkpoints
		return track.Oval(c.Oval), nil
	}
	tr, err := track.Load(c.Track)
	if err != nil {
		return nil, err
	}
	c.Progress.Checkpoints = len(tr.Checkpoints)
	return tr, nil
}

func newPolicy(c *Config) (policy.Policy, error) {
	switch c.Policy {
	case "random":
		return policy.NewRandom(c.Seed)
	case "idle":
		return policy.Idle{}, nil
	case "remote":
		return policy.Dial(c.URL)
	}
	return nil, fmt.Errorf("furysim: unknown policy %q", c.Policy)
}

func done(c *Config, s *episode.Session, steps int) bool {
	if c.Episodes > 0 && s.Game() >= c.Episodes {
		return true
	}
	return c.MaxSteps > 0 && steps >= c.MaxSteps
}

// runFast steps the session as fast as possible.
func runFast(c *Config, s *episode.Session) {
	dt := c.Progress.TimeStep
	for steps := 0; !done(c, s, steps); steps++ {
		s.Step(dt)
	}
}

// runRealtime steps the session at wall clock speed until interrupted
// or done, logging progress every second.
func runRealtime(c *Config, s *episode.Session) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	step := time.Duration(float64(c.Progress.TimeStep) * float64(time.Second))
	loop := sim.NewLoop(s, step, 10)
	ctx, cancel := context.WithCancel(ctx)
	var g errgroup.Group
	g.Go(func() error {
		loop.Run(ctx)
		return nil
	})
	// the loop must be stopped before the caller reads the session
	defer g.Wait()
	defer cancel()

	report := time.NewTicker(time.Second)
	defer report.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-report.C:
			snap := loop.Snapshot()
			slog.Debug("furysim", "steps", snap.Steps, "game", snap.Game, "score", snap.Score, "pos", snap.Pose.Pos)
			finished := false
			loop.Do(func(s *episode.Session) {
				finished = done(c, s, int(snap.Steps))
			})
			if finished {
				return
			}
		}
	}
}
