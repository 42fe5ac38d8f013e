// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/cli"
	"github.com/andreyka-konareyka/FuryEngine-sub000/episode"
	"github.com/andreyka-konareyka/FuryEngine-sub000/policy"
	"github.com/andreyka-konareyka/FuryEngine-sub000/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T) *Config {
	c := &Config{}
	require.NoError(t, cli.SetFromDefaults(c))
	c.Progress.Checkpoints = 12
	c.Progress.TimeLimit = 0.25
	return c
}

func TestRunIdle(t *testing.T) {
	dir := t.TempDir()
	c := newConfig(t)
	c.Policy = "idle"
	c.Episodes = 2
	c.Scores = filepath.Join(dir, "scores.csv")
	c.SaveTrack = filepath.Join(dir, "oval.toml")
	require.NoError(t, Run(c))

	data, err := os.ReadFile(c.Scores)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3, "header and two games")
	assert.Contains(t, lines[1], "Timeout")

	tr, err := track.Load(c.SaveTrack)
	require.NoError(t, err)
	assert.Len(t, tr.Checkpoints, 12)
}

func TestRunTrackFile(t *testing.T) {
	dir := t.TempDir()
	var oc track.OvalConfig
	oc.Defaults()
	oc.Checkpoints = 8
	fn := filepath.Join(dir, "oval.toml")
	require.NoError(t, track.Oval(oc).Save(fn))

	c := newConfig(t)
	c.Track = fn
	c.Episodes = 0
	c.MaxSteps = 20
	require.NoError(t, Run(c))
	assert.Equal(t, 8, c.Progress.Checkpoints)
}

func TestRunRealtime(t *testing.T) {
	c := newConfig(t)
	c.Policy = "idle"
	c.Realtime = true
	c.Episodes = 1
	c.Scores = filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, Run(c))

	data, err := os.ReadFile(c.Scores)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.GreaterOrEqual(t, len(lines), 2)
}

func TestRealtimeStopsStepping(t *testing.T) {
	c := newConfig(t)
	c.Policy = "idle"
	c.Realtime = true
	c.Episodes = 1
	tr, err := loadTrack(c)
	require.NoError(t, err)
	s, err := episode.New(c.Episode, tr, c.Vehicle, c.Progress, policy.Idle{})
	require.NoError(t, err)

	runRealtime(c, s)
	game, elapsed := s.Game(), s.Progress.TimeCounter()
	assert.GreaterOrEqual(t, game, 1)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, game, s.Game())
	assert.Equal(t, elapsed, s.Progress.TimeCounter(), "no steps after return")
}

func TestRunErrors(t *testing.T) {
	c := newConfig(t)
	c.Policy = "psychic"
	assert.ErrorContains(t, Run(c), "unknown policy")

	c = newConfig(t)
	c.Episodes = 0
	assert.Error(t, Run(c))

	c = newConfig(t)
	c.Track = filepath.Join(t.TempDir(), "missing.toml")
	assert.Error(t, Run(c))
}
