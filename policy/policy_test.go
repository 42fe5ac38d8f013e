// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdle(t *testing.T) {
	var p Policy = Idle{}
	a, err := p.Predict(nil)
	assert.NoError(t, err)
	assert.Equal(t, vehicle.ActionNone, a)
	a, err = p.Learn([]float32{1}, 1, false)
	assert.NoError(t, err)
	assert.Equal(t, vehicle.ActionNone, a)
}

func TestKeyboard(t *testing.T) {
	kb := &Keyboard{}
	kb.KeyPress(vehicle.KeyForward)
	kb.KeyPress(vehicle.KeyRight)
	a, err := kb.Predict(nil)
	assert.NoError(t, err)
	assert.Equal(t, vehicle.ActionForwardRight, a)

	kb.KeyPress(vehicle.KeyLeft)
	a, _ = kb.Learn(nil, 0, false)
	assert.Equal(t, vehicle.ActionForward, a)

	kb.KeyRelease(vehicle.KeyForward)
	kb.KeyPress(vehicle.KeyBack)
	kb.KeyRelease(vehicle.KeyRight)
	a, _ = kb.Learn(nil, 0, false)
	assert.Equal(t, vehicle.ActionBackLeft, a)
}

func TestRandomSeeded(t *testing.T) {
	r1, err := NewRandom(42)
	require.NoError(t, err)
	r2, err := NewRandom(42)
	require.NoError(t, err)
	seen := map[vehicle.Action]bool{}
	for range 200 {
		a1, err := r1.Learn(nil, 0, false)
		require.NoError(t, err)
		a2, _ := r2.Learn(nil, 0, false)
		assert.Equal(t, a1, a2)
		assert.True(t, a1.IsValid())
		seen[a1] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRandomWeights(t *testing.T) {
	w := make([]float32, vehicle.ActionsN)
	w[vehicle.ActionForward] = 3
	r, err := NewRandom(1, w...)
	require.NoError(t, err)
	for range 50 {
		a, _ := r.Predict(nil)
		assert.Equal(t, vehicle.ActionForward, a)
	}

	_, err = NewRandom(1, 1, 2)
	assert.Error(t, err)
	w[0] = -1
	_, err = NewRandom(1, w...)
	assert.Error(t, err)
	_, err = NewRandom(1, make([]float32, vehicle.ActionsN)...)
	assert.Error(t, err)
}

// learner is a scripted policy recording what it was sent.
type learner struct {
	mu       sync.Mutex
	action   vehicle.Action
	obs      []float32
	rewards  []float32
	terminal bool
	saved    bool
	fail     bool
}

func (l *learner) Predict(obs []float32) (vehicle.Action, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.obs = obs
	return l.action, nil
}

func (l *learner) Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return 0, fmt.Errorf("diverged")
	}
	l.obs = obs
	l.rewards = append(l.rewards, reward)
	l.terminal = terminal
	return l.action, nil
}

func (l *learner) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saved = true
	return nil
}

func (l *learner) set(f func(l *learner)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f(l)
}

func TestRemote(t *testing.T) {
	srv := &learner{action: vehicle.ActionBackLeft}
	hs := httptest.NewServer(Handler(srv))
	defer hs.Close()

	r, err := Dial("ws" + strings.TrimPrefix(hs.URL, "http"))
	require.NoError(t, err)

	a, err := r.Predict([]float32{0.5, 1, 0.25})
	require.NoError(t, err)
	assert.Equal(t, vehicle.ActionBackLeft, a)

	srv.set(func(l *learner) { l.action = vehicle.ActionRight })
	a, err = r.Learn([]float32{1, 0}, 0.1, false)
	require.NoError(t, err)
	assert.Equal(t, vehicle.ActionRight, a)
	_, err = r.Learn([]float32{0, 1}, -1, true)
	require.NoError(t, err)

	require.NoError(t, r.Save())

	srv.set(func(l *learner) {
		assert.Equal(t, []float32{0, 1}, l.obs)
		assert.Equal(t, []float32{0.1, -1}, l.rewards)
		assert.True(t, l.terminal)
		assert.True(t, l.saved)
		l.fail = true
	})
	_, err = r.Learn(nil, 0, false)
	assert.ErrorContains(t, err, "diverged")

	srv.set(func(l *learner) {
		l.fail = false
		l.action = vehicle.Action(42)
	})
	_, err = r.Predict(nil)
	assert.ErrorContains(t, err, "invalid action")

	assert.NoError(t, r.Close())
}

func TestServeUnknownRequest(t *testing.T) {
	resp := serve(Idle{}, Request{Type: "train"})
	assert.Contains(t, resp.Error, "unknown request type")
	resp = serve(Idle{}, Request{Type: RequestSave})
	assert.Empty(t, resp.Error)
}

func TestDialFails(t *testing.T) {
	_, err := Dial("ws://127.0.0.1:1/")
	assert.Error(t, err)
}
