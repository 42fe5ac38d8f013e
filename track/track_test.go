// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/andreyka-konareyka/FuryEngine-sub000/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgress() *Progress {
	var cfg ProgressConfig
	cfg.Defaults()
	return NewProgress(cfg, nil)
}

func TestLapReward(t *testing.T) {
	p := newProgress()
	for n := 1; n < 72; n++ {
		p.OnTriggerEnter(n)
		assert.Equal(t, n, p.LastTrigger())
	}
	p.OnTriggerEnter(0)
	assert.Equal(t, 0, p.LastTrigger())
	assert.Equal(t, 1, p.NextTrigger())
	assert.Equal(t, 0, p.BackTriggerCounter())
	tolassert.EqualTol(t, 7.2, p.TakeReward(), 1e-3)
	assert.Equal(t, float32(0), p.TakeReward())
}

func TestRegression(t *testing.T) {
	p := newProgress()
	p.OnTriggerEnter(5)
	p.TakeReward()

	p.OnTriggerEnter(4)
	tolassert.EqualTol(t, -0.1, p.TakeReward(), 1e-6)
	assert.Equal(t, 1, p.BackTriggerCounter())
	assert.True(t, p.CheckBackTriggerCounter())

	p.OnTriggerEnter(5)
	p.OnTriggerEnter(4)
	assert.True(t, p.CheckBackTriggerCounter())

	p.OnTriggerEnter(5)
	p.OnTriggerEnter(4)
	assert.Equal(t, 3, p.BackTriggerCounter())
	assert.False(t, p.CheckBackTriggerCounter())
	assert.Equal(t, 0, p.BackTriggerCounter())
	assert.True(t, p.CheckBackTriggerCounter())
}

func TestWrapAround(t *testing.T) {
	p := newProgress()
	p.OnTriggerEnter(71)
	tolassert.EqualTol(t, -0.1, p.TakeReward(), 1e-6)
	assert.Equal(t, 1, p.BackTriggerCounter())
	assert.Equal(t, 0, p.NextTrigger())

	p.OnTriggerEnter(0)
	tolassert.EqualTol(t, 0.1, p.TakeReward(), 1e-6)
	assert.Equal(t, 1, p.BackTriggerCounter())

	// re-entering the same gate counts as going back
	p.OnTriggerEnter(0)
	tolassert.EqualTol(t, -0.1, p.TakeReward(), 1e-6)
	assert.Equal(t, 2, p.BackTriggerCounter())
}

func TestTimeoutBoundary(t *testing.T) {
	p := newProgress()
	assert.Equal(t, 1080, p.Config.TimeLimitSteps())
	for i := 1; i <= 1080; i++ {
		require.True(t, p.CheckTimeCounter(), "call %d", i)
	}
	tolassert.EqualTol(t, 18, p.TimeCounter(), 1e-3)
	assert.False(t, p.CheckTimeCounter())
	assert.False(t, p.CheckTimeCounter(), "no reset on timeout")

	p.OnTriggerEnter(1)
	assert.Equal(t, float32(0), p.TimeCounter())
	assert.True(t, p.CheckTimeCounter())

	p.OnTriggerEnter(0)
	assert.Greater(t, p.TimeCounter(), float32(0), "going back does not reset time")
}

func TestContactLatch(t *testing.T) {
	p := newProgress()
	assert.True(t, p.CheckHasContact())
	p.OnContact()
	p.OnContact()
	assert.False(t, p.CheckHasContact())
	assert.True(t, p.CheckHasContact())
}

func TestReset(t *testing.T) {
	p := newProgress()
	p.OnTriggerEnter(10)
	p.OnTriggerEnter(9)
	p.OnContact()
	p.CheckTimeCounter()
	p.Reset()
	assert.Equal(t, 0, p.LastTrigger())
	assert.Equal(t, 0, p.BackTriggerCounter())
	assert.Equal(t, float32(0), p.TimeCounter())
	assert.True(t, p.CheckHasContact())
	tolassert.EqualTol(t, 0, p.TakeReward(), 1e-6)
}

func TestShapingAsymmetry(t *testing.T) {
	p := newProgress()
	dir := p.NextTriggerVector(math32.Vec3(10, 0, 0), math32.Vec3(23, 0, 0))
	assert.Equal(t, math32.Vec3(1, 0, 0), dir)
	toward := p.TakeReward()
	tolassert.EqualTol(t, 0.05, toward, 1e-6)

	p.NextTriggerVector(math32.Vec3(10, 0, 0), math32.Vec3(-23, 0, 0))
	away := p.TakeReward()
	tolassert.EqualTol(t, -0.06, away, 1e-6)
	assert.Less(t, math32.Abs(toward), math32.Abs(away))

	p.NextTriggerVector(math32.Vec3(0, 0, 3), math32.Vec3(23, 0, 0))
	assert.Equal(t, float32(0), p.TakeReward())
}

func TestListener(t *testing.T) {
	w := physics.NewWorld()
	w.Gravity = math32.Vector3{}
	car := physics.NewDynamicBox("car", math32.Vec3(2.5, 0.4, 1.2), 6, physics.NewTransform(math32.Vec3(0, 1, 0), 0))
	other := physics.NewDynamicBox("other", math32.Vec3(1, 1, 1), 1, physics.NewTransform(math32.Vec3(0, 1, 50), 0))
	require.NoError(t, w.Add(car))
	require.NoError(t, w.Add(other))
	require.NoError(t, w.Add(physics.NewTriggerBox("Trigger 1", math32.Vec3(0, 1, 0), math32.Vec3(0.5, 3, 3), 1)))
	require.NoError(t, w.Add(physics.NewTriggerBox("Trigger 7", math32.Vec3(0, 1, 50), math32.Vec3(0.5, 3, 3), 7)))
	require.NoError(t, w.Add(physics.NewTriggerBox("Decoration", math32.Vec3(0, 1, 0), math32.Vec3(3, 3, 3), physics.NoCheckpoint)))

	p := NewProgress(newProgress().Config, car)
	w.SetEventListener(p.Listener())
	w.Step(1.0 / 60)
	assert.Equal(t, 1, p.LastTrigger(), "only the car counts")
	tolassert.EqualTol(t, 0.1, p.TakeReward(), 1e-6)

	w.Step(1.0 / 60)
	assert.Equal(t, float32(0), p.TakeReward(), "stay is ignored")
	assert.True(t, p.CheckHasContact())

	require.NoError(t, w.Add(physics.NewSolidBox("ground", math32.Vec3(0, -0.2, 0), math32.Vec3(10, 1, 10), false)))
	w.Step(1.0 / 60)
	assert.True(t, p.CheckHasContact(), "ground is not a wall")

	require.NoError(t, w.Add(physics.NewSolidBox("wall", math32.Vec3(3, 1, 0), math32.Vec3(1, 2, 4), true)))
	w.Step(1.0 / 60)
	assert.False(t, p.CheckHasContact())
}

const threeGates = `
name = "three"

[spawn]
pos = [0.0, 1.45, 0.0]
yaw = 90.0

[ground]
center = [0.0, -0.5, 0.0]
half_extents = [100.0, 0.5, 100.0]

[[walls]]
name = "north"
center = [0.0, 1.0, 20.0]
half_extents = [50.0, 1.0, 1.0]

[[checkpoints]]
index = 1
center = [10.0, 1.5, 0.0]
half_extents = [0.5, 3.0, 7.0]

[[checkpoints]]
index = 0
center = [0.0, 1.5, 0.0]
half_extents = [0.5, 3.0, 7.0]

[[checkpoints]]
index = 2
center = [20.0, 1.5, 0.0]
half_extents = [0.5, 3.0, 7.0]
`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(threeGates))
	require.NoError(t, err)
	assert.Equal(t, "three", tr.Name)
	assert.Len(t, tr.Checkpoints, 3)
	require.Len(t, tr.Walls, 1)
	assert.Equal(t, "north", tr.Walls[0].Name)

	cp, ok := tr.Checkpoint(2)
	assert.True(t, ok)
	assert.Equal(t, Vec{20, 1.5, 0}, cp.Center)
	_, ok = tr.Checkpoint(3)
	assert.False(t, ok)

	st := tr.Spawn.Transform()
	assert.Equal(t, math32.Vec3(0, 1.45, 0), st.Pos)

	w := physics.NewWorld()
	require.NoError(t, tr.Build(w))
	assert.Equal(t, 5, w.Len())
	trg, ok := w.Body("Trigger 2")
	require.True(t, ok)
	assert.Equal(t, 2, trg.Checkpoint)
	wall, ok := w.Body("north")
	require.True(t, ok)
	assert.True(t, wall.Wall)
	ground, ok := w.Body("Ground")
	require.True(t, ok)
	assert.False(t, ground.Wall)

	assert.Error(t, tr.Build(w), "duplicate names")
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "three.toml")
	require.NoError(t, os.WriteFile(fn, []byte(threeGates), 0666))
	tr, err := Load(fn)
	require.NoError(t, err)
	assert.Len(t, tr.Checkpoints, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tr, err := Parse([]byte(threeGates))
	require.NoError(t, err)

	dup := *tr
	dup.Checkpoints = append([]Checkpoint{}, tr.Checkpoints...)
	dup.Checkpoints[0].Index = 0
	assert.ErrorContains(t, dup.Validate(), "duplicate")

	gap := *tr
	gap.Checkpoints = append([]Checkpoint{}, tr.Checkpoints...)
	gap.Checkpoints[2].Index = 5
	assert.ErrorContains(t, gap.Validate(), "out of range")

	flat := *tr
	flat.Walls = []Box{{Center: Vec{0, 0, 0}, HalfExtents: Vec{1, 0, 1}}}
	assert.Error(t, flat.Validate())

	assert.Error(t, (&Track{}).Validate())

	_, err = Parse([]byte("name = 3 ="))
	assert.Error(t, err)
}

func TestOval(t *testing.T) {
	var oc OvalConfig
	oc.Defaults()
	tr := Oval(oc)
	require.NoError(t, tr.Validate())
	assert.Len(t, tr.Checkpoints, 72)
	assert.NotEmpty(t, tr.Walls)

	w := physics.NewWorld()
	w.Gravity = math32.Vector3{}
	require.NoError(t, tr.Build(w))
	car := physics.NewDynamicBox("car", math32.Vec3(2.5, 0.425, 1.25), 6, tr.Spawn.Transform())
	require.NoError(t, w.Add(car))

	p := NewProgress(newProgress().Config, car)
	w.SetEventListener(p.Listener())
	w.Step(1.0 / 60)
	assert.Equal(t, 0, p.LastTrigger(), "spawn touches no gate")
	assert.Equal(t, float32(0), p.TakeReward())
	assert.True(t, p.CheckHasContact(), "spawn touches no wall")

	next, ok := tr.Checkpoint(1)
	require.True(t, ok)
	dir := car.LocalVector(next.Center.V3().Sub(car.State.Pos)).Normal()
	assert.Greater(t, dir.X, float32(0.9), "spawn faces the next gate")

	prev, ok := tr.Checkpoint(0)
	require.True(t, ok)
	dir = car.LocalVector(prev.Center.V3().Sub(car.State.Pos)).Normal()
	assert.Less(t, dir.X, float32(-0.9))
}

func TestNumCheckpoints(t *testing.T) {
	tr := &Track{Checkpoints: []Checkpoint{{Index: 2}, {Index: 0}}}
	assert.Equal(t, 3, tr.NumCheckpoints())
	assert.Equal(t, 0, (&Track{}).NumCheckpoints())

	var oc OvalConfig
	oc.Defaults()
	oc.Checkpoints = 12
	assert.Equal(t, 12, Oval(oc).NumCheckpoints())
}
