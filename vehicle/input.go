// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

// Key is a driving key.
type Key int32

const (
	KeyForward Key = iota
	KeyBack
	KeyRight
	KeyLeft
)

// Axes are the signed throttle and steering inputs.
// Forward > 0 accelerates, Right > 0 steers right.
type Axes struct {
	Forward float32
	Right   float32
}

// Press accumulates a key press. Opposite keys held together cancel out.
func (ax *Axes) Press(k Key) {
	switch k {
	case KeyForward:
		ax.Forward++
	case KeyBack:
		ax.Forward--
	case KeyRight:
		ax.Right++
	case KeyLeft:
		ax.Right--
	}
}

// Release undoes a [Axes.Press] of the same key.
func (ax *Axes) Release(k Key) {
	switch k {
	case KeyForward:
		ax.Forward--
	case KeyBack:
		ax.Forward++
	case KeyRight:
		ax.Right--
	case KeyLeft:
		ax.Right++
	}
}

// Action returns the discrete action matching the axes signs.
func (ax Axes) Action() Action {
	return ActionFor(ax.Forward, ax.Right)
}
