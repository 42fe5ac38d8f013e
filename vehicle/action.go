// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vehicle

import "fmt"

// Action is a discrete control choice: a (forward, right) pair from
// the 3x3 grid of throttle and steering values.
type Action int32

const (
	ActionNone Action = iota
	ActionForward
	ActionForwardRight
	ActionForwardLeft
	ActionRight
	ActionLeft
	ActionBack
	ActionBackRight
	ActionBackLeft

	// ActionsN is the number of actions.
	ActionsN
)

var actionInputs = [ActionsN]Axes{
	{0, 0},
	{1, 0},
	{1, 1},
	{1, -1},
	{0, 1},
	{0, -1},
	{-1, 0},
	{-1, 1},
	{-1, -1},
}

var actionNames = [ActionsN]string{
	"None", "Forward", "ForwardRight", "ForwardLeft", "Right", "Left", "Back", "BackRight", "BackLeft",
}

// IsValid returns true for actions in [0, ActionsN).
func (a Action) IsValid() bool {
	return a >= 0 && a < ActionsN
}

func (a Action) String() string {
	if !a.IsValid() {
		return fmt.Sprintf("Action(%d)", int32(a))
	}
	return actionNames[a]
}

// Axes returns the throttle and steering for the action;
// invalid actions are neutral.
func (a Action) Axes() Axes {
	if !a.IsValid() {
		return Axes{}
	}
	return actionInputs[a]
}

// ActionFor returns the action for the signs of the given inputs.
func ActionFor(forward, right float32) Action {
	ax := Axes{Forward: sign3(forward), Right: sign3(right)}
	for i, in := range actionInputs {
		if in == ax {
			return Action(i)
		}
	}
	return ActionNone
}

func sign3(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
