// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"
)

// Mode selects how the walls behave. It is fixed for a session.
type Mode int

const (
	// ModeSolidWalls ends the game when the head hits a wall.
	ModeSolidWalls Mode = iota
	// ModeWrapAround lets the snake pass through the walls to the other side.
	ModeWrapAround
	// ModeSolidWallsWithLives costs a life for every wall hit or self collision.
	ModeSolidWallsWithLives
)

// LivesPerSession is the number of lives in ModeSolidWallsWithLives.
const LivesPerSession = 3

// Modes lists all modes in menu order.
var Modes = []Mode{ModeSolidWalls, ModeWrapAround, ModeSolidWallsWithLives}

func (m Mode) String() string {
	switch m {
	case ModeSolidWalls:
		return "solid"
	case ModeWrapAround:
		return "wrap"
	case ModeSolidWallsWithLives:
		return "lives"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Title returns the name shown in the menu.
func (m Mode) Title() string {
	switch m {
	case ModeSolidWalls:
		return "Solid Walls"
	case ModeWrapAround:
		return "Pass Through Walls"
	case ModeSolidWallsWithLives:
		return "Solid Walls + Lives"
	}
	return m.String()
}

// ParseMode parses the result of Mode.String.
// The long mode names (solid_walls, pass_through_walls, solid_walls_with_lives) are accepted as well.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid", "solid_walls":
		return ModeSolidWalls, nil
	case "wrap", "pass_through_walls":
		return ModeWrapAround, nil
	case "lives", "solid_walls_with_lives":
		return ModeSolidWallsWithLives, nil
	}
	return ModeSolidWalls, fmt.Errorf("unknown mode %q (want solid, wrap or lives)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Lives returns the number of lives a session starts with, 0 for modes without lives.
func (m Mode) Lives() int {
	if m == ModeSolidWallsWithLives {
		return LivesPerSession
	}
	return 0
}

// WallOutcome is the result of a wall rule.
type WallOutcome int

const (
	// WallContinue means the head is not on a wall.
	WallContinue WallOutcome = iota
	// WallTeleported means the head was moved to the returned position.
	WallTeleported
	// WallFatal means the head hit a solid wall.
	WallFatal
)

func (o WallOutcome) String() string {
	switch o {
	case WallContinue:
		return "continue"
	case WallTeleported:
		return "teleported"
	case WallFatal:
		return "fatal"
	}
	return fmt.Sprintf("WallOutcome(%d)", int(o))
}

// ApplyWallRule checks head against the border of a width x height board.
// The returned position is only meaningful for WallTeleported.
//
// When wrapping, x == 0 is checked before y == 0, x == width-1 and y == height-1. Only the first match is applied.
func (m Mode) ApplyWallRule(head Position, width, height int) (WallOutcome, Position) {
	onWall := head.X == 0 || head.Y == 0 || head.X == width-1 || head.Y == height-1
	if !onWall {
		return WallContinue, head
	}

	if m != ModeWrapAround {
		return WallFatal, head
	}

	switch {
	case head.X == 0:
		head.X = width - 1
	case head.Y == 0:
		head.Y = height - 1
	case head.X == width-1:
		head.X = 0
	case head.Y == height-1:
		head.Y = 0
	}
	return WallTeleported, head
}
