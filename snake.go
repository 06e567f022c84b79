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

import "time"

// Direction is the heading of the snake.
type Direction string

const (
	// DirectionNone is only used before the first direction was accepted.
	DirectionNone Direction = ""
	// DirectionUp contains the string value representing "up"
	DirectionUp Direction = "up"
	// DirectionDown contains the string value representing "down"
	DirectionDown Direction = "down"
	// DirectionLeft contains the string value representing "left"
	DirectionLeft Direction = "left"
	// DirectionRight contains the string value representing "right"
	DirectionRight Direction = "right"
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	}
	return DirectionNone
}

// Horizontal reports whether d is left or right.
func (d Direction) Horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Vertical reports whether d is up or down.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// Step returns p moved by one cell into direction d.
func (d Direction) Step(p Position) Position {
	switch d {
	case DirectionUp:
		return Position{p.X, p.Y - 1}
	case DirectionDown:
		return Position{p.X, p.Y + 1}
	case DirectionLeft:
		return Position{p.X - 1, p.Y}
	case DirectionRight:
		return Position{p.X + 1, p.Y}
	}
	return p
}

const (
	// InitialLength is the number of segments of a new snake.
	InitialLength = 3
	// StartX is the column all segments of a new snake start on.
	StartX = 30
	// StartY is the row all segments of a new snake start on.
	StartY = 9
)

// Snake represents the player.
//
// The head position is updated by ReadInput, but only drawn and written into the body by the next Advance.
// All initial segments share the start cell, so the snake grows into view during the first frames.
type Snake struct {
	surface       Surface
	width, height int

	head    Position
	body    []Position
	key     Key
	heading Direction

	// Per frame movement, reset by ReadInput.
	moved    Direction
	reversed bool

	quit     bool
	collided bool
}

// NewSnake returns a snake in its initial layout.
func NewSnake(surface Surface, width, height int) *Snake {
	s := &Snake{
		surface: surface,
		width:   width,
		height:  height,
	}
	s.Reset()
	return s
}

// Reset restores the initial layout. Nothing is drawn or erased.
func (s *Snake) Reset() {
	start := Position{StartX, StartY}
	s.head = start
	s.body = make([]Position, InitialLength)
	for i := range s.body {
		s.body[i] = start
	}
	s.key = KeyNone
	s.heading = DirectionNone
	s.moved = DirectionNone
	s.reversed = false
	s.quit = false
	s.collided = false
}

// Advance shifts the body one slot towards the tail and draws the head.
// The former last segment is only erased if no other segment still uses that cell.
func (s *Snake) Advance() {
	end := s.body[len(s.body)-1]
	copy(s.body[1:], s.body[:len(s.body)-1])
	if !s.occupies(end) {
		s.surface.SetCell(end.X, end.Y, GlyphEmpty)
	}
	s.surface.SetCell(s.head.X, s.head.Y, GlyphSegment)
	s.body[0] = s.head
}

func (s *Snake) occupies(p Position) bool {
	for i := range s.body {
		if s.body[i] == p {
			return true
		}
	}
	return false
}

// ReadInput polls in once and moves the head.
//
// Without a new key the last key is used again. Quit ends the game, pause holds the snake until the next key.
func (s *Snake) ReadInput(in Input, timeout time.Duration) {
	s.moved = DirectionNone
	s.reversed = false

	if k := in.PollKey(timeout); k != KeyNone {
		s.key = k
	}

	switch s.key {
	case KeyNone, KeyPause:
		return
	case KeyQuit:
		s.quit = true
		return
	}

	d, reversed := s.ResolveDirection(s.key)
	if d == DirectionNone {
		return
	}
	s.heading = d
	s.moved = d
	s.reversed = reversed
	s.head = d.Step(s.head)
}

// ResolveDirection returns the direction the snake moves into for key k.
// The exact opposite of the heading keeps the heading and reports a reversal.
// Keys without a direction keep the heading, which is DirectionNone before the first direction was accepted.
func (s *Snake) ResolveDirection(k Key) (Direction, bool) {
	want := k.Direction()
	switch {
	case want == DirectionNone:
		return s.heading, false
	case s.heading != DirectionNone && want == s.heading.Opposite():
		return s.heading, true
	default:
		return want, false
	}
}

// CheckSelfCollision marks the snake as collided if the head entered a segment.
// Reversal frames are never checked, since the head would always find the neck.
func (s *Snake) CheckSelfCollision() {
	if s.moved == DirectionNone || s.reversed {
		return
	}
	if s.surface.Cell(s.head.X, s.head.Y) == GlyphSegment {
		s.collided = true
	}
}

// Grow appends a copy of the last segment.
func (s *Snake) Grow() {
	s.body = append(s.body, s.body[len(s.body)-1])
}

// WrapIfStuck moves the head off a border it is moving along.
// Such a head would never hit the wall in its moving axis and stay in the border forever.
func (s *Snake) WrapIfStuck() {
	switch {
	case s.heading.Horizontal():
		if s.head.Y == s.height-1 {
			s.head.Y = 1
		} else if s.head.Y == 0 {
			s.head.Y = s.height - 2
		}
	case s.heading.Vertical():
		if s.head.X == 0 {
			s.head.X = s.width - 2
		} else if s.head.X == s.width-1 {
			s.head.X = 1
		}
	}
}

// Paint draws all segments.
func (s *Snake) Paint() {
	for _, p := range s.body {
		s.surface.SetCell(p.X, p.Y, GlyphSegment)
	}
}

// Erase blanks all segments.
func (s *Snake) Erase() {
	for _, p := range s.body {
		s.surface.SetCell(p.X, p.Y, GlyphEmpty)
	}
}

// Head returns the position of the head.
func (s *Snake) Head() Position {
	return s.head
}

// SetHead moves the head to p.
func (s *Snake) SetHead(p Position) {
	s.head = p
}

// Body returns a copy of all segments, head first.
func (s *Snake) Body() []Position {
	b := make([]Position, len(s.body))
	copy(b, s.body)
	return b
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Heading returns the last accepted direction.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Quit reports whether the quit key was pressed.
func (s *Snake) Quit() bool {
	return s.quit
}

// Collided reports whether the head ran into the body.
func (s *Snake) Collided() bool {
	return s.collided
}

// Over reports whether the snake ended the game.
func (s *Snake) Over() bool {
	return s.quit || s.collided
}
