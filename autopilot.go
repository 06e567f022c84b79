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
	"math/rand"
	"sort"
	"time"
)

// The AI interface provides the interface for different autopilots.
//
// Decide is called once per frame after the head was drawn. It must not modify the game.
type AI interface {
	Decide(g *Game) Key
	Name() string
}

// GetAI returns the AI with the given name.
func GetAI(name string, r *rand.Rand) (AI, error) {
	switch name {
	case "", "greedy":
		return new(GreedyAI), nil
	case "random":
		return &RandomAI{rand: r}, nil
	}
	return nil, fmt.Errorf("unknown ai %q (want greedy or random)", name)
}

// autopilot is an Input steered by an AI.
// If a keyboard is attached, it is polled for the timeout and its quit key still ends the game.
type autopilot struct {
	ai       AI
	game     *Game
	keyboard Input
}

func (a *autopilot) PollKey(timeout time.Duration) Key {
	if a.keyboard != nil {
		if k := a.keyboard.PollKey(timeout); k == KeyQuit {
			return k
		}
	}
	if a.game == nil {
		return KeyNone
	}
	return a.ai.Decide(a.game)
}

var allDirections = []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

func keyFor(d Direction) Key {
	switch d {
	case DirectionUp:
		return KeyUp
	case DirectionDown:
		return KeyDown
	case DirectionLeft:
		return KeyLeft
	case DirectionRight:
		return KeyRight
	}
	return KeyNone
}

// candidates returns all directions except a reversal.
func candidates(heading Direction) []Direction {
	ds := make([]Direction, 0, 4)
	for _, d := range allDirections {
		if heading != DirectionNone && d == heading.Opposite() {
			continue
		}
		ds = append(ds, d)
	}
	return ds
}

func blocked(g *Game, p Position) bool {
	onWall := p.X <= 0 || p.Y <= 0 || p.X >= Width-1 || p.Y >= Height-1
	if onWall && g.Mode != ModeWrapAround {
		return true
	}
	return g.Surface().Cell(p.X, p.Y) == GlyphSegment
}

// landing returns the first cell the head reaches when moving into d.
// When wrapping, that is the cell behind the opposite wall.
func landing(g *Game, head Position, d Direction) Position {
	p := d.Step(head)
	if g.Mode != ModeWrapAround {
		return p
	}
	if outcome, q := g.Mode.ApplyWallRule(p, Width, Height); outcome == WallTeleported {
		return d.Step(q)
	}
	return p
}

func walkable(r rune) bool {
	return r == GlyphEmpty || r == GlyphFruit
}

// freeSpaceConnected counts the free interior cells connected to x, y, stopping once cutoff is exceeded.
// A cutoff of -1 disables the cutoff.
func freeSpaceConnected(s Surface, x, y, cutoff int) int {
	seen := make([]bool, Width*Height)
	return freeSpaceConnectedInternal(s, seen, x, y, cutoff, 0)
}

func freeSpaceConnectedInternal(s Surface, seen []bool, x, y, cutoff, current int) int {
	if cutoff != -1 && current > cutoff {
		return current
	}

	if x < 1 || x >= Width-1 || y < 1 || y >= Height-1 {
		return current
	}

	cell := y*Width + x

	if seen[cell] {
		return current
	}
	seen[cell] = true

	if !walkable(s.Cell(x, y)) {
		return current
	}
	current++

	current = freeSpaceConnectedInternal(s, seen, x-1, y, cutoff, current)
	current = freeSpaceConnectedInternal(s, seen, x+1, y, cutoff, current)
	current = freeSpaceConnectedInternal(s, seen, x, y-1, cutoff, current)
	current = freeSpaceConnectedInternal(s, seen, x, y+1, cutoff, current)

	return current
}

func manhattan(a, b Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// GreedyAI heads for the fruit, but never into an area too small for the snake.
type GreedyAI struct{}

// Name returns the name of the AI.
func (GreedyAI) Name() string { return "greedy" }

// Decide returns the key for the next move.
func (GreedyAI) Decide(g *Game) Key {
	s := g.Snake()
	head := s.Head()
	fruit := g.Board().Fruit()

	type option struct {
		d     Direction
		space int
		dist  int
	}
	options := make([]option, 0, 4)
	for _, d := range candidates(s.Heading()) {
		p := landing(g, head, d)
		if blocked(g, p) {
			continue
		}
		options = append(options, option{
			d:     d,
			space: freeSpaceConnected(g.Surface(), p.X, p.Y, 2*s.Len()),
			dist:  manhattan(p, fruit),
		})
	}
	if len(options) == 0 {
		// Nothing left, keep going
		return keyFor(s.Heading())
	}

	need := s.Len()
	sort.SliceStable(options, func(i, j int) bool {
		roomI, roomJ := options[i].space > need, options[j].space > need
		if roomI != roomJ {
			return roomI
		}
		if !roomI {
			return options[i].space > options[j].space
		}
		return options[i].dist < options[j].dist
	})
	return keyFor(options[0].d)
}

// RandomAI picks a random move which does not crash immediately.
type RandomAI struct {
	rand *rand.Rand
}

// Name returns the name of the AI.
func (RandomAI) Name() string { return "random" }

// Decide returns the key for the next move.
func (r *RandomAI) Decide(g *Game) Key {
	s := g.Snake()
	ds := candidates(s.Heading())
	r.rand.Shuffle(len(ds), func(i, j int) { ds[i], ds[j] = ds[j], ds[i] })
	for _, d := range ds {
		if !blocked(g, landing(g, s.Head(), d)) {
			return keyFor(d)
		}
	}
	return keyFor(s.Heading())
}
