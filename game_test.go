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
	"context"
	"math/rand"
	"testing"
	"time"
)

// scriptedInput returns the queued keys one per poll and KeyNone afterwards.
type scriptedInput struct {
	keys  []Key
	polls int
}

func (s *scriptedInput) PollKey(timeout time.Duration) Key {
	s.polls++
	if len(s.keys) == 0 {
		return KeyNone
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k
}

func (s *scriptedInput) push(k ...Key) {
	s.keys = append(s.keys, k...)
}

func newTestGame(t *testing.T, mode Mode, seed int64) (*Game, *scriptedInput) {
	t.Helper()
	in := &scriptedInput{}
	g, err := NewGame(mode, NewGrid(Width, Height), in, nil, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, in
}

// stepKeys runs one frame per key.
func stepKeys(g *Game, in *scriptedInput, keys ...Key) {
	for _, k := range keys {
		in.push(k)
		g.Step()
	}
}

func repeat(k Key, n int) []Key {
	ks := make([]Key, n)
	for i := range ks {
		ks[i] = k
	}
	return ks
}

func TestNewGame(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			g, _ := newTestGame(t, mode, 1)
			s := g.State()
			if s.Score != 0 || s.FruitEaten != 0 || s.Over {
				t.Errorf("unexpected initial state %+v", s)
			}
			if s.Speed != InitialSpeed {
				t.Errorf("speed: got %d, want %d", s.Speed, InitialSpeed)
			}
			if s.Lives != mode.Lives() {
				t.Errorf("lives: got %d, want %d", s.Lives, mode.Lives())
			}
			if g.Snake().Len() != InitialLength {
				t.Errorf("length: got %d, want %d", g.Snake().Len(), InitialLength)
			}
			f := g.Board().Fruit()
			if f.X < 1 || f.X > Width-2 || f.Y < 1 || f.Y > Height-2 {
				t.Errorf("fruit outside interior: %v", f)
			}
			if f == (Position{StartX, StartY}) {
				t.Errorf("fruit placed on snake")
			}
			if g.ID == "" {
				t.Errorf("empty session id")
			}
		})
	}
}

func TestEatFruit(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWalls, 1)
	g.Board().PlaceFruit(Position{33, 9})

	stepKeys(g, in, KeyRight, KeyRight, KeyRight)

	if h := g.Snake().Head(); h != (Position{33, 9}) {
		t.Fatalf("head: got %v, want {33 9}", h)
	}
	s := g.State()
	if s.Score != ScoreIncrease {
		t.Errorf("score: got %d, want %d", s.Score, ScoreIncrease)
	}
	if s.FruitEaten != 1 {
		t.Errorf("fruit eaten: got %d, want 1", s.FruitEaten)
	}
	if g.Snake().Len() != InitialLength+1 {
		t.Errorf("length: got %d, want %d", g.Snake().Len(), InitialLength+1)
	}
	if s.Speed != InitialSpeed {
		t.Errorf("speed changed after first fruit: %d", s.Speed)
	}
	if g.Board().Fruit() == (Position{33, 9}) {
		t.Errorf("fruit not relocated")
	}
	if s.Over {
		t.Errorf("game over after eating")
	}
}

func TestGrowth(t *testing.T) {
	g, in := newTestGame(t, ModeWrapAround, 7)
	for i := 1; i <= 5; i++ {
		h := g.Snake().Head()
		next := Position{h.X + 1, h.Y}
		g.Board().PlaceFruit(next)
		stepKeys(g, in, KeyRight)
		if g.State().FruitEaten != i {
			t.Fatalf("fruit %d not eaten", i)
		}
		if g.Snake().Len() != InitialLength+i {
			t.Errorf("length after %d fruit: got %d, want %d", i, g.Snake().Len(), InitialLength+i)
		}
		if g.State().Score != i*ScoreIncrease {
			t.Errorf("score after %d fruit: got %d, want %d", i, g.State().Score, i*ScoreIncrease)
		}
	}
}

func TestIncreaseSpeed(t *testing.T) {
	g, _ := newTestGame(t, ModeSolidWalls, 1)
	for i := 1; i <= 200; i++ {
		g.state.FruitEaten = i
		g.increaseSpeed()

		want := InitialSpeed - i/2
		if want < SpeedFloor {
			want = SpeedFloor
		}
		if g.state.Speed != want {
			t.Fatalf("speed after %d fruit: got %d, want %d", i, g.state.Speed, want)
		}
	}
	if g.Timeout() != SpeedFloor*time.Millisecond {
		t.Errorf("timeout: got %v, want %v", g.Timeout(), SpeedFloor*time.Millisecond)
	}
}

func TestDeterministicFruit(t *testing.T) {
	a, inA := newTestGame(t, ModeWrapAround, 42)
	b, inB := newTestGame(t, ModeWrapAround, 42)

	if a.Board().Fruit() != b.Board().Fruit() {
		t.Fatalf("first fruit differs: %v != %v", a.Board().Fruit(), b.Board().Fruit())
	}
	for i := 0; i < 10; i++ {
		a.Board().RelocateFruit()
		b.Board().RelocateFruit()
		stepKeys(a, inA, KeyDown)
		stepKeys(b, inB, KeyDown)
		if a.Board().Fruit() != b.Board().Fruit() {
			t.Fatalf("fruit %d differs: %v != %v", i, a.Board().Fruit(), b.Board().Fruit())
		}
	}
}

func TestSelfCollision(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWalls, 1)
	g.Board().PlaceFruit(Position{31, 9})
	stepKeys(g, in, KeyRight)
	g.Board().PlaceFruit(Position{32, 9})
	stepKeys(g, in, KeyRight)
	g.Board().PlaceFruit(Position{5, 5})

	keys := []Key{KeyRight, KeyRight, KeyRight, KeyUp, KeyLeft}
	for i, k := range keys {
		stepKeys(g, in, k)
		if g.State().Over {
			t.Fatalf("game over after key %d (%s)", i, k)
		}
	}
	if g.Snake().Len() != 5 {
		t.Fatalf("length: got %d, want 5", g.Snake().Len())
	}

	stepKeys(g, in, KeyDown)
	if h := g.Snake().Head(); h != (Position{34, 9}) {
		t.Errorf("head: got %v, want {34 9}", h)
	}
	if !g.Snake().Collided() {
		t.Errorf("collision not detected")
	}
	if !g.State().Over {
		t.Errorf("game not over")
	}
}

func TestReversalIsIgnored(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWalls, 1)
	g.Board().PlaceFruit(Position{5, 5})

	stepKeys(g, in, KeyRight, KeyRight, KeyLeft)
	if h := g.Snake().Head(); h != (Position{33, 9}) {
		t.Errorf("head: got %v, want {33 9}", h)
	}
	if g.Snake().Heading() != DirectionRight {
		t.Errorf("heading: got %q, want right", g.Snake().Heading())
	}
	if g.State().Over {
		t.Errorf("reversal ended the game")
	}
}

func TestSolidWall(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWalls, 1)
	g.Board().PlaceFruit(Position{5, 5})

	for i := 1; i < 29; i++ {
		stepKeys(g, in, KeyRight)
		if g.State().Over {
			t.Fatalf("game over after %d frames", i)
		}
	}
	stepKeys(g, in, KeyRight)
	if h := g.Snake().Head(); h != (Position{Width - 1, 9}) {
		t.Errorf("head: got %v, want {%d 9}", h, Width-1)
	}
	if !g.State().Over {
		t.Errorf("wall hit did not end the game")
	}

	// Further steps must not change anything
	f := g.Frame().Number
	g.Step()
	if g.Frame().Number != f {
		t.Errorf("step after game over advanced the frame")
	}
}

func TestWrapAround(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		steps int
		want  []Position
	}{
		{"right", KeyRight, 30, []Position{{58, 9}, {0, 9}, {1, 9}}},
		{"left", KeyLeft, 31, []Position{{1, 9}, {Width - 1, 9}, {58, 9}}},
		{"up", KeyUp, 10, []Position{{30, 1}, {30, Height - 1}, {30, 18}}},
		{"down", KeyDown, 11, []Position{{30, 18}, {30, 0}, {30, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, in := newTestGame(t, ModeWrapAround, 1)
			g.Board().PlaceFruit(Position{5, 5})

			var heads []Position
			for i := 0; i < tc.steps; i++ {
				stepKeys(g, in, tc.key)
				heads = append(heads, g.Snake().Head())
			}
			got := heads[len(heads)-3:]
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("heads: got %v, want %v", got, tc.want)
					break
				}
			}
			if g.State().Over {
				t.Errorf("wrap ended the game")
			}
		})
	}
}

func TestLives(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWallsWithLives, 1)
	g.Board().PlaceFruit(Position{30, 8})

	// The first run eats a fruit and hits the top wall
	stepKeys(g, in, repeat(KeyUp, 9)...)
	s := g.State()
	if s.Lives != 2 || s.Over {
		t.Fatalf("after first hit: lives %d, over %t", s.Lives, s.Over)
	}
	if s.Score != ScoreIncrease {
		t.Errorf("score not kept: %d", s.Score)
	}
	if h := g.Snake().Head(); h != (Position{StartX, StartY}) {
		t.Errorf("head after reset: got %v, want start", h)
	}
	if g.Snake().Len() != InitialLength {
		t.Errorf("length after reset: got %d, want %d", g.Snake().Len(), InitialLength)
	}
	if g.Snake().Heading() != DirectionNone {
		t.Errorf("heading after reset: got %q", g.Snake().Heading())
	}
	g.Board().PlaceFruit(Position{5, 5})

	stepKeys(g, in, repeat(KeyUp, 9)...)
	s = g.State()
	if s.Lives != 1 || s.Over {
		t.Fatalf("after second hit: lives %d, over %t", s.Lives, s.Over)
	}
	g.Board().PlaceFruit(Position{5, 5})

	stepKeys(g, in, repeat(KeyUp, 9)...)
	s = g.State()
	if !s.Over {
		t.Fatalf("third hit did not end the game")
	}
	if s.Lives != 1 {
		t.Errorf("lives after last hit: got %d, want 1", s.Lives)
	}
	if s.Score != ScoreIncrease {
		t.Errorf("final score: got %d, want %d", s.Score, ScoreIncrease)
	}
}

func TestLivesSelfCollision(t *testing.T) {
	g, in := newTestGame(t, ModeSolidWallsWithLives, 1)
	g.Board().PlaceFruit(Position{31, 9})
	stepKeys(g, in, KeyRight)
	g.Board().PlaceFruit(Position{32, 9})
	stepKeys(g, in, KeyRight)
	g.Board().PlaceFruit(Position{5, 5})

	stepKeys(g, in, KeyRight, KeyRight, KeyRight, KeyUp, KeyLeft, KeyDown)

	s := g.State()
	if s.Over {
		t.Fatalf("self collision with lives left ended the game")
	}
	if s.Lives != 2 {
		t.Errorf("lives: got %d, want 2", s.Lives)
	}
	if s.Score != 2*ScoreIncrease {
		t.Errorf("score: got %d, want %d", s.Score, 2*ScoreIncrease)
	}
	if g.Snake().Len() != InitialLength {
		t.Errorf("length after reset: got %d, want %d", g.Snake().Len(), InitialLength)
	}
	if g.Snake().Collided() {
		t.Errorf("collision flag survived the reset")
	}
}

func TestQuit(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			g, in := newTestGame(t, mode, 1)
			g.Board().PlaceFruit(Position{5, 5})

			stepKeys(g, in, KeyRight, KeyQuit)
			s := g.State()
			if !s.Over {
				t.Errorf("quit did not end the game")
			}
			if s.Lives != mode.Lives() {
				t.Errorf("quit cost a life: %d", s.Lives)
			}
		})
	}
}

// recordUI keeps all frames.
type recordUI struct {
	quietUI
	session string
	frames  []Frame
}

func (r *recordUI) NewSession(id string, mode Mode) { r.session = id }
func (r *recordUI) NewFrame(f Frame)                { r.frames = append(r.frames, f) }

func TestStatusLine(t *testing.T) {
	in := &scriptedInput{}
	rec := &recordUI{}
	g, err := NewGame(ModeSolidWallsWithLives, NewGrid(Width, Height), in, rec, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	g.Step()

	if len(rec.frames) != 1 {
		t.Fatalf("frames: got %d, want 1", len(rec.frames))
	}
	rows := rec.frames[0].Cells
	if len(rows) != Height {
		t.Fatalf("rows: got %d, want %d", len(rows), Height)
	}
	top := []rune(rows[0])
	if got := string(top[Width/2-2 : Width/2+3]); got != "SNAKE" {
		t.Errorf("title: got %q", got)
	}
	if got := string(top[2:10]); got != "Lives: 3" {
		t.Errorf("lives: got %q", got)
	}
	bottom := []rune(rows[Height-1])
	if got := string(bottom[Width-11 : Width-4]); got != "Score:0" {
		t.Errorf("score: got %q", got)
	}
	if c := rows[StartY]; []rune(c)[StartX] != GlyphSegment {
		t.Errorf("head not drawn before input")
	}
}

func TestFrameSnapshot(t *testing.T) {
	in := &scriptedInput{}
	rec := &recordUI{}
	g, err := NewGame(ModeWrapAround, NewGrid(Width, Height), in, rec, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	g.MaxFrames = 3
	in.push(KeyDown)
	g.Run(context.Background())

	if rec.session != g.ID {
		t.Errorf("session: got %q, want %q", rec.session, g.ID)
	}
	if len(rec.frames) != 3 {
		t.Fatalf("frames: got %d, want 3", len(rec.frames))
	}
	for i, f := range rec.frames {
		if f.Number != i+1 {
			t.Errorf("frame %d: number %d", i, f.Number)
		}
		if f.Session != g.ID || f.Mode != ModeWrapAround {
			t.Errorf("frame %d: session %q mode %s", i, f.Session, f.Mode)
		}
	}
	// Frames are taken before the input of their frame is read
	if h := rec.frames[1].Head; h != (Position{StartX, StartY + 1}) {
		t.Errorf("head of frame 2: got %v", h)
	}
	if rec.frames[1].Heading != DirectionDown {
		t.Errorf("heading of frame 2: got %q", rec.frames[1].Heading)
	}
}

func TestRun(t *testing.T) {
	t.Run("maxframes", func(t *testing.T) {
		g, in := newTestGame(t, ModeWrapAround, 1)
		g.MaxFrames = 25
		s := g.Run(context.Background())
		if !s.Over {
			t.Errorf("run returned without game over")
		}
		if g.Frame().Number != 25 {
			t.Errorf("frames: got %d, want 25", g.Frame().Number)
		}
		if in.polls != 25 {
			t.Errorf("polls: got %d, want 25", in.polls)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		g, _ := newTestGame(t, ModeWrapAround, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := g.Run(ctx)
		if !s.Over {
			t.Errorf("run returned without game over")
		}
		if g.Frame().Number != 0 {
			t.Errorf("frames: got %d, want 0", g.Frame().Number)
		}
	})

	t.Run("quit", func(t *testing.T) {
		g, in := newTestGame(t, ModeSolidWalls, 1)
		in.push(KeyQuit)
		g.Run(context.Background())
		if g.Frame().Number != 1 {
			t.Errorf("frames: got %d, want 1", g.Frame().Number)
		}
	})
}

func TestSaturatedBoardEndsGame(t *testing.T) {
	g, in := newTestGame(t, ModeWrapAround, 1)
	g.Board().PlaceFruit(Position{31, 9})
	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			if x == 31 && y == 9 {
				continue
			}
			g.Surface().SetCell(x, y, GlyphSegment)
		}
	}

	stepKeys(g, in, KeyRight)
	if g.Err() == nil {
		t.Fatalf("no error for saturated board")
	}
	if !g.State().Over {
		t.Errorf("saturated board did not end the game")
	}
}
