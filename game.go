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
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// InitialSpeed is the frame timeout in milliseconds at the start of a session.
	InitialSpeed = 110
	// SpeedFloor is the smallest frame timeout. Smaller is faster.
	SpeedFloor = 75
	// ScoreIncrease is added to the score for each fruit.
	ScoreIncrease = 10
)

// State holds the counters of a session.
type State struct {
	Score      int  `json:"score"`
	FruitEaten int  `json:"fruitEaten"`
	Speed      int  `json:"speed"`
	Lives      int  `json:"lives,omitempty"`
	Over       bool `json:"over"`
}

// Frame is a snapshot of a session as shown to the player.
type Frame struct {
	Session string    `json:"session"`
	Mode    Mode      `json:"mode"`
	Number  int       `json:"frame"`
	State   State     `json:"state"`
	Head    Position  `json:"head"`
	Heading Direction `json:"heading"`
	Fruit   Position  `json:"fruit"`
	Length  int       `json:"length"`
	Cells   []string  `json:"cells"`
}

// Game represents a session of snake.
// It owns board, snake and state. Nothing else may modify them while the session runs.
type Game struct {
	ID   string
	Mode Mode
	// MaxFrames ends Run after that many frames if positive.
	MaxFrames int

	surface Surface
	board   *Board
	snake   *Snake
	input   Input
	ui      UI

	state State
	frame int
	err   error
}

// NewGame starts a session on surface. The surface is expected to be blank.
// ui may be nil.
func NewGame(mode Mode, surface Surface, input Input, ui UI, r *rand.Rand) (*Game, error) {
	if ui == nil {
		ui = quietUI{}
	}
	g := &Game{
		ID:      uuid.New().String(),
		Mode:    mode,
		surface: surface,
		board:   NewBoard(surface, Width, Height, r),
		snake:   NewSnake(surface, Width, Height),
		input:   input,
		ui:      ui,
		state: State{
			Speed: InitialSpeed,
			Lives: mode.Lives(),
		},
	}

	surface.DrawBorder()
	g.snake.Paint()
	if err := g.board.RelocateFruit(); err != nil {
		return nil, fmt.Errorf("placing first fruit: %w", err)
	}
	return g, nil
}

// Step runs a single frame. The order of the steps matters: collisions need the final head of the frame,
// the wall rules run after the self collision and the stuck check runs last.
func (g *Game) Step() {
	if g.state.Over {
		return
	}
	g.frame++

	g.drawStatus()
	g.board.DisplayFruit()
	g.snake.Advance()

	g.ui.NewFrame(g.Frame())
	g.snake.ReadInput(g.input, g.Timeout())

	g.checkFruitCollision()
	g.snake.CheckSelfCollision()
	g.applyWallRule()

	g.snake.WrapIfStuck()
	g.surface.DrawBorder()
}

// Run steps the game until it is over, MaxFrames is reached or ctx is done.
func (g *Game) Run(ctx context.Context) State {
	g.ui.NewSession(g.ID, g.Mode)
	for !g.state.Over {
		select {
		case <-ctx.Done():
			g.state.Over = true
			return g.state
		default:
		}
		if g.MaxFrames > 0 && g.frame >= g.MaxFrames {
			g.state.Over = true
			return g.state
		}
		g.Step()
	}
	return g.state
}

func (g *Game) drawStatus() {
	g.surface.DrawString(Width-11, Height-1, "Score:"+strconv.Itoa(g.state.Score))
	g.surface.DrawString(Width/2-2, 0, "SNAKE")
	if g.Mode == ModeSolidWallsWithLives {
		g.surface.DrawString(2, 0, "Lives: "+strconv.Itoa(g.state.Lives))
	}
}

func (g *Game) checkFruitCollision() {
	if g.snake.Head() != g.board.Fruit() {
		return
	}
	g.state.Score += ScoreIncrease
	g.state.FruitEaten++
	g.snake.Grow()
	g.increaseSpeed()
	if err := g.board.RelocateFruit(); err != nil {
		g.err = err
	}
}

// increaseSpeed makes the game faster every 2nd fruit, until the floor is reached.
func (g *Game) increaseSpeed() {
	if g.state.FruitEaten%2 != 0 {
		return
	}
	if g.state.Speed > SpeedFloor {
		g.state.Speed--
	}
}

func (g *Game) applyWallRule() {
	outcome, p := g.Mode.ApplyWallRule(g.snake.Head(), Width, Height)
	if outcome == WallTeleported {
		g.snake.SetHead(p)
	}

	fatal := g.snake.Collided() || outcome == WallFatal
	switch {
	case g.snake.Quit(), g.err != nil:
		g.state.Over = true
	case fatal && g.state.Lives > 1:
		g.state.Lives--
		g.softReset()
	case fatal:
		g.state.Over = true
	}
}

// softReset restores snake and fruit but keeps the counters.
func (g *Game) softReset() {
	g.snake.Erase()
	g.board.EraseFruit()
	g.snake.Reset()
	g.snake.Paint()
	if err := g.board.RelocateFruit(); err != nil {
		g.err = err
		g.state.Over = true
	}
	g.board.DisplayFruit()
}

// Frame returns a snapshot of the session.
func (g *Game) Frame() Frame {
	return Frame{
		Session: g.ID,
		Mode:    g.Mode,
		Number:  g.frame,
		State:   g.state,
		Head:    g.snake.Head(),
		Heading: g.snake.Heading(),
		Fruit:   g.board.Fruit(),
		Length:  g.snake.Len(),
		Cells:   g.surface.Rows(),
	}
}

// Timeout returns how long the next frame waits for a key.
func (g *Game) Timeout() time.Duration {
	return time.Duration(g.state.Speed) * time.Millisecond
}

// State returns the counters of the session.
func (g *Game) State() State {
	return g.state
}

// Err returns the reason the session ended early, if any.
func (g *Game) Err() error {
	return g.err
}

// Snake returns the snake of the session.
func (g *Game) Snake() *Snake {
	return g.snake
}

// Board returns the board of the session.
func (g *Game) Board() *Board {
	return g.board
}

// Surface returns the surface the session draws on.
func (g *Game) Surface() Surface {
	return g.surface
}
