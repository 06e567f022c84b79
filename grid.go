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

import "strings"

const (
	// Width holds the width of the board including the border.
	Width = 60
	// Height holds the height of the board including the border.
	Height = 20

	// GlyphEmpty is the content of a free cell.
	GlyphEmpty = ' '
	// GlyphFruit marks the fruit.
	GlyphFruit = '@'
	// GlyphSegment marks a snake segment.
	GlyphSegment = '#'

	glyphHLine    = '─'
	glyphVLine    = '│'
	glyphULCorner = '┌'
	glyphURCorner = '┐'
	glyphLLCorner = '└'
	glyphLRCorner = '┘'
)

// Position is a cell on the board. The origin is the upper left border corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Surface is the character grid shared by the board and the snake.
// Both read it for occupancy, so everything drawn on it is game state.
type Surface interface {
	SetCell(x, y int, r rune)
	Cell(x, y int) rune
	DrawBorder()
	DrawString(x, y int, s string)
	Rows() []string
}

// Grid is an in-memory Surface. Writes outside of the grid are dropped,
// reads outside of the grid return the border glyph.
type Grid struct {
	width, height int
	cells         []rune
}

// NewGrid returns a blank grid of the given size.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
	}
	for i := range g.cells {
		g.cells[i] = GlyphEmpty
	}
	return g
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SetCell writes r at x, y.
func (g *Grid) SetCell(x, y int, r rune) {
	if !g.inside(x, y) {
		return
	}
	g.cells[y*g.width+x] = r
}

// Cell returns the rune at x, y.
func (g *Grid) Cell(x, y int) rune {
	if !g.inside(x, y) {
		return glyphVLine
	}
	return g.cells[y*g.width+x]
}

// DrawBorder (re)draws the frame around the grid.
// Everything written onto border cells before is overwritten.
func (g *Grid) DrawBorder() {
	for x := 1; x < g.width-1; x++ {
		g.SetCell(x, 0, glyphHLine)
		g.SetCell(x, g.height-1, glyphHLine)
	}
	for y := 1; y < g.height-1; y++ {
		g.SetCell(0, y, glyphVLine)
		g.SetCell(g.width-1, y, glyphVLine)
	}
	g.SetCell(0, 0, glyphULCorner)
	g.SetCell(g.width-1, 0, glyphURCorner)
	g.SetCell(0, g.height-1, glyphLLCorner)
	g.SetCell(g.width-1, g.height-1, glyphLRCorner)
}

// DrawString writes s starting at x, y. The string is clipped at the right edge.
func (g *Grid) DrawString(x, y int, s string) {
	for _, r := range s {
		g.SetCell(x, y, r)
		x++
	}
}

// Rows returns the grid as one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[y*g.width+x])
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns a string representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
