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
	"errors"
	"math/rand"
)

// ErrBoardSaturated is returned if no free interior cell is left for the fruit.
var ErrBoardSaturated = errors.New("board saturated: no free cell for fruit")

// Board handles the fruit.
type Board struct {
	surface       Surface
	width, height int
	rand          *rand.Rand
	fruit         Position

	// maxRandomAttempts is the number of random samples before falling back to a scan.
	maxRandomAttempts int
}

// NewBoard returns a board. The fruit is not placed yet.
func NewBoard(surface Surface, width, height int, r *rand.Rand) *Board {
	return &Board{
		surface:           surface,
		width:             width,
		height:            height,
		rand:              r,
		maxRandomAttempts: 16 * (width - 2) * (height - 2),
	}
}

// DisplayFruit draws the fruit.
func (b *Board) DisplayFruit() {
	b.surface.SetCell(b.fruit.X, b.fruit.Y, GlyphFruit)
}

// EraseFruit blanks the fruit cell.
func (b *Board) EraseFruit() {
	b.surface.SetCell(b.fruit.X, b.fruit.Y, GlyphEmpty)
}

// RelocateFruit moves the fruit to a random empty interior cell.
//
// Cells are sampled uniformly until one is empty. If that takes unreasonably long, the interior is scanned instead,
// which only fails with ErrBoardSaturated if not a single interior cell is empty. The fruit is unchanged in that case.
func (b *Board) RelocateFruit() error {
	for i := 0; i < b.maxRandomAttempts; i++ {
		p := Position{
			X: 1 + b.rand.Intn(b.width-2),
			Y: 1 + b.rand.Intn(b.height-2),
		}
		if b.surface.Cell(p.X, p.Y) == GlyphEmpty {
			b.fruit = p
			return nil
		}
	}

	for y := 1; y < b.height-1; y++ {
		for x := 1; x < b.width-1; x++ {
			if b.surface.Cell(x, y) == GlyphEmpty {
				b.fruit = Position{x, y}
				return nil
			}
		}
	}
	return ErrBoardSaturated
}

// PlaceFruit puts the fruit at p without any checks.
func (b *Board) PlaceFruit(p Position) {
	b.fruit = p
}

// Fruit returns the fruit position.
func (b *Board) Fruit() Position {
	return b.fruit
}
