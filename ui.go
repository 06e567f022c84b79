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
)

// The UI interface allows the usage of different UIs.
// UIs can be chained, every wrapping UI forwards all calls to the UI it wraps.
//
// NewFrame is called once per frame right before the game waits for input, so it must not block.
type UI interface {
	Initialise() error
	NewSession(id string, mode Mode)
	NewFrame(f Frame)
	Finish(f Frame) error
	Wait()
}

type quietUI struct{}

func (q quietUI) Initialise() error               { return nil }
func (q quietUI) NewSession(id string, mode Mode) {}
func (q quietUI) NewFrame(f Frame)                {}
func (q quietUI) Finish(f Frame) error            { return nil }
func (q quietUI) Wait()                           {}

func buildOverviewStrings(f Frame) []string {
	ss := make([]string, 0, 10)
	ss = append(ss, fmt.Sprintf("frame: %d", f.Number))
	ss = append(ss, fmt.Sprintf("mode: %s", f.Mode.Title()))
	ss = append(ss, fmt.Sprintf("score: %d", f.State.Score))
	ss = append(ss, fmt.Sprintf("fruit: %d", f.State.FruitEaten))
	ss = append(ss, fmt.Sprintf("length: %d", f.Length))
	ss = append(ss, fmt.Sprintf("speed: %dms", f.State.Speed))
	if f.Mode == ModeSolidWallsWithLives {
		ss = append(ss, fmt.Sprintf("lives: %d", f.State.Lives))
	}
	heading := string(f.Heading)
	if heading == "" {
		heading = "-"
	}
	ss = append(ss, fmt.Sprintf("heading: %s", heading))
	ss = append(ss, fmt.Sprintf("head: %d,%d", f.Head.X, f.Head.Y))
	ss = append(ss, fmt.Sprintf("fruit at: %d,%d", f.Fruit.X, f.Fruit.Y))
	return ss
}

func finalMessage(f Frame) string {
	return fmt.Sprintf("Game Over - Final Score: %d (%d fruit, length %d)", f.State.Score, f.State.FruitEaten, f.Length)
}
