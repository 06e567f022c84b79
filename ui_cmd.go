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
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// cmdUI prints every frame to a writer (stdout by default).
type cmdUI struct {
	Out io.Writer

	fruit   *color.Color
	segment *color.Color
	border  *color.Color
	info    *color.Color
}

func (c *cmdUI) Initialise() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	c.fruit = color.New(color.FgRed, color.Bold)
	c.segment = color.New(color.FgGreen)
	c.border = color.New(color.FgHiBlack)
	c.info = color.New(color.FgCyan)
	fmt.Fprintln(c.Out, "Waiting for game")
	return nil
}

func (c *cmdUI) NewSession(id string, mode Mode) {
	c.info.Fprintf(c.Out, "Session %s - %s\n", id, mode.Title())
}

func (c *cmdUI) NewFrame(f Frame) {
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, c.colourGrid(f.Cells))
	fmt.Fprintln(c.Out)
	c.info.Fprintln(c.Out, strings.Join(buildOverviewStrings(f), " | "))
}

func (c *cmdUI) colourGrid(rows []string) string {
	var sb strings.Builder
	for y, row := range rows {
		for _, r := range row {
			switch r {
			case GlyphFruit:
				sb.WriteString(c.fruit.Sprint(string(r)))
			case GlyphSegment:
				sb.WriteString(c.segment.Sprint(string(r)))
			case GlyphEmpty:
				sb.WriteRune(r)
			default:
				sb.WriteString(c.border.Sprint(string(r)))
			}
		}
		if y < len(rows)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func (c *cmdUI) Finish(f Frame) error {
	fmt.Fprintln(c.Out)
	if f.State.Score > 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(c.Out, finalMessage(f))
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(c.Out, finalMessage(f))
	}
	fmt.Fprintln(c.Out)
	return nil
}

func (c *cmdUI) Wait() {
}
