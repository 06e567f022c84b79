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
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell"
)

// terminalOriginX is the column the board starts at.
const terminalOriginX = 10

var logo = []string{
	"#####  #   #   ###   #   #  #####",
	"#      ##  #  #   #  #  #   #    ",
	"#####  # # #  #####  ###    #### ",
	"    #  #  ##  #   #  #  #   #    ",
	"#####  #   #  #   #  #   #  #####",
}

// terminalUI draws on a tcell screen and doubles as keyboard Input.
type terminalUI struct {
	screen tcell.Screen
	keys   KeyMap
	styles map[rune]tcell.Style
	events chan tcell.Event
	once   sync.Once
}

// newTerminalUI returns a terminal UI. If screen is nil, a new screen is created on Initialise.
func newTerminalUI(screen tcell.Screen, keys KeyMap) *terminalUI {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &terminalUI{
		screen: screen,
		keys:   keys,
	}
}

func (tui *terminalUI) Initialise() error {
	var err error

	if tui.screen == nil {
		tui.screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
	}

	err = tui.screen.Init()
	if err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	tui.screen.HideCursor()
	tui.screen.Clear()

	tui.styles = map[rune]tcell.Style{
		GlyphFruit:   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		GlyphSegment: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}

	tui.events = make(chan tcell.Event, 16)
	go func() {
		for {
			e := tui.screen.PollEvent()
			if e == nil {
				// Screen finalised
				close(tui.events)
				return
			}
			tui.events <- e
		}
	}()

	return nil
}

// PollKey waits up to timeout for a key.
func (tui *terminalUI) PollKey(timeout time.Duration) Key {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case e, ok := <-tui.events:
			if !ok {
				return KeyQuit
			}
			if k, ok := tui.decode(e); ok {
				return k
			}
		case <-timer.C:
			return KeyNone
		}
	}
}

// waitKey blocks until any key is pressed. It returns false if the screen was closed.
func (tui *terminalUI) waitKey() (Key, rune, bool) {
	for e := range tui.events {
		if k, ok := tui.decode(e); ok {
			var r rune
			if ev, ok := e.(*tcell.EventKey); ok && ev.Key() == tcell.KeyRune {
				r = ev.Rune()
			}
			return k, r, true
		}
	}
	return KeyQuit, 0, false
}

func (tui *terminalUI) decode(e tcell.Event) (Key, bool) {
	switch ev := e.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			return KeyUp, true
		case tcell.KeyDown:
			return KeyDown, true
		case tcell.KeyLeft:
			return KeyLeft, true
		case tcell.KeyRight:
			return KeyRight, true
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return KeyQuit, true
		case tcell.KeyRune:
			k := tui.keys.Key(ev.Rune())
			if k == KeyOther {
				k = tui.keys.Key(unicode.ToLower(ev.Rune()))
			}
			return k, true
		default:
			return KeyOther, true
		}
	case *tcell.EventResize:
		tui.screen.Sync()
	}
	return KeyNone, false
}

func (tui *terminalUI) drawString(x, y int, v string, style tcell.Style) {
	for _, r := range v {
		tui.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawCentred draws v centred inside the board area.
func (tui *terminalUI) drawCentred(y int, v string) {
	x := terminalOriginX + (Width-len([]rune(v)))/2
	tui.drawString(x, y, v, tcell.StyleDefault)
}

// StartScreen shows the splash screen until a key is pressed.
func (tui *terminalUI) StartScreen() bool {
	tui.screen.Clear()
	for i, l := range logo {
		tui.drawCentred(6+i, l)
	}
	tui.drawCentred(15, "Press any key to play")
	tui.screen.Show()
	_, _, ok := tui.waitKey()
	return ok
}

// SelectMode shows the mode menu. It returns false if the player quit instead.
func (tui *terminalUI) SelectMode() (Mode, bool) {
	tui.screen.Clear()
	tui.drawCentred(7, "Select Game Mode")
	for i, m := range Modes {
		tui.drawCentred(10+i, fmt.Sprintf("(%d) %-20s", i+1, m.Title()))
	}
	tui.screen.Show()
	for {
		k, r, ok := tui.waitKey()
		if !ok || k == KeyQuit {
			return ModeSolidWalls, false
		}
		if r >= '1' && int(r-'1') < len(Modes) {
			return Modes[r-'1'], true
		}
	}
}

func (tui *terminalUI) NewSession(id string, mode Mode) {
	tui.screen.Clear()
	tui.screen.Show()
}

func (tui *terminalUI) NewFrame(f Frame) {
	for y, row := range f.Cells {
		x := terminalOriginX
		for _, r := range row {
			style, ok := tui.styles[r]
			if !ok {
				style = tcell.StyleDefault
			}
			tui.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	ox := terminalOriginX + Width + 2
	for i, s := range buildOverviewStrings(f) {
		tui.drawString(ox, i+1, fmt.Sprintf("%-24s", s), tcell.StyleDefault)
	}
	tui.screen.Show()
}

func (tui *terminalUI) Finish(f Frame) error {
	tui.screen.Clear()
	tui.drawCentred(7, "Game Over")
	tui.drawCentred(10, fmt.Sprintf("Final Score: %d", f.State.Score))
	tui.drawCentred(15, "Press any key to continue")
	tui.screen.Show()
	return nil
}

// Wait blocks until a key is pressed and closes the screen.
func (tui *terminalUI) Wait() {
	// Keys pressed during the last frames must not skip the game over screen
	time.Sleep(500 * time.Millisecond)
	tui.drain()
	tui.waitKey()
	tui.Close()
}

func (tui *terminalUI) drain() {
	for {
		select {
		case _, ok := <-tui.events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Close restores the terminal. It is safe to call Close multiple times.
func (tui *terminalUI) Close() {
	tui.once.Do(func() {
		if tui.screen != nil {
			tui.screen.Fini()
		}
	})
}
