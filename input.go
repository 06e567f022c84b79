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
	"time"
)

// Key is a decoded key press.
type Key int

const (
	// KeyNone means no key arrived before the timeout.
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
	KeyPause
	// KeyOther is any key without a meaning in the game.
	KeyOther
)

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	case KeyPause:
		return "pause"
	default:
		return "other"
	}
}

// Direction returns the direction of a directional key, DirectionNone otherwise.
func (k Key) Direction() Direction {
	switch k {
	case KeyUp:
		return DirectionUp
	case KeyDown:
		return DirectionDown
	case KeyLeft:
		return DirectionLeft
	case KeyRight:
		return DirectionRight
	}
	return DirectionNone
}

// The Input interface is consulted once per frame.
//
// PollKey must return at the latest after timeout. It returns KeyNone if no key was pressed.
type Input interface {
	PollKey(timeout time.Duration) Key
}

// KeyMap maps printable runes to keys.
type KeyMap map[rune]Key

// DefaultKeyMap returns the w/a/s/d layout.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		'w': KeyUp,
		's': KeyDown,
		'a': KeyLeft,
		'd': KeyRight,
		'q': KeyQuit,
		' ': KeyPause,
	}
}

// Key returns the key bound to r or KeyOther.
func (m KeyMap) Key(r rune) Key {
	k, ok := m[r]
	if !ok {
		return KeyOther
	}
	return k
}

// NewKeyMap builds a key map from the configured bindings.
// Every binding must be exactly one rune (or "space") and no rune may be bound twice.
func NewKeyMap(k KeyConfig) (KeyMap, error) {
	m := make(KeyMap, 6)
	bindings := []struct {
		name  string
		value string
		key   Key
	}{
		{"up", k.Up, KeyUp},
		{"down", k.Down, KeyDown},
		{"left", k.Left, KeyLeft},
		{"right", k.Right, KeyRight},
		{"quit", k.Quit, KeyQuit},
		{"pause", k.Pause, KeyPause},
	}
	for _, b := range bindings {
		r, ok := bindingRune(b.value)
		if !ok {
			return nil, fmt.Errorf("key %s: binding %q must be a single character or \"space\"", b.name, b.value)
		}
		if old, ok := m[r]; ok {
			return nil, fmt.Errorf("key %s: %q already bound to %s", b.name, b.value, old)
		}
		m[r] = b.key
	}
	return m, nil
}

// ini values are trimmed, so a blank can only be configured by name.
func bindingRune(v string) (rune, bool) {
	if strings.EqualFold(v, "space") {
		return ' ', true
	}
	r := []rune(v)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}
