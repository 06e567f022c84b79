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
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const soundSampleRate = beep.SampleRate(44100)

type sound int

const (
	soundFruit sound = iota
	soundLifeLost
	soundGameOver
)

// soundUI plays a short tone when a fruit is eaten, a life is lost or the game ends.
// A missing audio device only disables the sound.
type soundUI struct {
	UI UI

	// play is replaced in tests.
	play func(sound)

	last    State
	started bool
}

func (s *soundUI) Initialise() error {
	if s.play == nil {
		err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/10))
		if err != nil {
			log.Printf("Audio initialisation failed: %v", err)
			s.play = func(sound) {}
		} else {
			s.play = playTone
		}
	}
	if s.UI != nil {
		return s.UI.Initialise()
	}
	return nil
}

func (s *soundUI) NewSession(id string, mode Mode) {
	s.started = false
	if s.UI != nil {
		s.UI.NewSession(id, mode)
	}
}

func (s *soundUI) NewFrame(f Frame) {
	if s.started {
		switch {
		case f.State.Lives < s.last.Lives:
			s.play(soundLifeLost)
		case f.State.FruitEaten > s.last.FruitEaten:
			s.play(soundFruit)
		}
	}
	s.last = f.State
	s.started = true

	if s.UI != nil {
		s.UI.NewFrame(f)
	}
}

func (s *soundUI) Finish(f Frame) error {
	if s.play != nil {
		s.play(soundGameOver)
	}
	if s.UI != nil {
		return s.UI.Finish(f)
	}
	return nil
}

func (s *soundUI) Wait() {
	if s.UI != nil {
		s.UI.Wait()
	}
}

func playTone(snd sound) {
	var freq float64
	var d time.Duration
	switch snd {
	case soundFruit:
		freq, d = 880, 50*time.Millisecond
	case soundLifeLost:
		freq, d = 220, 150*time.Millisecond
	case soundGameOver:
		freq, d = 110, 400*time.Millisecond
	default:
		return
	}

	tone, err := generators.SineTone(soundSampleRate, freq)
	if err != nil {
		log.Println("sound:", err)
		return
	}
	speaker.Play(beep.Take(soundSampleRate.N(d), tone))
}
