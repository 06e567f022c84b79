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

// termsnake is a snake game for the terminal.
// The snake eats fruit to grow and gets faster; depending on the mode the walls are solid, cost a life or can be passed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// headlessMaxFrames stops headless games which would run forever otherwise.
const headlessMaxFrames = 50000

func main() {
	configPath := flag.String("config", "snake.ini", "Configuration file, ignored if missing")
	writeConfig := flag.Bool("writeconfig", false, "Write the current configuration to the configuration file and exit")
	modeName := flag.String("mode", "", "Game mode: solid, wrap or lives. Empty shows the mode selection")
	seed := flag.Int64("seed", 0, "Seed for fruit placement. 0 uses the current time")
	pilot := flag.Bool("autopilot", false, "Let the computer steer. The quit key still works")
	aiName := flag.String("ai", "", "Autopilot: greedy or random. Overrides the configuration file")
	headless := flag.Bool("headless", false, "Run without terminal screen, implies -autopilot")
	quiet := flag.Bool("quiet", false, "Only print result (headless only)")
	maxFrames := flag.Int("maxframes", 0, "Stop after this many frames. 0 means no limit (headless default: 50000)")
	sound := flag.Bool("sound", false, "Play sounds. Overrides the configuration file")
	profile := flag.String("profile", "", "Profile program to file")
	print := flag.String("print", "", "Prints all frames into file")
	dump := flag.String("dump", "", "Dumps all frames as gob to file")
	printScore := flag.String("printscore", "", "Prints the final score into file")
	spectate := flag.String("spectate", "", "Stream frames to websocket spectators on this address, e.g. :8080")
	logFile := flag.String("log", "", "Write log to file. Without, logging is disabled while the terminal screen is used")
	flag.Parse()

	// Replace flags
	{
		env := os.Getenv("SNAKE_MODE")
		if env != "" && *modeName == "" {
			*modeName = env
		}

		env = os.Getenv("SNAKE_SPECTATE")
		if env != "" && *spectate == "" {
			*spectate = env
		}
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *modeName != "" {
		cfg.Game.Mode = *modeName
	}
	if *aiName != "" {
		cfg.Game.AI = *aiName
	}
	if *sound {
		cfg.Game.Sound = true
	}

	if *writeConfig {
		err = SaveConfig(*configPath, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Configuration written to", *configPath)
		return
	}

	keys, err := NewKeyMap(cfg.Keys)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	if *headless {
		*pilot = true
		if *maxFrames == 0 {
			*maxFrames = headlessMaxFrames
		}
	} else if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "not running in a terminal, use -headless")
		os.Exit(2)
	}

	switch {
	case *logFile != "":
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	case !*headless:
		log.SetOutput(io.Discard)
	}

	var UI UI
	var tui *terminalUI
	if *headless {
		if *quiet {
			UI = quietUI{}
		} else {
			UI = &cmdUI{}
		}
	} else {
		tui = newTerminalUI(nil, keys)
		UI = tui
	}

	defer func() {
		err := recover()
		if err != nil {
			// Clearly close UI
			if tui != nil {
				tui.Close()
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Panicln(err)
		}
		defer f.Close()
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Panicln(err)
		}
		defer pprof.StopCPUProfile()
	}

	if cfg.Game.Sound {
		UI = &soundUI{UI: UI}
	}

	if *print != "" {
		UI = &teeUI{File: *print, UI: UI}
	}

	if *dump != "" {
		UI = &dumpUI{File: *dump, UI: UI}
	}

	if *printScore != "" {
		UI = &printScoreUI{File: *printScore, UI: UI}
	}

	var spectateServer *spectateUI
	if *spectate != "" {
		spectateServer = &spectateUI{Addr: *spectate, UI: UI}
		UI = spectateServer
	}

	err = UI.Initialise()
	if err != nil {
		panic(err)
	}
	if spectateServer != nil {
		log.Printf("spectators: ws://%s%s", spectateServer.ListenAddr(), SpectatePath)
	}

	mode := ModeSolidWalls
	if cfg.Game.Mode != "" {
		mode, err = ParseMode(cfg.Game.Mode)
		if err != nil {
			panic(err)
		}
	} else if tui != nil {
		if !tui.StartScreen() {
			tui.Close()
			return
		}
		var ok bool
		mode, ok = tui.SelectMode()
		if !ok {
			tui.Close()
			return
		}
	}

	var input Input
	if tui != nil {
		input = tui
	}
	var ap *autopilot
	if *pilot {
		ai, err := GetAI(cfg.Game.AI, rng)
		if err != nil {
			panic(err)
		}
		ap = &autopilot{ai: ai, keyboard: input}
		input = ap
	}

	game, err := NewGame(mode, NewGrid(Width, Height), input, UI, rng)
	if err != nil {
		panic(err)
	}
	game.MaxFrames = *maxFrames
	if ap != nil {
		ap.game = game
	}
	log.Printf("session %s: mode %s, seed %d", game.ID, mode, *seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := game.Run(ctx)
	if err := game.Err(); err != nil {
		log.Printf("session %s: %v", game.ID, err)
	}
	log.Printf("session %s: score %d after %d frames", game.ID, state.Score, game.Frame().Number)

	err = UI.Finish(game.Frame())
	if err != nil {
		log.Println(err)
	}
	UI.Wait()

	if tui != nil {
		color.New(color.FgGreen, color.Bold).Println(finalMessage(game.Frame()))
	}
}
