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
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// Config is the content of the optional configuration file.
type Config struct {
	Game GameConfig `ini:"game"`
	Keys KeyConfig  `ini:"keys"`
}

// GameConfig holds the [game] section.
// An empty mode shows the mode selection screen.
type GameConfig struct {
	Mode  string `ini:"mode"`
	Sound bool   `ini:"sound"`
	AI    string `ini:"ai"`
}

// KeyConfig holds the [keys] section. Arrow keys, Esc and Ctrl-C always work in addition.
type KeyConfig struct {
	Up    string `ini:"up"`
	Down  string `ini:"down"`
	Left  string `ini:"left"`
	Right string `ini:"right"`
	Quit  string `ini:"quit"`
	Pause string `ini:"pause"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			AI: "greedy",
		},
		Keys: KeyConfig{
			Up:    "w",
			Down:  "s",
			Left:  "a",
			Right: "d",
			Quit:  "q",
			Pause: "space",
		},
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := f.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Game.Mode != "" {
		if _, err := ParseMode(cfg.Game.Mode); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if _, err := NewKeyMap(cfg.Keys); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg Config) error {
	f := ini.Empty()
	if err := f.ReflectFrom(&cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := f.SaveToIndent(path, "  "); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	return nil
}
