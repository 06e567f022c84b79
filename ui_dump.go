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
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// Dump is the content of a file written by dumpUI.
type Dump struct {
	Session string
	Mode    Mode
	Frames  []Frame
}

type dumpUI struct {
	File string
	UI   UI
	dump Dump
}

func (d *dumpUI) Initialise() error {
	if d.UI != nil {
		return d.UI.Initialise()
	}
	return nil
}

func (d *dumpUI) NewSession(id string, mode Mode) {
	d.dump = Dump{Session: id, Mode: mode}
	if d.UI != nil {
		d.UI.NewSession(id, mode)
	}
}

func (d *dumpUI) NewFrame(f Frame) {
	d.dump.Frames = append(d.dump.Frames, f)

	if d.UI != nil {
		d.UI.NewFrame(f)
	}
}

func (d *dumpUI) Finish(f Frame) error {
	var err error
	if d.UI != nil {
		err = d.UI.Finish(f)
	}

	if len(d.dump.Frames) == 0 {
		return err
	}
	d.dump.Frames = append(d.dump.Frames, f)

	file, newErr := os.Create(d.File)
	if newErr != nil {
		return newErr
	}
	defer file.Close()
	enc := gob.NewEncoder(file)
	newErr = enc.Encode(d.dump)

	if newErr != nil {
		return fmt.Errorf("writing dump %s: %w", d.File, newErr)
	}

	return err
}

func (d *dumpUI) Wait() {
	if d.UI != nil {
		d.UI.Wait()
	}
}

// ReadDump decodes a dump written by dumpUI.
func ReadDump(r io.Reader) (Dump, error) {
	var d Dump
	err := gob.NewDecoder(r).Decode(&d)
	return d, err
}
