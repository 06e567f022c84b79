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
	"bufio"
	"errors"
	"fmt"
	"os"
)

// teeUI mirrors all frames as plain text into a file.
// Write errors do not stop the game, the first one is returned by Finish.
type teeUI struct {
	File string
	UI   UI

	f   *os.File
	w   *bufio.Writer
	err error
}

func (t *teeUI) Initialise() error {
	if t.f != nil {
		return errors.New("tee: file already opened")
	}
	f, err := os.Create(t.File)
	if err != nil {
		return fmt.Errorf("tee: %w", err)
	}
	t.f = f
	t.w = bufio.NewWriter(f)
	if t.UI != nil {
		return t.UI.Initialise()
	}
	return nil
}

func (t *teeUI) printf(format string, a ...interface{}) {
	if t.w == nil || t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, a...)
}

func (t *teeUI) NewSession(id string, mode Mode) {
	t.printf("Session %s - %s\n", id, mode.Title())
	if t.UI != nil {
		t.UI.NewSession(id, mode)
	}
}

func (t *teeUI) NewFrame(f Frame) {
	t.printf("\n")
	for _, row := range f.Cells {
		t.printf("%s\n", row)
	}
	t.printf("\n")
	for _, s := range buildOverviewStrings(f) {
		t.printf("%s\n", s)
	}

	if t.UI != nil {
		t.UI.NewFrame(f)
	}
}

func (t *teeUI) Finish(f Frame) error {
	t.printf("\n%s\n", finalMessage(f))

	err := t.err
	if t.f != nil {
		if ferr := t.w.Flush(); err == nil {
			err = ferr
		}
		if cerr := t.f.Close(); err == nil {
			err = cerr
		}
		t.f, t.w = nil, nil
	}
	if err != nil {
		err = fmt.Errorf("tee %s: %w", t.File, err)
	}

	if t.UI != nil {
		if newErr := t.UI.Finish(f); newErr != nil {
			if err != nil {
				return fmt.Errorf("two errors: %s, %s", err.Error(), newErr.Error())
			}
			err = newErr
		}
	}
	return err
}

func (t *teeUI) Wait() {
	if t.UI != nil {
		t.UI.Wait()
	}
}
