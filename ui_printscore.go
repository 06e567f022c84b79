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
	"os"
)

// printScoreUI writes the final score of the session as a single line into a file.
type printScoreUI struct {
	File        string
	UI          UI
	initialised bool
}

func (p *printScoreUI) Initialise() error {
	p.initialised = true
	if p.UI != nil {
		return p.UI.Initialise()
	}
	return nil
}

func (p *printScoreUI) NewSession(id string, mode Mode) {
	if p.UI != nil {
		p.UI.NewSession(id, mode)
	}
}

func (p *printScoreUI) NewFrame(f Frame) {
	if p.UI != nil {
		p.UI.NewFrame(f)
	}
}

func (p *printScoreUI) Finish(f Frame) error {
	var err error
	if p.UI != nil {
		err = p.UI.Finish(f)
	}

	if p.initialised {
		file, newErr := os.Create(p.File)
		if newErr != nil {
			return newErr
		}
		defer file.Close()

		_, newErr = file.WriteString(fmt.Sprintf("%s %s %d\n", f.Session, f.Mode, f.State.Score))
		if newErr != nil {
			return newErr
		}
	}

	return err
}

func (p *printScoreUI) Wait() {
	if p.UI != nil {
		p.UI.Wait()
	}
}
