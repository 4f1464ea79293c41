// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
)

func runDump(a *app, args []string) error {
	flagset := a.flagSet()
	if err := a.parse(flagset, args, 1); err != nil {
		return err
	}
	s, err := a.openSession(flagset.Arg(0))
	if err != nil {
		return err
	}
	out, err := s.Dump()
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, out)
	return err
}
