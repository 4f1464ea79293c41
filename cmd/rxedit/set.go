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
	"errors"
	"fmt"
)

func runSet(a *app, args []string) error {
	flagset := a.flagSet()
	var (
		money   int64
		levels  []string
		stats   []string
		output  string
		inPlace bool
	)
	flagset.Int64Var(&money, "money", 0, "set the trainer's money")
	flagset.StringArrayVar(
		&levels,
		"level",
		nil,
		"set a party member's level, as INDEX=LEVEL (repeatable)",
	)
	flagset.StringArrayVar(
		&stats,
		"stat",
		nil,
		"set a party member's stat, as INDEX:STAT=VALUE (repeatable)",
	)
	flagset.StringVarP(&output, "output", "o", "", "write the edited save to this file")
	flagset.BoolVar(&inPlace, "in-place", false, "overwrite the input file")
	if err := a.parse(flagset, args, 1); err != nil {
		return err
	}
	input := flagset.Arg(0)
	switch {
	case inPlace && output != "":
		return errors.New("--output and --in-place are mutually exclusive")
	case inPlace:
		output = input
	case output == "":
		return errors.New("one of --output or --in-place is required")
	}
	var edits []edit
	if flagset.Changed("money") {
		edits = append(edits, edit{kind: editMoney, value: money})
	}
	for _, arg := range levels {
		e, err := parseLevelEdit(arg)
		if err != nil {
			return err
		}
		edits = append(edits, e)
	}
	for _, arg := range stats {
		e, err := parseStatEdit(arg)
		if err != nil {
			return err
		}
		edits = append(edits, e)
	}
	if len(edits) == 0 {
		return errors.New("nothing to change")
	}
	s, err := a.openSession(input)
	if err != nil {
		return err
	}
	for _, e := range edits {
		attrs := []any{"edit", e.String()}
		if proj, err := s.Projection(); err == nil {
			if prev, ok := e.previous(proj); ok {
				attrs = append(attrs, "previous", prev)
			}
		}
		value, err := e.apply(s)
		if err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
		a.logger.Info("applied edit", append(attrs, "value", value)...)
	}
	data, err := s.Export()
	if err != nil {
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %s (%d edits)\n", output, len(edits))
	return nil
}
