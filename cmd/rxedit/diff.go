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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func runDiff(a *app, args []string) error {
	flagset := a.flagSet()
	var noColor bool
	flagset.BoolVar(&noColor, "no-color", false, "disable colored output")
	if err := a.parse(flagset, args, 2); err != nil {
		return err
	}
	var dumps [2]string
	var raw [2][]byte
	for idx := range dumps {
		s, err := a.openSession(flagset.Arg(idx))
		if err != nil {
			return err
		}
		if dumps[idx], err = s.Dump(); err != nil {
			return err
		}
		if raw[idx], err = s.Export(); err != nil {
			return err
		}
	}
	if bytes.Equal(raw[0], raw[1]) {
		fmt.Fprintln(a.stdout, "files are identical")
		return nil
	}
	changed := writeDiff(a.stdout, lineDiff(dumps[0], dumps[1]), !noColor)
	if changed == 0 {
		// Same structure, different encoding such as symbol or link layout
		fmt.Fprintln(a.stdout, "structures are identical, encodings differ")
	}
	return nil
}

// lineDiff compares two dumps line by line
func lineDiff(a, b string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	charsA, charsB, lines := diffCfg.DiffLinesToChars(a, b)
	diffs := diffCfg.DiffMain(charsA, charsB, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

// writeDiff prints inserted and deleted lines and collapses unchanged runs.
// It returns the number of changed lines.
func writeDiff(w io.Writer, diffs []diffpatch.Diff, colorize bool) int {
	insert := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	if !colorize {
		insert.DisableColor()
		del.DisableColor()
	}
	changed := 0
	for _, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffInsert:
			for _, line := range lines {
				insert.Fprintf(w, "+ %s\n", line)
			}
			changed += len(lines)
		case diffpatch.DiffDelete:
			for _, line := range lines {
				del.Fprintf(w, "- %s\n", line)
			}
			changed += len(lines)
		case diffpatch.DiffEqual:
			if len(lines) == 0 {
				continue
			}
			fmt.Fprintf(w, "  ... %d unchanged lines\n", len(lines))
		}
	}
	return changed
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
