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
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/rxedit"
	"github.com/blinklabs-io/rxedit/schema"
)

type editKind uint8

const (
	editMoney editKind = iota
	editLevel
	editStat
)

// edit is a single change applied to a loaded session
type edit struct {
	kind  editKind
	index int
	stat  schema.Stat
	value int64
}

func (e edit) String() string {
	switch e.kind {
	case editMoney:
		return fmt.Sprintf("money=%d", e.value)
	case editLevel:
		return fmt.Sprintf("level %d=%d", e.index, e.value)
	case editStat:
		return fmt.Sprintf("stat %d:%s=%d", e.index, e.stat, e.value)
	}
	return "unknown edit"
}

// previous returns the value the edit would replace, read from proj
func (e edit) previous(proj *schema.Projection) (int64, bool) {
	if e.kind == editMoney {
		return proj.Money, true
	}
	if e.index < 0 || e.index >= len(proj.Party) {
		return 0, false
	}
	mon := proj.Party[e.index]
	switch e.kind {
	case editLevel:
		return mon.Level, true
	case editStat:
		v, err := mon.Stats.Get(e.stat)
		return v, err == nil
	}
	return 0, false
}

// apply performs the edit and returns the value now stored
func (e edit) apply(s *rxedit.Session) (int64, error) {
	switch e.kind {
	case editMoney:
		return s.SetTrainerMoney(e.value)
	case editLevel:
		return s.SetPokemonLevel(e.index, e.value)
	case editStat:
		return s.SetPokemonStat(e.index, e.stat, e.value)
	}
	return 0, fmt.Errorf("unknown edit kind %d", e.kind)
}

// parseLevelEdit parses INDEX=LEVEL
func parseLevelEdit(arg string) (edit, error) {
	idxStr, valStr, ok := strings.Cut(arg, "=")
	if !ok {
		return edit{}, fmt.Errorf("invalid level edit %q: expected INDEX=LEVEL", arg)
	}
	index, err := parseIndex(idxStr)
	if err != nil {
		return edit{}, fmt.Errorf("invalid level edit %q: %w", arg, err)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(valStr), 10, 64)
	if err != nil {
		return edit{}, fmt.Errorf("invalid level edit %q: %w", arg, err)
	}
	return edit{kind: editLevel, index: index, value: value}, nil
}

// parseStatEdit parses INDEX:STAT=VALUE
func parseStatEdit(arg string) (edit, error) {
	target, valStr, ok := strings.Cut(arg, "=")
	if !ok {
		return edit{}, fmt.Errorf("invalid stat edit %q: expected INDEX:STAT=VALUE", arg)
	}
	idxStr, statStr, ok := strings.Cut(target, ":")
	if !ok {
		return edit{}, fmt.Errorf("invalid stat edit %q: expected INDEX:STAT=VALUE", arg)
	}
	index, err := parseIndex(idxStr)
	if err != nil {
		return edit{}, fmt.Errorf("invalid stat edit %q: %w", arg, err)
	}
	stat, err := schema.ParseStat(strings.TrimSpace(statStr))
	if err != nil {
		return edit{}, fmt.Errorf("invalid stat edit %q: %w", arg, err)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(valStr), 10, 64)
	if err != nil {
		return edit{}, fmt.Errorf("invalid stat edit %q: %w", arg, err)
	}
	return edit{kind: editStat, index: index, stat: stat, value: value}, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, fmt.Errorf("negative party index %d", index)
	}
	return index, nil
}

// applyEdits applies edits in order and stops at the first failure. Edits
// already applied stay applied.
func applyEdits(s *rxedit.Session, edits []edit) error {
	for _, e := range edits {
		if _, err := e.apply(s); err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
	}
	return nil
}
