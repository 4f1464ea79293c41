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

// Package patch edits scalar fields of a decoded save in place. Every
// operation validates its arguments before touching the graph, and a
// successful edit replaces exactly one field value at its existing
// position, so the re-encoded save differs from the original only there.
package patch

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/rxedit/marshal"
	"github.com/blinklabs-io/rxedit/schema"
)

// Accepted ranges
const (
	MinMoney = 0
	MaxMoney = 999_999_999
	MinLevel = 1
	MaxLevel = 100
	MinStat  = 0
	MaxStat  = 255
)

var (
	// ErrOutOfRange is returned for a value outside the accepted range
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnknownStat is returned for a stat name outside the stat table
	ErrUnknownStat = schema.ErrUnknownStat
)

func checkRange(what string, value, lo, hi int64) error {
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, what, value, lo, hi)
	}
	return nil
}

// SetTrainerMoney sets the trainer's money
func SetTrainerMoney(g *marshal.Graph, amount int64) (int64, error) {
	if err := checkRange("money", amount, MinMoney, MaxMoney); err != nil {
		return 0, err
	}
	v, err := schema.NewView(g)
	if err != nil {
		return 0, err
	}
	trainer := v.Trainer()
	if _, err := trainer.Money(); err != nil {
		return 0, err
	}
	trainer.Record().SetField(schema.FieldMoney, marshal.Int(amount))
	return amount, nil
}

// SetPokemonLevel sets the level of the party member at index
func SetPokemonLevel(g *marshal.Graph, index int, level int64) (int64, error) {
	if err := checkRange("level", level, MinLevel, MaxLevel); err != nil {
		return 0, err
	}
	p, err := pokemon(g, index)
	if err != nil {
		return 0, err
	}
	field, err := p.LevelField()
	if err != nil {
		return 0, err
	}
	if _, err := p.Level(); err != nil {
		return 0, err
	}
	p.Record().SetField(field, marshal.Int(level))
	return level, nil
}

// SetPokemonStat sets one stat of the party member at index
func SetPokemonStat(g *marshal.Graph, index int, stat schema.Stat, value int64) (int64, error) {
	field, err := schema.StatField(stat)
	if err != nil {
		return 0, err
	}
	if err := checkRange(string(stat), value, MinStat, MaxStat); err != nil {
		return 0, err
	}
	p, err := pokemon(g, index)
	if err != nil {
		return 0, err
	}
	if _, err := p.Stat(stat); err != nil {
		return 0, err
	}
	p.Record().SetField(field, marshal.Int(value))
	return value, nil
}

func pokemon(g *marshal.Graph, index int) (*schema.Pokemon, error) {
	v, err := schema.NewView(g)
	if err != nil {
		return nil, err
	}
	return v.Trainer().Pokemon(index)
}
