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

package schema

import (
	"fmt"
)

// Projection is a read-only snapshot of the editable parts of a save
type Projection struct {
	Name    string              `json:"name"    cbor:"name"`
	ID      int64               `json:"id"      cbor:"id"`
	Money   int64               `json:"money"   cbor:"money"`
	Badges  []bool              `json:"badges"  cbor:"badges"`
	Pokedex bool                `json:"pokedex" cbor:"pokedex"`
	Seen    int                 `json:"seen"    cbor:"seen"`
	Owned   int                 `json:"owned"   cbor:"owned"`
	Party   []PokemonProjection `json:"party"   cbor:"party"`
}

type PokemonProjection struct {
	Name      string           `json:"name"       cbor:"name"`
	Species   any              `json:"species"    cbor:"species"`
	Level     int64            `json:"level"      cbor:"level"`
	Stats     StatBlock        `json:"stats"      cbor:"stats"`
	Moves     []MoveProjection `json:"moves"      cbor:"moves"`
	Happiness int64            `json:"happiness"  cbor:"happiness"`
	TrainerID int64            `json:"trainer_id" cbor:"trainer_id"`
	OT        string           `json:"ot"         cbor:"ot"`
	IV        []int64          `json:"iv"         cbor:"iv"`
	EV        []int64          `json:"ev"         cbor:"ev"`
}

type StatBlock struct {
	HP             int64 `json:"hp"              cbor:"hp"`
	TotalHP        int64 `json:"total_hp"        cbor:"total_hp"`
	Attack         int64 `json:"attack"          cbor:"attack"`
	Defense        int64 `json:"defense"         cbor:"defense"`
	SpecialAttack  int64 `json:"special_attack"  cbor:"special_attack"`
	SpecialDefense int64 `json:"special_defense" cbor:"special_defense"`
	Speed          int64 `json:"speed"           cbor:"speed"`
}

// Get returns the value of stat
func (s StatBlock) Get(stat Stat) (int64, error) {
	switch stat {
	case StatHP:
		return s.HP, nil
	case StatTotalHP:
		return s.TotalHP, nil
	case StatAttack:
		return s.Attack, nil
	case StatDefense:
		return s.Defense, nil
	case StatSpecialAttack:
		return s.SpecialAttack, nil
	case StatSpecialDefense:
		return s.SpecialDefense, nil
	case StatSpeed:
		return s.Speed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, string(stat))
}

type MoveProjection struct {
	ID   any   `json:"id"   cbor:"id"`
	PP   int64 `json:"pp"   cbor:"pp"`
	PPUp int64 `json:"ppup" cbor:"ppup"`
}

// Projection builds a snapshot of the current graph. Required fields that
// are missing fail with ErrFieldNotFound; optional ones are left zero.
func (v *View) Projection() (*Projection, error) {
	t := v.trainer
	money, err := t.Money()
	if err != nil {
		return nil, err
	}
	ret := &Projection{
		Name:    t.Name(),
		ID:      t.ID(),
		Money:   money,
		Badges:  t.Badges(),
		Pokedex: t.Pokedex(),
		Seen:    t.SeenCount(),
		Owned:   t.OwnedCount(),
		Party:   make([]PokemonProjection, 0, t.PartySize()),
	}
	for idx, p := range t.Party() {
		pp, err := p.projection()
		if err != nil {
			return nil, fmt.Errorf("party index %d: %w", idx, err)
		}
		ret.Party = append(ret.Party, pp)
	}
	return ret, nil
}

func (p *Pokemon) projection() (PokemonProjection, error) {
	species, err := p.Species()
	if err != nil {
		return PokemonProjection{}, err
	}
	level, err := p.Level()
	if err != nil {
		return PokemonProjection{}, err
	}
	stats, err := p.statBlock()
	if err != nil {
		return PokemonProjection{}, err
	}
	ret := PokemonProjection{
		Name:      p.Name(),
		Species:   species,
		Level:     level,
		Stats:     stats,
		Happiness: p.Happiness(),
		TrainerID: p.TrainerID(),
		OT:        p.OT(),
		IV:        p.IV(),
		EV:        p.EV(),
	}
	for _, m := range p.Moves() {
		ret.Moves = append(
			ret.Moves,
			MoveProjection{
				ID:   m.ID(),
				PP:   m.PP(),
				PPUp: m.PPUp(),
			},
		)
	}
	return ret, nil
}

func (p *Pokemon) statBlock() (StatBlock, error) {
	var ret StatBlock
	targets := map[Stat]*int64{
		StatHP:             &ret.HP,
		StatTotalHP:        &ret.TotalHP,
		StatAttack:         &ret.Attack,
		StatDefense:        &ret.Defense,
		StatSpecialAttack:  &ret.SpecialAttack,
		StatSpecialDefense: &ret.SpecialDefense,
		StatSpeed:          &ret.Speed,
	}
	for _, stat := range Stats {
		val, err := p.Stat(stat)
		if err != nil {
			return StatBlock{}, err
		}
		*targets[stat] = val
	}
	return ret, nil
}
