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

// Package testdata builds save files for tests. The layout follows what
// Pokemon Essentials dumps: a PokeBattle_Trainer holding a party of
// PokeBattle_Pokemon objects, each with a move list of PBMove objects.
package testdata

import (
	"fmt"

	"github.com/blinklabs-io/rxedit/marshal"
)

// MysteryGiftClass is a class no decoder in this module knows about. Every
// generated trainer carries one so unknown passthrough is always exercised.
const MysteryGiftClass = "PokemonMysteryGift"

type Move struct {
	ID   int64
	PP   int64
	PPUp int64
}

type Pokemon struct {
	Name      string
	Species   int64
	Level     int64
	HP        int64
	TotalHP   int64
	Attack    int64
	Defense   int64
	SpAtk     int64
	SpDef     int64
	Speed     int64
	Moves     []Move
	Happiness int64
	TrainerID int64
	OT        string
	IV        [6]int64
	EV        [6]int64
}

type Trainer struct {
	Name    string
	ID      int64
	Money   int64
	Badges  []bool
	Pokedex bool
	Seen    []bool
	Owned   []bool
	Party   []Pokemon
	// FrameCount is written as a second dump after the trainer, the way
	// RPG Maker appends its own state to a save
	FrameCount int64
	// Classes overrides the class names written for each record
	Classes Classes
}

// Classes names the classes used for the trainer, its creatures and their
// moves. Empty names mean the PokeBattle_Trainer layout.
type Classes struct {
	Trainer string
	Pokemon string
	Move    string
}

func (c Classes) withDefaults() Classes {
	if c.Trainer == "" {
		c.Trainer = "PokeBattle_Trainer"
	}
	if c.Pokemon == "" {
		c.Pokemon = "PokeBattle_Pokemon"
	}
	if c.Move == "" {
		c.Move = "PBMove"
	}
	return c
}

// SampleTrainer returns a trainer with 3000 money and one level 5 creature
func SampleTrainer() Trainer {
	return Trainer{
		Name:    "Red",
		ID:      12345,
		Money:   3000,
		Badges:  []bool{true, true, false, false, false, false, false, false},
		Pokedex: true,
		Seen:    []bool{false, true, true, false, true, false, false, false, false, false},
		Owned:   []bool{false, true, false, false, true, false, false, false, false, false},
		Party: []Pokemon{
			{
				Name:    "Pikachu",
				Species: 25,
				Level:   5,
				HP:      20,
				TotalHP: 20,
				Attack:  11,
				Defense: 9,
				SpAtk:   12,
				SpDef:   10,
				Speed:   15,
				Moves: []Move{
					{ID: 84, PP: 30},
					{ID: 45, PP: 40},
				},
				Happiness: 70,
				TrainerID: 12345,
				OT:        "Red",
				IV:        [6]int64{31, 20, 15, 10, 5, 0},
			},
		},
		FrameCount: 184320,
	}
}

// SampleParty returns a trainer with a full party of six creatures
func SampleParty() Trainer {
	t := SampleTrainer()
	base := t.Party[0]
	for i := 1; i < 6; i++ {
		p := base
		p.Name = fmt.Sprintf("Mon%d", i)
		p.Species = int64(i)
		p.Level = int64(10 * i)
		p.Speed = int64(20 + i)
		t.Party = append(t.Party, p)
	}
	return t
}

// Graph builds the marshal graph for the trainer
func (t Trainer) Graph() *marshal.Graph {
	classes := t.Classes.withDefaults()
	name := marshal.NewString(t.Name)
	party := marshal.NewArray()
	for _, p := range t.Party {
		party.Elems = append(party.Elems, p.object(classes, t.Name, name))
	}
	trainer := marshal.NewObject(
		classes.Trainer,
		marshal.NewField("@name", name),
		marshal.NewField("@id", marshal.Int(t.ID)),
		marshal.NewField("@metaID", marshal.Int(0)),
		marshal.NewField("@trainertype", marshal.Int(0)),
		marshal.NewField("@outfit", marshal.Int(0)),
		marshal.NewField("@badges", boolArray(t.Badges)),
		marshal.NewField("@money", marshal.Int(t.Money)),
		marshal.NewField("@seen", boolArray(t.Seen)),
		marshal.NewField("@owned", boolArray(t.Owned)),
		marshal.NewField("@formseen", marshal.NewArray()),
		marshal.NewField("@pokedex", marshal.Bool(t.Pokedex)),
		marshal.NewField("@pokegear", marshal.Bool(false)),
		marshal.NewField("@language", marshal.Int(2)),
		marshal.NewField("@party", party),
		marshal.NewField("@mysterygift", mysteryGift()),
	)
	return marshal.NewGraph(trainer, marshal.Int(t.FrameCount))
}

// Bytes encodes the trainer as a save file
func (t Trainer) Bytes() []byte {
	data, err := marshal.Encode(t.Graph())
	if err != nil {
		panic(fmt.Sprintf("encoding sample save: %s", err))
	}
	return data
}

// object builds a creature. The origin trainer name shares the trainer's
// string node when they match, which puts a back reference in the output.
func (p Pokemon) object(classes Classes, trainerName string, trainerNameNode *marshal.String) *marshal.Object {
	moves := marshal.NewArray()
	for _, m := range p.Moves {
		moves.Elems = append(
			moves.Elems,
			marshal.NewObject(
				classes.Move,
				marshal.NewField("@id", marshal.Int(m.ID)),
				marshal.NewField("@pp", marshal.Int(m.PP)),
				marshal.NewField("@ppup", marshal.Int(m.PPUp)),
			),
		)
	}
	for len(moves.Elems) < 4 {
		moves.Elems = append(moves.Elems, marshal.Nil{})
	}
	ot := trainerNameNode
	if p.OT != trainerName {
		ot = marshal.NewString(p.OT)
	}
	return marshal.NewObject(
		classes.Pokemon,
		marshal.NewField("@name", marshal.NewString(p.Name)),
		marshal.NewField("@species", marshal.Int(p.Species)),
		marshal.NewField("@obtainLevel", marshal.Int(p.Level)),
		marshal.NewField("@hp", marshal.Int(p.HP)),
		marshal.NewField("@totalhp", marshal.Int(p.TotalHP)),
		marshal.NewField("@attack", marshal.Int(p.Attack)),
		marshal.NewField("@defense", marshal.Int(p.Defense)),
		marshal.NewField("@spatk", marshal.Int(p.SpAtk)),
		marshal.NewField("@spdef", marshal.Int(p.SpDef)),
		marshal.NewField("@speed", marshal.Int(p.Speed)),
		marshal.NewField("@moves", moves),
		marshal.NewField("@item", marshal.Int(0)),
		marshal.NewField("@happiness", marshal.Int(p.Happiness)),
		marshal.NewField("@trainerID", marshal.Int(p.TrainerID)),
		marshal.NewField("@ot", ot),
		marshal.NewField("@iv", intArray(p.IV[:])),
		marshal.NewField("@ev", intArray(p.EV[:])),
		marshal.NewField("@ballused", marshal.Int(0)),
		marshal.NewField("@personalID", marshal.Int(3141592653)),
	)
}

func mysteryGift() *marshal.Object {
	return marshal.NewObject(
		MysteryGiftClass,
		marshal.NewField("@giftID", marshal.Int(7)),
		marshal.NewField("@data", marshal.NewBinaryString([]byte{0xde, 0xad, 0xbe, 0xef})),
		marshal.NewField("@rate", marshal.NewFloat(0.25)),
	)
}

func boolArray(flags []bool) *marshal.Array {
	ret := marshal.NewArray()
	for _, f := range flags {
		ret.Elems = append(ret.Elems, marshal.Bool(f))
	}
	return ret
}

func intArray(values []int64) *marshal.Array {
	ret := marshal.NewArray()
	for _, v := range values {
		ret.Elems = append(ret.Elems, marshal.Int(v))
	}
	return ret
}
