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

	"github.com/blinklabs-io/rxedit/marshal"
)

// View locates the trainer in a decoded save
type View struct {
	graph   *marshal.Graph
	trainer *Trainer
}

// NewView finds the trainer: the first object, breadth-first from the
// document roots, whose @party is an array of objects. Only the shape
// matters, so objects of any class qualify, known or not.
func NewView(g *marshal.Graph) (*View, error) {
	if g == nil {
		return nil, errNoTrainer()
	}
	var trainer *Trainer
	marshal.Walk(
		func(v marshal.Value) bool {
			obj, ok := marshal.AsRecord(v)
			if !ok {
				return true
			}
			party, ok := partyArray(obj)
			if !ok {
				return true
			}
			trainer = &Trainer{obj: obj, party: party}
			return false
		},
		g.Roots()...,
	)
	if trainer == nil {
		return nil, errNoTrainer()
	}
	return &View{graph: g, trainer: trainer}, nil
}

func errNoTrainer() error {
	return fmt.Errorf(
		"%w: %w",
		ErrTrainerNotFound,
		&FieldNotFoundError{Field: FieldParty, Want: "an array of objects"},
	)
}

func partyArray(obj marshal.Record) (*marshal.Array, bool) {
	v, ok := obj.Field(FieldParty)
	if !ok {
		return nil, false
	}
	arr, ok := v.(*marshal.Array)
	if !ok {
		return nil, false
	}
	for _, elem := range arr.Elems {
		if _, ok := marshal.AsRecord(elem); !ok {
			return nil, false
		}
	}
	return arr, true
}

func (v *View) Graph() *marshal.Graph {
	return v.graph
}

func (v *View) Trainer() *Trainer {
	return v.trainer
}

// Trainer is the player object of a save
type Trainer struct {
	obj   marshal.Record
	party *marshal.Array
}

// Record returns the underlying graph node
func (t *Trainer) Record() marshal.Record {
	return t.obj
}

func (t *Trainer) Name() string {
	return optionalString(t.obj, FieldName)
}

func (t *Trainer) ID() int64 {
	return optionalInt(t.obj, FieldID)
}

func (t *Trainer) Money() (int64, error) {
	return intField(t.obj, FieldMoney)
}

// Badges returns one flag per badge slot
func (t *Trainer) Badges() []bool {
	v, ok := t.obj.Field(FieldBadges)
	if !ok {
		return nil
	}
	arr, ok := v.(*marshal.Array)
	if !ok {
		return nil
	}
	ret := make([]bool, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		ret = append(ret, marshal.Truthy(elem))
	}
	return ret
}

// Pokedex reports whether the player has obtained the Pokedex
func (t *Trainer) Pokedex() bool {
	v, ok := t.obj.Field(FieldPokedex)
	return ok && marshal.Truthy(v)
}

// SeenCount returns the number of species marked seen
func (t *Trainer) SeenCount() int {
	v, _ := t.obj.Field(FieldSeen)
	return truthyCount(v)
}

// OwnedCount returns the number of species marked owned
func (t *Trainer) OwnedCount() int {
	v, _ := t.obj.Field(FieldOwned)
	return truthyCount(v)
}

func (t *Trainer) PartySize() int {
	return t.party.Len()
}

// Party returns every creature in the party in order
func (t *Trainer) Party() []*Pokemon {
	ret := make([]*Pokemon, 0, t.party.Len())
	for _, elem := range t.party.Elems {
		obj, _ := marshal.AsRecord(elem)
		ret = append(ret, &Pokemon{obj: obj})
	}
	return ret
}

// Pokemon returns the party member at index
func (t *Trainer) Pokemon(index int) (*Pokemon, error) {
	if index < 0 || index >= t.party.Len() {
		return nil, fmt.Errorf("%w: party index %d, party size %d", ErrIndexOutOfBounds, index, t.party.Len())
	}
	obj, _ := marshal.AsRecord(t.party.Elems[index])
	return &Pokemon{obj: obj}, nil
}

// Pokemon is a party member
type Pokemon struct {
	obj marshal.Record
}

// Record returns the underlying graph node
func (p *Pokemon) Record() marshal.Record {
	return p.obj
}

func (p *Pokemon) Name() string {
	return optionalString(p.obj, FieldName)
}

// Species returns the species as an int64 (older saves) or the species
// symbol name (newer saves)
func (p *Pokemon) Species() (any, error) {
	v, ok := p.obj.Field(FieldSpecies)
	if !ok {
		return nil, &FieldNotFoundError{Class: p.obj.ClassName(), Field: FieldSpecies}
	}
	if n, ok := marshal.IntValue(v); ok {
		return n, nil
	}
	if sym, ok := v.(*marshal.Symbol); ok {
		return sym.Name, nil
	}
	return nil, &FieldNotFoundError{Class: p.obj.ClassName(), Field: FieldSpecies, Want: "an integer or symbol"}
}

// LevelField returns the instance variable that holds the level
func (p *Pokemon) LevelField() (string, error) {
	for _, name := range []string{FieldLevel, FieldObtainLevel} {
		if _, ok := p.obj.Field(name); ok {
			return name, nil
		}
	}
	return "", &FieldNotFoundError{Class: p.obj.ClassName(), Field: FieldLevel}
}

func (p *Pokemon) Level() (int64, error) {
	field, err := p.LevelField()
	if err != nil {
		return 0, err
	}
	return intField(p.obj, field)
}

func (p *Pokemon) Stat(stat Stat) (int64, error) {
	field, err := StatField(stat)
	if err != nil {
		return 0, err
	}
	return intField(p.obj, field)
}

// Moves returns the move list, skipping empty slots
func (p *Pokemon) Moves() []Move {
	v, ok := p.obj.Field(FieldMoves)
	if !ok {
		return nil
	}
	arr, ok := v.(*marshal.Array)
	if !ok {
		return nil
	}
	var ret []Move
	for _, elem := range arr.Elems {
		move, ok := marshal.AsRecord(elem)
		if !ok {
			continue
		}
		ret = append(ret, Move{obj: move})
	}
	return ret
}

func (p *Pokemon) Happiness() int64 {
	return optionalInt(p.obj, FieldHappiness)
}

// TrainerID returns the ID of the original trainer
func (p *Pokemon) TrainerID() int64 {
	return optionalInt(p.obj, FieldTrainerID)
}

// OT returns the name of the original trainer
func (p *Pokemon) OT() string {
	return optionalString(p.obj, FieldOT)
}

// IV returns the individual values
func (p *Pokemon) IV() []int64 {
	v, _ := p.obj.Field(FieldIV)
	return intList(v)
}

// EV returns the effort values
func (p *Pokemon) EV() []int64 {
	v, _ := p.obj.Field(FieldEV)
	return intList(v)
}

// Move is one entry of a move list
type Move struct {
	obj marshal.Record
}

// ID returns the move as an int64 or a symbol name
func (m Move) ID() any {
	v, ok := m.obj.Field(FieldMoveID)
	if !ok {
		return nil
	}
	if n, ok := marshal.IntValue(v); ok {
		return n
	}
	if s, ok := marshal.StringValue(v); ok {
		return s
	}
	return nil
}

func (m Move) PP() int64 {
	return optionalInt(m.obj, FieldMovePP)
}

func (m Move) PPUp() int64 {
	return optionalInt(m.obj, FieldMovePPUp)
}

func intField(obj marshal.Record, name string) (int64, error) {
	v, ok := obj.Field(name)
	if !ok {
		return 0, &FieldNotFoundError{Class: obj.ClassName(), Field: name}
	}
	n, ok := marshal.IntValue(v)
	if !ok {
		return 0, &FieldNotFoundError{Class: obj.ClassName(), Field: name, Want: "an integer"}
	}
	return n, nil
}

func optionalInt(obj marshal.Record, name string) int64 {
	v, ok := obj.Field(name)
	if !ok {
		return 0
	}
	n, _ := marshal.IntValue(v)
	return n
}

func optionalString(obj marshal.Record, name string) string {
	v, ok := obj.Field(name)
	if !ok {
		return ""
	}
	s, _ := marshal.StringValue(v)
	return s
}

// truthyCount counts the set entries of a flag array or the values of a
// flag hash
func truthyCount(v marshal.Value) int {
	count := 0
	switch tv := v.(type) {
	case *marshal.Array:
		for _, elem := range tv.Elems {
			if marshal.Truthy(elem) {
				count++
			}
		}
	case *marshal.Hash:
		for _, p := range tv.Pairs {
			if marshal.Truthy(p.Value) {
				count++
			}
		}
	}
	return count
}

func intList(v marshal.Value) []int64 {
	arr, ok := v.(*marshal.Array)
	if !ok {
		return nil
	}
	ret := make([]int64, 0, len(arr.Elems))
	for _, elem := range arr.Elems {
		n, _ := marshal.IntValue(elem)
		ret = append(ret, n)
	}
	return ret
}
