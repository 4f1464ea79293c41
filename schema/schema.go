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

// Package schema reads Pokemon Essentials save data out of a decoded
// marshal graph. It knows where the trainer and party live and which
// instance variables hold each value, and never modifies the graph.
package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound is matched by every *FieldNotFoundError
	ErrFieldNotFound = errors.New("field not found")
	// ErrIndexOutOfBounds is returned for a party index that does not exist
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrUnknownStat is returned for a stat name outside the stat table
	ErrUnknownStat = errors.New("unknown stat")
	// ErrTrainerNotFound is returned when no object in the save looks like
	// a trainer. It always comes with a *FieldNotFoundError for @party.
	ErrTrainerNotFound = errors.New("trainer not found")
)

// FieldNotFoundError reports a missing or mistyped instance variable
type FieldNotFoundError struct {
	Class string
	Field string
	// Want names the expected value type when the field exists with another type
	Want string
}

func (e *FieldNotFoundError) Error() string {
	class := e.Class
	if class == "" {
		class = "save"
	}
	if e.Want != "" {
		return fmt.Sprintf("%s: field %s is not %s", class, e.Field, e.Want)
	}
	return fmt.Sprintf("%s: field %s not found", class, e.Field)
}

func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// KnownClasses lists the classes that decode as objects. Other classes are
// carried through as unknown values; the view still reads and edits them
// when they have the right fields.
var KnownClasses = []string{
	"PokeBattle_Trainer",
	"PokeBattle_Pokemon",
	"PBMove",
	"Player",
	"Trainer",
	"NPCTrainer",
	"Pokemon",
	"Pokemon::Move",
}

// Instance variable names
const (
	FieldName        = "@name"
	FieldID          = "@id"
	FieldMoney       = "@money"
	FieldBadges      = "@badges"
	FieldPokedex     = "@pokedex"
	FieldSeen        = "@seen"
	FieldOwned       = "@owned"
	FieldParty       = "@party"
	FieldSpecies     = "@species"
	FieldLevel       = "@level"
	FieldObtainLevel = "@obtainLevel"
	FieldMoves       = "@moves"
	FieldHappiness   = "@happiness"
	FieldTrainerID   = "@trainerID"
	FieldOT          = "@ot"
	FieldIV          = "@iv"
	FieldEV          = "@ev"
	FieldMoveID      = "@id"
	FieldMovePP      = "@pp"
	FieldMovePPUp    = "@ppup"
)

// Stat names a member of a creature's stat block
type Stat string

const (
	StatHP             Stat = "hp"
	StatTotalHP        Stat = "total_hp"
	StatAttack         Stat = "attack"
	StatDefense        Stat = "defense"
	StatSpecialAttack  Stat = "special_attack"
	StatSpecialDefense Stat = "special_defense"
	StatSpeed          Stat = "speed"
)

// Stats lists every stat in display order
var Stats = []Stat{
	StatHP,
	StatTotalHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

var statFields = map[Stat]string{
	StatHP:             "@hp",
	StatTotalHP:        "@totalhp",
	StatAttack:         "@attack",
	StatDefense:        "@defense",
	StatSpecialAttack:  "@spatk",
	StatSpecialDefense: "@spdef",
	StatSpeed:          "@speed",
}

// StatField returns the instance variable holding stat
func StatField(stat Stat) (string, error) {
	field, ok := statFields[stat]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStat, string(stat))
	}
	return field, nil
}

// ParseStat converts a stat name to a Stat
func ParseStat(name string) (Stat, error) {
	stat := Stat(name)
	if _, err := StatField(stat); err != nil {
		return "", err
	}
	return stat, nil
}
