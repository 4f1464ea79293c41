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

package schema_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/rxedit/internal/testdata"
	"github.com/blinklabs-io/rxedit/marshal"
	"github.com/blinklabs-io/rxedit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSample(t *testing.T, trainer testdata.Trainer) *marshal.Graph {
	t.Helper()
	g, err := marshal.Decode(trainer.Bytes(), marshal.WithKnownClasses(schema.KnownClasses...))
	require.NoError(t, err)
	return g
}

func TestNewView(t *testing.T) {
	g := decodeSample(t, testdata.SampleTrainer())
	v, err := schema.NewView(g)
	require.NoError(t, err)
	tr := v.Trainer()
	assert.Same(t, g.Root(), tr.Record())
	assert.Equal(t, "Red", tr.Name())
	assert.Equal(t, int64(12345), tr.ID())
	money, err := tr.Money()
	require.NoError(t, err)
	assert.Equal(t, int64(3000), money)
	assert.Equal(t, []bool{true, true, false, false, false, false, false, false}, tr.Badges())
	assert.True(t, tr.Pokedex())
	assert.Equal(t, 3, tr.SeenCount())
	assert.Equal(t, 2, tr.OwnedCount())
	assert.Equal(t, 1, tr.PartySize())
}

func TestNewViewNested(t *testing.T) {
	// The trainer does not have to be the root
	g := decodeSample(t, testdata.SampleTrainer())
	wrapped := marshal.NewGraph(
		marshal.Int(1),
		marshal.NewHash(marshal.Pair{Key: marshal.NewSymbol("player"), Value: g.Root()}),
	)
	v, err := schema.NewView(wrapped)
	require.NoError(t, err)
	assert.Same(t, g.Root(), v.Trainer().Record())
}

func TestNewViewNoTrainer(t *testing.T) {
	testDefs := []marshal.Value{
		marshal.Int(1),
		marshal.NewObject("PokeBattle_Trainer", marshal.NewField("@money", marshal.Int(1))),
		marshal.NewObject("PokeBattle_Trainer", marshal.NewField("@party", marshal.Int(1))),
		marshal.NewObject("PokeBattle_Trainer", marshal.NewField("@party", marshal.NewArray(marshal.Int(1)))),
	}
	for _, root := range testDefs {
		_, err := schema.NewView(marshal.NewGraph(root))
		require.ErrorIs(t, err, schema.ErrTrainerNotFound)
		require.ErrorIs(t, err, schema.ErrFieldNotFound)
	}
	_, err := schema.NewView(nil)
	require.ErrorIs(t, err, schema.ErrTrainerNotFound)
	assert.Equal(t, "trainer not found: save: field @party is not an array of objects", err.Error())
}

func TestNewViewUnlistedClasses(t *testing.T) {
	trainer := testdata.SampleTrainer()
	trainer.Classes = testdata.Classes{
		Trainer: "Game_Trainer",
		Pokemon: "Game_Pokemon",
		Move:    "Game_Move",
	}
	g := decodeSample(t, trainer)
	require.IsType(t, &marshal.Unknown{}, g.Root())
	v, err := schema.NewView(g)
	require.NoError(t, err)
	tr := v.Trainer()
	assert.Same(t, g.Root(), tr.Record())
	assert.Equal(t, "Game_Trainer", tr.Record().ClassName())
	assert.Equal(t, "Red", tr.Name())
	money, err := tr.Money()
	require.NoError(t, err)
	assert.Equal(t, int64(3000), money)
	p, err := tr.Pokemon(0)
	require.NoError(t, err)
	assert.Equal(t, "Game_Pokemon", p.Record().ClassName())
	species, err := p.Species()
	require.NoError(t, err)
	assert.Equal(t, int64(25), species)
	level, err := p.Level()
	require.NoError(t, err)
	assert.Equal(t, int64(5), level)
	moves := p.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, int64(84), moves[0].ID())
	assert.Equal(t, int64(30), moves[0].PP())
}

func TestNewViewIgnoresNonObjects(t *testing.T) {
	// A struct member named @party is not an instance variable
	st := &marshal.Unknown{
		Tag:    marshal.TypeStruct,
		Class:  marshal.NewSymbol("Party"),
		Fields: []marshal.Field{marshal.NewField("@party", marshal.NewArray())},
	}
	_, err := schema.NewView(marshal.NewGraph(st))
	require.ErrorIs(t, err, schema.ErrTrainerNotFound)
}

func TestNewViewEmptyParty(t *testing.T) {
	trainer := testdata.SampleTrainer()
	trainer.Party = nil
	v, err := schema.NewView(decodeSample(t, trainer))
	require.NoError(t, err)
	assert.Equal(t, 0, v.Trainer().PartySize())
	_, err = v.Trainer().Pokemon(0)
	require.ErrorIs(t, err, schema.ErrIndexOutOfBounds)
}

func TestPokemon(t *testing.T) {
	v, err := schema.NewView(decodeSample(t, testdata.SampleTrainer()))
	require.NoError(t, err)
	p, err := v.Trainer().Pokemon(0)
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", p.Name())
	species, err := p.Species()
	require.NoError(t, err)
	assert.Equal(t, int64(25), species)
	field, err := p.LevelField()
	require.NoError(t, err)
	assert.Equal(t, schema.FieldObtainLevel, field)
	level, err := p.Level()
	require.NoError(t, err)
	assert.Equal(t, int64(5), level)
	speed, err := p.Stat(schema.StatSpeed)
	require.NoError(t, err)
	assert.Equal(t, int64(15), speed)
	_, err = p.Stat("luck")
	require.ErrorIs(t, err, schema.ErrUnknownStat)
	moves := p.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, int64(84), moves[0].ID())
	assert.Equal(t, int64(30), moves[0].PP())
	assert.Equal(t, int64(0), moves[0].PPUp())
	assert.Equal(t, int64(70), p.Happiness())
	assert.Equal(t, int64(12345), p.TrainerID())
	assert.Equal(t, "Red", p.OT())
	assert.Equal(t, []int64{31, 20, 15, 10, 5, 0}, p.IV())
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 0}, p.EV())
}

func TestPokemonIndexBounds(t *testing.T) {
	v, err := schema.NewView(decodeSample(t, testdata.SampleParty()))
	require.NoError(t, err)
	for _, idx := range []int{-1, 6, 100} {
		_, err := v.Trainer().Pokemon(idx)
		require.ErrorIs(t, err, schema.ErrIndexOutOfBounds)
	}
	p, err := v.Trainer().Pokemon(5)
	require.NoError(t, err)
	assert.Equal(t, "Mon5", p.Name())
	assert.Len(t, v.Trainer().Party(), 6)
}

func TestPokemonLevelField(t *testing.T) {
	p := marshal.NewObject(
		"Pokemon",
		marshal.NewField("@species", marshal.NewSymbol("PIKACHU")),
		marshal.NewField("@obtainLevel", marshal.Int(3)),
		marshal.NewField("@level", marshal.Int(42)),
	)
	trainer := marshal.NewObject("Player", marshal.NewField("@party", marshal.NewArray(p)))
	v, err := schema.NewView(marshal.NewGraph(trainer))
	require.NoError(t, err)
	pkmn, err := v.Trainer().Pokemon(0)
	require.NoError(t, err)
	level, err := pkmn.Level()
	require.NoError(t, err)
	assert.Equal(t, int64(42), level)
	species, err := pkmn.Species()
	require.NoError(t, err)
	assert.Equal(t, "PIKACHU", species)
}

func TestFieldNotFoundError(t *testing.T) {
	p := marshal.NewObject("Pokemon", marshal.NewField("@level", marshal.NewString("high")))
	trainer := marshal.NewObject("Player", marshal.NewField("@party", marshal.NewArray(p)))
	v, err := schema.NewView(marshal.NewGraph(trainer))
	require.NoError(t, err)
	_, err = v.Trainer().Money()
	var fieldErr *schema.FieldNotFoundError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "Player", fieldErr.Class)
	assert.Equal(t, schema.FieldMoney, fieldErr.Field)
	assert.Equal(t, "Player: field @money not found", err.Error())

	pkmn, err := v.Trainer().Pokemon(0)
	require.NoError(t, err)
	_, err = pkmn.Level()
	require.ErrorIs(t, err, schema.ErrFieldNotFound)
	assert.Equal(t, "Pokemon: field @level is not an integer", err.Error())
	_, err = pkmn.Species()
	require.ErrorIs(t, err, schema.ErrFieldNotFound)
}

func TestSeenOwnedHash(t *testing.T) {
	seen := marshal.NewHash(
		marshal.Pair{Key: marshal.Int(1), Value: marshal.Bool(true)},
		marshal.Pair{Key: marshal.Int(2), Value: marshal.Nil{}},
		marshal.Pair{Key: marshal.Int(3), Value: marshal.Int(0)},
	)
	trainer := marshal.NewObject(
		"Player",
		marshal.NewField("@seen", seen),
		marshal.NewField("@owned", marshal.NewArray(marshal.Bool(false), marshal.Nil{})),
		marshal.NewField("@party", marshal.NewArray()),
	)
	v, err := schema.NewView(marshal.NewGraph(trainer))
	require.NoError(t, err)
	// Ruby truthiness: 0 counts, nil and false do not
	assert.Equal(t, 2, v.Trainer().SeenCount())
	assert.Equal(t, 0, v.Trainer().OwnedCount())
	assert.False(t, v.Trainer().Pokedex())
}

func TestParseStat(t *testing.T) {
	for _, stat := range schema.Stats {
		parsed, err := schema.ParseStat(string(stat))
		require.NoError(t, err)
		assert.Equal(t, stat, parsed)
	}
	_, err := schema.ParseStat("Speed")
	require.ErrorIs(t, err, schema.ErrUnknownStat)
	field, err := schema.StatField(schema.StatSpecialAttack)
	require.NoError(t, err)
	assert.Equal(t, "@spatk", field)
}
