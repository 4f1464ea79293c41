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
	"testing"

	"github.com/blinklabs-io/rxedit/schema"
)

func TestParseEdits(t *testing.T) {
	testDefs := []struct {
		arg     string
		stat    bool
		want    edit
		wantErr bool
	}{
		{arg: "0=50", want: edit{kind: editLevel, index: 0, value: 50}},
		{arg: " 2 = 7 ", want: edit{kind: editLevel, index: 2, value: 7}},
		{arg: "0", wantErr: true},
		{arg: "-1=5", wantErr: true},
		{arg: "x=5", wantErr: true},
		{arg: "0=five", wantErr: true},
		{arg: "1:speed=200", stat: true, want: edit{kind: editStat, index: 1, stat: schema.StatSpeed, value: 200}},
		{arg: "0:hp=0", stat: true, want: edit{kind: editStat, index: 0, stat: schema.StatHP, value: 0}},
		{arg: "0:speed", stat: true, wantErr: true},
		{arg: "speed=1", stat: true, wantErr: true},
		{arg: "0:luck=1", stat: true, wantErr: true},
	}
	for _, testDef := range testDefs {
		parse := parseLevelEdit
		if testDef.stat {
			parse = parseStatEdit
		}
		got, err := parse(testDef.arg)
		if testDef.wantErr {
			if err == nil {
				t.Fatalf("expected error parsing %q, got %v", testDef.arg, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %s", testDef.arg, err)
		}
		if got != testDef.want {
			t.Fatalf("parsing %q: got %+v, wanted %+v", testDef.arg, got, testDef.want)
		}
	}
}

func TestEditPrevious(t *testing.T) {
	proj := &schema.Projection{
		Money: 3000,
		Party: []schema.PokemonProjection{
			{Level: 5, Stats: schema.StatBlock{Speed: 15, HP: 20}},
		},
	}
	testDefs := []struct {
		edit edit
		want int64
		ok   bool
	}{
		{edit: edit{kind: editMoney, value: 1}, want: 3000, ok: true},
		{edit: edit{kind: editLevel, index: 0, value: 9}, want: 5, ok: true},
		{edit: edit{kind: editStat, index: 0, stat: schema.StatSpeed, value: 9}, want: 15, ok: true},
		{edit: edit{kind: editStat, index: 0, stat: schema.StatHP, value: 9}, want: 20, ok: true},
		{edit: edit{kind: editLevel, index: 1, value: 9}},
		{edit: edit{kind: editStat, index: 0, stat: "luck", value: 9}},
	}
	for _, testDef := range testDefs {
		got, ok := testDef.edit.previous(proj)
		if ok != testDef.ok || got != testDef.want {
			t.Fatalf("%s: got %d (%t), wanted %d (%t)", testDef.edit, got, ok, testDef.want, testDef.ok)
		}
	}
}
