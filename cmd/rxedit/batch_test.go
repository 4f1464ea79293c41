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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/rxedit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParseBatchFile(t *testing.T) {
	jobs, err := parseBatchFile(
		[]byte(`
jobs:
  - input: a.rxdata
    output: out/a.rxdata
    money: 100
    levels:
      - index: 0
        level: 42
    stats:
      - index: 0
        stat: special_attack
        value: 200
  - input: /abs/b.rxdata
    in_place: true
    money: 0
`),
		"/saves",
	)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "/saves/a.rxdata", jobs[0].Input)
	assert.Equal(t, "/saves/out/a.rxdata", jobs[0].Output)
	edits, err := jobs[0].edits()
	require.NoError(t, err)
	assert.Equal(
		t,
		[]edit{
			{kind: editMoney, value: 100},
			{kind: editLevel, index: 0, value: 42},
			{kind: editStat, index: 0, stat: schema.StatSpecialAttack, value: 200},
		},
		edits,
	)
	assert.Equal(t, "/abs/b.rxdata", jobs[1].Input)
	assert.Equal(t, "/abs/b.rxdata", jobs[1].Output)
}

func TestParseBatchFileErrors(t *testing.T) {
	testDefs := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty", yaml: "jobs: []\n", want: "no jobs"},
		{name: "unknown key", yaml: "jobs:\n  - input: a\n    colour: red\n", want: "colour"},
		{name: "no input", yaml: "jobs:\n  - output: a\n    money: 1\n", want: "job 0: input is required"},
		{name: "no output", yaml: "jobs:\n  - input: a\n    money: 1\n", want: "one of output or in_place"},
		{name: "no edits", yaml: "jobs:\n  - input: a\n    output: b\n", want: "nothing to change"},
		{
			name: "bad stat",
			yaml: "jobs:\n  - input: a\n    output: b\n    stats:\n      - {index: 0, stat: luck, value: 1}\n",
			want: "unknown stat",
		},
		{
			name: "duplicate output",
			yaml: "jobs:\n  - {input: a, output: out, money: 1}\n  - {input: b, output: ./out, money: 2}\n",
			want: "job 1: output out is also written by job 0",
		},
		{
			name: "duplicate in place",
			yaml: "jobs:\n  - {input: a, in_place: true, money: 1}\n  - {input: a, in_place: true, money: 2}\n",
			want: "job 1: output a is also written by job 0",
		},
		{
			name: "negative index",
			yaml: "jobs:\n  - input: a\n    output: b\n    levels:\n      - {index: -1, level: 1}\n",
			want: "negative party index",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := parseBatchFile([]byte(testDef.yaml), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), testDef.want)
		})
	}
}

func TestBatch(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := writeSample(t)
	dir := filepath.Dir(path)
	jobFile := filepath.Join(dir, "jobs.yaml")
	var sb strings.Builder
	sb.WriteString("jobs:\n")
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		sb.WriteString("  - input: Game.rxdata\n")
		sb.WriteString("    output: " + name + ".rxdata\n")
		sb.WriteString("    money: 777\n")
		sb.WriteString("    levels: [{index: 0, level: 9}]\n")
	}
	require.NoError(t, os.WriteFile(jobFile, []byte(sb.String()), 0o644))
	code, stdout, stderr := runCommand(t, "batch", jobFile)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 5, strings.Count(stdout, "ok   "))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		proj := loadProjection(t, filepath.Join(dir, name+".rxdata"))
		assert.Equal(t, int64(777), proj.Money)
		assert.Equal(t, int64(9), proj.Party[0].Level)
	}
}

func TestBatchPartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := writeSample(t)
	dir := filepath.Dir(path)
	jobFile := filepath.Join(dir, "jobs.yaml")
	require.NoError(
		t,
		os.WriteFile(
			jobFile,
			[]byte(`
jobs:
  - input: Game.rxdata
    output: good.rxdata
    money: 1
  - input: missing.rxdata
    output: bad.rxdata
    money: 1
  - input: Game.rxdata
    output: range.rxdata
    levels: [{index: 0, level: 101}]
`),
			0o644,
		),
	)
	code, stdout, stderr := runCommand(t, "batch", jobFile)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "2 of 3 jobs failed")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ok   "))
	assert.True(t, strings.HasPrefix(lines[1], "FAIL "))
	assert.Contains(t, lines[2], "value out of range")
	assert.FileExists(t, filepath.Join(dir, "good.rxdata"))
	assert.NoFileExists(t, filepath.Join(dir, "range.rxdata"))
}
