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

package marshal_test

import (
	"strings"
	"testing"

	"github.com/blinklabs-io/rxedit/marshal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpStructure(t *testing.T) {
	g, err := marshal.Decode(testDecodeHex(t, "0408 6f3a08466f6f 06 3a08406d65 4000 0408 5b07 49220678063a064554 4006"))
	require.NoError(t, err)
	expected := strings.Join(
		[]string{
			"document 0 (4.8)",
			"  Foo #0",
			"    @me: -> #0",
			"document 1 (4.8)",
			"  [ #0",
			`    "x" (UTF-8) #1`,
			"      ivar E: true",
			"    -> #1",
			"  ]",
			"",
		},
		"\n",
	)
	assert.Equal(t, expected, marshal.DumpStructure(g))
}

func TestDumpValueStructure(t *testing.T) {
	h := marshal.NewHash(marshal.Pair{Key: marshal.NewSymbol("a"), Value: marshal.Int(1)})
	h.Default = marshal.Nil{}
	expected := strings.Join(
		[]string{
			"> { #0",
			">   key: :a",
			">     => 1",
			">   default: nil",
			"> }",
			"",
		},
		"\n",
	)
	assert.Equal(t, expected, marshal.DumpValueStructure(h, "> "))
}
