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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline. Whitespace anywhere in the string is ignored
// so that fixtures can be grouped by token.
func DecodeHexString(hexData string) []byte {
	hexData = strings.Join(strings.Fields(hexData), "")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// DiffOffsets returns the offsets at which two byte slices differ, including any
// trailing bytes present in only one of them
func DiffOffsets(a, b []byte) []int {
	var ret []int
	n := max(len(a), len(b))
	for i := range n {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			ret = append(ret, i)
		}
	}
	return ret
}
