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

package testdata

import (
	"encoding/hex"
	"strings"
)

// RubySaveHex is a save laid out byte for byte the way Ruby's Marshal.dump
// writes it, independent of this module's encoder. It holds a trainer with
// one creature whose origin trainer name links back to the trainer's name
// string, a personal ID written as a bignum (which takes an object slot) and
// a trainer field linking to the float after it. A second dump holds the
// frame count.
const RubySaveHex = `
0408
6f 3a17 506f6b65426174746c655f547261696e6572 0b
  3a0a 406e616d65 4922 08 526564 06 3a06 45 54
  3a08 406964 69 023930
  3a0b 406d6f6e6579 69 02b80b
  3a0c 40626164676573 5b07 54 46
  3a0b 407061727479 5b06
    6f 3a17 506f6b65426174746c655f506f6b656d6f6e 13
      3b06 4922 09 50696b61 06 3b07 54
      3a0d 4073706563696573 69 1e
      3a0b 406c6576656c 69 0a
      3a08 406870 69 19
      3a0d 40746f74616c6870 69 19
      3a0c 4061747461636b 69 10
      3a0d 40646566656e7365 69 0e
      3a0b 40737061746b 69 11
      3a0b 407370646566 69 0f
      3a0b 407370656564 69 14
      3a0b 406d6f766573 5b07
        6f 3a0b 50424d6f7665 08
          3b08 69 59
          3a08 407070 69 23
          3a0a 4070707570 69 00
        30
      3a08 406f74 40 06
      3a10 40706572736f6e616c4944 6c 2b 07 4de640bb
      3a0a 4072617465 66 08 302e35
  3a0e 406c61737472617465 40 0e
0408 69 0300d002
`

// Byte offsets into RubySave of values the tests edit
const (
	// RubySaveMoneyOffset is the first byte of the 3000 money long (02 b8 0b)
	RubySaveMoneyOffset = 60
	// RubySaveLevelOffset is the single byte of the level 5 long
	RubySaveLevelOffset = 142
	// RubySaveSpeedOffset is the single byte of the speed 15 long
	RubySaveSpeedOffset = 214
)

// RubySave returns the decoded bytes of RubySaveHex
func RubySave() []byte {
	data, err := hex.DecodeString(strings.Join(strings.Fields(RubySaveHex), ""))
	if err != nil {
		panic("decoding ruby save fixture: " + err.Error())
	}
	return data
}
