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

package marshal

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

func parseFloat(raw []byte) (float64, error) {
	// Pre-1.9 dumps append a NUL and mantissa bytes after the text
	if idx := bytes.IndexByte(raw, 0); idx >= 0 {
		raw = raw[:idx]
	}
	switch string(raw) {
	case "nan":
		return math.NaN(), nil
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(string(raw), 64)
}

// formatFloat renders f the way Ruby's w_float does: shortest round-trip
// digits, plain notation when the decimal point falls within the digits
// (or up to three leading zeros), exponent notation otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	var sb strings.Builder
	if f < 0 {
		sb.WriteByte('-')
		f = -f
	}
	// d.ddddde±XX
	tmp := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(tmp, "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.Replace(mant, ".", "", 1)
	decpt := exp + 1
	digs := len(digits)
	switch {
	case decpt < -3 || decpt > digs:
		sb.WriteByte(digits[0])
		if digs > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		sb.WriteByte('e')
		sb.WriteString(strconv.Itoa(decpt - 1))
	case decpt > 0:
		sb.WriteString(digits[:decpt])
		if digs > decpt {
			sb.WriteByte('.')
			sb.WriteString(digits[decpt:])
		}
	default:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -decpt))
		sb.WriteString(digits)
	}
	return sb.String()
}

// sameFloat compares bit patterns so NaN and signed zero are handled
func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
