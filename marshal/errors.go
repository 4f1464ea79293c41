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
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than a read requires
	ErrTruncatedInput = errors.New("truncated input")
	// ErrMalformedTag is returned for a type byte that is invalid at its position
	ErrMalformedTag = errors.New("malformed tag")
	// ErrDanglingReference is returned for a link to a table slot that was never registered
	ErrDanglingReference = errors.New("dangling reference")
	// ErrUnsupportedVersion is returned when a document header is not Marshal 4.x (x <= 8)
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrNestingTooDeep is returned when values nest beyond the configured depth
	ErrNestingTooDeep = errors.New("nesting too deep")
	// ErrInvalidGraph is returned by Encode for graphs that Decode could never produce
	ErrInvalidGraph = errors.New("invalid graph")
)

// DecodeError records the input offset at which decoding failed
type DecodeError struct {
	Offset int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("marshal: %s at offset %d: %s", e.Err, e.Offset, e.Detail)
	}
	return fmt.Sprintf("marshal: %s at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(offset int, err error, format string, args ...any) error {
	return &DecodeError{
		Offset: offset,
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	}
}
