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

// Package cbor encodes save projections as CBOR for collaborators that
// want a compact binary read model instead of JSON.
//
// It wraps github.com/fxamacker/cbor/v2 with cached, deterministic
// encoding options: map keys are sorted using the core deterministic
// rules, so equal projections always encode to equal bytes. Decoding
// turns CBOR integers stored in interface values into int64, matching
// how schema.Projection holds species and move IDs.
package cbor
