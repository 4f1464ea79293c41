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

// Package marshal decodes and encodes the Ruby Marshal 4.8 binary format
// used by RPG Maker save files (.rxdata).
//
// # Key Types
//
//   - Graph, Document: one decoded file, holding one Document per
//     consecutive dump in the input
//   - Value: sealed interface implemented by Nil, Bool, Int, *Bignum,
//     *Float, *String, *Symbol, *Array, *Hash, *Object and *Unknown
//   - Reader, Writer: bounds-checked primitive codec
//   - SymbolTable, ReferenceTable: decode-side back-reference tables
//   - SymbolIndex, ReferenceIndex: their encode-side mirrors
//
// # Shared References
//
// The format deduplicates repeated objects with "@n" links into an
// object table and repeated symbols with ";n" links into a symbol table.
// Decode resolves a link to the same Go pointer that was produced at the
// first occurrence, so cycles and aliasing survive in memory. Encode
// assigns table slots in the same order the decoder does and writes a
// link whenever it meets a pointer it has already written.
//
// # Round-trip Contract
//
// For any canonical input b (anything produced by Ruby's Marshal.dump):
//
//	g, _ := marshal.Decode(b)
//	out, _ := marshal.Encode(g)
//	// bytes.Equal(out, b)
//
// Objects whose class is not in the decoder's known set, and tags that
// are never interpreted (Struct, _dump/marshal_load user types, Regexp,
// Class, Module, Data) decode into *Unknown and re-encode unchanged.
package marshal
