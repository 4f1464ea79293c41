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
)

// errUnregistered is the internal form of ErrDanglingReference; callers
// attach the input offset.
var errUnregistered = errors.New("slot not registered")

// SymbolTable is the decode-side symbol table. Slots are numbered in order
// of definition in the stream.
type SymbolTable struct {
	slots  []*Symbol
	byName map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: make(map[string]*Symbol),
	}
}

// Intern records a symbol definition and returns its node and slot. A name
// that was already defined yields the existing node; the new slot still
// counts so later indices stay aligned with the stream.
func (t *SymbolTable) Intern(name string) (*Symbol, int) {
	sym, ok := t.byName[name]
	if !ok {
		sym = &Symbol{Name: name}
		t.byName[name] = sym
	}
	t.slots = append(t.slots, sym)
	return sym, len(t.slots) - 1
}

// Resolve returns the symbol defined at slot id
func (t *SymbolTable) Resolve(id int) (*Symbol, error) {
	if id < 0 || id >= len(t.slots) {
		return nil, errUnregistered
	}
	return t.slots[id], nil
}

func (t *SymbolTable) Len() int {
	return len(t.slots)
}

// ReferenceTable is the decode-side object table used by '@' links
type ReferenceTable struct {
	slots []Value
}

func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{}
}

// Register assigns the next slot to v. Compound values are registered
// before their children are read so that they can contain themselves.
func (t *ReferenceTable) Register(v Value) int {
	t.slots = append(t.slots, v)
	return len(t.slots) - 1
}

// Resolve returns the value registered at slot id
func (t *ReferenceTable) Resolve(id int) (Value, error) {
	if id < 0 || id >= len(t.slots) {
		return nil, errUnregistered
	}
	return t.slots[id], nil
}

func (t *ReferenceTable) Len() int {
	return len(t.slots)
}

// SymbolIndex is the encode-side symbol table. Symbols are interned by name,
// matching the dumper, which keys its table by symbol ID.
type SymbolIndex struct {
	ids  map[string]int
	next int
}

func NewSymbolIndex() *SymbolIndex {
	return &SymbolIndex{
		ids: make(map[string]int),
	}
}

// Lookup returns the slot of an already written symbol
func (x *SymbolIndex) Lookup(name string) (int, bool) {
	id, ok := x.ids[name]
	return id, ok
}

// Intern assigns the next slot to name
func (x *SymbolIndex) Intern(name string) int {
	id := x.next
	x.ids[name] = id
	x.next++
	return id
}

// ReferenceIndex is the encode-side object table, keyed by node identity
type ReferenceIndex struct {
	ids  map[Value]int
	next int
}

func NewReferenceIndex() *ReferenceIndex {
	return &ReferenceIndex{
		ids: make(map[Value]int),
	}
}

// Lookup returns the slot of an already written node
func (x *ReferenceIndex) Lookup(v Value) (int, bool) {
	id, ok := x.ids[v]
	return id, ok
}

// Register assigns the next slot to v
func (x *ReferenceIndex) Register(v Value) int {
	id := x.next
	x.ids[v] = id
	x.next++
	return id
}

// Reserve consumes a slot that nothing can link to, such as a fixnum value
// written in bignum form
func (x *ReferenceIndex) Reserve() int {
	id := x.next
	x.next++
	return id
}

func (x *ReferenceIndex) Len() int {
	return x.next
}
