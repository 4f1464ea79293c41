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
	"math/big"
)

// Type bytes of the Marshal 4.8 format
const (
	TypeNil        byte = '0'
	TypeTrue       byte = 'T'
	TypeFalse      byte = 'F'
	TypeFixnum     byte = 'i'
	TypeExtended   byte = 'e'
	TypeUserClass  byte = 'C'
	TypeObject     byte = 'o'
	TypeData       byte = 'd'
	TypeUserDef    byte = 'u'
	TypeUserMarsh  byte = 'U'
	TypeFloat      byte = 'f'
	TypeBignum     byte = 'l'
	TypeString     byte = '"'
	TypeRegexp     byte = '/'
	TypeArray      byte = '['
	TypeHash       byte = '{'
	TypeHashDef    byte = '}'
	TypeStruct     byte = 'S'
	TypeOldModule  byte = 'M'
	TypeClass      byte = 'c'
	TypeModule     byte = 'm'
	TypeSymbol     byte = ':'
	TypeSymlink    byte = ';'
	TypeIvar       byte = 'I'
	TypeLink       byte = '@'
	MajorVersion   byte = 4
	MinorVersion   byte = 8
	fixnumMaxValue      = math.MaxInt32
	fixnumMinValue      = math.MinInt32
)

// Value is one node of a decoded graph. The set of implementations is closed.
type Value interface {
	isValue()
}

// compound is implemented by every Value that occupies an object table slot
type compound interface {
	Value
	attributes() *Attrs
}

// Attrs holds the decorations a compound value can carry on the wire: an
// 'I' wrapper with instance variables, 'e' extended modules and a 'C'
// user subclass.
type Attrs struct {
	HasIvars  bool
	Ivars     []Field
	Extends   []*Symbol
	UserClass *Symbol
}

func (a *Attrs) attributes() *Attrs {
	return a
}

// Ivar returns the named instance variable from the 'I' wrapper
func (a *Attrs) Ivar(name string) (Value, bool) {
	return lookupField(a.Ivars, name)
}

// Field is one name/value pair of an object, struct or ivar list
type Field struct {
	Name  *Symbol
	Value Value
}

// Pair is one key/value entry of a Hash
type Pair struct {
	Key   Value
	Value Value
}

// Nil is the nil value
type Nil struct{}

// Bool is true or false
type Bool bool

// Int is a fixnum. Values outside the 32-bit wire range are written as bignums.
type Int int64

// Bignum is an arbitrary-precision integer
type Bignum struct {
	Attrs
	Int *big.Int
	// shorts is the 16-bit word count seen on the wire, kept so that
	// padded encodings round-trip
	shorts int
}

// Float is a double. The original text is kept for byte-exact re-encoding.
type Float struct {
	Attrs
	Value float64
	raw   []byte
	rawOf float64
}

// String is a byte string. Its text encoding travels in ivars (E or encoding).
type String struct {
	Attrs
	Data []byte
}

// Symbol is an interned name. Decoded symbols are shared: every reference to
// the same table slot yields the same *Symbol.
type Symbol struct {
	Name     string
	HasIvars bool
	Ivars    []Field
}

// Array is an ordered list of values
type Array struct {
	Attrs
	Elems []Value
}

// Hash is an ordered list of key/value pairs with an optional default value
type Hash struct {
	Attrs
	Pairs []Pair
	// Default is nil when the hash was written without a default ('{')
	Default Value
}

// Object is an instance of a known class with ordered instance variables
type Object struct {
	Attrs
	Class  *Symbol
	Fields []Field
}

// Unknown is a compound value that is carried through without
// interpretation. Which members are meaningful depends on Tag:
//
//	'o', 'S'       Class, Fields
//	'u'            Class, Data
//	'U', 'd'       Class, Inner
//	'/'            Data, Flags
//	'c', 'm', 'M'  Data
type Unknown struct {
	Attrs
	Tag    byte
	Class  *Symbol
	Fields []Field
	Data   []byte
	Flags  byte
	Inner  Value
}

func (Nil) isValue()      {}
func (Bool) isValue()     {}
func (Int) isValue()      {}
func (*Bignum) isValue()  {}
func (*Float) isValue()   {}
func (*String) isValue()  {}
func (*Symbol) isValue()  {}
func (*Array) isValue()   {}
func (*Hash) isValue()    {}
func (*Object) isValue()  {}
func (*Unknown) isValue() {}

func NewBignum(i *big.Int) *Bignum {
	return &Bignum{Int: new(big.Int).Set(i)}
}

func NewFloat(f float64) *Float {
	return &Float{Value: f}
}

// NewString returns a UTF-8 tagged string, as Ruby 1.9+ dumps literals
func NewString(s string) *String {
	return &String{
		Attrs: Attrs{
			HasIvars: true,
			Ivars: []Field{
				{Name: NewSymbol("E"), Value: Bool(true)},
			},
		},
		Data: []byte(s),
	}
}

// NewBinaryString returns a string with no encoding ivars (ASCII-8BIT)
func NewBinaryString(data []byte) *String {
	return &String{Data: data}
}

func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}

func NewArray(elems ...Value) *Array {
	return &Array{Elems: elems}
}

func NewHash(pairs ...Pair) *Hash {
	return &Hash{Pairs: pairs}
}

func NewObject(class string, fields ...Field) *Object {
	return &Object{Class: NewSymbol(class), Fields: fields}
}

// NewField builds a Field with a fresh name symbol
func NewField(name string, value Value) Field {
	return Field{Name: NewSymbol(name), Value: value}
}

// Encoding reports the Ruby encoding name carried by the string's ivars
func (s *String) Encoding() string {
	if v, ok := s.Ivar("E"); ok {
		if b, ok := v.(Bool); ok && bool(b) {
			return "UTF-8"
		}
		return "US-ASCII"
	}
	if v, ok := s.Ivar("encoding"); ok {
		if str, ok := v.(*String); ok {
			return string(str.Data)
		}
	}
	return "ASCII-8BIT"
}

func (s *String) String() string {
	return string(s.Data)
}

func (a *Array) Len() int {
	return len(a.Elems)
}

// Lookup returns the value stored under key, comparing keys with Equal
func (h *Hash) Lookup(key Value) (Value, bool) {
	for _, p := range h.Pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Field returns the named instance variable
func (o *Object) Field(name string) (Value, bool) {
	return lookupField(o.Fields, name)
}

// SetField replaces the value of an existing instance variable in place,
// keeping its position. It returns false if the object has no such field.
func (o *Object) SetField(name string, v Value) bool {
	return setField(o.Fields, name, v)
}

// ClassName returns the object's class name
func (o *Object) ClassName() string {
	if o.Class == nil {
		return ""
	}
	return o.Class.Name
}

// Field returns the named member for field-bearing unknown values
func (u *Unknown) Field(name string) (Value, bool) {
	return lookupField(u.Fields, name)
}

func (u *Unknown) ClassName() string {
	if u.Class == nil {
		return ""
	}
	return u.Class.Name
}

// SetField replaces the value of an existing member in place. It returns
// false if there is no such member.
func (u *Unknown) SetField(name string, v Value) bool {
	return setField(u.Fields, name, v)
}

// Record is a value with named instance variables
type Record interface {
	Value
	ClassName() string
	Field(name string) (Value, bool)
	SetField(name string, v Value) bool
}

// AsRecord returns v as a Record when it is an object. Objects of classes
// outside the known set count too: they decode as an *Unknown with the 'o'
// tag and the same field list.
func AsRecord(v Value) (Record, bool) {
	switch tv := v.(type) {
	case *Object:
		return tv, tv != nil
	case *Unknown:
		if tv != nil && tv.Tag == TypeObject {
			return tv, true
		}
	}
	return nil, false
}

func setField(fields []Field, name string, v Value) bool {
	for i := range fields {
		if fields[i].Name != nil && fields[i].Name.Name == name {
			fields[i].Value = v
			return true
		}
	}
	return false
}

func lookupField(fields []Field, name string) (Value, bool) {
	for _, f := range fields {
		if f.Name != nil && f.Name.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Equal reports key equality the way a Hash compares keys: scalars, strings
// and symbols by content, everything else by identity
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int, *Bignum:
		ai, aok := BigValue(a)
		bi, bok := BigValue(b)
		return aok && bok && ai.Cmp(bi) == 0
	case *Float:
		bv, ok := b.(*Float)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && bytes.Equal(av.Data, bv.Data)
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av.Name == bv.Name
	}
	return a == b
}

// IntValue returns v as an int64 if it is an integer that fits
func IntValue(v Value) (int64, bool) {
	switch tv := v.(type) {
	case Int:
		return int64(tv), true
	case *Bignum:
		if tv.Int != nil && tv.Int.IsInt64() {
			return tv.Int.Int64(), true
		}
	}
	return 0, false
}

// BigValue returns any integer value as a big.Int
func BigValue(v Value) (*big.Int, bool) {
	switch tv := v.(type) {
	case Int:
		return big.NewInt(int64(tv)), true
	case *Bignum:
		if tv.Int != nil {
			return tv.Int, true
		}
	}
	return nil, false
}

// StringValue returns the text of a String or the name of a Symbol
func StringValue(v Value) (string, bool) {
	switch tv := v.(type) {
	case *String:
		return string(tv.Data), true
	case *Symbol:
		return tv.Name, true
	}
	return "", false
}

// Truthy follows Ruby: everything except nil and false
func Truthy(v Value) bool {
	switch tv := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(tv)
	}
	return true
}

// TypeName returns a short description of the value's variant
func TypeName(v Value) string {
	switch tv := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case *Bignum:
		return "bignum"
	case *Float:
		return "float"
	case *String:
		return "string"
	case *Symbol:
		return "symbol"
	case *Array:
		return "array"
	case *Hash:
		return "hash"
	case *Object:
		return "object"
	case *Unknown:
		return "unknown(" + string(tv.Tag) + ")"
	}
	return "invalid"
}
