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
	"fmt"
	"math/big"
	"reflect"
	"slices"
)

// Encode serializes every document of the graph. Table slots are assigned in
// the order Decode assigns them, so an unmodified graph re-encodes to the
// bytes it was decoded from. An error means the graph was built incorrectly.
func Encode(g *Graph) ([]byte, error) {
	if g == nil || len(g.Documents) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrInvalidGraph)
	}
	w := NewWriter()
	for idx, doc := range g.Documents {
		if doc == nil {
			return nil, fmt.Errorf("%w: document %d is nil", ErrInvalidGraph, idx)
		}
		_ = w.WriteByte(doc.Major)
		_ = w.WriteByte(doc.Minor)
		e := &encoder{
			w:    w,
			syms: NewSymbolIndex(),
			refs: NewReferenceIndex(),
		}
		if err := e.writeValue(doc.Root); err != nil {
			return nil, fmt.Errorf("document %d: %w", idx, err)
		}
	}
	return w.Bytes(), nil
}

// EncodeValue serializes a single value as a 4.8 document
func EncodeValue(v Value) ([]byte, error) {
	return Encode(NewGraph(v))
}

type encoder struct {
	w    *Writer
	syms *SymbolIndex
	refs *ReferenceIndex
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGraph, fmt.Sprintf(format, args...))
}

func (e *encoder) writeValue(v Value) error {
	switch tv := v.(type) {
	case nil:
		return invalid("nil value")
	case Nil:
		_ = e.w.WriteByte(TypeNil)
	case Bool:
		if tv {
			_ = e.w.WriteByte(TypeTrue)
		} else {
			_ = e.w.WriteByte(TypeFalse)
		}
	case Int:
		e.writeInt(int64(tv))
	case *Symbol:
		return e.writeSymbol(tv)
	case compound:
		if reflect.ValueOf(tv).IsNil() {
			return invalid("nil %T", tv)
		}
		return e.writeCompound(tv)
	default:
		return invalid("unsupported value type %T", v)
	}
	return nil
}

func (e *encoder) writeInt(x int64) {
	if x >= fixnumMinValue && x <= fixnumMaxValue {
		_ = e.w.WriteByte(TypeFixnum)
		e.w.WriteLong(x)
		return
	}
	// The loader gives every bignum a slot, even one we promoted
	_ = e.w.WriteByte(TypeBignum)
	e.writeBignumBody(big.NewInt(x), 0)
	e.refs.Reserve()
}

func (e *encoder) writeBignumBody(n *big.Int, shorts int) {
	if n.Sign() < 0 {
		_ = e.w.WriteByte('-')
	} else {
		_ = e.w.WriteByte('+')
	}
	mag := new(big.Int).Abs(n).Bytes()
	slices.Reverse(mag)
	minShorts := (len(mag) + 1) / 2
	if shorts < minShorts {
		shorts = minShorts
	}
	e.w.WriteLong(int64(shorts))
	e.w.WriteBytes(mag)
	for i := len(mag); i < shorts*2; i++ {
		_ = e.w.WriteByte(0)
	}
}

func (e *encoder) writeSymbol(s *Symbol) error {
	if s == nil {
		return invalid("nil symbol")
	}
	if id, ok := e.syms.Lookup(s.Name); ok {
		_ = e.w.WriteByte(TypeSymlink)
		e.w.WriteLong(int64(id))
		return nil
	}
	if s.HasIvars {
		_ = e.w.WriteByte(TypeIvar)
	}
	_ = e.w.WriteByte(TypeSymbol)
	e.w.WriteString([]byte(s.Name))
	e.syms.Intern(s.Name)
	if s.HasIvars {
		return e.writeFields(s.Ivars)
	}
	return nil
}

func (e *encoder) writeFields(fields []Field) error {
	e.w.WriteLong(int64(len(fields)))
	return e.writeFieldList(fields)
}

func (e *encoder) writeFieldList(fields []Field) error {
	for _, f := range fields {
		if err := e.writeSymbol(f.Name); err != nil {
			return err
		}
		if err := e.writeValue(f.Value); err != nil {
			return fmt.Errorf("field %s: %w", f.Name.Name, err)
		}
	}
	return nil
}

func (e *encoder) writeCompound(c compound) error {
	if id, ok := e.refs.Lookup(c); ok {
		_ = e.w.WriteByte(TypeLink)
		e.w.WriteLong(int64(id))
		return nil
	}
	attrs := c.attributes()
	if attrs.HasIvars {
		_ = e.w.WriteByte(TypeIvar)
	}
	for _, ext := range attrs.Extends {
		_ = e.w.WriteByte(TypeExtended)
		if err := e.writeSymbol(ext); err != nil {
			return err
		}
	}
	if attrs.UserClass != nil {
		_ = e.w.WriteByte(TypeUserClass)
		if err := e.writeSymbol(attrs.UserClass); err != nil {
			return err
		}
	}
	userDef := false
	switch tv := c.(type) {
	case *String:
		_ = e.w.WriteByte(TypeString)
		e.w.WriteString(tv.Data)
		e.refs.Register(tv)
	case *Float:
		_ = e.w.WriteByte(TypeFloat)
		if tv.raw != nil && sameFloat(tv.Value, tv.rawOf) {
			e.w.WriteString(tv.raw)
		} else {
			e.w.WriteFloat(tv.Value)
		}
		e.refs.Register(tv)
	case *Bignum:
		if tv.Int == nil {
			return invalid("bignum without value")
		}
		_ = e.w.WriteByte(TypeBignum)
		e.writeBignumBody(tv.Int, tv.shorts)
		e.refs.Register(tv)
	case *Array:
		_ = e.w.WriteByte(TypeArray)
		e.w.WriteLong(int64(len(tv.Elems)))
		e.refs.Register(tv)
		for idx, elem := range tv.Elems {
			if err := e.writeValue(elem); err != nil {
				return fmt.Errorf("element %d: %w", idx, err)
			}
		}
	case *Hash:
		if tv.Default != nil {
			_ = e.w.WriteByte(TypeHashDef)
		} else {
			_ = e.w.WriteByte(TypeHash)
		}
		e.w.WriteLong(int64(len(tv.Pairs)))
		e.refs.Register(tv)
		for _, p := range tv.Pairs {
			if err := e.writeValue(p.Key); err != nil {
				return err
			}
			if err := e.writeValue(p.Value); err != nil {
				return err
			}
		}
		if tv.Default != nil {
			if err := e.writeValue(tv.Default); err != nil {
				return err
			}
		}
	case *Object:
		_ = e.w.WriteByte(TypeObject)
		if err := e.writeSymbol(tv.Class); err != nil {
			return err
		}
		e.refs.Register(tv)
		if err := e.writeFields(tv.Fields); err != nil {
			return fmt.Errorf("%s: %w", tv.Class.Name, err)
		}
	case *Unknown:
		userDef = tv.Tag == TypeUserDef
		if err := e.writeUnknown(tv); err != nil {
			return err
		}
	default:
		return invalid("unsupported value type %T", c)
	}
	if attrs.HasIvars && !userDef {
		return e.writeFields(attrs.Ivars)
	}
	return nil
}

func (e *encoder) writeUnknown(u *Unknown) error {
	_ = e.w.WriteByte(u.Tag)
	switch u.Tag {
	case TypeObject:
		if err := e.writeSymbol(u.Class); err != nil {
			return err
		}
		e.refs.Register(u)
		return e.writeFields(u.Fields)
	case TypeStruct:
		if err := e.writeSymbol(u.Class); err != nil {
			return err
		}
		e.w.WriteLong(int64(len(u.Fields)))
		e.refs.Register(u)
		return e.writeFieldList(u.Fields)
	case TypeUserDef:
		if err := e.writeSymbol(u.Class); err != nil {
			return err
		}
		e.w.WriteString(u.Data)
		if u.HasIvars {
			if err := e.writeFields(u.Ivars); err != nil {
				return err
			}
		}
		e.refs.Register(u)
		return nil
	case TypeUserMarsh, TypeData:
		if err := e.writeSymbol(u.Class); err != nil {
			return err
		}
		e.refs.Register(u)
		return e.writeValue(u.Inner)
	case TypeRegexp:
		e.w.WriteString(u.Data)
		_ = e.w.WriteByte(u.Flags)
		e.refs.Register(u)
		return nil
	case TypeClass, TypeModule, TypeOldModule:
		e.w.WriteString(u.Data)
		e.refs.Register(u)
		return nil
	}
	return invalid("unknown value with tag 0x%02x", u.Tag)
}
