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
	"math/big"
	"slices"
)

// DefaultMaxDepth bounds value nesting. Real saves stay far below this, but
// it keeps hostile input from exhausting the stack.
const DefaultMaxDepth = 256

type decodeConfig struct {
	knownClasses map[string]struct{}
	maxDepth     int
}

// DecodeOptionFunc is a type that represents functions that modify the decoder config
type DecodeOptionFunc func(*decodeConfig)

// WithKnownClasses restricts which object classes decode as *Object. Objects
// of any other class decode as *Unknown. Without this option every class is
// considered known.
func WithKnownClasses(names ...string) DecodeOptionFunc {
	return func(c *decodeConfig) {
		c.knownClasses = make(map[string]struct{}, len(names))
		for _, name := range names {
			c.knownClasses[name] = struct{}{}
		}
	}
}

// WithMaxDepth specifies the maximum value nesting depth
func WithMaxDepth(depth int) DecodeOptionFunc {
	return func(c *decodeConfig) {
		c.maxDepth = depth
	}
}

// Decode parses one or more consecutive Marshal dumps. Any error is fatal and
// no partial graph is returned.
func Decode(data []byte, opts ...DecodeOptionFunc) (*Graph, error) {
	cfg := decodeConfig{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := NewReader(data)
	g := &Graph{}
	for {
		doc, err := decodeDocument(r, &cfg)
		if err != nil {
			return nil, err
		}
		g.Documents = append(g.Documents, doc)
		if r.EOF() {
			break
		}
	}
	return g, nil
}

func decodeDocument(r *Reader, cfg *decodeConfig) (*Document, error) {
	start := r.Pos()
	major, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if major != MajorVersion || minor > MinorVersion {
		return nil, decodeErr(
			start,
			ErrUnsupportedVersion,
			"got %d.%d, want %d.%d",
			major,
			minor,
			MajorVersion,
			MinorVersion,
		)
	}
	d := &decoder{
		r:    r,
		cfg:  cfg,
		syms: NewSymbolTable(),
		refs: NewReferenceTable(),
	}
	root, err := d.readValue(0)
	if err != nil {
		return nil, err
	}
	return &Document{
		Major: major,
		Minor: minor,
		Root:  root,
	}, nil
}

type decoder struct {
	r    *Reader
	cfg  *decodeConfig
	syms *SymbolTable
	refs *ReferenceTable
}

func (d *decoder) known(class string) bool {
	if d.cfg.knownClasses == nil {
		return true
	}
	_, ok := d.cfg.knownClasses[class]
	return ok
}

func (d *decoder) readValue(depth int) (Value, error) {
	if depth > d.cfg.maxDepth {
		return nil, decodeErr(d.r.Pos(), ErrNestingTooDeep, "limit %d", d.cfg.maxDepth)
	}
	start := d.r.Pos()
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TypeNil:
		return Nil{}, nil
	case TypeTrue:
		return Bool(true), nil
	case TypeFalse:
		return Bool(false), nil
	case TypeFixnum:
		n, err := d.r.ReadLong()
		if err != nil {
			return nil, err
		}
		return Int(n), nil
	case TypeSymbol:
		return d.defineSymbol(false, depth)
	case TypeSymlink:
		return d.symlink(start)
	case TypeLink:
		id, err := d.r.ReadLong()
		if err != nil {
			return nil, err
		}
		v, err := d.refs.Resolve(int(id))
		if err != nil {
			return nil, decodeErr(start, ErrDanglingReference, "object link %d, %d registered", id, d.refs.Len())
		}
		return v, nil
	case TypeIvar:
		return d.readIvar(depth)
	default:
		return d.readDecorated(tag, start, &Attrs{}, depth)
	}
}

// readIvar handles the 'I' wrapper, which adds instance variables after the
// wrapped value
func (d *decoder) readIvar(depth int) (Value, error) {
	start := d.r.Pos()
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if tag == TypeSymbol {
		return d.defineSymbol(true, depth)
	}
	return d.readDecorated(tag, start, &Attrs{HasIvars: true}, depth)
}

// readDecorated consumes any 'e' and 'C' prefixes, then the value they apply to
func (d *decoder) readDecorated(tag byte, start int, attrs *Attrs, depth int) (Value, error) {
	var err error
	for tag == TypeExtended {
		sym, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		attrs.Extends = append(attrs.Extends, sym)
		start = d.r.Pos()
		if tag, err = d.r.ReadByte(); err != nil {
			return nil, err
		}
	}
	if tag == TypeUserClass {
		sym, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		attrs.UserClass = sym
		start = d.r.Pos()
		if tag, err = d.r.ReadByte(); err != nil {
			return nil, err
		}
	}
	v, err := d.readCompound(tag, start, attrs, depth)
	if err != nil {
		return nil, err
	}
	// User-defined values read their ivars before registration
	if attrs.HasIvars && tag != TypeUserDef {
		fields, err := d.readFields(depth)
		if err != nil {
			return nil, err
		}
		v.attributes().Ivars = fields
	}
	return v, nil
}

func (d *decoder) readCompound(tag byte, start int, attrs *Attrs, depth int) (compound, error) {
	switch tag {
	case TypeString:
		data, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		s := &String{Attrs: *attrs, Data: data}
		d.refs.Register(s)
		return s, nil
	case TypeFloat:
		f, raw, err := d.r.ReadFloat()
		if err != nil {
			return nil, err
		}
		v := &Float{Attrs: *attrs, Value: f, raw: raw, rawOf: f}
		d.refs.Register(v)
		return v, nil
	case TypeBignum:
		return d.readBignum(attrs)
	case TypeArray:
		n, err := d.readCount(1)
		if err != nil {
			return nil, err
		}
		a := &Array{Attrs: *attrs, Elems: make([]Value, 0, n)}
		d.refs.Register(a)
		for range n {
			elem, err := d.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			a.Elems = append(a.Elems, elem)
		}
		return a, nil
	case TypeHash, TypeHashDef:
		n, err := d.readCount(2)
		if err != nil {
			return nil, err
		}
		h := &Hash{Attrs: *attrs, Pairs: make([]Pair, 0, n)}
		d.refs.Register(h)
		for range n {
			key, err := d.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			val, err := d.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			h.Pairs = append(h.Pairs, Pair{Key: key, Value: val})
		}
		if tag == TypeHashDef {
			def, err := d.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			h.Default = def
		}
		return h, nil
	case TypeObject:
		class, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		if d.known(class.Name) {
			o := &Object{Attrs: *attrs, Class: class}
			d.refs.Register(o)
			if o.Fields, err = d.readFields(depth); err != nil {
				return nil, err
			}
			return o, nil
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Class: class}
		d.refs.Register(u)
		if u.Fields, err = d.readFields(depth); err != nil {
			return nil, err
		}
		return u, nil
	case TypeStruct:
		class, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		n, err := d.readCount(2)
		if err != nil {
			return nil, err
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Class: class}
		d.refs.Register(u)
		if u.Fields, err = d.readFieldList(n, depth); err != nil {
			return nil, err
		}
		return u, nil
	case TypeUserDef:
		class, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		data, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Class: class, Data: data}
		if attrs.HasIvars {
			if u.Ivars, err = d.readFields(depth); err != nil {
				return nil, err
			}
		}
		d.refs.Register(u)
		return u, nil
	case TypeUserMarsh, TypeData:
		class, err := d.readSymbol(depth)
		if err != nil {
			return nil, err
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Class: class}
		d.refs.Register(u)
		if u.Inner, err = d.readValue(depth + 1); err != nil {
			return nil, err
		}
		return u, nil
	case TypeRegexp:
		data, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		flags, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Data: data, Flags: flags}
		d.refs.Register(u)
		return u, nil
	case TypeClass, TypeModule, TypeOldModule:
		data, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		u := &Unknown{Attrs: *attrs, Tag: tag, Data: data}
		d.refs.Register(u)
		return u, nil
	}
	return nil, decodeErr(start, ErrMalformedTag, "unexpected type byte 0x%02x", tag)
}

// readCount reads an element count and rejects counts that cannot fit in the
// remaining input, given the minimum encoded size of one element
func (d *decoder) readCount(minSize int) (int, error) {
	start := d.r.Pos()
	n, err := d.r.ReadLength()
	if err != nil {
		return 0, err
	}
	if n > d.r.Remaining()/minSize {
		return 0, decodeErr(start, ErrTruncatedInput, "count %d exceeds remaining %d bytes", n, d.r.Remaining())
	}
	return n, nil
}

func (d *decoder) readBignum(attrs *Attrs) (compound, error) {
	start := d.r.Pos()
	sign, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if sign != '+' && sign != '-' {
		return nil, decodeErr(start, ErrMalformedTag, "bad bignum sign 0x%02x", sign)
	}
	shorts, err := d.r.ReadLength()
	if err != nil {
		return nil, err
	}
	mag, err := d.r.ReadBytes(shorts * 2)
	if err != nil {
		return nil, err
	}
	// Magnitude is little-endian
	slices.Reverse(mag)
	n := new(big.Int).SetBytes(mag)
	if sign == '-' {
		n.Neg(n)
	}
	b := &Bignum{Attrs: *attrs, Int: n, shorts: shorts}
	d.refs.Register(b)
	return b, nil
}

func (d *decoder) readSymbol(depth int) (*Symbol, error) {
	start := d.r.Pos()
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TypeSymbol:
		return d.defineSymbol(false, depth)
	case TypeSymlink:
		return d.symlink(start)
	case TypeIvar:
		next, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if next == TypeSymbol {
			return d.defineSymbol(true, depth)
		}
	}
	return nil, decodeErr(start, ErrMalformedTag, "expected symbol, got type byte 0x%02x", tag)
}

func (d *decoder) defineSymbol(ivar bool, depth int) (*Symbol, error) {
	name, err := d.r.ReadString()
	if err != nil {
		return nil, err
	}
	sym, _ := d.syms.Intern(string(name))
	if ivar {
		fields, err := d.readFields(depth)
		if err != nil {
			return nil, err
		}
		sym.HasIvars = true
		sym.Ivars = fields
	}
	return sym, nil
}

func (d *decoder) symlink(start int) (*Symbol, error) {
	id, err := d.r.ReadLong()
	if err != nil {
		return nil, err
	}
	sym, err := d.syms.Resolve(int(id))
	if err != nil {
		return nil, decodeErr(start, ErrDanglingReference, "symbol link %d, %d defined", id, d.syms.Len())
	}
	return sym, nil
}

// readFields reads a counted list of symbol/value pairs
func (d *decoder) readFields(depth int) ([]Field, error) {
	n, err := d.readCount(2)
	if err != nil {
		return nil, err
	}
	return d.readFieldList(n, depth)
}

func (d *decoder) readFieldList(n int, depth int) ([]Field, error) {
	if depth+1 > d.cfg.maxDepth {
		return nil, decodeErr(d.r.Pos(), ErrNestingTooDeep, "limit %d", d.cfg.maxDepth)
	}
	fields := make([]Field, 0, n)
	for range n {
		name, err := d.readSymbol(depth + 1)
		if err != nil {
			return nil, err
		}
		val, err := d.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: name, Value: val})
	}
	return fields, nil
}
