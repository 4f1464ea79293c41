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
	"fmt"
	"unicode/utf8"
)

// DumpStructure generates an indented string representing a decoded graph for
// debugging purposes. Compound values are numbered on first sight and later
// occurrences print as "-> #n", so cyclic graphs terminate.
func DumpStructure(g *Graph) string {
	var ret bytes.Buffer
	d := &dumper{out: &ret, seen: map[Value]int{}}
	for idx, doc := range g.Documents {
		fmt.Fprintf(&ret, "document %d (%d.%d)\n", idx, doc.Major, doc.Minor)
		d.dump(doc.Root, "  ", "")
		// Numbering restarts per document, like the link tables
		d.seen = map[Value]int{}
	}
	return ret.String()
}

// DumpValueStructure is DumpStructure for a single value
func DumpValueStructure(v Value, prefix string) string {
	var ret bytes.Buffer
	d := &dumper{out: &ret, seen: map[Value]int{}}
	d.dump(v, prefix, "")
	return ret.String()
}

type dumper struct {
	out  *bytes.Buffer
	seen map[Value]int
}

func (d *dumper) dump(v Value, prefix string, label string) {
	if c, ok := v.(compound); ok {
		if num, ok := d.seen[c]; ok {
			fmt.Fprintf(d.out, "%s%s-> #%d\n", prefix, label, num)
			return
		}
		d.seen[c] = len(d.seen)
	}
	newPrefix := prefix + "  "
	switch tv := v.(type) {
	case nil:
		fmt.Fprintf(d.out, "%s%s<invalid nil>\n", prefix, label)
	case Nil:
		fmt.Fprintf(d.out, "%s%snil\n", prefix, label)
	case Bool:
		fmt.Fprintf(d.out, "%s%s%t\n", prefix, label, bool(tv))
	case Int:
		fmt.Fprintf(d.out, "%s%s%d\n", prefix, label, int64(tv))
	case *Bignum:
		fmt.Fprintf(d.out, "%s%s%s (bignum) #%d\n", prefix, label, tv.Int, d.seen[tv])
	case *Float:
		fmt.Fprintf(d.out, "%s%s%s (float) #%d\n", prefix, label, formatFloat(tv.Value), d.seen[tv])
	case *String:
		if utf8.Valid(tv.Data) {
			fmt.Fprintf(d.out, "%s%s%q (%s) #%d\n", prefix, label, tv.Data, tv.Encoding(), d.seen[tv])
		} else {
			fmt.Fprintf(d.out, "%s%s<bytes> (length %d) #%d\n", prefix, label, len(tv.Data), d.seen[tv])
		}
	case *Symbol:
		fmt.Fprintf(d.out, "%s%s:%s\n", prefix, label, tv.Name)
	case *Array:
		fmt.Fprintf(d.out, "%s%s[ #%d\n", prefix, label, d.seen[tv])
		for _, elem := range tv.Elems {
			d.dump(elem, newPrefix, "")
		}
		fmt.Fprintf(d.out, "%s]\n", prefix)
	case *Hash:
		fmt.Fprintf(d.out, "%s%s{ #%d\n", prefix, label, d.seen[tv])
		for _, p := range tv.Pairs {
			d.dump(p.Key, newPrefix, "key: ")
			d.dump(p.Value, newPrefix+"  ", "=> ")
		}
		if tv.Default != nil {
			d.dump(tv.Default, newPrefix, "default: ")
		}
		fmt.Fprintf(d.out, "%s}\n", prefix)
	case *Object:
		fmt.Fprintf(d.out, "%s%s%s #%d\n", prefix, label, tv.ClassName(), d.seen[tv])
		d.dumpFields(tv.Fields, newPrefix)
	case *Unknown:
		fmt.Fprintf(
			d.out,
			"%s%s<unknown %q %s> #%d\n",
			prefix,
			label,
			tv.Tag,
			tv.ClassName(),
			d.seen[tv],
		)
		d.dumpFields(tv.Fields, newPrefix)
		if tv.Data != nil {
			fmt.Fprintf(d.out, "%s<bytes> (length %d)\n", newPrefix, len(tv.Data))
		}
		if tv.Inner != nil {
			d.dump(tv.Inner, newPrefix, "inner: ")
		}
	default:
		fmt.Fprintf(d.out, "%s%s%#v\n", prefix, label, v)
	}
	if c, ok := v.(compound); ok && c.attributes().HasIvars {
		for _, f := range c.attributes().Ivars {
			d.dump(f.Value, newPrefix, "ivar "+fieldName(f)+": ")
		}
	}
}

func (d *dumper) dumpFields(fields []Field, prefix string) {
	for _, f := range fields {
		d.dump(f.Value, prefix, fieldName(f)+": ")
	}
}

func fieldName(f Field) string {
	if f.Name == nil {
		return "<nil>"
	}
	return f.Name.Name
}
