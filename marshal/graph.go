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

// Graph is a decoded file. RPG Maker writes a save as several dumps back to
// back, so a Graph holds one Document per dump.
type Graph struct {
	Documents []*Document
}

// Document is a single dump: a version header and a root value. Back
// references never cross document boundaries.
type Document struct {
	Major byte
	Minor byte
	Root  Value
}

// NewGraph returns a single-document 4.8 graph
func NewGraph(roots ...Value) *Graph {
	g := &Graph{}
	for _, root := range roots {
		g.Documents = append(
			g.Documents,
			&Document{
				Major: MajorVersion,
				Minor: MinorVersion,
				Root:  root,
			},
		)
	}
	return g
}

// Root returns the root of the first document, or nil for an empty graph
func (g *Graph) Root() Value {
	if g == nil || len(g.Documents) == 0 {
		return nil
	}
	return g.Documents[0].Root
}

// Roots returns the root of every document in order
func (g *Graph) Roots() []Value {
	ret := make([]Value, 0, len(g.Documents))
	for _, doc := range g.Documents {
		ret = append(ret, doc.Root)
	}
	return ret
}

// Walk visits every value reachable from roots breadth-first, each compound
// node once. Returning false from fn stops the walk.
func Walk(fn func(Value) bool, roots ...Value) {
	seen := make(map[Value]struct{})
	queue := append([]Value(nil), roots...)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == nil {
			continue
		}
		if _, ok := v.(compound); ok {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		if !fn(v) {
			return
		}
		queue = appendChildren(queue, v)
	}
}

func appendChildren(queue []Value, v Value) []Value {
	switch tv := v.(type) {
	case *Array:
		queue = append(queue, tv.Elems...)
	case *Hash:
		for _, p := range tv.Pairs {
			queue = append(queue, p.Key, p.Value)
		}
		if tv.Default != nil {
			queue = append(queue, tv.Default)
		}
	case *Object:
		for _, f := range tv.Fields {
			queue = append(queue, f.Value)
		}
	case *Unknown:
		for _, f := range tv.Fields {
			queue = append(queue, f.Value)
		}
		if tv.Inner != nil {
			queue = append(queue, tv.Inner)
		}
	}
	if c, ok := v.(compound); ok {
		for _, f := range c.attributes().Ivars {
			queue = append(queue, f.Value)
		}
	}
	return queue
}
