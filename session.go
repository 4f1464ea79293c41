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

// Package rxedit edits Pokemon Essentials save files.
//
// A Session holds one decoded save. Callers load raw bytes, read a
// projection of the trainer and party, apply validated edits and export
// the re-encoded bytes. A SessionManager keeps independent sessions keyed
// by opaque IDs for collaborators that serve several users at once.
//
// Everything the save contains beyond the few editable fields, including
// objects of classes this package does not understand, is carried through
// to the exported bytes unchanged.
package rxedit

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/rxedit/marshal"
	"github.com/blinklabs-io/rxedit/patch"
	"github.com/blinklabs-io/rxedit/schema"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/blake2b"
)

// ErrNoData is returned by operations that need a loaded save
var ErrNoData = errors.New("no save loaded")

// SessionState represents the lifecycle state of a Session
type SessionState uint8

const (
	StateEmpty SessionState = iota
	StateLoaded
	StateMutated
)

func (s SessionState) String() string {
	tmp := map[SessionState]string{
		StateEmpty:   "Empty",
		StateLoaded:  "Loaded",
		StateMutated: "Mutated",
	}
	ret, ok := tmp[s]
	if !ok {
		return "Unknown"
	}
	return ret
}

// Source identifies the bytes a session was loaded from
type Source struct {
	Name string
	Size int
	// Digest is the BLAKE2b-256 hash of the loaded bytes
	Digest []byte
}

func (s Source) DigestHex() string {
	return hex.EncodeToString(s.Digest)
}

// Session holds at most one decoded save. All methods are safe for
// concurrent use.
type Session struct {
	mutex        sync.Mutex
	logger       *slog.Logger
	knownClasses []string
	maxDepth     int
	state        SessionState
	source       Source
	graph        *marshal.Graph
	projection   *schema.Projection
}

// NewSession returns an empty session
func NewSession(options ...SessionOptionFunc) *Session {
	s := &Session{
		knownClasses: schema.KnownClasses,
		maxDepth:     marshal.DefaultMaxDepth,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "session")
	return s
}

// Load decodes data and replaces whatever the session held. On failure the
// session keeps its previous contents.
func (s *Session) Load(name string, data []byte) error {
	g, err := marshal.Decode(
		data,
		marshal.WithKnownClasses(s.knownClasses...),
		marshal.WithMaxDepth(s.maxDepth),
	)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	digest := blake2b.Sum256(data)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.graph = g
	s.projection = nil
	s.source = Source{
		Name:   name,
		Size:   len(data),
		Digest: digest[:],
	}
	s.state = StateLoaded
	s.logger.Debug(
		"loaded save",
		"name", name,
		"size", len(data),
		"documents", len(g.Documents),
		"digest", s.source.DigestHex(),
	)
	return nil
}

// State returns the current lifecycle state
func (s *Session) State() SessionState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Source returns the identity of the loaded bytes
func (s *Session) Source() (Source, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == StateEmpty {
		return Source{}, ErrNoData
	}
	ret := s.source
	ret.Digest = append([]byte(nil), s.source.Digest...)
	return ret, nil
}

// Projection returns a snapshot of the trainer and party. The caller owns
// the returned value.
func (s *Session) Projection() (*schema.Projection, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == StateEmpty {
		return nil, ErrNoData
	}
	if s.projection == nil {
		v, err := schema.NewView(s.graph)
		if err != nil {
			return nil, err
		}
		proj, err := v.Projection()
		if err != nil {
			return nil, err
		}
		s.projection = proj
	}
	ret := &schema.Projection{}
	if err := copier.CopyWithOption(ret, s.projection, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy projection: %w", err)
	}
	return ret, nil
}

// SetTrainerMoney sets the trainer's money
func (s *Session) SetTrainerMoney(amount int64) (int64, error) {
	return s.mutate(
		"money",
		func(g *marshal.Graph) (int64, error) {
			return patch.SetTrainerMoney(g, amount)
		},
	)
}

// SetPokemonLevel sets the level of the party member at index
func (s *Session) SetPokemonLevel(index int, level int64) (int64, error) {
	return s.mutate(
		"level",
		func(g *marshal.Graph) (int64, error) {
			return patch.SetPokemonLevel(g, index, level)
		},
		"index", index,
	)
}

// SetPokemonStat sets one stat of the party member at index
func (s *Session) SetPokemonStat(index int, stat schema.Stat, value int64) (int64, error) {
	return s.mutate(
		string(stat),
		func(g *marshal.Graph) (int64, error) {
			return patch.SetPokemonStat(g, index, stat, value)
		},
		"index", index,
	)
}

func (s *Session) mutate(field string, fn func(*marshal.Graph) (int64, error), attrs ...any) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == StateEmpty {
		return 0, ErrNoData
	}
	ret, err := fn(s.graph)
	if err != nil {
		return 0, err
	}
	s.projection = nil
	s.state = StateMutated
	s.logger.Debug(
		"patched save",
		append([]any{"name", s.source.Name, "field", field, "value", ret}, attrs...)...,
	)
	return ret, nil
}

// Export encodes the current graph
func (s *Session) Export() ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == StateEmpty {
		return nil, ErrNoData
	}
	data, err := marshal.Encode(s.graph)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", s.source.Name, err)
	}
	return data, nil
}

// Dump renders the decoded graph as an indented tree
func (s *Session) Dump() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == StateEmpty {
		return "", ErrNoData
	}
	return marshal.DumpStructure(s.graph), nil
}

// Clear drops the loaded save
func (s *Session) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.graph = nil
	s.projection = nil
	s.source = Source{}
	s.state = StateEmpty
}
