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

package rxedit

import (
	"log/slog"
)

// SessionOptionFunc is a type that represents functions that modify the Session config
type SessionOptionFunc func(*Session)

// WithLogger specifies the logger. The default is slog.Default()
func WithLogger(logger *slog.Logger) SessionOptionFunc {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithKnownClasses specifies which object classes decode as objects. The
// default is schema.KnownClasses
func WithKnownClasses(classes ...string) SessionOptionFunc {
	return func(s *Session) {
		s.knownClasses = classes
	}
}

// WithMaxDepth specifies the maximum value nesting depth accepted on load
func WithMaxDepth(depth int) SessionOptionFunc {
	return func(s *Session) {
		s.maxDepth = depth
	}
}
