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
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTooManySessions is returned when the manager is at its session limit
var ErrTooManySessions = errors.New("too many sessions")

// SessionId is an opaque session identifier
type SessionId uuid.UUID

func (id SessionId) String() string {
	return uuid.UUID(id).String()
}

// ParseSessionId parses the string form of a SessionId
func ParseSessionId(s string) (SessionId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionId{}, err
	}
	return SessionId(id), nil
}

// SessionManagerSessionExpiredFunc is a function that takes the ID of a session removed for being idle
type SessionManagerSessionExpiredFunc func(SessionId)

type SessionManagerConfig struct {
	Logger *slog.Logger
	// IdleTimeout removes sessions unused for this long. Zero disables expiry
	IdleTimeout time.Duration
	// ReapInterval is how often idle sessions are checked for. The default is
	// half of IdleTimeout
	ReapInterval time.Duration
	// MaxSessions limits the number of live sessions. Zero means no limit
	MaxSessions        int
	SessionOptions     []SessionOptionFunc
	SessionExpiredFunc SessionManagerSessionExpiredFunc
}

type SessionManager struct {
	config        SessionManagerConfig
	logger        *slog.Logger
	baseLogger    *slog.Logger
	sessions      map[SessionId]*SessionManagerSession
	sessionsMutex sync.Mutex
	doneChan      chan struct{}
	onceStop      sync.Once
	waitGroup     sync.WaitGroup
}

type SessionManagerSession struct {
	Session  *Session
	Created  time.Time
	lastUsed time.Time
}

// NewSessionManager returns a manager and starts its idle reaper if
// IdleTimeout is set. Call Stop when done with it.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &SessionManager{
		config:     cfg,
		logger:     logger.With("component", "session_manager"),
		baseLogger: logger,
		sessions:   make(map[SessionId]*SessionManagerSession),
		doneChan:   make(chan struct{}),
	}
	if cfg.IdleTimeout > 0 {
		interval := cfg.ReapInterval
		if interval <= 0 {
			interval = cfg.IdleTimeout / 2
		}
		m.waitGroup.Add(1)
		go m.reapLoop(interval)
	}
	return m
}

// NewSession creates an empty session and registers it
func (m *SessionManager) NewSession() (SessionId, *Session, error) {
	id := SessionId(uuid.New())
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()
	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return SessionId{}, nil, ErrTooManySessions
	}
	opts := append(
		[]SessionOptionFunc{WithLogger(m.baseLogger.With("session_id", id.String()))},
		m.config.SessionOptions...,
	)
	session := NewSession(opts...)
	now := time.Now()
	m.sessions[id] = &SessionManagerSession{
		Session:  session,
		Created:  now,
		lastUsed: now,
	}
	m.logger.Debug("created session", "session_id", id.String())
	return id, session, nil
}

// GetSession returns the session for id and marks it as used
func (m *SessionManager) GetSession(id SessionId) (*Session, bool) {
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastUsed = time.Now()
	return entry.Session, true
}

// RemoveSession clears and forgets the session for id
func (m *SessionManager) RemoveSession(id SessionId) {
	m.sessionsMutex.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.sessionsMutex.Unlock()
	if ok {
		entry.Session.Clear()
		m.logger.Debug("removed session", "session_id", id.String())
	}
}

// Len returns the number of live sessions
func (m *SessionManager) Len() int {
	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()
	return len(m.sessions)
}

// Stop shuts down the reaper and clears every session
func (m *SessionManager) Stop() {
	m.onceStop.Do(func() {
		close(m.doneChan)
		m.waitGroup.Wait()
		m.sessionsMutex.Lock()
		sessions := m.sessions
		m.sessions = make(map[SessionId]*SessionManagerSession)
		m.sessionsMutex.Unlock()
		for _, entry := range sessions {
			entry.Session.Clear()
		}
	})
}

func (m *SessionManager) reapLoop(interval time.Duration) {
	defer m.waitGroup.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.doneChan:
			return
		case now := <-ticker.C:
			m.reap(now)
		}
	}
}

func (m *SessionManager) reap(now time.Time) {
	var expired []SessionId
	m.sessionsMutex.Lock()
	for id, entry := range m.sessions {
		if now.Sub(entry.lastUsed) >= m.config.IdleTimeout {
			expired = append(expired, id)
			delete(m.sessions, id)
			entry.Session.Clear()
		}
	}
	m.sessionsMutex.Unlock()
	for _, id := range expired {
		m.logger.Info("expired idle session", "session_id", id.String())
		if m.config.SessionExpiredFunc != nil {
			m.config.SessionExpiredFunc(id)
		}
	}
}
