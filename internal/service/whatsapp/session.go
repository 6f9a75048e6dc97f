package whatsapp

import (
	"sort"
	"sync"
	"time"
)

// Session is what we remember about a player who wrote to the game.
type Session struct {
	Sender   string
	Name     string
	LastSeen time.Time
	Commands int
}

// SessionManager tracks who has been playing over WhatsApp.
type SessionManager struct {
	sessions map[string]Session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
	}
}

// Touch records a command from sender at the given time.
func (sm *SessionManager) Touch(sender, name string, at time.Time) Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s := sm.sessions[sender]
	s.Sender = sender
	if name != "" {
		s.Name = name
	}
	s.LastSeen = at
	s.Commands++
	sm.sessions[sender] = s
	return s
}

// GetSession retrieves the session for a sender.
func (sm *SessionManager) GetSession(sender string) (Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[sender]
	return s, ok
}

// ActiveSince lists senders seen at or after since, most recent first.
func (sm *SessionManager) ActiveSince(since time.Time) []Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	var active []Session
	for _, s := range sm.sessions {
		if !s.LastSeen.Before(since) {
			active = append(active, s)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].LastSeen.After(active[j].LastSeen) })
	return active
}

// ClearSession forgets a sender.
func (sm *SessionManager) ClearSession(sender string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sender)
}
