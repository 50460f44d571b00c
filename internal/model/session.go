package model

import (
	"crypto/rand"
	"math/big"
)

// sessionIDCharset and sessionIDLength define the opaque code format: exactly
// 8 characters drawn from {0-9, A-Z}.
const (
	sessionIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	sessionIDLength  = 8
)

// GenerateSessionID returns a new uniformly random 8-char [0-9A-Z] code.
// Uniqueness across live sessions is the registry's responsibility, not this
// function's.
func GenerateSessionID() string {
	buf := make([]byte, sessionIDLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(sessionIDCharset))))
		if err != nil {
			// crypto/rand failure is not a condition this server can recover
			// from; a degraded-but-deterministic code is still 8 chars of the
			// right alphabet rather than a panic mid-request.
			buf[i] = sessionIDCharset[i%len(sessionIDCharset)]
			continue
		}
		buf[i] = sessionIDCharset[n.Int64()]
	}
	return string(buf)
}

// User is an immutable (name, connection id) pair identifying one joined
// participant.
type User struct {
	Name   string
	connID string
}

// NewUser returns a User bound to a transport connection id.
func NewUser(name, connID string) User { return User{Name: name, connID: connID} }

// ConnID returns the connection id this User joined with.
func (u User) ConnID() string { return u.connID }

// Session is the container for one owner, its Quiz, and the Users who joined
// it. The owner's connection id is never present in Users.
type Session struct {
	ID    string
	Owner string // connection id

	quiz *Quiz

	byName map[string]User
	byID   map[string]User

	isStarted bool
	hasEnded  bool
}

// NewSession constructs a fresh, unstarted Session owned by ownerConnID.
func NewSession(id, ownerConnID string) *Session {
	return &Session{
		ID:     id,
		Owner:  ownerConnID,
		quiz:   NewQuiz(),
		byName: make(map[string]User),
		byID:   make(map[string]User),
	}
}

func (s *Session) Quiz() *Quiz       { return s.quiz }
func (s *Session) IsStarted() bool   { return s.isStarted }
func (s *Session) HasEnded() bool    { return s.hasEnded }
func (s *Session) IsOwner(connID string) bool { return s.Owner == connID }

// Users returns a defensive copy of the joined Users, keyed by name.
func (s *Session) Users() map[string]User {
	out := make(map[string]User, len(s.byName))
	for k, v := range s.byName {
		out[k] = v
	}
	return out
}

// AddUser joins u to the Session. Fails if u is the owner, the Session has
// started or ended, or the name is already taken.
func (s *Session) AddUser(u User) error {
	if u.connID == s.Owner {
		return ErrIsOwner
	}
	if s.hasEnded {
		return ErrSessionEnded
	}
	if s.isStarted {
		return ErrSessionStarted
	}
	if _, exists := s.byName[u.Name]; exists {
		return ErrNameTaken
	}
	s.byName[u.Name] = u
	s.byID[u.connID] = u
	return nil
}

// RemoveUser removes the joined User named name, returning it, or (User{},
// false) if absent. Forbidden after the Session has ended.
func (s *Session) RemoveUser(name string) (User, bool) {
	if s.hasEnded {
		return User{}, false
	}
	u, exists := s.byName[name]
	if !exists {
		return User{}, false
	}
	delete(s.byName, name)
	delete(s.byID, u.connID)
	return u, true
}

// FindUserByName looks up a joined User by name.
func (s *Session) FindUserByName(name string) (User, bool) {
	u, ok := s.byName[name]
	return u, ok
}

// FindUserByID looks up a joined User by connection id.
func (s *Session) FindUserByID(connID string) (User, bool) {
	u, ok := s.byID[connID]
	return u, ok
}

// Start sets the started flag. Must not be called more than once; subsequent
// calls are no-ops.
func (s *Session) Start() {
	if s.isStarted {
		return
	}
	s.isStarted = true
}

// End sets the ended flag and ends the current Question if one is active.
// No-op unless the Session is started and not already ended: per the
// lifecycle Created -> Started -> Ended, the normal end path requires a
// Session to have started first.
func (s *Session) End() {
	if !s.isStarted || s.hasEnded {
		return
	}
	s.hasEnded = true
	if current := s.quiz.CurrentQuestion(); current != nil {
		current.End()
	}
}

// ForceEnd ends the Session unconditionally, bypassing the isStarted
// requirement normal End() enforces. This is the disconnect-driven path: a
// Session whose owner disconnects before ever starting it still needs its
// registry entry removed and, if a Question happened to be active, its timer
// cancelled.
func (s *Session) ForceEnd() {
	if s.hasEnded {
		return
	}
	s.hasEnded = true
	if current := s.quiz.CurrentQuestion(); current != nil {
		current.End()
	}
}
