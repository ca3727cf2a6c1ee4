package bomupload

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("upload session not found")

// Session holds the parsed rows of one BOM upload while the user
// reviews them. Discarded on commit or delete.
type Session struct {
	ID        string      `json:"id"`
	FileName  string      `json:"file_name"`
	Source    string      `json:"source"` // tabular | text | ocr
	Rows      []ParsedRow `json:"rows"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionStore keeps active upload sessions in memory. The app runs
// against a single local store with one active user, so no external
// session backend is needed.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Create(fileName, source string, rows []ParsedRow) *Session {
	session := &Session{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Source:    source,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
