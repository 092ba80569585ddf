// Package sessionstore keeps open order dialogues, one per requester, either in
// process memory or in Redis.
package sessionstore

import (
	"context"
	"sync"

	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
)

// MemoryStore keeps sessions in process. They are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[kernel.UserID]dialogue.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[kernel.UserID]dialogue.Snapshot)}
}

// Get returns a copy; changes to it are only visible after Save.
func (s *MemoryStore) Get(_ context.Context, requesterID kernel.UserID) (*dialogue.Session, error) {
	s.mu.Lock()
	snapshot, ok := s.sessions[requesterID]
	s.mu.Unlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("session", requesterID.String())
	}
	return dialogue.RestoreSession(snapshot)
}

func (s *MemoryStore) Save(_ context.Context, session *dialogue.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.RequesterID()] = session.Snapshot()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, requesterID kernel.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, requesterID)
	return nil
}
