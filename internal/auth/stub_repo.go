package auth

import (
	"context"
	"sync"
)

// StubSessionRepo is an in-memory SessionRepo used in tests.
type StubSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewStubSessionRepo() *StubSessionRepo {
	return &StubSessionRepo{sessions: make(map[string]Session)}
}

func (s *StubSessionRepo) Store(ctx context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *StubSessionRepo) GetByToken(ctx context.Context, token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrSessionGone
	}
	return session, nil
}

func (s *StubSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		if session.RefreshToken == refreshToken {
			return session, nil
		}
	}
	return Session{}, ErrSessionGone
}

func (s *StubSessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return false, nil
	}
	delete(s.sessions, token)
	return true, nil
}

func (s *StubSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}
