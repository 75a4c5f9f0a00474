package user

import (
	"context"
	"sort"
	"sync"
)

// StubRepo is an in-memory Repo used in tests.
type StubRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewStubRepo() *StubRepo {
	return &StubRepo{users: make(map[string]User)}
}

func (s *StubRepo) Create(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *StubRepo) Get(ctx context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *StubRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *StubRepo) GetAll(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *StubRepo) Update(ctx context.Context, u User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return false, nil
	}
	s.users[u.ID] = u
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *StubRepo) CountAdmins(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, u := range s.users {
		if u.IsAdmin {
			count++
		}
	}
	return count, nil
}
