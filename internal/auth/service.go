package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/davisxavier1984/papprefeito/internal/config"
	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/user"
)

type Service interface {
	// Login checks the credentials and opens a new session.
	Login(ctx context.Context, username string, password string) (Session, user.User, error)
	// Refresh rotates the session: the old one is removed and a new token
	// pair is issued.
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves an access token to its user.
	Authenticate(ctx context.Context, token string) (user.User, error)
}

type ServiceImpl struct {
	sessions    SessionRepo
	userService user.Service
	clock       utils.Clock
	cfg         config.Auth
}

func NewService(sessions SessionRepo, userService user.Service, clock utils.Clock, cfg config.Auth) *ServiceImpl {
	return &ServiceImpl{
		sessions:    sessions,
		userService: userService,
		clock:       clock,
		cfg:         cfg,
	}
}

func (s *ServiceImpl) Login(ctx context.Context, username string, password string) (Session, user.User, error) {
	authenticated, err := s.userService.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, user.User{}, err
	}

	session, err := s.openSession(ctx, authenticated.ID)
	if err != nil {
		return Session{}, user.User{}, err
	}
	log.Infof("user %q logged in", username)
	return session, authenticated, nil
}

func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if errors.Is(err, ErrSessionGone) {
		return Session{}, ErrInvalidToken
	}
	if err != nil {
		return Session{}, err
	}
	if s.clock.Now().After(session.RefreshExpiresAt) {
		return Session{}, ErrInvalidToken
	}

	if _, err := s.sessions.Delete(ctx, session.Token); err != nil {
		return Session{}, fmt.Errorf("failed to rotate session: %w", err)
	}
	return s.openSession(ctx, session.UserID)
}

func (s *ServiceImpl) Logout(ctx context.Context, token string) error {
	deleted, err := s.sessions.Delete(ctx, token)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvalidToken
	}
	return nil
}

func (s *ServiceImpl) Authenticate(ctx context.Context, token string) (user.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, ErrSessionGone) {
		return user.User{}, ErrInvalidToken
	}
	if err != nil {
		return user.User{}, err
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return user.User{}, ErrInvalidToken
	}
	return s.userService.Get(ctx, session.UserID)
}

func (s *ServiceImpl) openSession(ctx context.Context, userID string) (Session, error) {
	now := s.clock.Now()
	session := Session{
		Token:            uuid.New().String(),
		RefreshToken:     uuid.New().String(),
		UserID:           userID,
		ExpiresAt:        now.Add(s.cfg.TokenTTL()),
		RefreshExpiresAt: now.Add(s.cfg.RefreshTTL()),
		CreatedAt:        now,
	}
	if err := s.sessions.Store(ctx, session); err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}
