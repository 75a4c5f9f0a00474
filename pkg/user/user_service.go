package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/davisxavier1984/papprefeito/internal/utils"
)

// ErrInvalidCredentials is returned on a failed username/password check. It
// deliberately does not reveal whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	Create(ctx context.Context, u User, password string) (User, error)
	Get(ctx context.Context, id string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User, password string) (User, error)
	Delete(ctx context.Context, id string) error
	// Authenticate checks the credentials and returns the matching user.
	Authenticate(ctx context.Context, username string, password string) (User, error)
	// EnsureAdmin creates the bootstrap administrator when no admin exists
	// yet, so a fresh installation is never locked out.
	EnsureAdmin(ctx context.Context, username string, password string) error
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, u User, password string) (User, error) {
	if u.Username == "" {
		return User{}, fmt.Errorf("username must not be empty")
	}
	if len(password) < 8 {
		return User{}, fmt.Errorf("password must have at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u.ID = uuid.New().String()
	u.PasswordHash = string(hash)
	u.CreatedAt = s.clock.Now()

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

// Update changes the user's profile. An empty password keeps the current one.
func (s *ServiceImpl) Update(ctx context.Context, u User, password string) (User, error) {
	existing, err := s.repo.Get(ctx, u.ID)
	if err != nil {
		return User{}, err
	}

	u.PasswordHash = existing.PasswordHash
	u.CreatedAt = existing.CreatedAt
	if password != "" {
		if len(password) < 8 {
			return User{}, fmt.Errorf("password must have at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return User{}, err
	}
	if !updated {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *ServiceImpl) Authenticate(ctx context.Context, username string, password string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *ServiceImpl) EnsureAdmin(ctx context.Context, username string, password string) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Infof("no administrator found, creating bootstrap admin %q", username)
	_, err = s.Create(ctx, User{
		Username:    username,
		DisplayName: "Administrador",
		IsAdmin:     true,
	}, password)
	return err
}
