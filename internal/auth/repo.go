package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type SessionRepo interface {
	Store(ctx context.Context, session Session) error
	GetByToken(ctx context.Context, token string) (Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (Session, error)
	Delete(ctx context.Context, token string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type SessionRepoImpl struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepoImpl {
	return &SessionRepoImpl{db: db}
}

func (r *SessionRepoImpl) Store(ctx context.Context, session Session) error {
	query := `INSERT INTO session (token, refresh_token, user_id, expires_at, refresh_expires_at, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx,
		session.Token,
		session.RefreshToken,
		session.UserID,
		session.ExpiresAt.Format(time.RFC3339),
		session.RefreshExpiresAt.Format(time.RFC3339),
		session.CreatedAt.Format(time.RFC3339),
	); err != nil {
		err := fmt.Errorf("could not insert session: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *SessionRepoImpl) GetByToken(ctx context.Context, token string) (Session, error) {
	query := `SELECT token, refresh_token, user_id, expires_at, refresh_expires_at, created_at
				FROM session WHERE token = $1`
	return r.queryOne(ctx, query, token)
}

func (r *SessionRepoImpl) GetByRefreshToken(ctx context.Context, refreshToken string) (Session, error) {
	query := `SELECT token, refresh_token, user_id, expires_at, refresh_expires_at, created_at
				FROM session WHERE refresh_token = $1`
	return r.queryOne(ctx, query, refreshToken)
}

func (r *SessionRepoImpl) queryOne(ctx context.Context, query string, arg any) (Session, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var session Session
	var expiresAt, refreshExpiresAt, createdAt string
	err := row.Scan(
		&session.Token,
		&session.RefreshToken,
		&session.UserID,
		&expiresAt,
		&refreshExpiresAt,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return Session{}, ErrSessionGone
	}
	if err != nil {
		err := fmt.Errorf("could not query session: %w", err)
		log.Error(err)
		return Session{}, err
	}

	if session.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt); err != nil {
		return Session{}, fmt.Errorf("could not parse session expiry: %w", err)
	}
	if session.RefreshExpiresAt, err = time.Parse(time.RFC3339, refreshExpiresAt); err != nil {
		return Session{}, fmt.Errorf("could not parse refresh expiry: %w", err)
	}
	if session.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Session{}, fmt.Errorf("could not parse session creation date: %w", err)
	}
	return session, nil
}

func (r *SessionRepoImpl) Delete(ctx context.Context, token string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE token = $1`, token)
	if err != nil {
		err := fmt.Errorf("could not delete session: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not retrieve affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *SessionRepoImpl) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE user_id = $1`, userID); err != nil {
		err := fmt.Errorf("could not delete user sessions: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
