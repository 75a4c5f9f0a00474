package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Create(ctx context.Context, u User) error
	Get(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, u User) error {
	query := `INSERT INTO app_user (id, username, display_name, password_hash, is_admin, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx,
		u.ID,
		u.Username,
		u.DisplayName,
		u.PasswordHash,
		u.IsAdmin,
		u.CreatedAt.Format(time.RFC3339),
	); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			return ErrUsernameTaken
		}
		err := fmt.Errorf("could not insert user: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) Get(ctx context.Context, id string) (User, error) {
	query := `SELECT id, username, display_name, password_hash, is_admin, created_at
				FROM app_user WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *RepoImpl) GetByUsername(ctx context.Context, username string) (User, error) {
	query := `SELECT id, username, display_name, password_hash, is_admin, created_at
				FROM app_user WHERE username = $1`
	return r.queryOne(ctx, query, username)
}

func (r *RepoImpl) queryOne(ctx context.Context, query string, arg any) (User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	u, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return u, nil
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, display_name, password_hash, is_admin, created_at
				FROM app_user ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate users: %w", err)
	}
	return users, nil
}

func (r *RepoImpl) Update(ctx context.Context, u User) (bool, error) {
	query := `UPDATE app_user SET username = $1, display_name = $2, password_hash = $3, is_admin = $4
				WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		u.Username,
		u.DisplayName,
		u.PasswordHash,
		u.IsAdmin,
		u.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update user: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not retrieve affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *RepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete user: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not retrieve affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *RepoImpl) CountAdmins(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_user WHERE is_admin = TRUE`)
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not count admins: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func scanUser(scan func(dest ...any) error) (User, error) {
	var u User
	var createdAt string
	if err := scan(&u.ID, &u.Username, &u.DisplayName, &u.PasswordHash, &u.IsAdmin, &createdAt); err != nil {
		return User{}, err
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return User{}, fmt.Errorf("could not parse creation date: %w", err)
	}
	u.CreatedAt = parsed
	return u, nil
}
