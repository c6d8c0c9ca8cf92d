package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/minjbak/wearebnb-server/internal/model"
)

// UserRepo provides data access to the users table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, password, name, phone, profile_image_url, created_at, updated_at, deleted_at"

// Create inserts a user with an already-hashed password and returns the
// new id.  A duplicate email maps onto ErrEmailExists via the MySQL
// 1062 duplicate-key error.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password) VALUES (?,?,?)",
		name, email, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u         model.User
		phone     sql.NullString
		profile   sql.NullString
		deletedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &phone, &profile,
		&u.CreatedAt, &u.UpdatedAt, &deletedAt)
	if err != nil {
		return model.User{}, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if profile.Valid {
		u.ProfileImageURL = &profile.String
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return u, nil
}
