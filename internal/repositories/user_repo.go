package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, user_name, email, full_name, phone_number, password_hash, avatar, role, is_active`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.FullName, &u.PhoneNumber,
		&u.PasswordHash, &u.Avatar, &u.Role, &u.IsActive)
	return u, err
}

// GetByLogin accepts either email or user name, matching the login form.
func (r UserRepo) GetByLogin(login string) (models.User, error) {
	login = strings.TrimSpace(login)
	u, err := scanUser(r.db().QueryRow(`
		SELECT `+userColumns+` FROM users WHERE email = ? OR user_name = ? LIMIT 1`,
		login, login))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	u, err := scanUser(r.db().QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepo) Insert(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (user_name, email, full_name, phone_number, password_hash, role)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.UserName, u.Email, u.FullName, u.PhoneNumber, u.PasswordHash, u.Role)
	if err != nil {
		if IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "email or username already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepo) List() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepo) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
