package repository

import (
	"database/sql"
	"errors"
	"time"

	"pawhaven/internal/db"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByEmail(email string) (*db.User, error)
	GetByID(id int) (*db.User, error)
	CreateUser(name, email, password, phone, role string) (int, error)
	UpdateProfile(id int, name, phone string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, password_hash, phone, role FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	var u db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, password_hash, phone, role FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreateUser(name, email, password, phone, role string) (int, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.db.QueryRow(
		`INSERT INTO users (name, email, password_hash, phone, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		name, email, hashedPassword, phone, role, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *userRepository) UpdateProfile(id int, name, phone string) error {
	_, err := r.db.Exec(
		`UPDATE users SET name = $2, phone = $3, updated_at = NOW() WHERE id = $1`,
		id, name, phone)
	return err
}
