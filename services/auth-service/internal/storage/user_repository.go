package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tomide-adeyemi/salonbook/libs/db"
)

// User is an account of any role. SalonID is empty for customers and set
// for owners and staff, matching the salon_id claim stamped into tokens.
type User struct {
	ID           string
	SalonID      string
	Email        string
	Phone        string
	Name         string
	PasswordHash string
	Role         string
}

type UserRepository struct {
	pool *db.Pool
}

func NewUserRepository(pool *db.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id::text, COALESCE(salon_id::text, ''), email, COALESCE(phone, ''), COALESCE(name, ''), password_hash, role`

func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, salon_id, email, phone, name, password_hash, role)
		VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	`, user.ID, user.SalonID, user.Email, user.Phone, user.Name, user.PasswordHash, user.Role)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.SalonID, &user.Email, &user.Phone, &user.Name, &user.PasswordHash, &user.Role)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func IsNotFound(err error) bool {
	return err == pgx.ErrNoRows
}
