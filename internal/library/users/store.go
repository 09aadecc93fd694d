package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"LMS-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (s *Store) Insert(ctx context.Context, u *User) error {
	const q = `
	INSERT INTO users
	(user_id, first_name, last_name, birth_date, phone_number, email, address,
	 is_active, lending_book_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		u.UserID, u.FirstName, u.LastName, u.BirthDate, u.PhoneNumber,
		u.Email, u.Address, u.IsActive, u.LendingBookCount,
	)
	if err != nil {
		return ErrPersistence(err.Error())
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `
	SELECT user_id, first_name, last_name, birth_date, phone_number, email,
	       address, is_active, lending_book_count
	FROM users WHERE user_id = ?`

	var u User
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("user not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &u, nil
}

// GetByIDForUpdate locks the row for the duration of the enclosing transaction.
func (s *Store) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `
	SELECT user_id, first_name, last_name, birth_date, phone_number, email,
	       address, is_active, lending_book_count
	FROM users WHERE user_id = ? FOR UPDATE`

	var u User
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("user not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &u, nil
}

func (s *Store) Update(ctx context.Context, u *User) error {
	const q = `
	UPDATE users
	SET phone_number = ?, email = ?, is_active = ?, lending_book_count = ?
	WHERE user_id = ?`

	if _, err := s.db.ExecContext(ctx, q, u.PhoneNumber, u.Email, u.IsActive, u.LendingBookCount, u.UserID); err != nil {
		return ErrPersistence(err.Error())
	}
	return nil
}
