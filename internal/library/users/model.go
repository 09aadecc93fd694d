package users

import (
	"time"

	"github.com/google/uuid"
)

// User is one row of the users table.
type User struct {
	UserID           uuid.UUID `db:"user_id"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	BirthDate        time.Time `db:"birth_date"`
	PhoneNumber      string    `db:"phone_number"`
	Email            string    `db:"email"`
	Address          string    `db:"address"`
	IsActive         bool      `db:"is_active"`
	LendingBookCount int       `db:"lending_book_count"`
}

func NewUser(firstName, lastName string, birthDate time.Time, phoneNumber, email, address string) *User {
	return &User{
		UserID:      uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		BirthDate:   birthDate,
		PhoneNumber: phoneNumber,
		Email:       email,
		Address:     address,
		IsActive:    true,
	}
}

func (u *User) SetActive()   { u.IsActive = true }
func (u *User) SetInactive() { u.IsActive = false }

func (u *User) UpdatePhoneNumber(phoneNumber string) { u.PhoneNumber = phoneNumber }
func (u *User) UpdateEmail(email string)             { u.Email = email }

func (u *User) IncrementLendingBookCount() { u.LendingBookCount++ }

// DecrementLendingBookCount has no floor; the counter can go negative when
// decremented without a prior increment.
func (u *User) DecrementLendingBookCount() { u.LendingBookCount-- }
