package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestUser() *User {
	return NewUser("Alice", "Bob", time.Date(1985, 4, 2, 0, 0, 0, 0, time.UTC),
		"123567 89", "alice@gmail.com", "1st street, Stockholm")
}

func TestNewUser_IsActiveWithZeroLendings(t *testing.T) {
	u := newTestUser()

	assert.True(t, u.IsActive)
	assert.Equal(t, 0, u.LendingBookCount)
}

func TestUpdateContactFields(t *testing.T) {
	u := newTestUser()

	u.UpdatePhoneNumber("555 0000")
	u.UpdateEmail("alice@example.com")

	assert.Equal(t, "555 0000", u.PhoneNumber)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestLendingBookCount_DecrementHasNoFloor(t *testing.T) {
	u := newTestUser()

	u.DecrementLendingBookCount()
	u.DecrementLendingBookCount()

	// the counter is allowed to go negative
	assert.Equal(t, -2, u.LendingBookCount)

	u.IncrementLendingBookCount()
	assert.Equal(t, -1, u.LendingBookCount)
}
