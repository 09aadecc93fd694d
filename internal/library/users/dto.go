package users

import (
	"time"

	"github.com/google/uuid"
)

// ===== Requests =====

type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	BirthDate   string `json:"birth_date" binding:"required"` // "2006-01-02"
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address" binding:"required"`
}

type UpdateContactRequest struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ===== Responses =====

type UserResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	BirthDate        time.Time `json:"birth_date"`
	PhoneNumber      string    `json:"phone_number"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	IsActive         bool      `json:"is_active"`
	LendingBookCount int       `json:"lending_book_count"`
}

func buildUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		BirthDate:        u.BirthDate,
		PhoneNumber:      u.PhoneNumber,
		Email:            u.Email,
		Address:          u.Address,
		IsActive:         u.IsActive,
		LendingBookCount: u.LendingBookCount,
	}
}
