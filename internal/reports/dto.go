package reports

import (
	"time"

	"github.com/google/uuid"
)

// ===== Queries =====
//
// Each query carries its own precondition check, run by the service before the
// gateway is touched. Zero dates and a zero topUserCount are NOT rejected:
// the handler substitutes defaults for them.

type BookAvailabilityQuery struct {
	BookID uuid.UUID
}

func (q BookAvailabilityQuery) Validate() error {
	if q.BookID == uuid.Nil {
		return ErrInvalid("Book Id must be specified")
	}
	return nil
}

type BookReadingRateQuery struct {
	BookID uuid.UUID
}

func (q BookReadingRateQuery) Validate() error {
	if q.BookID == uuid.Nil {
		return ErrInvalid("Book Id must be specified")
	}
	return nil
}

type MostLendingBooksQuery struct {
	TopN int
}

func (q MostLendingBooksQuery) Validate() error {
	if q.TopN <= 0 {
		return ErrInvalid("TopN must be greater than 0.")
	}
	return nil
}

type TopLendingUsersQuery struct {
	StartDate    time.Time
	EndDate      time.Time
	TopUserCount int
}

// Validate accepts zero values for all three fields; the handler substitutes
// a 30-day trailing window and a top count of 10.
func (q TopLendingUsersQuery) Validate() error {
	return nil
}

type UserLendingBooksQuery struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

func (q UserLendingBooksQuery) Validate() error {
	if q.UserID == uuid.Nil {
		return ErrInvalid("User must be specified")
	}
	return nil
}

type LendingRelatedBooksQuery struct {
	BookID uuid.UUID
}

func (q LendingRelatedBooksQuery) Validate() error {
	if q.BookID == uuid.Nil {
		return ErrInvalid("Book must be specified")
	}
	return nil
}

// ===== Responses =====

type BookAvailabilityResponse struct {
	Code                 string `json:"code"`
	IsAvailable          bool   `json:"is_available"`
	AvailableCopiesCount int    `json:"available_copies_count"`
	TotalCopies          int    `json:"total_copies"`
}

type BookReadingRateResponse struct {
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
}

type MostLendingBooksResponse struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type TopLendingUsersResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	LendingBooksCount int       `json:"lending_books_count"`
}

type LendingBooksResponse struct {
	BookID        uuid.UUID  `json:"book_id"`
	BookCode      string     `json:"book_code"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	LendingDate   time.Time  `json:"lending_date"`
	SubmittedDate *time.Time `json:"submitted_date,omitempty"`
}
