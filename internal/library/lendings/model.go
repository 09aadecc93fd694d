package lendings

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// UserBookLending is one row of the user_book_lendings table. Rows are never
// deleted; a return only fills in submitted_date.
type UserBookLending struct {
	LendingID     uuid.UUID      `db:"lending_id"`
	BookID        uuid.UUID      `db:"book_id"`
	UserID        uuid.UUID      `db:"user_id"`
	LendingDate   time.Time      `db:"lending_date"`
	SubmittedDate sql.NullTime   `db:"submitted_date"`
	Remarks       sql.NullString `db:"remarks"`
}

func NewUserBookLending(bookID, userID uuid.UUID, lendingDate time.Time) *UserBookLending {
	return &UserBookLending{
		LendingID:   uuid.New(),
		BookID:      bookID,
		UserID:      userID,
		LendingDate: lendingDate,
	}
}

// UpdateSubmittedDate sets the submitted date unconditionally. Remarks are
// only overwritten when the new value is non-empty.
func (l *UserBookLending) UpdateSubmittedDate(submittedDate time.Time, remarks string) {
	l.SubmittedDate = sql.NullTime{Time: submittedDate, Valid: true}

	if remarks != "" {
		l.Remarks = sql.NullString{String: remarks, Valid: true}
	}
}
