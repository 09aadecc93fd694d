package reports

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Gateway is the read side of the persistence layer as the report handlers
// see it: row-level projections over the three tables, already joined to the
// related book or user. Grouping, ordering and top-N cuts happen in the
// service so the exact aggregation rules live in one place.
type Gateway interface {
	// ActiveBook returns nil, nil when no active book matches.
	ActiveBook(ctx context.Context, bookID uuid.UUID) (*BookAvailabilityRecord, error)
	// SubmittedLendings returns the lendings of one book that have a
	// submitted date, with the book columns the reading rate needs.
	SubmittedLendings(ctx context.Context, bookID uuid.UUID) ([]ReadingRecord, error)
	// LendingBookRefs returns one (code, title) pair per lending, oldest first.
	LendingBookRefs(ctx context.Context) ([]LendingBookRef, error)
	// LendingsInRange returns one borrower row per lending whose lending
	// date (time of day stripped) falls in [start, end], oldest first.
	LendingsInRange(ctx context.Context, start, end time.Time) ([]BorrowerRecord, error)
	// LendingsByUser returns one history row per lending of the user in the
	// date range (inclusive, time of day stripped).
	LendingsByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]HistoryRecord, error)
	// BorrowerIDs returns the distinct users who ever borrowed the book.
	BorrowerIDs(ctx context.Context, bookID uuid.UUID) ([]uuid.UUID, error)
	// LendingsByUsersExcluding returns every lending by the given users for
	// any book other than the given one.
	LendingsByUsersExcluding(ctx context.Context, userIDs []uuid.UUID, bookID uuid.UUID) ([]HistoryRecord, error)
}

type BookAvailabilityRecord struct {
	Code            string `db:"code"`
	AvailableCopies int    `db:"available_copies"`
	TotalCopies     int    `db:"total_copies"`
}

type ReadingRecord struct {
	Code          string    `db:"code"`
	Title         string    `db:"title"`
	Pages         int       `db:"pages"`
	LendingDate   time.Time `db:"lending_date"`
	SubmittedDate time.Time `db:"submitted_date"`
}

type LendingBookRef struct {
	Code  string `db:"code"`
	Title string `db:"title"`
}

type BorrowerRecord struct {
	UserID      uuid.UUID `db:"user_id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Email       string    `db:"email"`
	PhoneNumber string    `db:"phone_number"`
}

type HistoryRecord struct {
	BookID        uuid.UUID    `db:"book_id"`
	BookCode      string       `db:"book_code"`
	Title         string       `db:"title"`
	Author        string       `db:"author"`
	LendingDate   time.Time    `db:"lending_date"`
	SubmittedDate sql.NullTime `db:"submitted_date"`
}
