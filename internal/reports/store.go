package reports

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/google/uuid"

	"LMS-backend/internal/platform/db"
)

var dialect = goqu.Dialect("mysql")

// Store is the MySQL implementation of Gateway.
type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (s *Store) ActiveBook(ctx context.Context, bookID uuid.UUID) (*BookAvailabilityRecord, error) {
	const q = `
	SELECT code, available_copies, total_copies
	FROM books
	WHERE book_id = ? AND is_active`

	var rec BookAvailabilityRecord
	if err := s.db.GetContext(ctx, &rec, q, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, ErrPersistence(err.Error())
	}
	return &rec, nil
}

func (s *Store) SubmittedLendings(ctx context.Context, bookID uuid.UUID) ([]ReadingRecord, error) {
	const q = `
	SELECT b.code, b.title, b.pages, l.lending_date, l.submitted_date
	FROM user_book_lendings l
	JOIN books b ON b.book_id = l.book_id
	WHERE l.book_id = ? AND l.submitted_date IS NOT NULL
	ORDER BY l.lending_date, l.lending_id`

	var out []ReadingRecord
	if err := s.db.SelectContext(ctx, &out, q, bookID); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}

func (s *Store) LendingBookRefs(ctx context.Context) ([]LendingBookRef, error) {
	const q = `
	SELECT b.code, b.title
	FROM user_book_lendings l
	JOIN books b ON b.book_id = l.book_id
	ORDER BY l.lending_date, l.lending_id`

	var out []LendingBookRef
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}

func (s *Store) LendingsInRange(ctx context.Context, start, end time.Time) ([]BorrowerRecord, error) {
	const q = `
	SELECT l.user_id, u.first_name, u.last_name, u.email, u.phone_number
	FROM user_book_lendings l
	JOIN users u ON u.user_id = l.user_id
	WHERE DATE(l.lending_date) >= DATE(?) AND DATE(l.lending_date) <= DATE(?)
	ORDER BY l.lending_date, l.lending_id`

	var out []BorrowerRecord
	if err := s.db.SelectContext(ctx, &out, q, start, end); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}

func (s *Store) LendingsByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]HistoryRecord, error) {
	const q = `
	SELECT b.book_id, b.code AS book_code, b.title, b.author, l.lending_date, l.submitted_date
	FROM user_book_lendings l
	JOIN books b ON b.book_id = l.book_id
	WHERE l.user_id = ?
	  AND DATE(l.lending_date) >= DATE(?) AND DATE(l.lending_date) <= DATE(?)
	ORDER BY l.lending_date, l.lending_id`

	var out []HistoryRecord
	if err := s.db.SelectContext(ctx, &out, q, userID, start, end); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}

func (s *Store) BorrowerIDs(ctx context.Context, bookID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT DISTINCT user_id FROM user_book_lendings WHERE book_id = ?`

	var out []uuid.UUID
	if err := s.db.SelectContext(ctx, &out, q, bookID); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}

func (s *Store) LendingsByUsersExcluding(ctx context.Context, userIDs []uuid.UUID, bookID uuid.UUID) ([]HistoryRecord, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	ds := dialect.From(goqu.T("user_book_lendings").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("l.book_id")))).
		Select(
			goqu.I("b.book_id"),
			goqu.I("b.code").As("book_code"),
			goqu.I("b.title"),
			goqu.I("b.author"),
			goqu.I("l.lending_date"),
			goqu.I("l.submitted_date"),
		).
		Where(
			goqu.I("l.user_id").In(ids),
			goqu.I("l.book_id").Neq(bookID.String()),
		).
		Order(goqu.I("l.lending_date").Asc(), goqu.I("l.lending_id").Asc())

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, ErrInternal(err.Error())
	}

	var out []HistoryRecord
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}
