package lendings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/google/uuid"
	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/db"
)

var dialect = goqu.Dialect("mysql")

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

func (s *Store) Insert(ctx context.Context, l *UserBookLending) error {
	const q = `
	INSERT INTO user_book_lendings
	(lending_id, book_id, user_id, lending_date, submitted_date, remarks)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		l.LendingID, l.BookID, l.UserID, l.LendingDate, l.SubmittedDate, l.Remarks,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1452 {
			return ErrInvalid("book_id or user_id does not exist")
		}
		return ErrPersistence(err.Error())
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*UserBookLending, error) {
	const q = `
	SELECT lending_id, book_id, user_id, lending_date, submitted_date, remarks
	FROM user_book_lendings WHERE lending_id = ?`

	var l UserBookLending
	if err := s.db.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("lending not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &l, nil
}

// GetByIDForUpdate locks the row for the duration of the enclosing transaction.
func (s *Store) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*UserBookLending, error) {
	const q = `
	SELECT lending_id, book_id, user_id, lending_date, submitted_date, remarks
	FROM user_book_lendings WHERE lending_id = ? FOR UPDATE`

	var l UserBookLending
	if err := s.db.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("lending not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &l, nil
}

func (s *Store) UpdateSubmitted(ctx context.Context, l *UserBookLending) error {
	const q = `
	UPDATE user_book_lendings
	SET submitted_date = ?, remarks = ?
	WHERE lending_id = ?`

	if _, err := s.db.ExecContext(ctx, q, l.SubmittedDate, l.Remarks, l.LendingID); err != nil {
		return ErrPersistence(err.Error())
	}
	return nil
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]UserBookLending, error) {
	ds := dialect.From("user_book_lendings").Select(
		"lending_id", "book_id", "user_id", "lending_date", "submitted_date", "remarks",
	)
	if f.BookID != nil {
		ds = ds.Where(goqu.C("book_id").Eq(f.BookID.String()))
	}
	if f.UserID != nil {
		ds = ds.Where(goqu.C("user_id").Eq(f.UserID.String()))
	}
	if f.From != nil {
		ds = ds.Where(goqu.C("lending_date").Gte(*f.From))
	}
	if f.To != nil {
		ds = ds.Where(goqu.C("lending_date").Lt(*f.To))
	}
	if f.OnlyOutstanding {
		ds = ds.Where(goqu.C("submitted_date").IsNull())
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	ds = ds.Order(goqu.C("lending_date").Desc()).Limit(uint(limit)).Offset(uint(offset))

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, ErrInternal(err.Error())
	}

	var out []UserBookLending
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}
