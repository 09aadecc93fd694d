package books

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

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books
	(book_id, title, author, code, publisher, genre, pages, released_year,
	 total_copies, available_copies, total_number_of_lendings, is_active)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		b.BookID, b.Title, b.Author, b.Code, b.Publisher, b.Genre,
		b.Pages, b.ReleasedYear, b.TotalCopies, b.AvailableCopies,
		b.TotalNumberOfLendings, b.IsActive,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrConflict("book code already exists")
		}
		return ErrPersistence(err.Error())
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*Book, error) {
	const q = `
	SELECT book_id, title, author, code, publisher, genre, pages, released_year,
	       total_copies, available_copies, total_number_of_lendings, is_active
	FROM books WHERE book_id = ?`

	var b Book
	if err := s.db.GetContext(ctx, &b, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("book not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &b, nil
}

// GetByIDForUpdate locks the row for the duration of the enclosing transaction.
func (s *Store) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Book, error) {
	const q = `
	SELECT book_id, title, author, code, publisher, genre, pages, released_year,
	       total_copies, available_copies, total_number_of_lendings, is_active
	FROM books WHERE book_id = ? FOR UPDATE`

	var b Book
	if err := s.db.GetContext(ctx, &b, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("book not found")
		}
		return nil, ErrPersistence(err.Error())
	}
	return &b, nil
}

// UpdateCounters writes back the mutable columns after entity methods ran.
func (s *Store) UpdateCounters(ctx context.Context, b *Book) error {
	const q = `
	UPDATE books
	SET available_copies = ?, total_number_of_lendings = ?, is_active = ?
	WHERE book_id = ?`

	// RowsAffected is 0 when the values did not change, so it is not checked.
	if _, err := s.db.ExecContext(ctx, q, b.AvailableCopies, b.TotalNumberOfLendings, b.IsActive, b.BookID); err != nil {
		return ErrPersistence(err.Error())
	}
	return nil
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]Book, error) {
	ds := dialect.From("books").Select(
		"book_id", "title", "author", "code", "publisher", "genre", "pages",
		"released_year", "total_copies", "available_copies",
		"total_number_of_lendings", "is_active",
	)
	if f.Genre != nil {
		ds = ds.Where(goqu.C("genre").Eq(*f.Genre))
	}
	if f.Author != nil {
		ds = ds.Where(goqu.C("author").Eq(*f.Author))
	}
	if f.Code != nil {
		ds = ds.Where(goqu.C("code").Eq(*f.Code))
	}
	if f.ActiveOnly {
		ds = ds.Where(goqu.C("is_active").IsTrue())
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	ds = ds.Order(goqu.C("title").Asc()).Limit(uint(limit)).Offset(uint(offset))

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, ErrInternal(err.Error())
	}

	var out []Book
	if err := s.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, ErrPersistence(err.Error())
	}
	return out, nil
}
