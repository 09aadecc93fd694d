package lendings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"LMS-backend/internal/library/books"
	"LMS-backend/internal/library/users"
	"LMS-backend/internal/platform/db"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Service struct {
	conn  *sqlx.DB
	store *Store
	clock Clock
}

func NewService(conn *sqlx.DB) *Service {
	return &Service{conn: conn, store: NewStore(conn), clock: realClock{}}
}

// CreateLending records a loan: one lending row, one fewer available copy on
// the book, one more open loan on the user. All three writes commit together.
func (s *Service) CreateLending(ctx context.Context, req CreateLendingRequest) (LendingResponse, error) {
	if req.BookID == uuid.Nil {
		return LendingResponse{}, ErrInvalid("book_id is required")
	}
	if req.UserID == uuid.Nil {
		return LendingResponse{}, ErrInvalid("user_id is required")
	}

	lendingDate := s.clock.Now()
	if req.LendingDate != nil && *req.LendingDate != "" {
		parsed, err := parseDate(*req.LendingDate)
		if err != nil {
			return LendingResponse{}, ErrInvalid("invalid lending_date, expected YYYY-MM-DD or RFC 3339")
		}
		lendingDate = parsed
	}

	var resp LendingResponse
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		bookStore := books.NewStore(tx)
		userStore := users.NewStore(tx)

		book, err := bookStore.GetByIDForUpdate(ctx, req.BookID)
		if err != nil {
			return asLocalError(err, "book not found")
		}
		user, err := userStore.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			return asLocalError(err, "user not found")
		}

		book.DecrementAvailableCopies()
		user.IncrementLendingBookCount()

		lending := NewUserBookLending(book.BookID, user.UserID, lendingDate)

		if err := NewStore(tx).Insert(ctx, lending); err != nil {
			return err
		}
		if err := bookStore.UpdateCounters(ctx, book); err != nil {
			return asLocalError(err, "")
		}
		if err := userStore.Update(ctx, user); err != nil {
			return asLocalError(err, "")
		}

		resp = buildLendingResponse(lending)
		return nil
	})
	if err != nil {
		return LendingResponse{}, err
	}
	return resp, nil
}

// ReturnLending fills in the submitted date, hands the copy back to the book
// and closes the user's open loan.
func (s *Service) ReturnLending(ctx context.Context, lendingID uuid.UUID, req ReturnLendingRequest) (LendingResponse, error) {
	if lendingID == uuid.Nil {
		return LendingResponse{}, ErrInvalid("lending id is required")
	}

	submittedDate := s.clock.Now()
	if req.SubmittedDate != nil && *req.SubmittedDate != "" {
		parsed, err := parseDate(*req.SubmittedDate)
		if err != nil {
			return LendingResponse{}, ErrInvalid("invalid submitted_date, expected YYYY-MM-DD or RFC 3339")
		}
		submittedDate = parsed
	}

	var resp LendingResponse
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		lending, err := st.GetByIDForUpdate(ctx, lendingID)
		if err != nil {
			return err
		}
		if lending.SubmittedDate.Valid {
			return ErrConflict("lending already returned")
		}

		lending.UpdateSubmittedDate(submittedDate, req.Remarks)

		bookStore := books.NewStore(tx)
		userStore := users.NewStore(tx)

		book, err := bookStore.GetByIDForUpdate(ctx, lending.BookID)
		if err != nil {
			return asLocalError(err, "book not found")
		}
		user, err := userStore.GetByIDForUpdate(ctx, lending.UserID)
		if err != nil {
			return asLocalError(err, "user not found")
		}

		book.IncrementAvailableCopies()
		user.DecrementLendingBookCount()

		if err := st.UpdateSubmitted(ctx, lending); err != nil {
			return err
		}
		if err := bookStore.UpdateCounters(ctx, book); err != nil {
			return asLocalError(err, "")
		}
		if err := userStore.Update(ctx, user); err != nil {
			return asLocalError(err, "")
		}

		resp = buildLendingResponse(lending)
		return nil
	})
	if err != nil {
		return LendingResponse{}, err
	}
	return resp, nil
}

func (s *Service) GetLending(ctx context.Context, id uuid.UUID) (LendingResponse, error) {
	l, err := s.store.GetByID(ctx, id)
	if err != nil {
		return LendingResponse{}, err
	}
	return buildLendingResponse(l), nil
}

func (s *Service) ListLendings(ctx context.Context, f ListFilter) ([]LendingResponse, error) {
	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LendingResponse, 0, len(items))
	for i := range items {
		out = append(out, buildLendingResponse(&items[i]))
	}
	return out, nil
}

// ---------- helpers ----------

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// asLocalError re-tags cross-package store errors so the transport maps them
// with this package's error model.
func asLocalError(err error, notFoundMsg string) error {
	switch e := err.(type) {
	case *books.APIError:
		if e.Code == books.CodeNotFound && notFoundMsg != "" {
			return ErrNotFound(notFoundMsg)
		}
		return &APIError{Code: Code(e.Code), Message: e.Message}
	case *users.APIError:
		if e.Code == users.CodeNotFound && notFoundMsg != "" {
			return ErrNotFound(notFoundMsg)
		}
		return &APIError{Code: Code(e.Code), Message: e.Message}
	default:
		return err
	}
}
