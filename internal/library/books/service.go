package books

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"LMS-backend/internal/platform/db"
)

type Service struct {
	conn  *sqlx.DB
	store *Store
}

func NewService(conn *sqlx.DB) *Service {
	return &Service{conn: conn, store: NewStore(conn)}
}

func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (BookResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" ||
		strings.TrimSpace(req.Code) == "" {
		return BookResponse{}, ErrInvalid("title, author, code are required")
	}
	if req.Pages <= 0 {
		return BookResponse{}, ErrInvalid("pages must be greater than 0")
	}
	if req.TotalCopies < 0 {
		return BookResponse{}, ErrInvalid("total_copies must not be negative")
	}

	b := NewBook(req.Title, req.Author, req.Code, req.Publisher, req.Genre,
		req.Pages, req.ReleasedYear, req.TotalCopies)

	if err := s.store.Insert(ctx, b); err != nil {
		return BookResponse{}, err
	}
	return buildBookResponse(b), nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (BookResponse, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return BookResponse{}, err
	}
	return buildBookResponse(b), nil
}

// SetActive flips the soft-delete flag. Books are never hard-deleted.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (BookResponse, error) {
	var resp BookResponse
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		b, err := st.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if active {
			b.SetActive()
		} else {
			b.SetInactive()
		}
		if err := st.UpdateCounters(ctx, b); err != nil {
			return err
		}
		resp = buildBookResponse(b)
		return nil
	})
	if err != nil {
		return BookResponse{}, err
	}
	return resp, nil
}

func (s *Service) ListBooks(ctx context.Context, f ListFilter) ([]BookResponse, error) {
	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]BookResponse, 0, len(items))
	for i := range items {
		out = append(out, buildBookResponse(&items[i]))
	}
	return out, nil
}
