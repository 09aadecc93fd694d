package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"LMS-backend/internal/platform/db"
)

const birthDateLayout = "2006-01-02"

type Service struct {
	conn  *sqlx.DB
	store *Store
}

func NewService(conn *sqlx.DB) *Service {
	return &Service{conn: conn, store: NewStore(conn)}
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return UserResponse{}, ErrInvalid("first_name and last_name are required")
	}
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return UserResponse{}, ErrInvalid("invalid birth_date format, expected YYYY-MM-DD")
	}

	u := NewUser(req.FirstName, req.LastName, birthDate, req.PhoneNumber, req.Email, req.Address)

	if err := s.store.Insert(ctx, u); err != nil {
		return UserResponse{}, err
	}
	return buildUserResponse(u), nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return buildUserResponse(u), nil
}

// UpdateContact changes phone and/or email. Fields left out stay untouched.
func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (UserResponse, error) {
	if req.PhoneNumber == nil && req.Email == nil {
		return UserResponse{}, ErrInvalid("phone_number or email is required")
	}

	var resp UserResponse
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		u, err := st.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.PhoneNumber != nil {
			u.UpdatePhoneNumber(*req.PhoneNumber)
		}
		if req.Email != nil {
			u.UpdateEmail(*req.Email)
		}
		if err := st.Update(ctx, u); err != nil {
			return err
		}
		resp = buildUserResponse(u)
		return nil
	})
	if err != nil {
		return UserResponse{}, err
	}
	return resp, nil
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (UserResponse, error) {
	var resp UserResponse
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		u, err := st.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if active {
			u.SetActive()
		} else {
			u.SetInactive()
		}
		if err := st.Update(ctx, u); err != nil {
			return err
		}
		resp = buildUserResponse(u)
		return nil
	})
	if err != nil {
		return UserResponse{}, err
	}
	return resp, nil
}
