package lendings

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ===== Requests =====

type CreateLendingRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
	// "2006-01-02" or RFC 3339; defaults to now when absent
	LendingDate *string `json:"lending_date,omitempty"`
}

type ReturnLendingRequest struct {
	// defaults to now when absent
	SubmittedDate *string `json:"submitted_date,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

type ListFilter struct {
	BookID          *uuid.UUID
	UserID          *uuid.UUID
	From            *time.Time
	To              *time.Time
	OnlyOutstanding bool
	Limit           int
	Offset          int
}

// ===== Responses =====

type LendingResponse struct {
	LendingID     uuid.UUID  `json:"lending_id"`
	BookID        uuid.UUID  `json:"book_id"`
	UserID        uuid.UUID  `json:"user_id"`
	LendingDate   time.Time  `json:"lending_date"`
	SubmittedDate *time.Time `json:"submitted_date,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`
}

func buildLendingResponse(l *UserBookLending) LendingResponse {
	resp := LendingResponse{
		LendingID:   l.LendingID,
		BookID:      l.BookID,
		UserID:      l.UserID,
		LendingDate: l.LendingDate,
	}
	if l.SubmittedDate.Valid {
		val := l.SubmittedDate.Time
		resp.SubmittedDate = &val
	}
	if l.Remarks.Valid {
		val := l.Remarks.String
		resp.Remarks = &val
	}
	return resp
}
