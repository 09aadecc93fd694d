package books

import "github.com/google/uuid"

// ===== Requests =====

type CreateBookRequest struct {
	Title        string `json:"title" binding:"required"`
	Author       string `json:"author" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Publisher    string `json:"publisher" binding:"required"`
	Genre        string `json:"genre" binding:"required"`
	Pages        int    `json:"pages" binding:"required"`
	ReleasedYear int    `json:"released_year" binding:"required"`
	TotalCopies  int    `json:"total_copies"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListFilter drives the dynamic WHERE in the list query.
type ListFilter struct {
	Genre      *string
	Author     *string
	Code       *string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ===== Responses =====

type BookResponse struct {
	BookID                uuid.UUID `json:"book_id"`
	Title                 string    `json:"title"`
	Author                string    `json:"author"`
	Code                  string    `json:"code"`
	Publisher             string    `json:"publisher"`
	Genre                 string    `json:"genre"`
	Pages                 int       `json:"pages"`
	ReleasedYear          int       `json:"released_year"`
	TotalCopies           int       `json:"total_copies"`
	AvailableCopies       int       `json:"available_copies"`
	TotalNumberOfLendings int       `json:"total_number_of_lendings"`
	IsActive              bool      `json:"is_active"`
}

func buildBookResponse(b *Book) BookResponse {
	return BookResponse{
		BookID:                b.BookID,
		Title:                 b.Title,
		Author:                b.Author,
		Code:                  b.Code,
		Publisher:             b.Publisher,
		Genre:                 b.Genre,
		Pages:                 b.Pages,
		ReleasedYear:          b.ReleasedYear,
		TotalCopies:           b.TotalCopies,
		AvailableCopies:       b.AvailableCopies,
		TotalNumberOfLendings: b.TotalNumberOfLendings,
		IsActive:              b.IsActive,
	}
}
