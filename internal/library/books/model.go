package books

import "github.com/google/uuid"

// Book is one row of the books table. Copy counters are only mutated through
// the methods below so the 0 <= AvailableCopies <= TotalCopies invariant holds.
type Book struct {
	BookID                uuid.UUID `db:"book_id"`
	Title                 string    `db:"title"`
	Author                string    `db:"author"`
	Code                  string    `db:"code"`
	Publisher             string    `db:"publisher"`
	Genre                 string    `db:"genre"`
	Pages                 int       `db:"pages"`
	ReleasedYear          int       `db:"released_year"`
	TotalCopies           int       `db:"total_copies"`
	AvailableCopies       int       `db:"available_copies"`
	TotalNumberOfLendings int       `db:"total_number_of_lendings"`
	IsActive              bool      `db:"is_active"`
}

func NewBook(title, author, code, publisher, genre string, pages, releasedYear, totalCopies int) *Book {
	return &Book{
		BookID:          uuid.New(),
		Title:           title,
		Author:          author,
		Code:            code,
		Publisher:       publisher,
		Genre:           genre,
		Pages:           pages,
		ReleasedYear:    releasedYear,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		IsActive:        true,
	}
}

func (b *Book) SetActive()   { b.IsActive = true }
func (b *Book) SetInactive() { b.IsActive = false }

// IncrementAvailableCopies caps at TotalCopies. The lending counter is bumped
// even when the cap is hit.
func (b *Book) IncrementAvailableCopies() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
	b.TotalNumberOfLendings++
}

// DecrementAvailableCopies floors at 0.
func (b *Book) DecrementAvailableCopies() {
	if b.AvailableCopies > 0 {
		b.AvailableCopies--
	}
}
