package rpc

// Request/response messages of the lms.LibraryReports service. Identifiers
// travel as strings, dates as ISO-8601 (RFC 3339) strings.

type MostBorrowedBooksRequest struct {
	TopN int32 `json:"top_n"`
}

type MostBorrowedBook struct {
	Title       string `json:"title"`
	BorrowCount int32  `json:"borrow_count"`
}

type MostBorrowedBooksResponse struct {
	Books []MostBorrowedBook `json:"books"`
}

type BookAvailabilityRequest struct {
	BookID string `json:"book_id"`
}

type BookAvailabilityResponse struct {
	Code            string `json:"code"`
	TotalCopies     int32  `json:"total_copies"`
	AvailableCopies int32  `json:"available_copies"`
}

type ReadingRateRequest struct {
	BookID string `json:"book_id"`
}

type ReadingRateResponse struct {
	Rate float64 `json:"rate"`
}

type TopBorrowersRequest struct {
	TopN int32 `json:"top_n"`
}

type TopBorrower struct {
	FullName    string `json:"full_name"`
	BorrowCount int32  `json:"borrow_count"`
}

type TopBorrowersResponse struct {
	Borrowers []TopBorrower `json:"borrowers"`
}

type UserBorrowHistoryRequest struct {
	UserID string `json:"user_id"`
}

type UserBorrowHistory struct {
	BookTitle  string  `json:"book_title"`
	BorrowedAt string  `json:"borrowed_at"`
	ReturnedAt *string `json:"returned_at,omitempty"`
}

type UserBorrowHistoryResponse struct {
	History []UserBorrowHistory `json:"history"`
}

type RelatedBooksRequest struct {
	BookID string `json:"book_id"`
}

type RelatedBook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type RelatedBooksResponse struct {
	Books []RelatedBook `json:"books"`
}
