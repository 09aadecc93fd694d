package reports

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	defaultWindowDays   = 30
	defaultTopUserCount = 10
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Service holds the six report query handlers. Every handler is a single-shot
// read: validate the query, ask the gateway, project to the response DTO.
// Absence of matching rows is never an error; it comes back as a nil DTO or
// an empty list.
type Service struct {
	gw    Gateway
	clock Clock
}

func NewService(conn *sqlx.DB) *Service {
	return &Service{gw: NewStore(conn), clock: realClock{}}
}

// BookAvailability reports the copy counters of one active book. A missing or
// inactive book yields a nil response, not an error.
func (s *Service) BookAvailability(ctx context.Context, q BookAvailabilityQuery) (*BookAvailabilityResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.gw.ActiveBook(ctx, q.BookID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	return &BookAvailabilityResponse{
		Code:                 rec.Code,
		IsAvailable:          rec.AvailableCopies > 0,
		AvailableCopiesCount: rec.AvailableCopies,
		TotalCopies:          rec.TotalCopies,
	}, nil
}

// BookReadingRate averages pages-per-day over the book's returned lendings.
// Both dates are truncated to midnight before the day delta is taken.
func (s *Service) BookReadingRate(ctx context.Context, q BookReadingRateQuery) (*BookReadingRateResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	records, err := s.gw.SubmittedLendings(ctx, q.BookID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var sum float64
	for _, r := range records {
		days := dateOnly(r.SubmittedDate).Sub(dateOnly(r.LendingDate)).Hours() / 24
		sum += float64(r.Pages) / days
	}
	avg := sum / float64(len(records))

	return &BookReadingRateResponse{
		Code:    records[0].Code,
		Title:   records[0].Title,
		Average: round2(avg),
	}, nil
}

// MostLendingBooks groups all lendings by book code and returns the topN
// groups by descending count. Title comes from the first lending in a group.
func (s *Service) MostLendingBooks(ctx context.Context, q MostLendingBooksQuery) ([]MostLendingBooksResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	refs, err := s.gw.LendingBookRefs(ctx)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]int)
	groups := make([]MostLendingBooksResponse, 0)
	for _, r := range refs {
		i, ok := byCode[r.Code]
		if !ok {
			i = len(groups)
			byCode[r.Code] = i
			groups = append(groups, MostLendingBooksResponse{Code: r.Code, Title: r.Title})
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return takeN(groups, q.TopN), nil
}

// TopLendingUsers counts lendings per user inside the date window. Zero
// start/end dates fall back to a 30-day trailing window ending now; a zero
// top count falls back to 10.
func (s *Service) TopLendingUsers(ctx context.Context, q TopLendingUsersQuery) ([]TopLendingUsersResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	start, end, top := q.StartDate, q.EndDate, q.TopUserCount
	if start.IsZero() {
		start = now.AddDate(0, 0, -defaultWindowDays)
	}
	if end.IsZero() {
		end = now
	}
	if top == 0 {
		top = defaultTopUserCount
	}

	records, err := s.gw.LendingsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID]int)
	groups := make([]TopLendingUsersResponse, 0)
	for _, r := range records {
		i, ok := byUser[r.UserID]
		if !ok {
			i = len(groups)
			byUser[r.UserID] = i
			groups = append(groups, TopLendingUsersResponse{
				UserID: r.UserID,
				Name:   r.LastName + " " + r.FirstName,
				Email:  r.Email,
				Phone:  r.PhoneNumber,
			})
		}
		groups[i].LendingBooksCount++
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LendingBooksCount > groups[j].LendingBooksCount
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return takeN(groups, top), nil
}

// UserLendingBooks lists one user's lendings in the date window, row by row.
// The same zero-date substitution as TopLendingUsers applies.
func (s *Service) UserLendingBooks(ctx context.Context, q UserLendingBooksQuery) ([]LendingBooksResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	start, end := q.StartDate, q.EndDate
	if start.IsZero() {
		start = now.AddDate(0, 0, -defaultWindowDays)
	}
	if end.IsZero() {
		end = now
	}

	records, err := s.gw.LendingsByUser(ctx, q.UserID, start, end)
	if err != nil {
		return nil, err
	}
	return historyToResponses(records), nil
}

// LendingRelatedBooks finds everyone who ever borrowed the book, then lists
// everything those users borrowed apart from the book itself.
func (s *Service) LendingRelatedBooks(ctx context.Context, q LendingRelatedBooksQuery) ([]LendingBooksResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	borrowers, err := s.gw.BorrowerIDs(ctx, q.BookID)
	if err != nil {
		return nil, err
	}
	if len(borrowers) == 0 {
		return make([]LendingBooksResponse, 0), nil
	}

	records, err := s.gw.LendingsByUsersExcluding(ctx, borrowers, q.BookID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return historyToResponses(records), nil
}

// ---------- helpers ----------

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func takeN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

func historyToResponses(records []HistoryRecord) []LendingBooksResponse {
	out := make([]LendingBooksResponse, 0, len(records))
	for _, r := range records {
		resp := LendingBooksResponse{
			BookID:      r.BookID,
			BookCode:    r.BookCode,
			Title:       r.Title,
			Author:      r.Author,
			LendingDate: r.LendingDate,
		}
		if r.SubmittedDate.Valid {
			val := r.SubmittedDate.Time
			resp.SubmittedDate = &val
		}
		out = append(out, resp)
	}
	return out
}
