package reports

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway returns canned rows and records the arguments it was called
// with, so the tests can assert on both the aggregation and the substituted
// defaults the service passes down.
type fakeGateway struct {
	book      *BookAvailabilityRecord
	readings  []ReadingRecord
	refs      []LendingBookRef
	borrowers []BorrowerRecord
	history   []HistoryRecord
	userIDs   []uuid.UUID

	gotStart    time.Time
	gotEnd      time.Time
	gotUserIDs  []uuid.UUID
	gotExcluded uuid.UUID
}

func (f *fakeGateway) ActiveBook(ctx context.Context, bookID uuid.UUID) (*BookAvailabilityRecord, error) {
	return f.book, nil
}

func (f *fakeGateway) SubmittedLendings(ctx context.Context, bookID uuid.UUID) ([]ReadingRecord, error) {
	return f.readings, nil
}

func (f *fakeGateway) LendingBookRefs(ctx context.Context) ([]LendingBookRef, error) {
	return f.refs, nil
}

func (f *fakeGateway) LendingsInRange(ctx context.Context, start, end time.Time) ([]BorrowerRecord, error) {
	f.gotStart, f.gotEnd = start, end
	return f.borrowers, nil
}

func (f *fakeGateway) LendingsByUser(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]HistoryRecord, error) {
	f.gotStart, f.gotEnd = start, end
	return f.history, nil
}

func (f *fakeGateway) BorrowerIDs(ctx context.Context, bookID uuid.UUID) ([]uuid.UUID, error) {
	return f.userIDs, nil
}

func (f *fakeGateway) LendingsByUsersExcluding(ctx context.Context, userIDs []uuid.UUID, bookID uuid.UUID) ([]HistoryRecord, error) {
	f.gotUserIDs, f.gotExcluded = userIDs, bookID
	return f.history, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(gw *fakeGateway, now time.Time) *Service {
	return &Service{gw: gw, clock: fixedClock{t: now}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("available book", func(t *testing.T) {
		gw := &fakeGateway{book: &BookAvailabilityRecord{Code: "9784297139643", AvailableCopies: 2, TotalCopies: 5}}
		svc := newTestService(gw, time.Now())

		got, err := svc.BookAvailability(ctx, BookAvailabilityQuery{BookID: uuid.New()})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "9784297139643", got.Code)
		assert.True(t, got.IsAvailable)
		assert.Equal(t, 2, got.AvailableCopiesCount)
		assert.Equal(t, 5, got.TotalCopies)
	})

	t.Run("zero copies is not available", func(t *testing.T) {
		gw := &fakeGateway{book: &BookAvailabilityRecord{Code: "X", AvailableCopies: 0, TotalCopies: 3}}
		svc := newTestService(gw, time.Now())

		got, err := svc.BookAvailability(ctx, BookAvailabilityQuery{BookID: uuid.New()})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.IsAvailable)
	})

	t.Run("missing book yields nil, not an error", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		got, err := svc.BookAvailability(ctx, BookAvailabilityQuery{BookID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("nil book id is rejected", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		_, err := svc.BookAvailability(ctx, BookAvailabilityQuery{})
		var api *APIError
		require.ErrorAs(t, err, &api)
		assert.Equal(t, CodeInvalidArgument, api.Code)
	})
}

func TestBookReadingRate(t *testing.T) {
	ctx := context.Background()

	t.Run("400 pages over 10 days averages 40", func(t *testing.T) {
		gw := &fakeGateway{readings: []ReadingRecord{{
			Code:          "C1",
			Title:         "Domain Modeling",
			Pages:         400,
			LendingDate:   date(2026, 3, 1).Add(9 * time.Hour),
			SubmittedDate: date(2026, 3, 11).Add(17 * time.Hour),
		}}}
		svc := newTestService(gw, time.Now())

		got, err := svc.BookReadingRate(ctx, BookReadingRateQuery{BookID: uuid.New()})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "C1", got.Code)
		assert.Equal(t, "Domain Modeling", got.Title)
		assert.Equal(t, 40.0, got.Average)
	})

	t.Run("mean of two lendings rounds to 2 decimals", func(t *testing.T) {
		// 300/9 = 33.33..., 200/6 = 33.33..., mean 33.33...
		gw := &fakeGateway{readings: []ReadingRecord{
			{Code: "C1", Title: "T", Pages: 300, LendingDate: date(2026, 1, 1), SubmittedDate: date(2026, 1, 10)},
			{Code: "C1", Title: "T", Pages: 200, LendingDate: date(2026, 2, 1), SubmittedDate: date(2026, 2, 7)},
		}}
		svc := newTestService(gw, time.Now())

		got, err := svc.BookReadingRate(ctx, BookReadingRateQuery{BookID: uuid.New()})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 33.33, got.Average)
	})

	t.Run("no returned lendings yields nil", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		got, err := svc.BookReadingRate(ctx, BookReadingRateQuery{BookID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMostLendingBooks(t *testing.T) {
	ctx := context.Background()

	refs := func(code, title string, n int) []LendingBookRef {
		out := make([]LendingBookRef, n)
		for i := range out {
			out[i] = LendingBookRef{Code: code, Title: title}
		}
		return out
	}

	t.Run("top 2 of three books by count", func(t *testing.T) {
		all := append(refs("A", "Alpha", 5), refs("B", "Beta", 3)...)
		all = append(all, refs("C", "Gamma", 1)...)
		svc := newTestService(&fakeGateway{refs: all}, time.Now())

		got, err := svc.MostLendingBooks(ctx, MostLendingBooksQuery{TopN: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, MostLendingBooksResponse{Code: "A", Title: "Alpha", Count: 5}, got[0])
		assert.Equal(t, MostLendingBooksResponse{Code: "B", Title: "Beta", Count: 3}, got[1])
	})

	t.Run("ties keep encounter order", func(t *testing.T) {
		all := append(refs("A", "Alpha", 2), refs("B", "Beta", 2)...)
		svc := newTestService(&fakeGateway{refs: all}, time.Now())

		got, err := svc.MostLendingBooks(ctx, MostLendingBooksQuery{TopN: 5})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Code)
		assert.Equal(t, "B", got[1].Code)
	})

	t.Run("topN larger than group count returns all", func(t *testing.T) {
		svc := newTestService(&fakeGateway{refs: refs("A", "Alpha", 1)}, time.Now())

		got, err := svc.MostLendingBooks(ctx, MostLendingBooksQuery{TopN: 10})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("non-positive topN is rejected", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		for _, n := range []int{0, -1} {
			_, err := svc.MostLendingBooks(ctx, MostLendingBooksQuery{TopN: n})
			var api *APIError
			require.ErrorAs(t, err, &api)
			assert.Equal(t, CodeInvalidArgument, api.Code)
		}
	})
}

func TestTopLendingUsers(t *testing.T) {
	ctx := context.Background()
	now := date(2026, 6, 30)

	t.Run("zero dates fall back to a 30 day window", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := newTestService(gw, now)

		_, err := svc.TopLendingUsers(ctx, TopLendingUsersQuery{})
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -30), gw.gotStart)
		assert.Equal(t, now, gw.gotEnd)
	})

	t.Run("explicit dates pass through", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := newTestService(gw, now)
		start, end := date(2026, 1, 1), date(2026, 1, 31)

		_, err := svc.TopLendingUsers(ctx, TopLendingUsersQuery{StartDate: start, EndDate: end})
		require.NoError(t, err)
		assert.Equal(t, start, gw.gotStart)
		assert.Equal(t, end, gw.gotEnd)
	})

	t.Run("counts per user, zero top count means 10", func(t *testing.T) {
		alice, bob := uuid.New(), uuid.New()
		rows := []BorrowerRecord{
			{UserID: alice, FirstName: "Alice", LastName: "Smith", Email: "a@example.com", PhoneNumber: "1"},
			{UserID: bob, FirstName: "Bob", LastName: "Jones", Email: "b@example.com", PhoneNumber: "2"},
			{UserID: alice, FirstName: "Alice", LastName: "Smith", Email: "a@example.com", PhoneNumber: "1"},
			{UserID: alice, FirstName: "Alice", LastName: "Smith", Email: "a@example.com", PhoneNumber: "1"},
		}
		svc := newTestService(&fakeGateway{borrowers: rows}, now)

		got, err := svc.TopLendingUsers(ctx, TopLendingUsersQuery{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, alice, got[0].UserID)
		assert.Equal(t, "Smith Alice", got[0].Name)
		assert.Equal(t, 3, got[0].LendingBooksCount)
		assert.Equal(t, bob, got[1].UserID)
		assert.Equal(t, 1, got[1].LendingBooksCount)
	})

	t.Run("explicit top count truncates", func(t *testing.T) {
		rows := make([]BorrowerRecord, 0, 3)
		for i := 0; i < 3; i++ {
			rows = append(rows, BorrowerRecord{UserID: uuid.New()})
		}
		svc := newTestService(&fakeGateway{borrowers: rows}, now)

		got, err := svc.TopLendingUsers(ctx, TopLendingUsersQuery{TopUserCount: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestUserLendingBooks(t *testing.T) {
	ctx := context.Background()
	now := date(2026, 6, 30)

	t.Run("zero dates fall back to a 30 day window", func(t *testing.T) {
		gw := &fakeGateway{}
		svc := newTestService(gw, now)

		got, err := svc.UserLendingBooks(ctx, UserLendingBooksQuery{UserID: uuid.New()})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, now.AddDate(0, 0, -30), gw.gotStart)
		assert.Equal(t, now, gw.gotEnd)
	})

	t.Run("open lending has no submitted date", func(t *testing.T) {
		bookID := uuid.New()
		lent := date(2026, 6, 1)
		returned := date(2026, 6, 10)
		gw := &fakeGateway{history: []HistoryRecord{
			{BookID: bookID, BookCode: "C1", Title: "T1", Author: "A1", LendingDate: lent},
			{BookID: bookID, BookCode: "C1", Title: "T1", Author: "A1", LendingDate: lent,
				SubmittedDate: sql.NullTime{Time: returned, Valid: true}},
		}}
		svc := newTestService(gw, now)

		got, err := svc.UserLendingBooks(ctx, UserLendingBooksQuery{UserID: uuid.New()})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Nil(t, got[0].SubmittedDate)
		require.NotNil(t, got[1].SubmittedDate)
		assert.Equal(t, returned, *got[1].SubmittedDate)
	})

	t.Run("nil user id is rejected", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, now)

		_, err := svc.UserLendingBooks(ctx, UserLendingBooksQuery{})
		var api *APIError
		require.ErrorAs(t, err, &api)
		assert.Equal(t, CodeInvalidArgument, api.Code)
	})
}

func TestLendingRelatedBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("no borrowers yields empty list", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		got, err := svc.LendingRelatedBooks(ctx, LendingRelatedBooksQuery{BookID: uuid.New()})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("queries the borrowers excluding the source book", func(t *testing.T) {
		bookID := uuid.New()
		borrowers := []uuid.UUID{uuid.New(), uuid.New()}
		other := uuid.New()
		gw := &fakeGateway{
			userIDs: borrowers,
			history: []HistoryRecord{{BookID: other, BookCode: "C2", Title: "T2", Author: "A2", LendingDate: date(2026, 5, 1)}},
		}
		svc := newTestService(gw, time.Now())

		got, err := svc.LendingRelatedBooks(ctx, LendingRelatedBooksQuery{BookID: bookID})
		require.NoError(t, err)
		assert.Equal(t, borrowers, gw.gotUserIDs)
		assert.Equal(t, bookID, gw.gotExcluded)
		require.Len(t, got, 1)
		assert.Equal(t, other, got[0].BookID)
		assert.Equal(t, "C2", got[0].BookCode)
	})

	t.Run("nil book id is rejected", func(t *testing.T) {
		svc := newTestService(&fakeGateway{}, time.Now())

		_, err := svc.LendingRelatedBooks(ctx, LendingRelatedBooksQuery{})
		var api *APIError
		require.ErrorAs(t, err, &api)
		assert.Equal(t, CodeInvalidArgument, api.Code)
	})
}
