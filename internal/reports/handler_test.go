package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(gw *fakeGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := &Service{gw: gw, clock: fixedClock{t: date(2026, 6, 30)}}
	RegisterRoutes(r.Group("/api"), svc)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookAvailabilityRoute(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gw := &fakeGateway{book: &BookAvailabilityRecord{Code: "C1", AvailableCopies: 1, TotalCopies: 2}}
		w := doGet(t, newTestRouter(gw), "/api/reports/book-availability/"+uuid.NewString())

		require.Equal(t, http.StatusOK, w.Code)
		var got BookAvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "C1", got.Code)
		assert.True(t, got.IsAvailable)
	})

	t.Run("missing book is 200 with null body", func(t *testing.T) {
		w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/book-availability/"+uuid.NewString())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/book-availability/not-a-uuid")

		require.Equal(t, http.StatusBadRequest, w.Code)
		var got errorDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, CodeInvalidArgument, got.Error.Code)
	})
}

func TestMostLendingRoute(t *testing.T) {
	t.Run("missing topN is rejected", func(t *testing.T) {
		w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/most-lending")

		require.Equal(t, http.StatusBadRequest, w.Code)
		var got errorDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "TopN must be greater than 0.", got.Error.Message)
	})

	t.Run("ordered groups", func(t *testing.T) {
		gw := &fakeGateway{refs: []LendingBookRef{
			{Code: "A", Title: "Alpha"},
			{Code: "B", Title: "Beta"},
			{Code: "A", Title: "Alpha"},
		}}
		w := doGet(t, newTestRouter(gw), "/api/reports/most-lending?topN=5")

		require.Equal(t, http.StatusOK, w.Code)
		var got []MostLendingBooksResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, MostLendingBooksResponse{Code: "A", Title: "Alpha", Count: 2}, got[0])
	})
}

func TestTopLendersRoute(t *testing.T) {
	t.Run("query params reach the service", func(t *testing.T) {
		gw := &fakeGateway{}
		w := doGet(t, newTestRouter(gw),
			"/api/reports/top-lenders?startDate=2026-01-01&endDate=2026-01-31&topN=3")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, date(2026, 1, 1), gw.gotStart)
		assert.Equal(t, date(2026, 1, 31), gw.gotEnd)
	})

	t.Run("no params substitutes the trailing window", func(t *testing.T) {
		gw := &fakeGateway{}
		w := doGet(t, newTestRouter(gw), "/api/reports/top-lenders")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, date(2026, 6, 30).AddDate(0, 0, -30), gw.gotStart)
		assert.Equal(t, date(2026, 6, 30), gw.gotEnd)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestUserLendingHistoryRoute(t *testing.T) {
	t.Run("malformed id is 400", func(t *testing.T) {
		w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/user-lending-history/nope")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty history is 200 with empty list", func(t *testing.T) {
		w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/user-lending-history/"+uuid.NewString())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestRelatedBooksRoute(t *testing.T) {
	w := doGet(t, newTestRouter(&fakeGateway{}), "/api/reports/related-books/"+uuid.NewString())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestReadingRateRoute(t *testing.T) {
	gw := &fakeGateway{readings: []ReadingRecord{{
		Code: "C1", Title: "T", Pages: 400,
		LendingDate:   date(2026, 3, 1),
		SubmittedDate: date(2026, 3, 11),
	}}}
	w := doGet(t, newTestRouter(gw), "/api/reports/reading-rate/"+uuid.NewString())

	require.Equal(t, http.StatusOK, w.Code)
	var got BookReadingRateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 40.0, got.Average)
}
