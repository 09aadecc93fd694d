package reports

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/reports/most-lending", logUnhandled("most-lending", h.GetMostLendingBooks))
	r.GET("/reports/book-availability/:bookId", logUnhandled("book-availability", h.GetBookAvailability))
	r.GET("/reports/top-lenders", logUnhandled("top-lenders", h.GetTopLenders))
	r.GET("/reports/user-lending-history/:userId", logUnhandled("user-lending-history", h.GetUserLendingHistory))
	r.GET("/reports/related-books/:bookId", logUnhandled("related-books", h.GetRelatedBooks))
	r.GET("/reports/reading-rate/:bookId", logUnhandled("reading-rate", h.GetReadingRate))
}

// ---------- handlers ----------

func (h *Handler) GetMostLendingBooks(c *gin.Context) {
	q := MostLendingBooksQuery{TopN: parseIntDefault(c.Query("topN"), 0)}
	resp, err := h.svc.MostLendingBooks(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetBookAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid book id"))
		return
	}
	resp, err := h.svc.BookAvailability(c.Request.Context(), BookAvailabilityQuery{BookID: id})
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	// resp is nil when no active book matches; that is still a 200.
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTopLenders(c *gin.Context) {
	q := TopLendingUsersQuery{
		StartDate:    parseDateDefault(c.Query("startDate")),
		EndDate:      parseDateDefault(c.Query("endDate")),
		TopUserCount: parseIntDefault(c.Query("topN"), 0),
	}
	resp, err := h.svc.TopLendingUsers(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUserLendingHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid user id"))
		return
	}
	q := UserLendingBooksQuery{
		UserID:    id,
		StartDate: parseDateDefault(c.Query("startDate")),
		EndDate:   parseDateDefault(c.Query("endDate")),
	}
	resp, err := h.svc.UserLendingBooks(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRelatedBooks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid book id"))
		return
	}
	resp, err := h.svc.LendingRelatedBooks(c.Request.Context(), LendingRelatedBooksQuery{BookID: id})
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetReadingRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid book id"))
		return
	}
	resp, err := h.svc.BookReadingRate(c.Request.Context(), BookReadingRateQuery{BookID: id})
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ---------- helpers ----------

// logUnhandled logs a panic with the report name attached and re-raises it so
// the outer recovery middleware turns it into a generic 500.
func logUnhandled(name string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] unhandled exception in report %q: %v", name, r)
				panic(r)
			}
		}()
		h(c)
	}
}

func parseIntDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

// parseDateDefault accepts "2006-01-02" or RFC 3339 and yields the zero time
// for anything else, which the service substitutes with its default window.
func parseDateDefault(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code Code = CodeInternal
	if api, ok := err.(*APIError); ok {
		code, msg = api.Code, api.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}
