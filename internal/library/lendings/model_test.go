package lendings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserBookLending_StartsOutstanding(t *testing.T) {
	bookID, userID := uuid.New(), uuid.New()
	l := NewUserBookLending(bookID, userID, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, bookID, l.BookID)
	assert.Equal(t, userID, l.UserID)
	assert.False(t, l.SubmittedDate.Valid)
	assert.False(t, l.Remarks.Valid)
}

func TestUpdateSubmittedDate_SetsDateAndRemarks(t *testing.T) {
	l := NewUserBookLending(uuid.New(), uuid.New(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	returned := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	l.UpdateSubmittedDate(returned, "Returned in good condition")

	require.True(t, l.SubmittedDate.Valid)
	assert.Equal(t, returned, l.SubmittedDate.Time)
	require.True(t, l.Remarks.Valid)
	assert.Equal(t, "Returned in good condition", l.Remarks.String)
}

func TestUpdateSubmittedDate_EmptyRemarksDoNotOverwrite(t *testing.T) {
	l := NewUserBookLending(uuid.New(), uuid.New(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	l.UpdateSubmittedDate(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "Slight wear on cover")

	later := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
	l.UpdateSubmittedDate(later, "")

	// the date moves, the remark stays
	assert.Equal(t, later, l.SubmittedDate.Time)
	require.True(t, l.Remarks.Valid)
	assert.Equal(t, "Slight wear on cover", l.Remarks.String)
}

func TestUpdateSubmittedDate_EmptyRemarksOnFreshLendingStayEmpty(t *testing.T) {
	l := NewUserBookLending(uuid.New(), uuid.New(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	l.UpdateSubmittedDate(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), "")

	assert.True(t, l.SubmittedDate.Valid)
	assert.False(t, l.Remarks.Valid)
}
