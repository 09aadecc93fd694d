package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fixed size", func(t *testing.T) {
		d := Generate(1, 50, now)
		assert.Len(t, d.Books, 3)
		assert.Len(t, d.Users, 3)
		assert.Len(t, d.Lendings, 50)
	})

	t.Run("counters stay within bounds", func(t *testing.T) {
		d := Generate(7, 200, now)
		for _, b := range d.Books {
			assert.GreaterOrEqual(t, b.AvailableCopies, 0)
			assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies)
		}
		total := 0
		for _, u := range d.Users {
			total += u.LendingBookCount
		}
		assert.Equal(t, 200, total)
	})

	t.Run("lendings reference the generated books and users", func(t *testing.T) {
		d := Generate(3, 20, now)
		bookIDs := map[string]bool{}
		for _, b := range d.Books {
			bookIDs[b.BookID.String()] = true
		}
		userIDs := map[string]bool{}
		for _, u := range d.Users {
			userIDs[u.UserID.String()] = true
		}
		for _, l := range d.Lendings {
			assert.True(t, bookIDs[l.BookID.String()])
			assert.True(t, userIDs[l.UserID.String()])
			assert.True(t, l.LendingDate.Before(now))
			if l.SubmittedDate.Valid {
				assert.True(t, l.SubmittedDate.Time.After(l.LendingDate))
			}
		}
	})

	t.Run("same seed draws the same lendings", func(t *testing.T) {
		a := Generate(42, 30, now)
		b := Generate(42, 30, now)
		require.Len(t, b.Lendings, len(a.Lendings))
		for i := range a.Lendings {
			assert.Equal(t, a.Lendings[i].LendingDate, b.Lendings[i].LendingDate)
			assert.Equal(t, a.Lendings[i].SubmittedDate, b.Lendings[i].SubmittedDate)
			assert.Equal(t, a.Lendings[i].Remarks, b.Lendings[i].Remarks)
		}
	})
}
