package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook_StartsWithAllCopiesAvailable(t *testing.T) {
	b := NewBook("The Great Gatsby", "F. Scott Fitzgerald", "ISBN-978-0-111111111",
		"Penguin Books", "Fiction", 450, 2022, 5)

	require.NotEqual(t, b.BookID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, 5, b.TotalCopies)
	assert.Equal(t, 5, b.AvailableCopies)
	assert.Equal(t, 0, b.TotalNumberOfLendings)
	assert.True(t, b.IsActive)
}

func TestIncrementAvailableCopies_CapsAtTotalButCountsLending(t *testing.T) {
	b := NewBook("t", "a", "c", "p", "g", 100, 2020, 2)

	// already at the cap
	b.IncrementAvailableCopies()

	assert.Equal(t, 2, b.AvailableCopies)
	assert.Equal(t, 1, b.TotalNumberOfLendings)
}

func TestDecrementAvailableCopies_FloorsAtZero(t *testing.T) {
	b := NewBook("t", "a", "c", "p", "g", 100, 2020, 1)

	b.DecrementAvailableCopies()
	b.DecrementAvailableCopies()
	b.DecrementAvailableCopies()

	assert.Equal(t, 0, b.AvailableCopies)
}

func TestCopyCounters_InvariantHoldsUnderMixedSequences(t *testing.T) {
	b := NewBook("t", "a", "c", "p", "g", 100, 2020, 3)

	ops := []func(){
		b.DecrementAvailableCopies, b.DecrementAvailableCopies,
		b.IncrementAvailableCopies, b.DecrementAvailableCopies,
		b.DecrementAvailableCopies, b.DecrementAvailableCopies,
		b.IncrementAvailableCopies, b.IncrementAvailableCopies,
		b.IncrementAvailableCopies, b.IncrementAvailableCopies,
	}
	for _, op := range ops {
		op()
		assert.GreaterOrEqual(t, b.AvailableCopies, 0)
		assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies)
	}
}

func TestSetActive_SetInactive(t *testing.T) {
	b := NewBook("t", "a", "c", "p", "g", 100, 2020, 1)

	b.SetInactive()
	assert.False(t, b.IsActive)
	b.SetActive()
	assert.True(t, b.IsActive)
}
