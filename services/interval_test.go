package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	junA, junB := date(2024, 6, 1), date(2024, 6, 5)

	// Sharing nights
	assert.True(t, Overlaps(junA, junB, date(2024, 6, 3), date(2024, 6, 7)))
	assert.True(t, Overlaps(junA, junB, date(2024, 5, 30), date(2024, 6, 2)))
	assert.True(t, Overlaps(junA, junB, junA, junB))
	assert.True(t, Overlaps(junA, junB, date(2024, 6, 2), date(2024, 6, 3)))

	// Touching at an endpoint is not an overlap: checkout day may be the
	// next guest's check-in day.
	assert.False(t, Overlaps(junA, junB, junB, date(2024, 6, 8)))
	assert.False(t, Overlaps(junA, junB, date(2024, 5, 28), junA))

	// Disjoint
	assert.False(t, Overlaps(junA, junB, date(2024, 7, 1), date(2024, 7, 5)))
}

func TestCovers(t *testing.T) {
	from, to := date(2024, 8, 1), date(2024, 8, 31)

	assert.True(t, Covers(from, to, date(2024, 8, 5), date(2024, 8, 10)))
	// Inclusive on both ends: a stay checking out on the last window day fits.
	assert.True(t, Covers(from, to, from, to))
	assert.False(t, Covers(from, to, date(2024, 7, 31), date(2024, 8, 10)))
	assert.False(t, Covers(from, to, date(2024, 8, 25), date(2024, 9, 1)))
	assert.False(t, Covers(from, to, date(2024, 9, 1), date(2024, 9, 5)))
}

func TestNights(t *testing.T) {
	nights, err := Nights(date(2024, 6, 1), date(2024, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, nights)

	nights, err = Nights(date(2024, 6, 1), date(2024, 6, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, nights)

	_, err = Nights(date(2024, 6, 4), date(2024, 6, 4))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Nights(date(2024, 6, 4), date(2024, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	noisy := time.Date(2024, 6, 1, 15, 30, 45, 12, loc)
	assert.Equal(t, date(2024, 6, 1), DateOnly(noisy))
}
