package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 45000.0, TotalPrice(15000, 3))
	assert.Equal(t, 0.0, TotalPrice(15000, 0))
	assert.Equal(t, 15000.0, TotalPrice(15000, 1))
}
