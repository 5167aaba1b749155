package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountCategories(t *testing.T) {
	records := []TrackerRecord{
		{Name: "one", Categories: []string{"A", "B"}},
		{Name: "two", Categories: []string{"A"}},
		{Name: "three", Categories: nil},
	}

	stats := CountCategories(records)
	assert.Equal(t, CategoryStats{"A": 2, "B": 1}, stats)
}

func TestCountCategoriesEmpty(t *testing.T) {
	assert.Empty(t, CountCategories(nil))
	assert.Empty(t, CountCategories([]TrackerRecord{{Name: "bare"}}))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "🟢 Open", StatusOpen.Label())
	assert.Equal(t, "🔴 Closed", StatusClosed.Label())
}
