package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/model"
)

func TestClassForRowBands(t *testing.T) {
	assert.Equal(t, model.SeatClassFirst, ClassForRow(1))
	assert.Equal(t, model.SeatClassFirst, ClassForRow(2))
	assert.Equal(t, model.SeatClassPremium, ClassForRow(3))
	assert.Equal(t, model.SeatClassPremium, ClassForRow(6))
	assert.Equal(t, model.SeatClassEconomy, ClassForRow(7))
	assert.Equal(t, model.SeatClassEconomy, ClassForRow(40))
}

func TestBuildSeatGrid(t *testing.T) {
	a := &model.Aircraft{ID: 5, Rows: 8, Columns: 4}
	seats := BuildSeatGrid(a)
	require.Len(t, seats, 32)

	first := seats[0]
	assert.Equal(t, uint64(5), first.AircraftID)
	assert.Equal(t, "1A", first.Number)
	assert.Equal(t, model.SeatClassFirst, first.Class)
	assert.Equal(t, model.SeatAvailable, first.Status)

	// Row 3 starts premium; row 7 starts economy.
	assert.Equal(t, "3A", seats[8].Number)
	assert.Equal(t, model.SeatClassPremium, seats[8].Class)
	assert.Equal(t, "7A", seats[24].Number)
	assert.Equal(t, model.SeatClassEconomy, seats[24].Class)

	// Last seat of the grid.
	last := seats[31]
	assert.Equal(t, "8D", last.Number)
	assert.Equal(t, "D", last.Column)
}

func TestBuildSeatGridLabelsUnique(t *testing.T) {
	a := &model.Aircraft{ID: 1, Rows: 30, Columns: 6}
	seats := BuildSeatGrid(a)
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		assert.False(t, seen[s.Number], "duplicate seat label %s", s.Number)
		seen[s.Number] = true
	}
}
