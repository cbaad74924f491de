package seats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhasan91/railbooking/internal/domain"
)

// coach builds a single-row-per-chunk coach where availability is given per
// seat index (1-based suffixes).
func coach(name string, rowSize int, available map[int]bool, total int) domain.Coach {
	var c domain.Coach
	var row []domain.Seat
	for i := 1; i <= total; i++ {
		avail := 0
		if available[i] {
			avail = 1
		}
		row = append(row, domain.Seat{
			TicketID:     int64(i),
			SeatNumber:   fmt.Sprintf("%s-%d", name, i),
			Availability: avail,
		})
		if len(row) == rowSize {
			c.Rows = append(c.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		c.Rows = append(c.Rows, row)
	}
	c.Name = name
	return c
}

func all(n int) map[int]bool {
	m := make(map[int]bool, n)
	for i := 1; i <= n; i++ {
		m[i] = true
	}
	return m
}

func assertInvariants(t *testing.T, layout []domain.Coach, selection domain.SeatSelection, count int) {
	t.Helper()
	assert.LessOrEqual(t, len(selection), count)

	available := make(map[string]bool)
	for _, c := range layout {
		for _, row := range c.Rows {
			for _, seat := range row {
				if seat.Available() {
					available[seat.SeatNumber] = true
				}
			}
		}
	}
	seen := make(map[string]bool)
	for _, seat := range selection {
		assert.True(t, available[seat.SeatNumber], "seat %s was not available", seat.SeatNumber)
		assert.False(t, seen[seat.SeatNumber], "seat %s selected twice", seat.SeatNumber)
		seen[seat.SeatNumber] = true
	}
}

func TestAllocate_ExactCountWhenEnoughAvailable(t *testing.T) {
	layout := []domain.Coach{coach("KHA", 4, all(12), 12)}
	for count := 1; count <= 4; count++ {
		selection := Allocate(layout, nil, count)
		assert.Len(t, selection, count)
		assertInvariants(t, layout, selection, count)
	}
}

func TestAllocate_ShortfallReturnsAllAvailable(t *testing.T) {
	layout := []domain.Coach{coach("KHA", 4, map[int]bool{2: true, 7: true}, 8)}
	selection := Allocate(layout, nil, 4)
	assert.Len(t, selection, 2)
	assertInvariants(t, layout, selection, 4)
}

func TestAllocate_NoSeatsAvailable(t *testing.T) {
	layout := []domain.Coach{coach("KHA", 4, nil, 8)}
	assert.Empty(t, Allocate(layout, nil, 2))
	assert.Empty(t, Allocate(layout, []string{"KHA-1"}, 2))
}

func TestAllocate_ExactMatchPolicy(t *testing.T) {
	layout := []domain.Coach{coach("KHA", 5, all(10), 10)}
	desired := []string{"KHA-3", "KHA-7", "KHA-9"}

	selection := Allocate(layout, desired, 2)
	require.Len(t, selection, 2)
	assert.ElementsMatch(t, []string{"KHA-3", "KHA-7"}, selection.SeatNumbers())

	selection = Allocate(layout, desired, 3)
	assert.ElementsMatch(t, desired, selection.SeatNumbers())
}

// Scenario B: both desired seats available, count 2: exactly those ticket ids.
func TestAllocate_DesiredSeatsExactTickets(t *testing.T) {
	layout := []domain.Coach{coach("B", 5, all(10), 10)}
	selection := Allocate(layout, []string{"B-1", "B-2"}, 2)

	require.Len(t, selection, 2)
	assert.ElementsMatch(t, []int64{1, 2}, selection.TicketIDs())
}

func TestAllocate_ProximityExpandsAroundDesired(t *testing.T) {
	// row of available seats 3,4,5,6,8; desired 5 is available, so exact match
	// takes it and proximity fills around it: +1 then -1.
	available := map[int]bool{3: true, 4: true, 5: true, 6: true, 8: true}
	layout := []domain.Coach{coach("KHA", 10, available, 10)}

	selection := Allocate(layout, []string{"KHA-5"}, 3)
	require.Len(t, selection, 3)
	assert.Equal(t, []string{"KHA-5", "KHA-6", "KHA-4"}, selection.SeatNumbers())
}

func TestAllocate_ProximityThenFill(t *testing.T) {
	// desired seat taken: exact finds nothing, proximity finds nothing to
	// anchor on, fill takes whatever is open.
	available := map[int]bool{1: true, 10: true}
	layout := []domain.Coach{coach("KHA", 5, available, 10)}

	selection := Allocate(layout, []string{"KHA-5"}, 2)
	require.Len(t, selection, 2)
	assert.ElementsMatch(t, []string{"KHA-1", "KHA-10"}, selection.SeatNumbers())
}

// Scenario A: one coach, 5 contiguous available seats out of 10, count 3:
// the contiguous seats nearest the coach midpoint win.
func TestAllocate_ContiguousBlockNearMidpoint(t *testing.T) {
	available := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true}
	layout := []domain.Coach{coach("KHA", 5, available, 10)}

	selection := Allocate(layout, nil, 3)
	require.Len(t, selection, 3)
	assert.Equal(t, []string{"KHA-4", "KHA-5", "KHA-6"}, selection.SeatNumbers())
}

func TestAllocate_ContiguousBeatsScattered(t *testing.T) {
	// coach 1 has scattered seats, coach 2 has a clean run of 3
	layout := []domain.Coach{
		coach("KA", 5, map[int]bool{1: true, 4: true, 9: true}, 10),
		coach("KHA", 5, map[int]bool{6: true, 7: true, 8: true}, 10),
	}

	selection := Allocate(layout, nil, 3)
	require.Len(t, selection, 3)
	assert.ElementsMatch(t, []string{"KHA-6", "KHA-7", "KHA-8"}, selection.SeatNumbers())
}

func TestAllocate_NoContiguousRunExpandsFromMiddle(t *testing.T) {
	// only even seats: no contiguous suffix run exists anywhere
	available := map[int]bool{2: true, 4: true, 6: true, 8: true, 10: true}
	layout := []domain.Coach{coach("KHA", 10, available, 10)}

	selection := Allocate(layout, nil, 3)
	require.Len(t, selection, 3)
	// sorted available: 2 4 6 8 10, midpoint expansion: 4, 6, 2
	assert.ElementsMatch(t, []string{"KHA-2", "KHA-4", "KHA-6"}, selection.SeatNumbers())
	assertInvariants(t, layout, selection, 3)
}

func TestAllocate_FillsAcrossCoaches(t *testing.T) {
	layout := []domain.Coach{
		coach("KA", 5, map[int]bool{1: true}, 5),
		coach("KHA", 5, map[int]bool{2: true}, 5),
		coach("GA", 5, map[int]bool{3: true}, 5),
	}

	selection := Allocate(layout, nil, 3)
	require.Len(t, selection, 3)
	assertInvariants(t, layout, selection, 3)
}

func TestAllocate_ZeroCount(t *testing.T) {
	layout := []domain.Coach{coach("KHA", 5, all(5), 5)}
	assert.Empty(t, Allocate(layout, nil, 0))
}

func TestAllocate_DesiredAcrossCoaches(t *testing.T) {
	layout := []domain.Coach{
		coach("KA", 5, all(5), 5),
		coach("KHA", 5, all(5), 5),
	}

	selection := Allocate(layout, []string{"KHA-3", "KA-2"}, 2)
	require.Len(t, selection, 2)
	assert.ElementsMatch(t, []string{"KA-2", "KHA-3"}, selection.SeatNumbers())
}

func TestStartOrder_CoversAllPositions(t *testing.T) {
	order := startOrder(4, 2)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 2, order[0])

	assert.Equal(t, []int{0}, startOrder(0, 3))
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, 12, suffix("KHA-12"))
	assert.Equal(t, 3, suffix("UMA-EX-3"))
	assert.Equal(t, 7, suffix("7"))
	assert.Equal(t, 0, suffix("KHA-"))
}
