// Package seats converts a seat layout snapshot into a concrete selection of
// ticket ids under a layered preference policy. Pure: no I/O, no clock.
package seats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nhasan91/railbooking/internal/domain"
)

// Allocate picks up to count available seats from the layout.
//
// With desired seat numbers the policies layer: exact match first, then
// proximity to each desired seat within its row, then any available seat.
// Without preferences it looks for a contiguous numeric run near the middle of
// a coach, then expands outward from coach midpoints, then fills top-down.
//
// A short, non-empty result is returned as-is; only a layout with zero
// available seats yields an empty selection.
func Allocate(layout []domain.Coach, desired []string, count int) domain.SeatSelection {
	if count <= 0 {
		return nil
	}
	if len(desired) > 0 {
		return allocatePreferred(layout, desired, count)
	}
	return allocateUnpreferred(layout, count)
}

func allocatePreferred(layout []domain.Coach, desired []string, count int) domain.SeatSelection {
	selected := exactMatches(layout, desired, count)
	if len(selected) < count {
		selected = nearbyMatches(layout, desired, selected, count)
	}
	if len(selected) < count {
		selected = fillAnywhere(layout, selected, count)
	}
	return selected
}

// exactMatches collects available seats whose number is in the desired set, in
// layout order.
func exactMatches(layout []domain.Coach, desired []string, count int) domain.SeatSelection {
	wanted := make(map[string]bool, len(desired))
	for _, number := range desired {
		wanted[number] = true
	}

	var selected domain.SeatSelection
	for _, coach := range layout {
		for _, row := range coach.Rows {
			for _, seat := range row {
				if !seat.Available() || !wanted[seat.SeatNumber] || selected.HasSeat(seat.SeatNumber) {
					continue
				}
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
				if len(selected) == count {
					return selected
				}
			}
		}
	}
	return selected
}

// nearbyMatches expands around each desired seat within its row's available
// sub-sequence, alternating one step right then one step left per offset.
func nearbyMatches(layout []domain.Coach, desired []string, selected domain.SeatSelection, count int) domain.SeatSelection {
	for _, coach := range layout {
		for _, row := range coach.Rows {
			var available []domain.Seat
			for _, seat := range row {
				if seat.Available() {
					available = append(available, seat)
				}
			}

			for _, desiredNumber := range desired {
				anchor := -1
				for i, seat := range available {
					if seat.SeatNumber == desiredNumber {
						anchor = i
						break
					}
				}
				if anchor < 0 {
					continue
				}
				for offset := 1; offset < len(available); offset++ {
					for _, i := range []int{anchor + offset, anchor - offset} {
						if i < 0 || i >= len(available) {
							continue
						}
						seat := available[i]
						if selected.HasSeat(seat.SeatNumber) {
							continue
						}
						selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
						if len(selected) == count {
							return selected
						}
					}
				}
			}
		}
	}
	return selected
}

// fillAnywhere takes any remaining available seat in layout order.
func fillAnywhere(layout []domain.Coach, selected domain.SeatSelection, count int) domain.SeatSelection {
	for _, coach := range layout {
		for _, row := range coach.Rows {
			for _, seat := range row {
				if !seat.Available() || selected.HasSeat(seat.SeatNumber) {
					continue
				}
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
				if len(selected) == count {
					return selected
				}
			}
		}
	}
	return selected
}

type coachSeats struct {
	name  string
	seats []domain.Seat // available seats sorted by numeric suffix
}

func allocateUnpreferred(layout []domain.Coach, count int) domain.SeatSelection {
	coaches := availableByCoach(layout)

	// A contiguous numeric run beats everything; prefer blocks near the
	// middle of the coach.
	for _, coach := range coaches {
		if block := contiguousBlock(coach.seats, count); block != nil {
			selected := make(domain.SeatSelection, 0, count)
			for _, seat := range block {
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
			}
			return selected
		}
	}

	var selected domain.SeatSelection
	for _, coach := range coaches {
		if len(selected) >= count {
			break
		}
		selected = expandFromMiddle(coach.seats, selected, count)
	}

	if len(selected) < count {
		for _, coach := range coaches {
			for _, seat := range coach.seats {
				if len(selected) >= count {
					break
				}
				if selected.HasSeat(seat.SeatNumber) {
					continue
				}
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
			}
		}
	}
	return selected
}

func availableByCoach(layout []domain.Coach) []coachSeats {
	var coaches []coachSeats
	for _, coach := range layout {
		var seats []domain.Seat
		for _, row := range coach.Rows {
			for _, seat := range row {
				if seat.Available() {
					seats = append(seats, seat)
				}
			}
		}
		if len(seats) == 0 {
			continue
		}
		sortBySuffix(seats)
		coaches = append(coaches, coachSeats{name: coach.Name, seats: seats})
	}
	return coaches
}

// contiguousBlock finds count seats whose numeric suffixes form a run
// (max-min == count-1), preferring block positions closest to the middle of
// the sorted coach list.
func contiguousBlock(seats []domain.Seat, count int) []domain.Seat {
	if len(seats) < count {
		return nil
	}
	maxStart := len(seats) - count
	for _, start := range startOrder(maxStart, len(seats)/2-count/2) {
		block := seats[start : start+count]
		if suffix(block[count-1].SeatNumber)-suffix(block[0].SeatNumber) == count-1 {
			return block
		}
	}
	return nil
}

// startOrder yields 0..maxStart beginning at center and alternating outward.
func startOrder(maxStart, center int) []int {
	if center > maxStart {
		center = maxStart
	}
	if center < 0 {
		center = 0
	}
	order := make([]int, 0, maxStart+1)
	order = append(order, center)
	for offset := 1; len(order) <= maxStart; offset++ {
		if center+offset <= maxStart {
			order = append(order, center+offset)
		}
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
	}
	return order
}

// expandFromMiddle takes seats alternately left and right of the coach
// midpoint until count is reached or the coach is exhausted.
func expandFromMiddle(seats []domain.Seat, selected domain.SeatSelection, count int) domain.SeatSelection {
	mid := len(seats) / 2
	left, right := mid-1, mid
	for len(selected) < count && (left >= 0 || right < len(seats)) {
		if left >= 0 && len(selected) < count {
			if seat := seats[left]; !selected.HasSeat(seat.SeatNumber) {
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
			}
			left--
		}
		if right < len(seats) && len(selected) < count {
			if seat := seats[right]; !selected.HasSeat(seat.SeatNumber) {
				selected = append(selected, domain.SelectedSeat{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber})
			}
			right++
		}
	}
	return selected
}

func sortBySuffix(seats []domain.Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		return suffix(seats[i].SeatNumber) < suffix(seats[j].SeatNumber)
	})
}

// suffix extracts the trailing numeric part of a seat number like "KHA-12".
func suffix(seatNumber string) int {
	parts := strings.Split(seatNumber, "-")
	n, _ := strconv.Atoi(parts[len(parts)-1])
	return n
}
