package seatmap

import "errors"

// ErrInvalidDestination is returned when the move target names a row that
// is not part of the layout.
var ErrInvalidDestination = errors.New("invalid destination row")

// ErrCourseNotFound is returned when the moved course is unknown or has
// no recorded seats.
var ErrCourseNotFound = errors.New("course not found")

// MoveCourse relocates a course's entire seat block so it begins at the
// given (row, seat) position, cascading whatever occupied that region
// forward through the remaining seating:
//
//  1. Every seat the course holds anywhere is cleared.
//  2. Scanning forward from the target position (target row from the
//     target seat, then every later row from seat 1), the seats of each
//     distinct course encountered are tallied; first-encounter order is
//     the cascade order.
//  3. The whole forward region is cleared, the moved course is written
//     consecutively from the target position (spilling across row
//     boundaries), and each displaced course is then re-placed, in
//     cascade order, into the seats still empty.
//
// Seats strictly before the target are never touched, and no course's
// seat count changes as long as the forward region can hold the combined
// demand.  When it cannot, trailing demand is dropped and the number of
// seats that could not be placed is returned; callers decide whether to
// surface that as an error.
//
// On a returned error the layout is unchanged.
func (l *Layout) MoveCourse(courseID, targetRow string, targetSeat int) (unplaced int, err error) {
	course, ok := l.byID[courseID]
	if !ok || course.Total == 0 {
		return 0, ErrCourseNotFound
	}
	rowIdx := -1
	for i, name := range l.order {
		if name == targetRow {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 || targetSeat < 1 {
		return 0, ErrInvalidDestination
	}

	for _, row := range l.rows {
		for i, occ := range row.Seats {
			if occ == courseID {
				row.Seats[i] = Empty
			}
		}
	}

	// Tally the displaced courses in first-encounter order, then wipe the
	// forward region in the same pass.
	var cascade []string
	demand := make(map[string]int)
	l.scanForward(rowIdx, targetSeat, func(row *Row, n int) bool {
		occ := row.Seats[n-1]
		if occ != Empty {
			if demand[occ] == 0 {
				cascade = append(cascade, occ)
			}
			demand[occ]++
			row.Seats[n-1] = Empty
		}
		return true
	})

	remaining := course.Total
	l.scanForward(rowIdx, targetSeat, func(row *Row, n int) bool {
		row.Seats[n-1] = courseID
		remaining--
		return remaining > 0
	})
	unplaced += remaining

	for _, id := range cascade {
		need := demand[id]
		l.scanForward(rowIdx, targetSeat, func(row *Row, n int) bool {
			if row.Seats[n-1] == Empty {
				row.Seats[n-1] = id
				need--
			}
			return need > 0
		})
		unplaced += need
	}

	return unplaced, nil
}

// scanForward visits every seat at or after the given position in layout
// order and calls fn for each; fn returns false to stop early.
func (l *Layout) scanForward(rowIdx, seat int, fn func(row *Row, n int) bool) {
	for i := rowIdx; i < len(l.order); i++ {
		row := l.rows[l.order[i]]
		start := 1
		if i == rowIdx {
			start = seat
		}
		for n := start; n <= row.Capacity; n++ {
			if !fn(row, n) {
				return
			}
		}
	}
}
