// Package seatmap builds and manipulates the dense per-row seat occupancy
// derived from an allocation result.  The backend describes an allocation
// sparsely (per-course row ranges plus per-row empty-seat lists); this
// package expands that into rows of seat→occupant entries, compresses them
// back into contiguous segments for rendering, and implements the local
// move-course reallocation with its displaced-course cascade.
package seatmap

import (
	"github.com/Beatrizfernan/front-formatura/internal/model"
)

// Empty marks an unoccupied seat in a row's occupancy slice.
const Empty = ""

// Course is the legend-level view of one course: identity, labels, the
// total seat count recorded by the backend and a palette color index.
type Course struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Abrev      string `json:"abrev"`
	Total      int    `json:"total_assentos"`
	ColorIndex int    `json:"color_idx"`
}

// Row is the dense view of one physical row.  Seats[i] holds the occupant
// of seat i+1: a course id, or Empty.
type Row struct {
	Name     string
	Capacity int
	Seats    []string
}

// Layout is the full occupancy structure for one allocation result.  Rows
// are kept in a total order (numeric row number ascending, then trailing
// letters); that order drives both rendering and the forward scan of the
// reallocator.  Courses keep the backend's original list order, which is
// what the palette assignment is derived from.
type Layout struct {
	rows    map[string]*Row
	order   []string
	courses []*Course
	byID    map[string]*Course
}

// Build expands an allocation result into a Layout.  Colors are assigned
// by list position modulo the palette size; pass an existing color-index
// map to keep previous assignments across a reorder (entries missing from
// the map fall back to the position rule).
func Build(detalhes []model.CourseDetail, vazios []model.AssentosVazios, colors map[string]int) *Layout {
	l := &Layout{
		rows: make(map[string]*Row),
		byID: make(map[string]*Course),
	}

	caps := resolveCapacities(detalhes, vazios)
	for name, cap := range caps {
		l.rows[name] = &Row{Name: name, Capacity: cap, Seats: make([]string, cap)}
	}
	l.order = sortRowNames(keysOf(l.rows))

	for i, d := range detalhes {
		key := d.Key()
		ci := i % PaletteSize
		if colors != nil {
			if c, ok := colors[key]; ok {
				ci = c
			}
		}
		course := &Course{
			ID:         key,
			Nome:       d.Curso,
			Abrev:      abbreviate(d.Abreviacao, d.Curso),
			Total:      d.TotalAssentos,
			ColorIndex: ci,
		}
		l.courses = append(l.courses, course)
		l.byID[key] = course

		for _, f := range d.Filas {
			row := l.rows[f.Fila]
			if row == nil {
				continue
			}
			start, end, ok := parseRange(f.Range)
			if !ok {
				continue
			}
			for n := start; n <= end && n <= row.Capacity; n++ {
				if n >= 1 {
					row.Seats[n-1] = key
				}
			}
		}
	}

	// Empty-seat marks are applied independently of course marks; the
	// builder is a projection of the inputs, not an arbiter of conflicts.
	for _, v := range vazios {
		row := l.rows[v.Fila]
		if row == nil {
			continue
		}
		for _, n := range v.AssentosVazios {
			if n >= 1 && n <= row.Capacity {
				row.Seats[n-1] = Empty
			}
		}
	}

	return l
}

// Courses returns the legend list in the backend's original order.
func (l *Layout) Courses() []Course {
	out := make([]Course, len(l.courses))
	for i, c := range l.courses {
		out[i] = *c
	}
	return out
}

// CourseByID looks a course up by identity key.
func (l *Layout) CourseByID(id string) (Course, bool) {
	c, ok := l.byID[id]
	if !ok {
		return Course{}, false
	}
	return *c, true
}

// RowNames returns every row name in layout order.
func (l *Layout) RowNames() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Row returns the dense occupancy of one row, or nil when unknown.
func (l *Layout) Row(name string) *Row {
	return l.rows[name]
}

// OccupiedCount tallies the seats currently held by a course across all
// rows.  After a clean move this equals the course's recorded total.
func (l *Layout) OccupiedCount(courseID string) int {
	n := 0
	for _, row := range l.rows {
		for _, occ := range row.Seats {
			if occ == courseID {
				n++
			}
		}
	}
	return n
}

// EmptyCount tallies unoccupied seats across the whole layout.
func (l *Layout) EmptyCount() int {
	n := 0
	for _, row := range l.rows {
		for _, occ := range row.Seats {
			if occ == Empty {
				n++
			}
		}
	}
	return n
}

func keysOf(m map[string]*Row) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
