package seatmap

import (
	"fmt"

	"github.com/Beatrizfernan/front-formatura/internal/model"
)

// Snapshot is the JSON-stable serialization of a layout: the course list
// in its original order and every row's dense occupancy.  It is what gets
// persisted for a locally modified seat map and what reset compares
// against when rebuilding from the original allocation.
type Snapshot struct {
	Cursos []Course      `json:"cursos"`
	Filas  []SnapshotRow `json:"filas"`
}

// SnapshotRow is the persisted form of one row.
type SnapshotRow struct {
	Nome       string   `json:"nome"`
	Capacidade int      `json:"capacidade"`
	Assentos   []string `json:"assentos"`
}

// Snapshot captures the layout.  Rows appear in layout order, so two
// layouts with identical occupancy produce identical snapshots.
func (l *Layout) Snapshot() Snapshot {
	s := Snapshot{Cursos: l.Courses()}
	for _, name := range l.order {
		row := l.rows[name]
		seats := make([]string, len(row.Seats))
		copy(seats, row.Seats)
		s.Filas = append(s.Filas, SnapshotRow{Nome: name, Capacidade: row.Capacity, Assentos: seats})
	}
	return s
}

// FromSnapshot reconstructs a layout from its persisted form.
func FromSnapshot(s Snapshot) *Layout {
	l := &Layout{
		rows: make(map[string]*Row, len(s.Filas)),
		byID: make(map[string]*Course, len(s.Cursos)),
	}
	for i := range s.Cursos {
		c := s.Cursos[i]
		l.courses = append(l.courses, &c)
		l.byID[c.ID] = &c
	}
	for _, sr := range s.Filas {
		seats := make([]string, sr.Capacidade)
		copy(seats, sr.Assentos)
		l.rows[sr.Nome] = &Row{Name: sr.Nome, Capacity: sr.Capacidade, Seats: seats}
		l.order = append(l.order, sr.Nome)
	}
	return l
}

// CourseRanges recomputes a course's compact row spans from the current
// occupancy, in layout order.  The move response reports these for the
// moved course, since local moves invalidate the spans the backend
// originally sent.
func (l *Layout) CourseRanges(courseID string) []model.FilaDetail {
	var out []model.FilaDetail
	for _, name := range l.order {
		row := l.rows[name]
		start := 0
		for n := 1; n <= row.Capacity; n++ {
			held := row.Seats[n-1] == courseID
			if held && start == 0 {
				start = n
			}
			if (!held || n == row.Capacity) && start != 0 {
				end := n - 1
				if held {
					end = n
				}
				out = append(out, model.FilaDetail{
					Fila:     name,
					Assentos: end - start + 1,
					Range:    formatRange(start, end),
				})
				start = 0
			}
		}
	}
	return out
}

func formatRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
