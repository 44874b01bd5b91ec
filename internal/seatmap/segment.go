package seatmap

import "strings"

// PaletteSize is the number of distinct course colors the UI palette
// carries.  Color indices are assigned as list position modulo this value,
// so a course's color can shift when a reorder changes its position in the
// backend's returned list.  That instability is the documented behavior of
// the position rule, not an accident of this package.
const PaletteSize = 14

// Segment is a maximal run of consecutive seats within one row held by
// the same course.  Empty runs produce no segment; they are the implicit
// gaps between segments when rendering.
type Segment struct {
	CursoID    string `json:"curso_id"`
	Nome       string `json:"nome"`
	Abrev      string `json:"abrev"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Count      int    `json:"count"`
	ColorIndex int    `json:"color_idx"`
}

// RowSegments compresses a row's dense occupancy back into segments.  The
// returned segments, together with the implicit empty gaps, cover seats
// 1..capacity exactly with no overlap.
func (l *Layout) RowSegments(name string) []Segment {
	row := l.rows[name]
	if row == nil {
		return nil
	}

	var segs []Segment
	cur := Empty
	start := 0
	flush := func(end int) {
		if cur == Empty {
			return
		}
		seg := Segment{
			CursoID: cur,
			Nome:    cur,
			Abrev:   abbreviate("", cur),
			Start:   start,
			End:     end,
			Count:   end - start + 1,
		}
		if c, ok := l.byID[cur]; ok {
			seg.Nome = c.Nome
			seg.Abrev = c.Abrev
			seg.ColorIndex = c.ColorIndex
		}
		segs = append(segs, seg)
	}

	for n := 1; n <= row.Capacity; n++ {
		occ := row.Seats[n-1]
		if occ != cur {
			flush(n - 1)
			cur = occ
			start = n
		}
	}
	flush(row.Capacity)
	return segs
}

// abbreviate prefers the backend-provided abbreviation and falls back to
// the first six characters of the display name, uppercased.
func abbreviate(provided, name string) string {
	if provided != "" {
		return provided
	}
	r := []rune(name)
	if len(r) > 6 {
		r = r[:6]
	}
	return strings.ToUpper(string(r))
}
