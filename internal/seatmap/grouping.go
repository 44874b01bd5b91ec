package seatmap

import (
	"regexp"
	"sort"
)

// DefaultAisleRow is the row number after which the visual aisle sits:
// rows numbered at or below it render before the aisle marker.
const DefaultAisleRow = 12

var rowNameRe = regexp.MustCompile(`^(\d+)([A-Z]+)$`)

// parseRowName splits a row name into its numeric prefix and letter
// suffix.  Names that do not match the <digits><letters> form report
// ok=false; callers exclude them from sectioning instead of failing.
func parseRowName(name string) (num int, letters string, ok bool) {
	m := rowNameRe.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	for _, ch := range m[1] {
		num = num*10 + int(ch-'0')
	}
	return num, m[2], true
}

// sortRowNames establishes the total row ordering used everywhere: by
// numeric row number ascending, then by letter suffix.  Names that do not
// parse sort after all parseable ones, lexicographically, so they still
// occupy a stable position in the order.
func sortRowNames(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		ni, li, oki := parseRowName(names[i])
		nj, lj, okj := parseRowName(names[j])
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case !oki && !okj:
			return names[i] < names[j]
		case ni != nj:
			return ni < nj
		default:
			return li < lj
		}
	})
	return names
}

// RowView is the render-ready form of one row: its segments plus gaps.
type RowView struct {
	Nome     string    `json:"nome"`
	Capacity int       `json:"capacidade"`
	Segments []Segment `json:"segmentos"`
}

// Line groups the rows sharing one row number (1A, 1B, 1C...) so they can
// render side by side.
type Line struct {
	Num  int       `json:"num"`
	Rows []RowView `json:"filas"`
}

// Sections partitions the layout's rows into the blocks before and after
// the aisle.  Rows numbered at or below aisleRow land in the first block.
// Rows whose names do not match the expected pattern are left out of both.
func (l *Layout) Sections(aisleRow int) (before, after []Line) {
	if aisleRow <= 0 {
		aisleRow = DefaultAisleRow
	}
	lines := make(map[int][]RowView)
	for _, name := range l.order {
		num, _, ok := parseRowName(name)
		if !ok {
			continue
		}
		lines[num] = append(lines[num], RowView{
			Nome:     name,
			Capacity: l.rows[name].Capacity,
			Segments: l.RowSegments(name),
		})
	}

	nums := make([]int, 0, len(lines))
	for n := range lines {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	for _, n := range nums {
		line := Line{Num: n, Rows: lines[n]}
		if n <= aisleRow {
			before = append(before, line)
		} else {
			after = append(after, line)
		}
	}
	return before, after
}
