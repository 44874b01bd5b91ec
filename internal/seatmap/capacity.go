package seatmap

import (
	"strconv"
	"strings"

	"github.com/Beatrizfernan/front-formatura/internal/model"
)

// resolveCapacities computes the capacity of every referenced row: the
// highest seat index mentioned by any course range or empty-seat list for
// that row.  Rows referenced by no source are simply absent from the
// result, so they never render.  An empty-seat record with an empty list
// contributes 0, which keeps the row in the result (capacity may still be
// raised by course ranges) without tripping over a max of nothing.
func resolveCapacities(detalhes []model.CourseDetail, vazios []model.AssentosVazios) map[string]int {
	caps := make(map[string]int)

	for _, d := range detalhes {
		for _, f := range d.Filas {
			_, end, ok := parseRange(f.Range)
			if !ok {
				continue
			}
			if end > caps[f.Fila] {
				caps[f.Fila] = end
			}
		}
	}

	for _, v := range vazios {
		max := 0
		for _, n := range v.AssentosVazios {
			if n > max {
				max = n
			}
		}
		if cur, ok := caps[v.Fila]; !ok || max > cur {
			caps[v.Fila] = max
		}
	}

	return caps
}

// parseRange decodes the backend's compact span form: "<n>" for a single
// seat or "<a>-<b>" for an inclusive span.  A span whose second half does
// not parse degrades to the single-seat form (start=end=first number); a
// range with no leading number at all is rejected.
func parseRange(s string) (start, end int, ok bool) {
	s = strings.TrimSpace(s)
	first, rest, found := strings.Cut(s, "-")
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, false
	}
	end = start
	if found {
		if e, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
			end = e
		}
	}
	if end < start {
		end = start
	}
	return start, end, true
}
