// Package queue defines message payloads exchanged over the message broker.
package queue

// EventCourseMoved and EventCoursesReordered discriminate the payloads
// sharing the seatmap.events queue.
const (
	EventCourseMoved      = "course_moved"
	EventCoursesReordered = "courses_reordered"
)

// CourseMovedEvent is published after a course move is applied, whether
// locally or confirmed by the backend.  NaoAlocados carries the seats the
// reallocator could not place when the move overflowed remaining
// capacity; downstream consumers can alert on any non-zero value.
type CourseMovedEvent struct {
	Event          string `json:"event"`
	FormaturaID    string `json:"formatura_id"`
	CursoID        string `json:"curso_id"`
	FilaDestino    string `json:"fila_destino"`
	AssentoDestino int    `json:"assento_destino"`
	NaoAlocados    int    `json:"nao_alocados"`
	Confirmado     bool   `json:"confirmado"`
	MovedAt        string `json:"moved_at"`
}

// CoursesReorderedEvent is published after the backend accepts a new
// legend ordering.
type CoursesReorderedEvent struct {
	Event       string   `json:"event"`
	FormaturaID string   `json:"formatura_id"`
	Ordem       []string `json:"ordem"`
	ReorderedAt string   `json:"reordered_at"`
}
