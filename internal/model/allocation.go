package model

// FilaDetail is a contiguous span of seats within one named row that the
// allocation backend assigned to a single course.  The Range field keeps
// the backend's compact text form: either "<start>" for a single seat or
// "<start>-<end>" for an inclusive span, both decimal.
//
// Fields:
//  Fila     – row name, one or more digits followed by uppercase letters (e.g. "1A").
//  Assentos – precomputed seat count of the span.
//  Range    – compact text form of the span as sent by the backend.
type FilaDetail struct {
	Fila     string `json:"fila"`
	Assentos int    `json:"assentos"`
	Range    string `json:"range"`
}

// CourseDetail is one course/cohort entry of an allocation result.  CursoID
// and Abreviacao are optional on the wire; when CursoID is absent the
// display name doubles as the identity key (see Key).
//
// Fields:
//  Curso         – display name of the course.
//  CursoID       – backend identifier (optional).
//  Abreviacao    – backend-provided abbreviation (optional).
//  TotalAssentos – total seats assigned to the course.
//  Filas         – ordered row spans making up the assignment.
type CourseDetail struct {
	Curso         string       `json:"curso"`
	CursoID       string       `json:"curso_id,omitempty"`
	Abreviacao    string       `json:"abreviacao,omitempty"`
	TotalAssentos int          `json:"total_assentos"`
	Filas         []FilaDetail `json:"filas"`
}

// Key returns the identity used to refer to this course throughout the
// seat map: the backend id when present, otherwise the display name.
func (d CourseDetail) Key() string {
	if d.CursoID != "" {
		return d.CursoID
	}
	return d.Curso
}

// AssentosVazios lists the seat indices of one row that the backend left
// unassigned.
type AssentosVazios struct {
	Fila           string `json:"fila"`
	AssentosVazios []int  `json:"assentos_vazios"`
	TotalVazios    int    `json:"total_vazios"`
}

// Alocacao is the allocation body shared by every backend response that
// carries seat data: the processed-spreadsheet response, the stored
// allocation fetch and the echoes of reorder/move operations.
type Alocacao struct {
	ID             string           `json:"id"`
	TotalAlocado   int              `json:"total_alocado"`
	TaxaOcupacao   string           `json:"taxa_ocupacao"`
	Detalhes       []CourseDetail   `json:"detalhes"`
	AssentosVazios []AssentosVazios `json:"assentos_vazios,omitempty"`
}

// Formatura describes the graduation ceremony an allocation belongs to.
type Formatura struct {
	ID             string `json:"id"`
	Nome           string `json:"nome"`
	Data           string `json:"data"`
	Local          string `json:"local"`
	TotalFormandos int    `json:"total_formandos"`
	TotalAssentos  int    `json:"total_assentos,omitempty"`
}

// Processamento summarizes which courses the backend created or reused
// while processing an uploaded spreadsheet.
type Processamento struct {
	CursosCriados    []string `json:"cursos_criados"`
	CursosExistentes []string `json:"cursos_existentes"`
	TotalCursos      int      `json:"total_cursos"`
}

// AllocationResponse is the full backend envelope.  The upload endpoint
// fills every field; the fetch/reorder/move endpoints omit Success,
// Message and Processamento, so those are pointers or zero values.
type AllocationResponse struct {
	Success       bool           `json:"success,omitempty"`
	Message       string         `json:"message,omitempty"`
	Processamento *Processamento `json:"processamento,omitempty"`
	Formatura     *Formatura     `json:"formatura,omitempty"`
	Alocacao      *Alocacao      `json:"alocacao"`
}
