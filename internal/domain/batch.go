package domain

// ScoredRecord es una fila del resultado batch: identidad del registro mas sus rasgos.
type ScoredRecord struct {
	Name     string      `json:"name"`
	Username string      `json:"username,omitempty"`
	Source   Source      `json:"source"`
	Traits   TraitVector `json:"traits"`
	Failed   bool        `json:"failed,omitempty"`
}

// BatchResult conserva el orden de entrada; nunca descarta filas.
type BatchResult struct {
	RunID string         `json:"run_id"`
	Items []ScoredRecord `json:"results"`
}

// Traits devuelve solo los vectores, en orden.
func (b BatchResult) Traits() []TraitVector {
	out := make([]TraitVector, len(b.Items))
	for i, item := range b.Items {
		out[i] = item.Traits
	}
	return out
}

// Failures cuenta las filas que terminaron con el vector cero por error.
func (b BatchResult) Failures() int {
	n := 0
	for _, item := range b.Items {
		if item.Failed {
			n++
		}
	}
	return n
}
