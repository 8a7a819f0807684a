package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Embedding es el vector denso de un texto normalizado. Nunca se persiste.
type Embedding []float32

// Record es el contenido crudo de un sujeto, tal como llega del CSV o del texto pegado.
// Fields solo contiene las celdas presentes; una celda nula no aparece.
type Record struct {
	Name     string            `json:"name" validate:"required_without=Username"`
	Username string            `json:"username,omitempty"`
	Source   Source            `json:"source" validate:"required,oneof=LinkedIn GitHub"`
	Fields   map[string]string `json:"-"`
}

var recordValidator = validator.New()

// Validate revisa identidad y fuente del registro.
func (r Record) Validate() error {
	return recordValidator.Struct(r)
}

// DisplayName es el nombre usado en titulos y reportes; cae al username si no hay nombre.
func (r Record) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return r.Username
}

// RawText concatena las columnas indicadas, en ese orden, saltando celdas ausentes.
func (r Record) RawText(columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		val, ok := r.Fields[col]
		if !ok {
			continue
		}
		parts = append(parts, val)
	}
	return strings.Join(parts, " ")
}
