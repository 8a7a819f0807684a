package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput se devuelve cuando el texto manual esta vacio.
	ErrEmptyInput = errors.New("empty input")
	// ErrRecordNotFound se devuelve cuando no hay fila para el nombre pedido.
	ErrRecordNotFound = errors.New("record not found")
)

// SchemaError indica que faltan columnas requeridas; el archivo completo se rechaza.
type SchemaError struct {
	Source  Source
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s csv missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// PredictionError es el fallo de un registro individual dentro de un batch.
type PredictionError struct {
	Index int
	Cause error
}

func (e *PredictionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("prediction failed for record %d: %v", e.Index, e.Cause)
	}
	return fmt.Sprintf("prediction failed: %v", e.Cause)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}

// ReportError se muestra siempre al usuario; no hay fallback silencioso.
type ReportError struct {
	Name  string
	Cause error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report generation failed for %q: %v", e.Name, e.Cause)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// ComparisonError envuelve cualquier fallo del flujo de comparacion.
type ComparisonError struct {
	Cause error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("comparison failed: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	return e.Cause
}
