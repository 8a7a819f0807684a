// Package embedding envuelve los modelos de sentence embeddings como servicios externos.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"persona-insight/internal/domain"
)

// DefaultBatchSize es el tamano de lote por defecto para EmbedMany.
const DefaultBatchSize = 16

// ErrCountMismatch indica que el servicio devolvio una cantidad de vectores distinta a la pedida.
var ErrCountMismatch = errors.New("embedding count mismatch")

// ErrDimensionMismatch indica que un vector no tiene el largo configurado o ya observado.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Provider convierte texto normalizado en embeddings. Se construye una vez al arrancar el
// proceso y no cambia de estado despues.
type Provider interface {
	Name() string
	// Dimension es el largo de los vectores; 0 mientras no se conozca.
	Dimension() int
	EmbedOne(ctx context.Context, text string) (domain.Embedding, error)
	// EmbedMany devuelve un embedding por texto, en el mismo orden, incluso para textos vacios.
	EmbedMany(ctx context.Context, texts []string, batchSize int) ([]domain.Embedding, error)
}

// dimensionTracker guarda el largo configurado o, si no hay, el del primer vector recibido.
type dimensionTracker struct {
	n atomic.Int64
}

func newDimensionTracker(configured int) *dimensionTracker {
	d := &dimensionTracker{}
	if configured > 0 {
		d.n.Store(int64(configured))
	}
	return d
}

func (d *dimensionTracker) get() int {
	return int(d.n.Load())
}

func (d *dimensionTracker) check(embs []domain.Embedding) error {
	for i, e := range embs {
		d.n.CompareAndSwap(0, int64(len(e)))
		if want := d.get(); len(e) != want {
			return fmt.Errorf("%w: vector %d has %d values, want %d", ErrDimensionMismatch, i, len(e), want)
		}
	}
	return nil
}

// batches parte texts en lotes consecutivos de a lo sumo size elementos.
func batches(texts []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	out := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		out = append(out, texts[start:end])
	}
	return out
}

// placeholder evita mandar strings vacios a APIs que los rechazan; el modelo igual devuelve
// un vector valido.
func placeholder(text string) string {
	if text == "" {
		return " "
	}
	return text
}
