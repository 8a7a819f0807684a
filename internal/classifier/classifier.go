// Package classifier expone los modelos de rasgos como servicios que devuelven logits crudos,
// cinco por entrada, en el orden de domain.TraitNames.
package classifier

import (
	"context"
	"errors"

	"persona-insight/internal/domain"
)

// ErrUnsupported se devuelve cuando un backend no soporta el tipo de entrada pedido.
var ErrUnsupported = errors.New("classifier input not supported")

// TextScorer puntua texto normalizado; la tokenizacion ocurre del lado del modelo.
type TextScorer interface {
	ScoreText(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingScorer puntua embeddings ya calculados.
type EmbeddingScorer interface {
	ScoreEmbeddings(ctx context.Context, embs []domain.Embedding) ([][]float64, error)
}

// Activation indica como pasar la salida cruda de un backend a un puntaje en [0,1].
type Activation string

const (
	// ActivationSigmoid: la salida son logits, se aplica sigmoid por rasgo.
	ActivationSigmoid Activation = "sigmoid"
	// ActivationIdentity: la salida ya es un puntaje (cabeza de regresion); solo se recorta a [0,1].
	ActivationIdentity Activation = "identity"
)

// Activated lo implementan los backends que no devuelven logits.
type Activated interface {
	Activation() Activation
}

// ActivationOf devuelve la activacion declarada por el backend, o sigmoid si no declara ninguna.
func ActivationOf(backend any) Activation {
	if a, ok := backend.(Activated); ok && a.Activation() != "" {
		return a.Activation()
	}
	return ActivationSigmoid
}
