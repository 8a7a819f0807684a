package domain

import "math"

// Nombres de los cinco rasgos Big Five, en el orden fijo que usan todos los vectores.
const (
	TraitOpenness          = "Openness"
	TraitConscientiousness = "Conscientiousness"
	TraitExtraversion      = "Extraversion"
	TraitAgreeableness     = "Agreeableness"
	TraitNeuroticism       = "Neuroticism"
)

// TraitCount es la cantidad de dimensiones que devuelve el clasificador.
const TraitCount = 5

// TraitNames devuelve los rasgos en orden fijo (Openness primero).
var TraitNames = [TraitCount]string{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

// TraitVector es el perfil Big Five inferido para un texto. Cada valor esta en [0,1]
// con dos decimales.
type TraitVector struct {
	Openness          float64 `json:"Openness"`          // Creatividad vs. Pragmatismo
	Conscientiousness float64 `json:"Conscientiousness"` // Orden vs. Caos
	Extraversion      float64 `json:"Extraversion"`      // Energia social
	Agreeableness     float64 `json:"Agreeableness"`     // Amabilidad
	Neuroticism       float64 `json:"Neuroticism"`       // Inestabilidad emocional
}

// ZeroTraits es el vector que se usa para entradas vacias o filas fallidas.
func ZeroTraits() TraitVector {
	return TraitVector{}
}

// NewTraitVector arma un vector desde puntajes en orden fijo, acotando a [0,1] y redondeando.
func NewTraitVector(scores [TraitCount]float64) TraitVector {
	var v TraitVector
	for i, s := range scores {
		v.set(i, RoundScore(clamp01(s)))
	}
	return v
}

// Scores devuelve los valores en el orden de TraitNames.
func (v TraitVector) Scores() [TraitCount]float64 {
	return [TraitCount]float64{
		v.Openness,
		v.Conscientiousness,
		v.Extraversion,
		v.Agreeableness,
		v.Neuroticism,
	}
}

// Get devuelve el puntaje de un rasgo por nombre.
func (v TraitVector) Get(trait string) (float64, bool) {
	for i, name := range TraitNames {
		if name == trait {
			return v.Scores()[i], true
		}
	}
	return 0, false
}

// IsZero indica si el vector es el de relleno (todos los rasgos en cero).
func (v TraitVector) IsZero() bool {
	return v == TraitVector{}
}

func (v *TraitVector) set(i int, score float64) {
	switch i {
	case 0:
		v.Openness = score
	case 1:
		v.Conscientiousness = score
	case 2:
		v.Extraversion = score
	case 3:
		v.Agreeableness = score
	case 4:
		v.Neuroticism = score
	}
}

// RoundScore redondea a dos decimales con la misma regla que numpy (mitad al par).
func RoundScore(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
