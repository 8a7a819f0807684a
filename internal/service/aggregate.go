package service

import "persona-insight/internal/domain"

// Average promedia cada rasgo sobre todo el batch. Los vectores cero cuentan para la media.
func Average(batch domain.BatchResult) domain.TraitVector {
	return AverageTraits(batch.Traits())
}

// AverageTraits es Average sobre una lista de vectores; una lista vacia da el vector cero.
func AverageTraits(vectors []domain.TraitVector) domain.TraitVector {
	if len(vectors) == 0 {
		return domain.ZeroTraits()
	}
	var sums [domain.TraitCount]float64
	for _, v := range vectors {
		for i, s := range v.Scores() {
			sums[i] += s
		}
	}
	n := float64(len(vectors))
	for i := range sums {
		sums[i] /= n
	}
	return domain.NewTraitVector(sums)
}

// Compare arma la comparacion rasgo por rasgo. En empate gana la fuente A (>=).
func Compare(a, b domain.TraitVector, sourceA, sourceB domain.Source) domain.ComparisonResult {
	scoresA, scoresB := a.Scores(), b.Scores()
	traits := make([]domain.TraitComparison, domain.TraitCount)
	for i, name := range domain.TraitNames {
		leader := sourceA
		if scoresB[i] > scoresA[i] {
			leader = sourceB
		}
		traits[i] = domain.TraitComparison{
			Trait:  name,
			ScoreA: scoresA[i],
			ScoreB: scoresB[i],
			Leader: leader,
		}
	}
	return domain.ComparisonResult{
		SourceA:   sourceA,
		SourceB:   sourceB,
		AverageA:  a,
		AverageB:  b,
		Traits:    traits,
		DominantA: Dominant(a),
		DominantB: Dominant(b),
	}
}

// Dominant devuelve el rasgo de mayor puntaje; en empate gana el primero en orden fijo.
func Dominant(v domain.TraitVector) domain.DominantTrait {
	scores := v.Scores()
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return domain.DominantTrait{Trait: domain.TraitNames[best], Score: scores[best]}
}
