package domain

// DominantTrait es el rasgo con mayor puntaje de un vector.
type DominantTrait struct {
	Trait string  `json:"trait"`
	Score float64 `json:"score"`
}

// TraitComparison compara un rasgo entre dos fuentes.
type TraitComparison struct {
	Trait  string  `json:"trait"`
	ScoreA float64 `json:"score_a"`
	ScoreB float64 `json:"score_b"`
	Leader Source  `json:"leader"`
}

// ComparisonResult contiene los promedios de ambas plataformas y el detalle por rasgo.
type ComparisonResult struct {
	SourceA   Source            `json:"source_a"`
	SourceB   Source            `json:"source_b"`
	AverageA  TraitVector       `json:"average_a"`
	AverageB  TraitVector       `json:"average_b"`
	Traits    []TraitComparison `json:"traits"`
	DominantA DominantTrait     `json:"dominant_a"`
	DominantB DominantTrait     `json:"dominant_b"`
}

// Leader devuelve la fuente que puntua mas alto en el rasgo dado.
func (c ComparisonResult) Leader(trait string) (Source, bool) {
	for _, tc := range c.Traits {
		if tc.Trait == trait {
			return tc.Leader, true
		}
	}
	return "", false
}
