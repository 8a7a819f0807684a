package textnorm

import (
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Plurales irregulares y palabras que terminan en "s" sin ser plurales.
var nounExceptions = map[string]string{
	"children":    "child",
	"women":       "woman",
	"men":         "man",
	"feet":        "foot",
	"teeth":       "tooth",
	"mice":        "mouse",
	"geese":       "goose",
	"people":      "people",
	"lives":       "life",
	"wives":       "wife",
	"knives":      "knife",
	"leaves":      "leaf",
	"wolves":      "wolf",
	"halves":      "half",
	"selves":      "self",
	"shelves":     "shelf",
	"criteria":    "criterion",
	"phenomena":   "phenomenon",
	"analyses":    "analysis",
	"theses":      "thesis",
	"crises":      "crisis",
	"hypotheses":  "hypothesis",
	"indices":     "index",
	"matrices":    "matrix",
	"vertices":    "vertex",
	"movies":      "movie",
	"cookies":     "cookie",
	"news":        "news",
	"series":      "series",
	"species":     "species",
	"physics":     "physics",
	"mathematics": "mathematics",
	"economics":   "economics",
	"politics":    "politics",
	"analytics":   "analytics",
	"kubernetes":  "kubernetes",
	"always":      "always",
	"perhaps":     "perhaps",
	"towards":     "towards",
	"sometimes":   "sometimes",
	"afterwards":  "afterwards",
	"besides":     "besides",
	"nowadays":    "nowadays",
	"whereas":     "whereas",
	"does":        "does",
	"goes":        "goes",
	"lens":        "lens",
	"canvas":      "canvas",
	"bias":        "bias",
}

// nounRules son las reglas de desprendimiento de sufijos para sustantivos, en orden.
var nounRules = []struct{ suffix, repl string }{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Dictionary responde si una palabra es una forma conocida del ingles.
type Dictionary interface {
	InDict(word string) bool
}

var (
	defaultDictOnce sync.Once
	defaultDict     Dictionary
)

// englishDictionary carga una sola vez el diccionario ingles de golem. Si no carga, los
// tokens solo pasan por la tabla de excepciones.
func englishDictionary() Dictionary {
	defaultDictOnce.Do(func() {
		lem, err := golem.New(en.New())
		if err == nil {
			defaultDict = lem
		}
	})
	return defaultDict
}

// Lemmatize reduce un token a su forma base como sustantivo usando el diccionario ingles.
func Lemmatize(tok string) string {
	return LemmatizeWith(englishDictionary(), tok)
}

// LemmatizeWith aplica las reglas de sufijo y se queda con el candidato mas corto que exista
// en dict. Si ninguno existe el token vuelve sin cambios.
func LemmatizeWith(dict Dictionary, tok string) string {
	if base, ok := nounExceptions[tok]; ok {
		return base
	}
	if dict == nil || len(tok) <= 3 {
		return tok
	}
	if strings.HasSuffix(tok, "ss") || strings.HasSuffix(tok, "us") || strings.HasSuffix(tok, "is") {
		return tok
	}

	best := ""
	for _, rule := range nounRules {
		if !strings.HasSuffix(tok, rule.suffix) {
			continue
		}
		cand := strings.TrimSuffix(tok, rule.suffix) + rule.repl
		if len(cand) < 2 || !dict.InDict(cand) {
			continue
		}
		if best == "" || len(cand) < len(best) {
			best = cand
		}
	}
	if best == "" {
		return tok
	}
	return best
}
