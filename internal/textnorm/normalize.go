// Package textnorm limpia texto libre antes de embeberlo: minusculas, sin URLs ni simbolos,
// sin stopwords y con cada token reducido a su forma base.
package textnorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stripPattern = regexp.MustCompile(`http\S+|www\S+|[^a-z\s]`)

// Normalizer es una funcion pura; el tipo existe para poder inyectarla en servicios.
type Normalizer struct{}

// New devuelve un Normalizer listo para usar.
func New() Normalizer {
	return Normalizer{}
}

// Normalize aplica la limpieza completa. Nunca falla: la entrada rara se trata como texto literal.
func (Normalizer) Normalize(text string) string {
	return Normalize(text)
}

// NormalizeValue convierte cualquier valor a texto y lo normaliza.
func NormalizeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return Normalize(t)
	default:
		return Normalize(fmt.Sprint(t))
	}
}

// Normalize minusculiza, quita URLs y todo lo que no sea letra latina o espacio,
// elimina stopwords y lematiza.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := cases.Lower(language.English).String(text)
	lowered = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, lowered)
	cleaned := stripPattern.ReplaceAllString(lowered, "")

	tokens := strings.Fields(cleaned)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isStopword(tok) {
			continue
		}
		out = append(out, Lemmatize(tok))
	}
	return strings.Join(out, " ")
}
