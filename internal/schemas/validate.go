// Package schemas valida documentos JSON contra los esquemas embebidos del servicio.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed trait_vector.schema.json
var traitVectorSchema string

// ValidationError lista los campos que no cumplen el esquema.
type ValidationError struct {
	Errors []FieldError
}

// FieldError es un error de validacion en un campo puntual.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// TraitVectorSchema devuelve el esquema JSON de un TraitVector.
func TraitVectorSchema() string {
	return traitVectorSchema
}

// ValidateTraits valida un TraitVector serializado: cinco claves, valores en [0,1] con
// dos decimales y nada mas.
func ValidateTraits(raw []byte) error {
	return validate(traitVectorSchema, raw)
}

func validate(schema string, raw []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate json: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
