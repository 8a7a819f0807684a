package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"persona-insight/internal/domain"
)

// LoadColumnPolicy lee la politica de columnas desde un YAML. Sin archivo se usan los
// valores por defecto; las listas ausentes en el archivo tambien.
func LoadColumnPolicy(path string) (domain.ColumnPolicy, error) {
	if strings.TrimSpace(path) == "" {
		return domain.DefaultColumnPolicy(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ColumnPolicy{}, fmt.Errorf("read column policy: %w", err)
	}
	return ParseColumnPolicy(raw)
}

// ParseColumnPolicy decodifica el YAML y rechaza claves desconocidas.
func ParseColumnPolicy(raw []byte) (domain.ColumnPolicy, error) {
	var policy domain.ColumnPolicy
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil && !errors.Is(err, io.EOF) {
		return domain.ColumnPolicy{}, fmt.Errorf("parse column policy: %w", err)
	}
	return policy.WithDefaults(), nil
}
