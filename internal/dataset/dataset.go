// Package dataset convierte los CSV exportados de LinkedIn y GitHub en registros, validando
// las columnas requeridas antes de procesar cualquier fila.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"persona-insight/internal/domain"
)

// nullMarkers son los valores que pandas interpreta como celda nula al leer un CSV.
var nullMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {},
	"-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {},
	"NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// RequiredColumns devuelve las columnas obligatorias del CSV de cada fuente.
func RequiredColumns(source domain.Source) []string {
	if source == domain.SourceGitHub {
		return domain.GitHubColumns
	}
	return domain.LinkedInColumns
}

// Read lee un CSV completo de la fuente indicada.
func Read(r io.Reader, source domain.Source) ([]domain.Record, error) {
	return ReadWithColumns(r, source, RequiredColumns(source))
}

// ReadCommits lee el CSV de GitHub del modo comparacion, donde solo se exige "Latest Commit".
func ReadCommits(r io.Reader) ([]domain.Record, error) {
	return ReadWithColumns(r, domain.SourceGitHub, []string{domain.GitHubLatestCommitColumn})
}

// ReadWithColumns valida el encabezado contra required y arma un Record por fila.
// Si falta alguna columna devuelve *domain.SchemaError y no procesa ninguna fila.
func ReadWithColumns(r io.Reader, source domain.Source, required []string) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Source: source, Missing: append([]string(nil), required...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if missing := missingColumns(header, required); len(missing) > 0 {
		return nil, &domain.SchemaError{Source: source, Missing: missing}
	}

	var records []domain.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		records = append(records, buildRecord(header, row, source))
	}
	return records, nil
}

// Keys devuelve los identificadores unicos (nombre en LinkedIn, username en GitHub) en orden.
func Keys(records []domain.Record) []string {
	seen := make(map[string]struct{}, len(records))
	var keys []string
	for _, r := range records {
		k := Key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Key es el identificador de seleccion de un registro.
func Key(r domain.Record) string {
	if r.Source == domain.SourceGitHub {
		return r.Username
	}
	return r.Name
}

// Find devuelve el primer registro cuyo identificador coincide con key.
func Find(records []domain.Record, key string) (domain.Record, bool) {
	for _, r := range records {
		if Key(r) == key {
			return r, true
		}
	}
	return domain.Record{}, false
}

func missingColumns(header, required []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func buildRecord(header, row []string, source domain.Source) domain.Record {
	fields := make(map[string]string, len(header))
	for i, col := range header {
		if i >= len(row) || isNull(row[i]) {
			continue
		}
		if _, dup := fields[col]; dup {
			continue
		}
		fields[col] = row[i]
	}

	rec := domain.Record{Source: source, Fields: fields}
	if source == domain.SourceGitHub {
		rec.Username = fields[domain.GitHubUsernameColumn]
		rec.Name = fields[domain.GitHubNameColumn]
	} else {
		rec.Name = fields[domain.LinkedInNameColumn]
	}
	return rec
}

func isNull(cell string) bool {
	_, ok := nullMarkers[cell]
	return ok
}
