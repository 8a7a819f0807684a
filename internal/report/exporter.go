// Package report genera el PDF de rasgos de un sujeto.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"persona-insight/internal/domain"
)

// ErrInvalidFile se devuelve cuando el nombre pedido no es un reporte del directorio.
var ErrInvalidFile = errors.New("invalid report file")

// Exporter escribe un PDF por llamada en dir. No guarda estado entre llamadas.
type Exporter struct {
	dir      string
	compress bool
}

func NewExporter(dir string) *Exporter {
	if strings.TrimSpace(dir) == "" {
		dir = "reports"
	}
	return &Exporter{dir: dir, compress: true}
}

// Dir devuelve el directorio de salida.
func (e *Exporter) Dir() string {
	return e.dir
}

// FileName arma el nombre del reporte: "{source}_report_{nombre}.pdf" con espacios y barras
// reemplazados por guion bajo.
func FileName(source domain.Source, name string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_").Replace(name)
	return fmt.Sprintf("%s_report_%s.pdf", strings.ToLower(source.String()), safe)
}

// Export genera el PDF y devuelve su ruta. Cualquier fallo es *domain.ReportError.
func (e *Exporter) Export(source domain.Source, name string, traits domain.TraitVector) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", &domain.ReportError{Name: name, Cause: fmt.Errorf("create report dir: %w", err)}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 14)

	title := fmt.Sprintf("%s Personality Report for %s", source, name)
	pdf.CellFormat(200, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	scores := traits.Scores()
	for i, trait := range domain.TraitNames {
		pdf.CellFormat(200, 10, fmt.Sprintf("%s: %.2f", trait, scores[i]), "", 1, "", false, 0, "")
	}

	path := filepath.Join(e.dir, FileName(source, name))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &domain.ReportError{Name: name, Cause: err}
	}
	return path, nil
}

// Resolve valida que file sea un PDF existente del directorio y devuelve su ruta.
func (e *Exporter) Resolve(file string) (string, error) {
	if file == "" || file != filepath.Base(file) || !strings.HasSuffix(file, ".pdf") {
		return "", ErrInvalidFile
	}
	path := filepath.Join(e.dir, file)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", file, os.ErrNotExist)
		}
		return "", fmt.Errorf("stat report: %w", err)
	}
	if info.IsDir() {
		return "", ErrInvalidFile
	}
	return path, nil
}
