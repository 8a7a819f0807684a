package domain

import (
	"fmt"
	"strings"
)

// Source identifica la plataforma de donde proviene el texto.
type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceGitHub   Source = "GitHub"
)

// ParseSource acepta el nombre de la plataforma sin importar mayusculas.
func ParseSource(raw string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "linkedin":
		return SourceLinkedIn, nil
	case "github":
		return SourceGitHub, nil
	default:
		return "", fmt.Errorf("unknown source %q", raw)
	}
}

func (s Source) String() string {
	return string(s)
}
