// Package tui implementa el shell interactivo: texto pegado a mano, barras por rasgo y
// exportacion del reporte.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"persona-insight/internal/domain"
	"persona-insight/internal/service"
)

// AnalyzerPort es el subconjunto de AnalysisService que usa el shell.
type AnalyzerPort interface {
	AnalyzeText(ctx context.Context, source domain.Source, text string) (domain.TraitVector, error)
	ExportReport(ctx context.Context, source domain.Source, name string, traits domain.TraitVector) (string, error)
}

const barWidth = 30

// Model es el modelo Bubble Tea del shell.
type Model struct {
	ctx      context.Context
	analyzer AnalyzerPort
	input    textinput.Model
	source   domain.Source
	name     string
	traits   domain.TraitVector
	analyzed bool
	status   string
}

// New crea el shell. name es el nombre usado en el titulo del reporte.
func New(ctx context.Context, analyzer AnalyzerPort, source domain.Source, name string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Paste profile text and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	if source == "" {
		source = domain.SourceLinkedIn
	}
	if strings.TrimSpace(name) == "" {
		name = "Manual Input"
	}
	return Model{
		ctx:      ctx,
		analyzer: analyzer,
		input:    ti,
		source:   source,
		name:     name,
		status:   "tab: switch source  enter: analyze  ctrl+r: export report  esc: quit",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.source = toggle(m.source)
			m.status = "Source: " + m.source.String()
			return m, nil
		case tea.KeyEnter:
			m.analyze()
			return m, nil
		case tea.KeyCtrlR:
			m.export()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) analyze() {
	traits, err := m.analyzer.AnalyzeText(m.ctx, m.source, m.input.Value())
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		m.status = "Please enter some content."
	case err != nil:
		m.status = "Error: " + err.Error()
	default:
		m.traits = traits
		m.analyzed = true
		m.status = fmt.Sprintf("Analyzed %s text.", m.source)
	}
}

func (m *Model) export() {
	if !m.analyzed {
		m.status = "Analyze some text before exporting."
		return
	}
	path, err := m.analyzer.ExportReport(m.ctx, m.source, m.name, m.traits)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = "Report saved to " + path
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s Personality Analysis", m.source)))
	b.WriteString("\n\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.analyzed {
		b.WriteString(resultBoxStyle.Render(renderTraits(m.traits)))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func renderTraits(v domain.TraitVector) string {
	lines := make([]string, 0, domain.TraitCount+2)
	scores := v.Scores()
	for i, name := range domain.TraitNames {
		lines = append(lines, fmt.Sprintf("%-18s %s %.2f", name, Bar(scores[i], barWidth), scores[i]))
	}
	dom := service.Dominant(v)
	lines = append(lines, "", highlightStyle.Render(fmt.Sprintf("Dominant trait: %s (%.2f)", dom.Trait, dom.Score)))
	return strings.Join(lines, "\n")
}

// Bar dibuja score en [0,1] como una barra de width celdas.
func Bar(score float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(score * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func toggle(s domain.Source) domain.Source {
	if s == domain.SourceLinkedIn {
		return domain.SourceGitHub
	}
	return domain.SourceLinkedIn
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
