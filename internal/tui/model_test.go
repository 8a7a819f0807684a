package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"persona-insight/internal/domain"
)

type mockAnalyzer struct {
	traits     domain.TraitVector
	err        error
	lastSource domain.Source
	lastText   string
	exported   string
}

func (m *mockAnalyzer) AnalyzeText(ctx context.Context, source domain.Source, text string) (domain.TraitVector, error) {
	m.lastSource = source
	m.lastText = text
	if strings.TrimSpace(text) == "" {
		return domain.ZeroTraits(), domain.ErrEmptyInput
	}
	return m.traits, m.err
}

func (m *mockAnalyzer) ExportReport(ctx context.Context, source domain.Source, name string, traits domain.TraitVector) (string, error) {
	m.exported = name
	return "reports/" + strings.ToLower(source.String()) + "_report.pdf", nil
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(Model)
}

func TestAnalyzeOnEnter(t *testing.T) {
	analyzer := &mockAnalyzer{traits: domain.TraitVector{Openness: 0.9, Conscientiousness: 0.4}}
	m := New(context.Background(), analyzer, domain.SourceLinkedIn, "")

	m = typeText(m, "curious builder")
	m = press(m, tea.KeyEnter)

	if !m.analyzed || m.traits != analyzer.traits {
		t.Fatalf("expected traits to be stored, got %+v", m.traits)
	}
	if analyzer.lastText != "curious builder" || analyzer.lastSource != domain.SourceLinkedIn {
		t.Fatalf("unexpected call: %q %s", analyzer.lastText, analyzer.lastSource)
	}
	view := m.View()
	for _, want := range []string{"Openness", "Neuroticism", "0.90", "Dominant trait: Openness"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyInputWarns(t *testing.T) {
	m := New(context.Background(), &mockAnalyzer{}, domain.SourceGitHub, "")
	m = press(m, tea.KeyEnter)

	if m.analyzed {
		t.Fatalf("expected no result for empty input")
	}
	if m.status != "Please enter some content." {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAnalyzeErrorShown(t *testing.T) {
	m := New(context.Background(), &mockAnalyzer{err: errors.New("model down")}, domain.SourceGitHub, "")
	m = typeText(m, "hello")
	m = press(m, tea.KeyEnter)

	if !strings.Contains(m.status, "model down") {
		t.Fatalf("expected error in status, got %q", m.status)
	}
}

func TestTabTogglesSource(t *testing.T) {
	m := New(context.Background(), &mockAnalyzer{}, domain.SourceLinkedIn, "")
	m = press(m, tea.KeyTab)
	if m.source != domain.SourceGitHub {
		t.Fatalf("expected GitHub, got %s", m.source)
	}
	m = press(m, tea.KeyTab)
	if m.source != domain.SourceLinkedIn {
		t.Fatalf("expected LinkedIn, got %s", m.source)
	}
}

func TestExportRequiresAnalysis(t *testing.T) {
	analyzer := &mockAnalyzer{traits: domain.TraitVector{Openness: 0.5}}
	m := New(context.Background(), analyzer, domain.SourceGitHub, "octocat")

	m = press(m, tea.KeyCtrlR)
	if analyzer.exported != "" {
		t.Fatalf("expected no export before analysis")
	}

	m = typeText(m, "ships code")
	m = press(m, tea.KeyEnter)
	m = press(m, tea.KeyCtrlR)
	if analyzer.exported != "octocat" {
		t.Fatalf("expected export for octocat, got %q", analyzer.exported)
	}
	if !strings.HasPrefix(m.status, "Report saved to ") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestBar(t *testing.T) {
	if got := strings.Count(Bar(0, 10), "░"); got != 10 {
		t.Fatalf("expected empty bar, got %d empty cells", got)
	}
	if got := strings.Count(Bar(1, 10), "░"); got != 0 {
		t.Fatalf("expected full bar, got %d empty cells", got)
	}
	if got := strings.Count(Bar(0.5, 10), "░"); got != 5 {
		t.Fatalf("expected half bar, got %d empty cells", got)
	}
	if Bar(0.5, 0) != "" {
		t.Fatalf("expected empty string for zero width")
	}
}
