package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"persona-insight/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traits.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadTraitsValid(t *testing.T) {
	path := writeFile(t, `{"Openness":0.73,"Conscientiousness":0.5,"Extraversion":0.27,"Agreeableness":0.88,"Neuroticism":0.12}`)

	traits, err := readTraits(path)
	require.NoError(t, err)
	assert.Equal(t, 0.73, traits.Openness)
	assert.Equal(t, 0.12, traits.Neuroticism)
}

func TestReadTraitsRejectsSchemaViolations(t *testing.T) {
	path := writeFile(t, `{"Openness":1.5,"Conscientiousness":0.5,"Extraversion":0.27,"Agreeableness":0.88}`)

	_, err := readTraits(path)
	assert.ErrorContains(t, err, "invalid traits file")
}

func TestReadTraitsMissingFile(t *testing.T) {
	_, err := readTraits(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "traitctl version: unknown\n", out.String())
}

func TestMaybeReportOnlyWhenFlagged(t *testing.T) {
	calls := 0
	export := func(_ context.Context, source domain.Source, name string, _ domain.TraitVector) (string, error) {
		calls++
		assert.Equal(t, domain.SourceLinkedIn, source)
		assert.Equal(t, "Ada", name)
		return "reports/Ada_LinkedIn_Report.pdf", nil
	}

	cmd := &cobra.Command{}
	cmd.Flags().Bool("report", false, "")
	cmd.SetContext(context.Background())

	require.NoError(t, maybeReport(cmd, zap.NewNop(), export, domain.SourceLinkedIn, "Ada", domain.ZeroTraits()))
	assert.Equal(t, 0, calls)

	require.NoError(t, cmd.Flags().Set("report", "true"))
	require.NoError(t, maybeReport(cmd, zap.NewNop(), export, domain.SourceLinkedIn, "Ada", domain.ZeroTraits()))
	assert.Equal(t, 1, calls)
}

func TestSelectKeyEmpty(t *testing.T) {
	_, err := selectKey(nil, domain.SourceLinkedIn)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
