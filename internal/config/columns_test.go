package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-insight/internal/domain"
)

func TestLoadColumnPolicyDefaults(t *testing.T) {
	policy, err := LoadColumnPolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultColumnPolicy(), policy)
}

func TestLoadColumnPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	content := "github:\n  - README\n  - Description\ncompare_github:\n  - Latest Commit\n  - README\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	policy, err := LoadColumnPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"README", "Description"}, policy.Analysis(domain.SourceGitHub))
	assert.Equal(t, []string{"Latest Commit", "README"}, policy.Comparison(domain.SourceGitHub))
	assert.Equal(t, domain.DefaultColumnPolicy().LinkedIn, policy.Analysis(domain.SourceLinkedIn))
}

func TestParseColumnPolicyEmptyDocument(t *testing.T) {
	policy, err := ParseColumnPolicy(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultColumnPolicy(), policy)
}

func TestParseColumnPolicyRejectsUnknownKeys(t *testing.T) {
	_, err := ParseColumnPolicy([]byte("twitter:\n  - bio\n"))
	assert.Error(t, err)
}

func TestLoadColumnPolicyMissingFile(t *testing.T) {
	_, err := LoadColumnPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
