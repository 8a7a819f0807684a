package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-insight/internal/domain"
)

const headJSON = `{
  "dimension": 2,
  "weights": [[1, 0], [0, 1], [1, 1], [-1, 0], [0, -1]],
  "bias": [0, 0, 0.5, 0, 1]
}`

func TestLinearHeadScoresEmbeddings(t *testing.T) {
	h, err := ParseLinearHead([]byte(headJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Dimension())

	logits, err := h.ScoreEmbeddings(context.Background(), []domain.Embedding{{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3, 5.5, -2, -2}}, logits)
}

func TestLinearHeadRejectsWrongDimension(t *testing.T) {
	h, err := ParseLinearHead([]byte(headJSON))
	require.NoError(t, err)

	_, err = h.ScoreEmbeddings(context.Background(), []domain.Embedding{{1, 2, 3}})
	require.Error(t, err)
}

func TestParseLinearHeadValidation(t *testing.T) {
	bad := []string{
		`{}`,
		`{"dimension":2,"weights":[[1,0]]}`,
		`{"dimension":2,"weights":[[1,0],[0,1],[1,1],[1,1],[1]]}`,
		`{"dimension":2,"weights":[[1,0],[0,1],[1,1],[1,1],[1,1]],"bias":[1]}`,
		`[`,
	}
	for _, raw := range bad {
		_, err := ParseLinearHead([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestLoadLinearHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "head.json")
	require.NoError(t, os.WriteFile(path, []byte(headJSON), 0o600))

	h, err := LoadLinearHead(path)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Dimension())

	_, err = LoadLinearHead(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestParseLinearHeadActivation(t *testing.T) {
	h, err := ParseLinearHead([]byte(headJSON))
	require.NoError(t, err)
	assert.Equal(t, ActivationIdentity, h.Activation())
	assert.Equal(t, ActivationIdentity, ActivationOf(h))

	withSigmoid := `{"dimension":1,"weights":[[1],[1],[1],[1],[1]],"activation":"sigmoid"}`
	h, err = ParseLinearHead([]byte(withSigmoid))
	require.NoError(t, err)
	assert.Equal(t, ActivationSigmoid, ActivationOf(h))

	_, err = ParseLinearHead([]byte(`{"dimension":1,"weights":[[1],[1],[1],[1],[1]],"activation":"softmax"}`))
	assert.ErrorContains(t, err, "unknown activation")
}

func TestActivationOfDefaultsToSigmoid(t *testing.T) {
	assert.Equal(t, ActivationSigmoid, ActivationOf(&HTTPClient{}))
	assert.Equal(t, ActivationSigmoid, ActivationOf(nil))
}
