package sha256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministic(t *testing.T) {
	t.Parallel()

	h := New()
	first, err := h.Hash([]byte("<html>hello</html>"))
	require.NoError(t, err)
	second, err := h.Hash([]byte("<html>hello</html>"))
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 64)
}

func TestHashDiffersForDifferentInput(t *testing.T) {
	t.Parallel()

	h := New()
	a, err := h.Hash([]byte("a"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("b"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
