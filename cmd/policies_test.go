package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoliciesCommandListsCatalog(t *testing.T) {
	t.Parallel()

	cmd := newPoliciesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.RunE(cmd, nil))

	text := out.String()
	require.Contains(t, text, "default")
	require.Contains(t, text, "oMrS")
	require.Contains(t, text, "reprocessAndUpdate")
	require.Contains(t, text, "omrD")
	require.Contains(t, text, "deepDeep")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["serve"])
	require.True(t, names["crawl"])
	require.True(t, names["feed"])
	require.True(t, names["policies"])
}
