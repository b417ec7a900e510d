package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureScheme(t *testing.T) {
	cases := map[string]string{
		"acme.example":           "https://acme.example",
		"http://acme.example":    "http://acme.example",
		"https://acme.example/x": "https://acme.example/x",
	}
	for in, want := range cases {
		assert.Equal(t, want, ensureScheme(in))
	}
}

func TestNewRunCmdFlags(t *testing.T) {
	cmd := newRunCmd()

	for _, name := range []string{"profile", "screenshot-dir", "headless", "timeout", "concurrency"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}

	concurrency, err := cmd.Flags().GetInt("concurrency")
	require.NoError(t, err)
	assert.Equal(t, 1, concurrency)
}

func TestRunCmdRequiresTargets(t *testing.T) {
	cmd := newRunCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"https://acme.example"}))
}
