package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Defaults(t *testing.T) {
	cmd := newRootCmd(func(string) string { return "" })

	url, err := cmd.Flags().GetString("url")
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8888/ws", url)

	token, err := cmd.Flags().GetString("token")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRootCmd_DialFailure(t *testing.T) {
	cmd := newRootCmd(func(string) string { return "from-env" })
	cmd.SetArgs([]string{"--url", "ws://127.0.0.1:1/ws", "--dial-timeout", "500ms"})
	cmd.SilenceErrors = true

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
