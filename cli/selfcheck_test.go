//go:build linux || darwin

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.wireline.io/wireline/config"
)

func TestSelfCheckPasses(t *testing.T) {
	cmd := SelfCheck(context.Background(), zap.NewNop(), config.New())
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.RunE(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "pipe")
	assert.Contains(t, out, "descriptor-passing")
	assert.Contains(t, out, "spawn-reap")
	assert.Contains(t, out, "syscall-bracket")
	assert.NotContains(t, out, "FAIL")
}
