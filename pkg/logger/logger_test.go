package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetMode(t *testing.T) {
	t.Cleanup(func() { SetMode("release") })

	SetMode("debug")
	assert.True(t, level.Enabled(zap.DebugLevel))

	SetMode("release")
	assert.False(t, level.Enabled(zap.DebugLevel))
	assert.True(t, level.Enabled(zap.InfoLevel))
}
