package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerInitialized(t *testing.T) {
	l := GetLogger()
	require.NotNil(t, l)
	assert.Implements(t, (*Logger)(nil), l)
}

func TestNewLoggerBuildsBothEnvironments(t *testing.T) {
	for _, env := range []string{"production", "dev", ""} {
		_, err := NewLogger(env)
		require.NoError(t, err, env)
	}
}
