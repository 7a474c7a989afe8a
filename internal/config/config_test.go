package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToEmptyProvider(t *testing.T) {
	provider, err := Load(Env("no-such-env"))
	require.NoError(t, err)
	require.NotNil(t, provider)
}

func TestMustLoadAppliesDefaultsWithoutAFile(t *testing.T) {
	cfg := MustLoad(Env("no-such-env"))
	assert.Equal(t, defaultBlockSize, cfg.HashBlockSize)
	assert.Equal(t, defaultLoadFactor, cfg.HashLoadFactor)
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestResolveWithDefaultsOnEmptyProvider(t *testing.T) {
	provider, err := Load(Env("no-such-env"))
	require.NoError(t, err)

	cfg := Resolve(provider)
	assert.Equal(t, defaultBlockSize, cfg.HashBlockSize)
	assert.Equal(t, defaultLoadFactor, cfg.HashLoadFactor)
}
