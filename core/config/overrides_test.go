package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverridesFromEnv(t *testing.T) {
	t.Setenv("APPROUTE_WATCH_DEBOUNCE", "150ms")
	t.Setenv("APPROUTE_WATCH_VCS", "false")
	t.Setenv("APPROUTE_CREATE_DEFAULT_METHOD", "post")

	cfg := Default()
	require.NoError(t, ApplyOverrides(cfg, NewViper()))

	assert.Equal(t, 150*time.Millisecond, cfg.Watch.Debounce)
	assert.False(t, cfg.Watch.VCS)
	assert.Equal(t, "POST", cfg.Create.DefaultMethod)
	assert.Equal(t, 50, cfg.Create.SampleLimit)
	assert.Equal(t, "_", cfg.PrivatePrefix)
}

func TestApplyOverridesExplicitValues(t *testing.T) {
	v := NewViper()
	v.Set(KeySampleLimit, 5)
	v.Set(KeyPrivatePrefix, "~")

	cfg := Default()
	require.NoError(t, ApplyOverrides(cfg, v))
	assert.Equal(t, 5, cfg.Create.SampleLimit)
	assert.Equal(t, "~", cfg.PrivatePrefix)
}

func TestApplyOverridesValidates(t *testing.T) {
	v := NewViper()
	v.Set(KeyDefaultMethod, "FETCH")

	err := ApplyOverrides(Default(), v)
	assert.Error(t, err)
}
