package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousadiats/website/pkg/config"
)

type serverTestConfig struct {
	Port            int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Host            string        `env:"TEST_CFG_HOST" envDefault:"localhost"`
	ShutdownTimeout time.Duration `env:"TEST_CFG_SHUTDOWN" envDefault:"10s"`
}

type requiredTestConfig struct {
	Token string `env:"TEST_CFG_REQUIRED_TOKEN,required"`
}

type cachedTestConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"initial"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_CFG_REQUIRED_TOKEN", "secret-token")

	var cfg requiredTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Token)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[serverTestConfig](nil)
	require.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_CFG_CACHED", "first")

	var first cachedTestConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// Changing the environment after the first load must not change the
	// cached value; every caller observes the same configuration.
	t.Setenv("TEST_CFG_CACHED", "second")

	var second cachedTestConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestMustLoad_PanicsOnMissingRequired(t *testing.T) {
	type missingRequired struct {
		Secret string `env:"TEST_CFG_DEFINITELY_NOT_SET,required"`
	}

	assert.Panics(t, func() {
		var cfg missingRequired
		config.MustLoad(&cfg)
	})
}
