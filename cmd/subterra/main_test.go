package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/config"
)

func TestLoadCatalogBundled(t *testing.T) {
	flagCaves = ""
	cat, err := loadCatalog(config.Default())
	require.NoError(t, err)
	assert.Positive(t, cat.LevelCount())
}

func TestLoadCatalogEmptyDir(t *testing.T) {
	flagCaves = t.TempDir()
	t.Cleanup(func() { flagCaves = "" })
	_, err := loadCatalog(config.Default())
	assert.Error(t, err)
}

func TestLoadConfigPreset(t *testing.T) {
	flagConfig = ""
	flagDifficulty = "easy"
	t.Cleanup(func() { flagDifficulty = "" })
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Session.Lives)

	flagDifficulty = "brutal"
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestRootPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"fps", "db", "log-level", "config", "difficulty", "caves"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Nil(t, flags.Lookup("seed"), "the simulation has no randomness to seed")
}
