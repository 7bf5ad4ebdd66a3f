package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  address: \":9000\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "config/cards.yaml", cfg.Content.Path)
	assert.Equal(t, int64(1), cfg.Game.Seed)
	assert.Equal(t, 60, cfg.Game.MaxTurns)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":7777"
  shutdown_timeout: 5s
database:
  url: postgres://localhost/ember
logging:
  level: debug
  format: json
content:
  path: /srv/cards.yaml
game:
  seed: 42
  max_turns: 30
  players:
    - name: Alice
      hero: HERO_VALEERA
      deck: [WISP, RAPTOR]
    - name: Bob
      hero: HERO_GARROSH
      deck: [WISP]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres://localhost/ember", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	require.Len(t, cfg.Game.Players, 2)
	assert.Equal(t, []string{"WISP", "RAPTOR"}, cfg.Game.Players[0].Deck)
}

func TestLoadRejectsBadPlayers(t *testing.T) {
	path := writeConfig(t, `
game:
  players:
    - name: Alice
      hero: HERO
    - name: alice
      hero: HERO
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "duplicate player name")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EMBER_SERVER_ADDRESS", ":1234")
	path := writeConfig(t, "logging:\n  level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":1234", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
