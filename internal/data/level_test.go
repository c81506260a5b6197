package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLevels(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const twoLevels = `
levels:
  - name: outskirts
    background: sky
    enemy: {cap: 3, max_burst: 2, probability: 0.2, speed: 6}
    coin: {cap: 2, max_burst: 1, probability: 0.1}
    win:
      - {kind: kills, value: 10}
  - name: fortress
    player_fuel: 100
    fuel_drain_every: 10
    boss: {after_kills: 5, health: 20, fire_probability: 0.1}
    win:
      - {kind: boss_defeated}
    lose:
      - {kind: player_destroyed}
      - {kind: fuel_exhausted}
`

func TestLoadLevelTable(t *testing.T) {
	tbl, err := LoadLevelTable(writeLevels(t, twoLevels))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())

	first, err := tbl.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "outskirts", first.Name)
	assert.Equal(t, 3, first.Enemy.Cap)
	assert.Equal(t, 0.2, first.Enemy.Probability)
	require.Len(t, first.Win, 1)
	assert.Equal(t, 10, first.Win[0].Value)

	second, err := tbl.Get(1)
	require.NoError(t, err)
	require.NotNil(t, second.Boss)
	assert.Equal(t, 20, second.Boss.Health)
	assert.Len(t, second.Lose, 2)
}

func TestLevelTableOutOfBounds(t *testing.T) {
	tbl, err := LoadLevelTable(writeLevels(t, twoLevels))
	require.NoError(t, err)

	_, err = tbl.Get(2)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = tbl.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestLoadLevelTableInvalid(t *testing.T) {
	_, err := LoadLevelTable(writeLevels(t, `
levels:
  - name: a
    enemy: {probability: 1.5}
  - name: a
    win:
      - {kind: teleport}
`))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "enemy.probability")
	assert.Contains(t, msg, "duplicate name")
	assert.Contains(t, msg, "teleport")
}

func TestLoadLevelTableEmpty(t *testing.T) {
	_, err := LoadLevelTable(writeLevels(t, "levels: []\n"))
	assert.Error(t, err)
}
