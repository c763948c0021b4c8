package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
log-level: debug
http-port: "9000"
max-board-size: 20
redis:
  snapshot-ttl: 1h
engine:
  url: http://engine:4000/v1/ybot
  timeout: 500ms
  bot-modes:
    - random_bot
`), 0o600))

		// When
		conf := MustLoad(path)

		// Then
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9000", conf.HTTPPort)
		assert.Equal(t, "8004", conf.SocketPort)
		assert.Equal(t, 11, conf.DefaultBoardSize)
		assert.Equal(t, 20, conf.MaxBoardSize)
		assert.Equal(t, time.Hour, conf.Redis.SnapshotTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "http://engine:4000/v1/ybot", conf.Engine.URL)
		assert.Equal(t, 500*time.Millisecond, conf.Engine.Timeout)
		assert.Equal(t, []string{"random_bot"}, conf.Engine.BotModes)
	})

	t.Run("Falls back to the environment", func(t *testing.T) {
		t.Setenv("GAMEY_BOT_URL", "http://bot:3001/v1/ybot")

		conf := MustLoad(filepath.Join(t.TempDir(), "missing.yml"))

		assert.Equal(t, "http://bot:3001/v1/ybot", conf.Engine.URL)
		assert.Equal(t, "8003", conf.HTTPPort)
		assert.Equal(t, []string{"random_bot", "intermediate_bot"}, conf.Engine.BotModes)
		assert.Equal(t, "random_bot", conf.Engine.DefaultBotMode)
		assert.Equal(t, "gamey", conf.Mongo.Database)
	})
}

func TestEngine_HasBotMode(t *testing.T) {
	engine := Engine{BotModes: []string{"random_bot", "intermediate_bot"}}

	assert.True(t, engine.HasBotMode("intermediate_bot"))
	assert.False(t, engine.HasBotMode("expert_bot"))
	assert.False(t, engine.HasBotMode(""))
}
