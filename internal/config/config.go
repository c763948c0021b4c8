package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel         string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort         string `yaml:"http-port" env:"PORT" env-default:"8003"`
	SocketPort       string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8004"`
	DefaultBoardSize int    `yaml:"default-board-size" env:"DEFAULT_BOARD_SIZE" env-default:"11"`
	MaxBoardSize     int    `yaml:"max-board-size" env:"MAX_BOARD_SIZE" env-default:"32"`
	Redis            Redis  `yaml:"redis"`
	Mongo            Mongo  `yaml:"mongo"`
	Engine           Engine `yaml:"engine"`
}

type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"24h"`
}

type Mongo struct {
	URI        string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database   string `yaml:"database" env:"MONGO_DATABASE" env-default:"gamey"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION" env-default:"matches"`
}

type Engine struct {
	URL            string        `yaml:"url" env:"GAMEY_BOT_URL" env-default:"http://localhost:3001/v1/ybot"`
	Timeout        time.Duration `yaml:"timeout" env:"ENGINE_TIMEOUT" env-default:"3s"`
	ThinkDelay     time.Duration `yaml:"think-delay" env:"ENGINE_THINK_DELAY" env-default:"300ms"`
	BotModes       []string      `yaml:"bot-modes" env:"ENGINE_BOT_MODES" env-default:"random_bot,intermediate_bot"`
	DefaultBotMode string        `yaml:"default-bot-mode" env:"ENGINE_DEFAULT_BOT_MODE" env-default:"random_bot"`
}

// MustLoad - load configuration from the yml file at path, falling back to the environment when the file is absent.
func MustLoad(path string) *Config {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// HasBotMode reports whether mode is one of the configured engine modes.
func (that *Engine) HasBotMode(mode string) bool {
	for _, m := range that.BotModes {
		if m == mode {
			return true
		}
	}

	return false
}
