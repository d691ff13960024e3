package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config はサーバーの設定。環境変数から読み込む。
type Config struct {
	Addr   string `env:"ADDR" envDefault:"localhost"`
	Port   int    `env:"PORT" envDefault:"9090"`
	RoomID string `env:"ROOM_ID" envDefault:"default"`
	// TickRate はシミュレーションの更新頻度 (Hz)
	TickRate int `env:"TICK_RATE" envDefault:"30"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ScriptDir   string `env:"SCRIPT_DIR" envDefault:"scripts"`
	ItemCatalog string `env:"ITEM_CATALOG"`
	NavGrid     string `env:"NAV_GRID"`
	// NAV_GRIDがない場合のマップの大きさ
	MapWidth  float32 `env:"MAP_WIDTH" envDefault:"1000"`
	MapHeight float32 `env:"MAP_HEIGHT" envDefault:"1000"`

	ChampionModel   string  `env:"CHAMPION_MODEL" envDefault:"Ezreal"`
	MaxPlayers      int     `env:"MAX_PLAYERS" envDefault:"10"`
	MoveSpeed       float32 `env:"MOVE_SPEED" envDefault:"325"`
	GoldClampAtZero bool    `env:"GOLD_CLAMP_AT_ZERO" envDefault:"false"`

	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"5s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"30s"`

	// OTelEndpoint が空ならトレースは出力しない
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("parse env: TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	return &cfg, nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Logger はLOG_LEVELとLOG_FORMATに従ったロガーを返す
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
