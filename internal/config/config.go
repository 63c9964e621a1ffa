package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// GameConfig - параметры генерации и сессии
type GameConfig struct {
	// Seed - мастер-зерно. 0 = взять от текущего времени.
	Seed        int64 `toml:"seed"`
	MapWidth    int   `toml:"map_width"`
	MapHeight   int   `toml:"map_height"`
	MaxRooms    int   `toml:"max_rooms"`
	RoomMinSize int   `toml:"room_min_size"`
	RoomMaxSize int   `toml:"room_max_size"`
	MaxSpawns   int   `toml:"max_spawns"` // плюс глубина уровня
	StartDepth  int   `toml:"start_depth"`
}

type StorageConfig struct {
	SavePath string `toml:"save_path"`
}

type ServerConfig struct {
	BindAddress  string        `toml:"bind_address"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	PongWait     time.Duration `toml:"pong_wait"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "text"
}

// Load читает TOML поверх значений по умолчанию.
// Отсутствующий файл - не ошибка: возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate отсекает значения, с которыми генератор не построит карту.
func (c *Config) Validate() error {
	g := c.Game
	if g.MapWidth < 3 || g.MapHeight < 3 {
		return fmt.Errorf("map size %dx%d is too small", g.MapWidth, g.MapHeight)
	}
	if g.RoomMinSize < 1 || g.RoomMaxSize < g.RoomMinSize {
		return fmt.Errorf("invalid room size range %d..%d", g.RoomMinSize, g.RoomMaxSize)
	}
	if g.RoomMaxSize+2 >= g.MapWidth || g.RoomMaxSize+2 >= g.MapHeight {
		return fmt.Errorf("room size %d does not fit map %dx%d", g.RoomMaxSize, g.MapWidth, g.MapHeight)
	}
	if g.MaxRooms < 1 {
		return fmt.Errorf("max_rooms must be positive")
	}
	if g.StartDepth < 1 {
		return fmt.Errorf("start_depth must be >= 1")
	}
	if c.Storage.SavePath == "" {
		return fmt.Errorf("storage.save_path is empty")
	}
	return nil
}

// Default возвращает конфиг по умолчанию (карта 80x43, до 30 комнат).
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Seed:        0,
			MapWidth:    80,
			MapHeight:   43,
			MaxRooms:    30,
			RoomMinSize: 6,
			RoomMaxSize: 10,
			MaxSpawns:   4,
			StartDepth:  1,
		},
		Storage: StorageConfig{
			SavePath: "./savegame.dat",
		},
		Server: ServerConfig{
			BindAddress:  ":8080",
			WriteTimeout: 10 * time.Second,
			PongWait:     60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// MasterSeed возвращает зерно; 0 заменяется на текущее время.
func (g GameConfig) MasterSeed() int64 {
	if g.Seed != 0 {
		return g.Seed
	}
	return time.Now().UnixNano()
}
