package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer ServerConfigs    `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	File      FileConfigs      `toml:"file"`
	Notifier  NotifierConfigs  `toml:"notifier"`
	Search    SearchConfigs    `toml:"search"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// Startup connection retry policy.
	ConnectRetries int           `toml:"connect_retries"`
	ConnectBackoff time.Duration `toml:"connect_backoff"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type FileConfigs struct {
	// MaxSize is the upload limit in bytes.
	MaxSize   int64  `toml:"max_size"`
	MaxImages int    `toml:"max_images"`
	MediaDir  string `toml:"media_dir"`
	StaticURL string `toml:"static_url"`
}

type NotifierConfigs struct {
	HeartbeatInterval time.Duration `toml:"heartbeat_interval"`
	SessionBuffer     int           `toml:"session_buffer"`
}

type SearchConfigs struct {
	IndexDir string `toml:"index_dir"`
}

// Load reads the TOML config file named by CONFIG_FILE (if present) on top of
// the built-in defaults, then applies environment overrides. A .env file is
// honored in development.
func Load() (Configs, error) {
	godotenv.Load()

	cfg := defaultConfigs()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env: "dev",
		Database: DatabaseConfigs{
			Host:           "localhost",
			Port:           "3306",
			Database:       "socialboard",
			User:           "root",
			ConnectRetries: 10,
			ConnectBackoff: 3 * time.Second,
		},
		ApiServer: ServerConfigs{
			Host:         "0.0.0.0",
			Port:         "8000",
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Auth: AuthConfigs{
			TokenSecret: "your-secret-key",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 30 * time.Minute,
			},
		},
		File: FileConfigs{
			MaxSize:   5 * 1024 * 1024,
			MaxImages: 9,
			MediaDir:  "static/media",
			StaticURL: "/static",
		},
		Notifier: NotifierConfigs{
			HeartbeatInterval: 30 * time.Second,
			SessionBuffer:     16,
		},
		Search: SearchConfigs{
			IndexDir: "",
		},
	}
}

func applyEnv(cfg *Configs) {
	setIfEnv(&cfg.Env, "ENV")
	setIfEnv(&cfg.Database.Host, "DB_HOST")
	setIfEnv(&cfg.Database.Port, "DB_PORT")
	setIfEnv(&cfg.Database.Database, "DB_NAME")
	setIfEnv(&cfg.Database.User, "DB_USER")
	setIfEnv(&cfg.Database.Password, "DB_PASSWORD")
	setIfEnv(&cfg.ApiServer.Host, "HOST")
	setIfEnv(&cfg.ApiServer.Port, "PORT")
	setIfEnv(&cfg.Auth.TokenSecret, "SECRET_KEY")
	setIfEnv(&cfg.File.MediaDir, "MEDIA_DIR")
	setIfEnv(&cfg.Search.IndexDir, "SEARCH_INDEX_DIR")
}

func setIfEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
