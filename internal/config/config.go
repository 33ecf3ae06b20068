// internal/config/config.go
package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"` // アクセストークン (HS256) の検証キー
	SignInURL string `mapstructure:"sign_in_url"`
}

// ClientConfig はターミナルクライアント (cmd/kanji) 用の設定
type ClientConfig struct {
	APIBaseURL  string        `mapstructure:"api_base_url"`
	AccessToken string        `mapstructure:"access_token"`
	StoragePath string        `mapstructure:"storage_path"` // 設定を保存する sqlite ファイル
	Timeout     time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	CORS    CORSConfig `mapstructure:"cors"`
	Auth    AuthConfig `mapstructure:"auth"`
	Catalog struct {
		Path string `mapstructure:"path"` // 空なら埋め込みの N5 カタログを使う
	} `mapstructure:"catalog"`
	Client ClientConfig `mapstructure:"client"`
}

var Cfg Config

func LoadConfig(path string) error {
	// .env があれば先に環境変数へ読み込む (本番では存在しない想定)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	viper.Reset()
	Cfg = Config{}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, p := range ConfigSearchPaths(path) {
		viper.AddConfigPath(p)
	}

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("client.access_token", "KANJI_ACCESS_TOKEN")
	viper.BindEnv("client.api_base_url", "KANJI_API_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found in %v. Using default settings or environment variables if available.", ConfigSearchPaths(path))
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&Cfg, viper.IsSet("auth.enabled"))
	if used := viper.ConfigFileUsed(); used != "" {
		log.Printf("Config file: %s", used)
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	if Cfg.Catalog.Path != "" {
		log.Printf("Catalog Path: %s", Cfg.Catalog.Path)
	}

	return nil
}

// applyDefaults は未設定の項目にデフォルト値を入れます。
func applyDefaults(cfg *Config, authEnabledSet bool) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if !authEnabledSet {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		log.Println("Warning: auth is enabled but jwt_secret is empty; every request will be rejected.")
	}
	if cfg.Auth.SignInURL == "" {
		cfg.Auth.SignInURL = DefaultSignInURL
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	if cfg.Client.APIBaseURL == "" {
		cfg.Client.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Client.Timeout <= 0 {
		cfg.Client.Timeout = DefaultClientTimeout
	}
}

// ConfigSearchPaths は設定ファイルを探すディレクトリの順番です。
// リポジトリ直下でも cmd/ 配下で go run しても同じ configs/ を見つけられるようにする。
func ConfigSearchPaths(dir string) []string {
	if dir == "" {
		dir = DefaultConfigDir
	}
	if filepath.IsAbs(dir) {
		return []string{dir}
	}
	return []string{
		dir,
		filepath.Join("..", dir),
		filepath.Join("..", "..", dir),
		".",
	}
}
