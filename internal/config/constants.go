// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "kanji_keep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort    = ":8080"
	DefaultLogLevel      = "info"
	DefaultSignInURL     = "/auth"
	DefaultAPIBaseURL    = "http://localhost:8080/api/v1"
	DefaultClientTimeout = 10 * time.Second
	DefaultStorageFile   = "kanji_keep.db"
	DefaultConfigDir     = "configs" // リポジトリ直下からの相対パス
)
