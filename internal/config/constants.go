// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "PeraPera"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseDriver = "sqlite"
	DefaultDatabaseURL    = "perapera.db"
	DefaultLogLevel       = "info"
	DefaultAppReviewLimit = 0
	DefaultTimezone       = "Local"
	DefaultSeedOnStartup  = true
	DefaultSeedFile       = "data/kanji-kyouiku.json"
	DefaultSeedLimit      = 100
	DefaultAuthEnabled    = false
)
