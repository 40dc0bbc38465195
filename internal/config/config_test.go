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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("正常系: 設定ファイルなしでデフォルト値", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
		assert.Equal(t, 0, cfg.App.ReviewLimit)
		assert.Equal(t, DefaultSeedLimit, cfg.App.SeedLimit)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.Auth.Enabled)
	})

	t.Run("正常系: YAMLの値を読み込む", func(t *testing.T) {
		dir := writeConfig(t, `
server:
  port: ":9090"
database:
  driver: "Postgres"
  url: "postgres://u:p@db:5432/perapera"
app:
  review_limit: 30
  timezone: "Asia/Tokyo"
`)
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 30, cfg.App.ReviewLimit)
		assert.Equal(t, "Asia/Tokyo", cfg.Location().String())
	})

	t.Run("正常系: 環境変数が優先される", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  port: \":9090\"\n")
		t.Setenv("APP_SERVER_PORT", ":7070")
		t.Setenv("APP_APP_REVIEW_LIMIT", "5")
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.Server.Port)
		assert.Equal(t, 5, cfg.App.ReviewLimit)
	})

	t.Run("正常系: 負の復習上限は無制限扱い", func(t *testing.T) {
		dir := writeConfig(t, "app:\n  review_limit: -3\n")
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.App.ReviewLimit)
	})

	t.Run("異常系: 未対応のドライバ", func(t *testing.T) {
		dir := writeConfig(t, "database:\n  driver: \"mysql\"\n")
		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("異常系: 存在しないタイムゾーン", func(t *testing.T) {
		dir := writeConfig(t, "app:\n  timezone: \"Asia/Tokio\"\n")
		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Asia/Tokio")
	})

	t.Run("正常系: Local は大文字小文字を問わない", func(t *testing.T) {
		dir := writeConfig(t, "app:\n  timezone: \"LOCAL\"\n")
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, time.Local, cfg.Location())
	})

	t.Run("異常系: 認証有効なのにシークレットなし", func(t *testing.T) {
		dir := writeConfig(t, "auth:\n  enabled: true\n")
		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, (&Config{}).Location())
	assert.Equal(t, time.Local, (&Config{App: AppConfig{Timezone: "Not/AZone"}}).Location())
	assert.Equal(t, "UTC", (&Config{App: AppConfig{Timezone: "UTC"}}).Location().String())
}
