package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Site   SiteConfig   `yaml:"site" toml:"site"`
	Admin  AdminConfig  `yaml:"admin" toml:"admin"`
}

// ServerConfig は静的ファイルサーバーの設定
type ServerConfig struct {
	Host    string `yaml:"host" toml:"host"`                                  // リッスンするホスト
	Port    int    `yaml:"port" toml:"port" validate:"min=1,max=65535"`       // リッスンするポート番号
	Workers int    `yaml:"workers" toml:"workers" validate:"min=1,max=65536"` // 接続を処理するワーカー数

	// タイムアウト設定（0 は無効）
	ReadTimeout  Duration `yaml:"read_timeout" toml:"read_timeout"`   // 読み込みタイムアウト
	WriteTimeout Duration `yaml:"write_timeout" toml:"write_timeout"` // 書き込みタイムアウト

	MaxHeaderBytes int  `yaml:"max_header_bytes" toml:"max_header_bytes" validate:"min=0"` // ヘッダ部の上限（0 は無制限）
	ReusePort      bool `yaml:"reuse_port" toml:"reuse_port"`                              // SO_REUSEPORT を設定する
}

// SiteConfig は配信するディレクトリの設定
type SiteConfig struct {
	Root         string `yaml:"root" toml:"root" validate:"omitempty,dir"`              // 配信するルートディレクトリ
	MimeTable    string `yaml:"mime_table" toml:"mime_table" validate:"omitempty,file"` // MIMEテーブルのファイル（空なら組み込み）
	DefaultType  string `yaml:"default_type" toml:"default_type"`                       // 解決できない場合のMIMEタイプ
	SniffUnknown bool   `yaml:"sniff_unknown" toml:"sniff_unknown"`                     // 未知の拡張子は内容から推定する
}

// AdminConfig は管理用HTTP APIの設定
type AdminConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Host    string `yaml:"host" toml:"host"`
	Port    int    `yaml:"port" toml:"port" validate:"min=1,max=65535"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Workers:        4,
			MaxHeaderBytes: 64 * 1024,
		},
		Site: SiteConfig{
			DefaultType: "application/octet-stream",
		},
		Admin: AdminConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    8081,
		},
	}
}

// Load は設定を読み込む
// デフォルト値に環境変数を上書きした設定を返す
func Load() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			v := verrs[0]
			return fmt.Errorf("無効な値 %s=%v (%s)", v.Namespace(), v.Value(), v.Tag())
		}
		return err
	}

	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return fmt.Errorf("タイムアウトに負の値は指定できません")
	}
	if c.Admin.Enabled && c.Admin.Host == c.Server.Host && c.Admin.Port == c.Server.Port {
		return fmt.Errorf("管理APIとサーバーが同じアドレスです: %s", c.AdminAddress())
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminAddress は管理APIのリッスンアドレスを返す
func (c *Config) AdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("SERVER_PORT", c.Server.Port)
	c.Server.Workers = getEnvAsIntOrDefault("WORKERS", c.Server.Workers)
	c.Server.MaxHeaderBytes = getEnvAsIntOrDefault("MAX_HEADER_BYTES", c.Server.MaxHeaderBytes)
	c.Site.Root = getEnvOrDefault("SITE_ROOT", c.Site.Root)
	c.Site.MimeTable = getEnvOrDefault("MIME_TABLE", c.Site.MimeTable)
	c.Admin.Enabled = getEnvAsBoolOrDefault("ADMIN_ENABLED", c.Admin.Enabled)
	c.Admin.Host = getEnvOrDefault("ADMIN_HOST", c.Admin.Host)
	c.Admin.Port = getEnvAsIntOrDefault("ADMIN_PORT", c.Admin.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Duration は "10s" のような文字列で指定できる time.Duration
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("無効な時間指定 %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
