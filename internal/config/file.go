package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile は設定ファイルを読み込む
// デフォルト値 → ファイル → 環境変数 の順に上書きする
// 形式は拡張子で判定する（.yaml / .yml / .toml）
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルを開けません: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := Default()
	if err := decode(file, filepath.Ext(path), cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗 (%s): %w", path, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

func decode(r io.Reader, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return err
		}
		return nil
	case ".toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("未対応の設定ファイル形式: %q", ext)
	}
}
