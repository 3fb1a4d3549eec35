package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hbjs97/coal/internal/container"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("config error")

// Config는 coal 설정 파일의 최상위 구조체다.
type Config struct {
	Version      int    `toml:"version"`
	RootDir      string `toml:"root_dir"`
	ActiveMarker string `toml:"active_marker"`
}

// Default는 설정 파일이 없을 때 쓰는 기본값이다.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath는 home 기준 기본 설정 파일 경로다.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "coal", "config.toml")
}

// Load는 config.toml을 파싱하여 Config를 반환한다. 파일이 없으면 기본값이다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save는 설정을 TOML로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// ResolveRoot는 컨테이너 루트 경로와 그 출처를 반환한다.
// 우선순위: COAL_HOME 환경변수 → root_dir 설정 → ~/.coal/cons.
// source는 "env", "config", "default" 중 하나다.
func (c *Config) ResolveRoot(override, home string) (path, source string, err error) {
	if override != "" {
		return expandHome(override, home), "env", nil
	}
	if c.RootDir != "" {
		return expandHome(c.RootDir, home), "config", nil
	}
	root, err := container.DefaultRoot(home)
	if err != nil {
		return "", "", fmt.Errorf("config.ResolveRoot: %w", err)
	}
	return root, "default", nil
}

func expandHome(path, home string) string {
	if home != "" && (path == "~" || strings.HasPrefix(path, "~/")) {
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.ActiveMarker == "" {
		c.ActiveMarker = "*"
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("config.Load: 지원하지 않는 version %d: %w", c.Version, ErrConfig)
	}
	if strings.ContainsAny(c.ActiveMarker, "'\r\n") {
		return fmt.Errorf("config.Load: active_marker에 작은따옴표/줄바꿈 불가: %w", ErrConfig)
	}
	return nil
}
