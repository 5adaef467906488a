package config

import (
	"strings"
	"time"
)

// Config 是 bmicalc 的主配置载体。
type Config struct {
	App     AppConfig     `toml:"app"`
	HTTP    HTTPConfig    `toml:"http"`
	Session SessionConfig `toml:"session"`
	Chart   ChartConfig   `toml:"chart"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// HTTPConfig 描述 Web 表单与 JSON API 的监听与防护设置。
type HTTPConfig struct {
	Addr           string   `toml:"addr"`
	CSRFEnabled    bool     `toml:"csrf_enabled"`
	CSRFKey        string   `toml:"csrf_key"` // 32 bytes; random per process when empty
	TrustedOrigins []string `toml:"trusted_origins"`
	SecureCookie   bool     `toml:"secure_cookie"`
}

type SessionConfig struct {
	CookieName           string `toml:"cookie_name"`
	IdleTimeoutMinutes   int    `toml:"idle_timeout_minutes"`
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds"`
}

func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

func (s SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

// ChartConfig 控制趋势图尺寸、均线窗口与 PNG 快照。
type ChartConfig struct {
	SMAWindow              int  `toml:"sma_window"`
	WidthPx                int  `toml:"width_px"`
	HeightPx               int  `toml:"height_px"`
	SnapshotEnabled        bool `toml:"snapshot_enabled"`
	SnapshotTimeoutSeconds int  `toml:"snapshot_timeout_seconds"`
}

func (c ChartConfig) SnapshotTimeout() time.Duration {
	return time.Duration(c.SnapshotTimeoutSeconds) * time.Second
}

// keySet 用于追踪配置文件中显式设置的字段路径。
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}

// fieldDefault 描述单个字段的默认值设置规则。
type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}
