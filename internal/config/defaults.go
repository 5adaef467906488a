package config

import "strings"

// 默认值常量
const (
	defaultAppEnv              = "dev"
	defaultAppLogLevel         = "info"
	defaultHTTPAddr            = ":8501"
	defaultCookieName          = "bmi_session"
	defaultIdleTimeoutMinutes  = 60
	defaultSweepIntervalSecs   = 60
	defaultChartSMAWindow      = 3
	defaultChartWidthPx        = 720
	defaultChartHeightPx       = 420
	defaultSnapshotTimeoutSecs = 20
)

var defaultTrustedOrigins = []string{"localhost:8501", "127.0.0.1:8501"}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(nil)
	return cfg
}

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.HTTP.applyDefaults(keys)
	c.Session.applyDefaults(keys)
	c.Chart.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("app.env", &a.Env, defaultAppEnv),
		stringFieldDefault("app.log_level", &a.LogLevel, defaultAppLogLevel),
	)
}

func (h *HTTPConfig) applyDefaults(keys keySet) {
	if h == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("http.addr", &h.Addr, defaultHTTPAddr),
		boolFieldDefault("http.csrf_enabled", &h.CSRFEnabled, true),
		fieldDefault{
			key:   "http.trusted_origins",
			need:  func() bool { return len(h.TrustedOrigins) == 0 },
			apply: func() { h.TrustedOrigins = append([]string(nil), defaultTrustedOrigins...) },
		},
	)
	h.TrustedOrigins = normalizeList(h.TrustedOrigins)
}

func (s *SessionConfig) applyDefaults(keys keySet) {
	if s == nil {
		return
	}
	applyFieldDefaults(keys,
		stringFieldDefault("session.cookie_name", &s.CookieName, defaultCookieName),
		fieldDefault{
			key:   "session.idle_timeout_minutes",
			need:  func() bool { return s.IdleTimeoutMinutes <= 0 },
			apply: func() { s.IdleTimeoutMinutes = defaultIdleTimeoutMinutes },
		},
		fieldDefault{
			key:   "session.sweep_interval_seconds",
			need:  func() bool { return s.SweepIntervalSeconds <= 0 },
			apply: func() { s.SweepIntervalSeconds = defaultSweepIntervalSecs },
		},
	)
}

func (c *ChartConfig) applyDefaults(keys keySet) {
	if c == nil {
		return
	}
	applyFieldDefaults(keys,
		fieldDefault{
			key:   "chart.sma_window",
			need:  func() bool { return c.SMAWindow == 0 },
			apply: func() { c.SMAWindow = defaultChartSMAWindow },
		},
		fieldDefault{
			key:   "chart.width_px",
			need:  func() bool { return c.WidthPx <= 0 },
			apply: func() { c.WidthPx = defaultChartWidthPx },
		},
		fieldDefault{
			key:   "chart.height_px",
			need:  func() bool { return c.HeightPx <= 0 },
			apply: func() { c.HeightPx = defaultChartHeightPx },
		},
		fieldDefault{
			key:   "chart.snapshot_timeout_seconds",
			need:  func() bool { return c.SnapshotTimeoutSeconds <= 0 },
			apply: func() { c.SnapshotTimeoutSeconds = defaultSnapshotTimeoutSecs },
		},
	)
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key: key,
		need: func() bool {
			return target != nil && strings.TrimSpace(*target) == ""
		},
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func boolFieldDefault(key string, target *bool, def bool) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return target != nil },
		apply: func() {
			if target != nil {
				*target = def
			}
		},
	}
}

func normalizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
