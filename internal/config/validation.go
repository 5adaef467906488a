package config

import (
	"fmt"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.HTTP.validate(); err != nil {
		return err
	}
	if err := c.Session.validate(); err != nil {
		return err
	}
	return c.Chart.validate()
}

func (a *AppConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("app.log_level must be one of debug/info/warn/error, got %q", a.LogLevel)
	}
}

func (h *HTTPConfig) validate() error {
	if strings.TrimSpace(h.Addr) == "" {
		return fmt.Errorf("http.addr cannot be empty")
	}
	if key := h.CSRFKey; key != "" && len(key) != 32 {
		return fmt.Errorf("http.csrf_key must be exactly 32 bytes, got %d", len(key))
	}
	return nil
}

func (s *SessionConfig) validate() error {
	if strings.TrimSpace(s.CookieName) == "" {
		return fmt.Errorf("session.cookie_name cannot be empty")
	}
	if strings.ContainsAny(s.CookieName, " ;,=") {
		return fmt.Errorf("session.cookie_name contains invalid characters: %q", s.CookieName)
	}
	if s.IdleTimeoutMinutes <= 0 {
		return fmt.Errorf("session.idle_timeout_minutes must be > 0")
	}
	if s.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("session.sweep_interval_seconds must be > 0")
	}
	return nil
}

func (c *ChartConfig) validate() error {
	if c.SMAWindow < 0 {
		return fmt.Errorf("chart.sma_window must be >= 0 (0 disables the moving average)")
	}
	if c.SMAWindow == 1 {
		return fmt.Errorf("chart.sma_window must be 0 or at least 2")
	}
	if c.WidthPx <= 0 || c.HeightPx <= 0 {
		return fmt.Errorf("chart.width_px and chart.height_px must be > 0")
	}
	return nil
}
