package app

import (
	"fmt"
	"strings"

	brcfg "bmicalc/internal/config"
	"bmicalc/internal/logger"
	"bmicalc/internal/render"
)

type StartupSummary struct {
	Env      string
	Addr     string
	LogLevel string
	CSRF     bool
	Session  SessionSummary
	Chart    ChartSummary
	Bands    []render.ReferenceRow
}

type SessionSummary struct {
	CookieName    string
	IdleTimeout   string
	SweepInterval string
}

type ChartSummary struct {
	SMAWindow int
	Size      string
	Snapshot  bool
}

func newStartupSummary(cfg *brcfg.Config, snapshot bool) *StartupSummary {
	return &StartupSummary{
		Env:      cfg.App.Env,
		Addr:     cfg.HTTP.Addr,
		LogLevel: cfg.App.LogLevel,
		CSRF:     cfg.HTTP.CSRFEnabled,
		Session: SessionSummary{
			CookieName:    cfg.Session.CookieName,
			IdleTimeout:   cfg.Session.IdleTimeout().String(),
			SweepInterval: cfg.Session.SweepInterval().String(),
		},
		Chart: ChartSummary{
			SMAWindow: cfg.Chart.SMAWindow,
			Size:      fmt.Sprintf("%dx%d", cfg.Chart.WidthPx, cfg.Chart.HeightPx),
			Snapshot:  snapshot,
		},
		Bands: render.ReferenceRows(),
	}
}

// Print 将摘要逐行写入日志。
func (s *StartupSummary) Print() {
	logger.InfoBlock(s.String())
}

func (s *StartupSummary) String() string {
	var w strings.Builder
	title := "启动配置摘要 (STARTUP SUMMARY)"
	fmt.Fprintln(&w, strings.Repeat("=", 60))
	fmt.Fprintf(&w, "%*s\n", 30+len(title)/2, title)
	fmt.Fprintln(&w, strings.Repeat("=", 60))

	fmt.Fprintln(&w, "[服务 (HTTP)]")
	fmt.Fprintf(&w, "  环境: %s\n", orDash(s.Env))
	fmt.Fprintf(&w, "  监听: %s\n", orDash(s.Addr))
	fmt.Fprintf(&w, "  日志级别: %s\n", orDash(s.LogLevel))
	fmt.Fprintf(&w, "  CSRF: %s\n", onOff(s.CSRF))
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "[会话 (SESSIONS)]")
	fmt.Fprintf(&w, "  Cookie: %s\n", orDash(s.Session.CookieName))
	fmt.Fprintf(&w, "  空闲超时: %s\n", s.Session.IdleTimeout)
	fmt.Fprintf(&w, "  清理周期: %s\n", s.Session.SweepInterval)
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "[趋势图 (CHART)]")
	if s.Chart.SMAWindow > 0 {
		fmt.Fprintf(&w, "  均线窗口: %d\n", s.Chart.SMAWindow)
	} else {
		fmt.Fprintln(&w, "  均线窗口: (关闭)")
	}
	fmt.Fprintf(&w, "  尺寸: %s\n", s.Chart.Size)
	fmt.Fprintf(&w, "  PNG 快照: %s\n", onOff(s.Chart.Snapshot))
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "[BMI 分级 (CATEGORIES)]")
	for _, line := range strings.Split(render.RenderReferenceTable(s.Bands), "\n") {
		fmt.Fprintf(&w, "  %s\n", line)
	}
	fmt.Fprintln(&w, strings.Repeat("=", 60))
	return w.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
