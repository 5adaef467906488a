package app

import (
	"context"
	"crypto/rand"
	"fmt"

	brcfg "bmicalc/internal/config"
	"bmicalc/internal/logger"
	"bmicalc/internal/render"
	"bmicalc/internal/session"
	calchttp "bmicalc/internal/transport/http/calc"
)

type AppBuilder struct {
	cfg *brcfg.Config

	csrfKeyFn     func(string) ([]byte, error)
	snapshotterFn func(context.Context, brcfg.ChartConfig) (calchttp.Snapshotter, error)
}

type AppBuilderOption func(*AppBuilder)

// WithSnapshotter 替换 PNG 快照的构建方式（测试中避免启动浏览器）。
func WithSnapshotter(fn func(context.Context, brcfg.ChartConfig) (calchttp.Snapshotter, error)) AppBuilderOption {
	return func(b *AppBuilder) {
		if fn != nil {
			b.snapshotterFn = fn
		}
	}
}

func NewAppBuilder(cfg *brcfg.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:           cfg,
		csrfKeyFn:     resolveCSRFKey,
		snapshotterFn: buildSnapshotter,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b == nil || b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg := b.cfg

	sessions := session.NewManager(session.Options{
		IdleTTL:       cfg.Session.IdleTimeout(),
		SweepInterval: cfg.Session.SweepInterval(),
	})

	var csrfKey []byte
	if cfg.HTTP.CSRFEnabled {
		key, err := b.csrfKeyFn(cfg.HTTP.CSRFKey)
		if err != nil {
			return nil, err
		}
		csrfKey = key
	}

	var snap calchttp.Snapshotter
	if cfg.Chart.SnapshotEnabled {
		s, err := b.snapshotterFn(ctx, cfg.Chart)
		if err != nil {
			// 快照是可选能力，浏览器缺失时仅关闭 /chart.png。
			logger.Warnf("chart snapshot disabled: %v", err)
		} else {
			snap = s
		}
	}

	chart := render.TrendOptions{
		WidthPx:   cfg.Chart.WidthPx,
		HeightPx:  cfg.Chart.HeightPx,
		SMAWindow: cfg.Chart.SMAWindow,
	}
	srv, err := calchttp.NewServer(calchttp.ServerConfig{
		Addr:           cfg.HTTP.Addr,
		Sessions:       sessions,
		CookieName:     cfg.Session.CookieName,
		CookieMaxAge:   cfg.Session.IdleTimeout(),
		SecureCookie:   cfg.HTTP.SecureCookie,
		CSRFEnabled:    cfg.HTTP.CSRFEnabled,
		CSRFKey:        csrfKey,
		TrustedOrigins: cfg.HTTP.TrustedOrigins,
		Chart:          chart,
		Snapshotter:    snap,
	})
	if err != nil {
		return nil, fmt.Errorf("build calc http server: %w", err)
	}

	return &App{
		cfg:      cfg,
		sessions: sessions,
		http:     srv,
		Summary:  newStartupSummary(cfg, snap != nil),
	}, nil
}

// resolveCSRFKey 使用配置中的密钥，未配置时每次启动随机生成（重启后旧表单失效）。
func resolveCSRFKey(configured string) ([]byte, error) {
	if configured != "" {
		if len(configured) != 32 {
			return nil, fmt.Errorf("http.csrf_key must be 32 bytes, got %d", len(configured))
		}
		return []byte(configured), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate csrf key: %w", err)
	}
	return key, nil
}

func buildSnapshotter(ctx context.Context, cfg brcfg.ChartConfig) (calchttp.Snapshotter, error) {
	if err := render.EnsureHeadlessAvailable(ctx); err != nil {
		return nil, err
	}
	return render.ChromeSnapshotter{
		WidthPx:  cfg.WidthPx,
		HeightPx: cfg.HeightPx,
		Timeout:  cfg.SnapshotTimeout(),
	}, nil
}
