package app

import (
	"context"
	"fmt"

	brcfg "bmicalc/internal/config"
	"bmicalc/internal/logger"
	"bmicalc/internal/session"
	calchttp "bmicalc/internal/transport/http/calc"

	"golang.org/x/sync/errgroup"
)

// App 负责应用级编排：配置→会话表→HTTP 服务。
type App struct {
	cfg      *brcfg.Config
	sessions *session.Manager
	http     *calchttp.Server
	Summary  *StartupSummary
}

// NewApp 根据配置构建应用对象（不启动）
func NewApp(cfg *brcfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run 启动 HTTP 服务与会话清理，任一出错或 ctx 取消即退出。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.http == nil || a.sessions == nil {
		return fmt.Errorf("http server not initialized")
	}
	if a.Summary != nil {
		a.Summary.Print()
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.http.Start(ctx); err != nil {
			return fmt.Errorf("calc http server error: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		return a.sessions.Run(ctx)
	})
	return group.Wait()
}

// Sessions exposes the session table (for tests).
func (a *App) Sessions() *session.Manager {
	if a == nil {
		return nil
	}
	return a.sessions
}
