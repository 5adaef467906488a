package calchttp

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"bmicalc/internal/logger"
	"bmicalc/internal/render"
	"bmicalc/internal/session"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const defaultAddr = ":8501"

// Snapshotter 将趋势图 HTML 渲染为 PNG。
type Snapshotter interface {
	Snapshot(ctx context.Context, html []byte) ([]byte, error)
}

// SessionSource 按 cookie 中的 ID 解析会话，不存在时新建。
type SessionSource interface {
	GetOrCreate(id string) (*session.Session, bool)
}

// Server 提供 BMI 表单页、趋势图与 JSON API。
type Server struct {
	addr    string
	router  *gin.Engine
	handler http.Handler
}

// ServerConfig 描述 HTTP 服务依赖。
type ServerConfig struct {
	Addr           string
	Sessions       SessionSource
	CookieName     string
	CookieMaxAge   time.Duration
	SecureCookie   bool
	CSRFEnabled    bool
	CSRFKey        []byte
	TrustedOrigins []string
	Chart          render.TrendOptions
	Snapshotter    Snapshotter // nil disables /chart.png
}

// NewServer 构建 HTTP server。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("calc http server requires a session source")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "bmi_session"
	}
	if cfg.CSRFEnabled && len(cfg.CSRFKey) != 32 {
		return nil, errors.New("csrf protection requires a 32 byte key")
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	tmpl, err := template.New("calc").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{
		chart:       cfg.Chart,
		snapshotter: cfg.Snapshotter,
	}
	withSession := sessionMiddleware(cfg.Sessions, cfg.CookieName, int(cfg.CookieMaxAge/time.Second), cfg.SecureCookie)

	pages := router.Group("/", withSession)
	pages.GET("/", h.index)
	pages.POST("/calculate", h.calculate)
	pages.GET("/chart", h.chartPage)
	pages.GET("/chart.png", h.chartPNG)

	api := router.Group("/api", withSession)
	api.POST("/calculate", h.apiCalculate)
	api.GET("/history", h.apiHistory)
	api.GET("/reference", h.apiReference)

	var handler http.Handler = router
	if cfg.CSRFEnabled {
		handler = csrfMiddleware(cfg.CSRFKey, cfg.TrustedOrigins, cfg.SecureCookie)(router)
	}
	return &Server{addr: cfg.Addr, router: router, handler: handler}, nil
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Infof("BMI calculator listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
