package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"

	"bifrost/internal/resource"
)

// AdminHandler は管理APIのエンドポイントを実装する
type AdminHandler struct {
	server *Server
}

// newAdminRouter は管理API用のginエンジンを作成する
func newAdminRouter(s *Server) *gin.Engine {
	// 端末でなければ色付き出力を無効化
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		gin.DisableConsoleColor()
	}

	h := &AdminHandler{server: s}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", h.HealthCheck)
	api := r.Group("/api")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/routes", h.GetRoutes)
		api.GET("/routes/*path", h.GetRoute)
	}

	return r
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	status := Healthy
	code := http.StatusOK
	if h.server.closing.Load() {
		status = Unhealthy
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *AdminHandler) GetStatus(c *gin.Context) {
	cfg := h.server.config

	var uptime time.Duration
	if !h.server.startedAt.IsZero() {
		uptime = time.Since(h.server.startedAt).Truncate(time.Second)
	}

	response := StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		},
		Pool:      h.server.pool.Stats(),
		Routes:    h.server.table.Len(),
		Counters:  h.server.stats.Snapshot(),
		Uptime:    uptime.String(),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetRoutes はルート一覧取得エンドポイントの実装
func (h *AdminHandler) GetRoutes(c *gin.Context) {
	routes := make([]RouteInfo, 0, h.server.table.Len())
	h.server.table.Each(func(path string, res *resource.Resource) bool {
		routes = append(routes, convertRoute(path, res))
		return true
	})

	c.JSON(http.StatusOK, RoutesResponse{Routes: routes})
}

// GetRoute は指定されたルートの情報を返す
func (h *AdminHandler) GetRoute(c *gin.Context) {
	path := c.Param("path")
	if path == "" {
		path = "/"
	}
	// 末尾のスラッシュは無視する（ルート "/" を除く）
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	res, found := h.server.table.Lookup(path)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "route_not_found",
			Message:   "指定されたルートが見つかりません",
			Details:   stringPtr(path),
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, convertRoute(path, res))
}

// ヘルパー関数

// convertRoute はResourceをAPIのスキーマに変換する
func convertRoute(path string, res *resource.Resource) RouteInfo {
	return RouteInfo{
		Path:      path,
		MimeType:  res.MimeType,
		Extension: res.Extension,
		Size:      res.Size,
		Modified:  res.Modified,
	}
}

// stringPtr は文字列のポインタを返すヘルパー関数
func stringPtr(s string) *string {
	return &s
}
