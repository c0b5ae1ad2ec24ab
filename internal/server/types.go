package server

import (
	"time"

	"bifrost/internal/pool"
)

// HealthStatus はヘルスチェックの状態
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// HealthResponse は /health のレスポンス
type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// ServerInfo はリッスンしているアドレス
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// StatusResponse は /api/status のレスポンス
type StatusResponse struct {
	Status    string        `json:"status"`
	Server    ServerInfo    `json:"server"`
	Pool      pool.Stats    `json:"pool"`
	Routes    int           `json:"routes"`
	Counters  StatsSnapshot `json:"counters"`
	Uptime    string        `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
}

// RouteInfo はルート1つ分の情報
type RouteInfo struct {
	Path      string    `json:"path"`
	MimeType  string    `json:"mime_type"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
}

// RoutesResponse は /api/routes のレスポンス
type RoutesResponse struct {
	Routes []RouteInfo `json:"routes"`
}

// ErrorResponse はエラー時のレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Details   *string   `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
