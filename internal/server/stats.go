package server

import "sync/atomic"

// Stats は接続処理の累計カウンタ
type Stats struct {
	Connections      atomic.Int64
	Served           atomic.Int64
	NotFound         atomic.Int64
	MethodNotAllowed atomic.Int64
	BadRequests      atomic.Int64
	FramingFailures  atomic.Int64
	BytesWritten     atomic.Int64
}

// StatsSnapshot はある時点のカウンタの値
type StatsSnapshot struct {
	Connections      int64 `json:"connections"`
	Served           int64 `json:"served"`
	NotFound         int64 `json:"not_found"`
	MethodNotAllowed int64 `json:"method_not_allowed"`
	BadRequests      int64 `json:"bad_requests"`
	FramingFailures  int64 `json:"framing_failures"`
	BytesWritten     int64 `json:"bytes_written"`
}

// Snapshot は現在の値を返す
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Connections:      s.Connections.Load(),
		Served:           s.Served.Load(),
		NotFound:         s.NotFound.Load(),
		MethodNotAllowed: s.MethodNotAllowed.Load(),
		BadRequests:      s.BadRequests.Load(),
		FramingFailures:  s.FramingFailures.Load(),
		BytesWritten:     s.BytesWritten.Load(),
	}
}
