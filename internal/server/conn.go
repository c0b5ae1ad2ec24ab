package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bifrost/internal/request"
	"bifrost/internal/response"
)

const allowedMethods = "GET, HEAD"

// handleConn は1つの接続のリクエスト/レスポンスを処理する
// 返したエラーはワーカープールがログに出す
func (s *Server) handleConn(id uuid.UUID, conn net.Conn) error {
	defer func() {
		_ = conn.Close()
	}()

	log.Printf("[conn %s] 接続を受け付けました: %v", id, conn.RemoteAddr())

	if d := s.config.Server.ReadTimeout.Duration; d > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(d))
	}

	req, err := request.Read(conn, s.config.Server.MaxHeaderBytes)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrFraming):
			// 何も送らずに切断する
			if errors.Is(err, io.EOF) {
				log.Printf("[conn %s] リクエストを送らずに切断されました", id)
				return nil
			}
			s.stats.FramingFailures.Add(1)
			return fmt.Errorf("[conn %s] %w", id, err)
		default:
			s.stats.BadRequests.Add(1)
			if _, werr := s.write(conn, response.Error(http.StatusBadRequest, time.Now()), false); werr != nil {
				return fmt.Errorf("[conn %s] %w (レスポンスの送信にも失敗: %v)", id, err, werr)
			}
			return fmt.Errorf("[conn %s] %w", id, err)
		}
	}

	resp := s.dispatch(req)
	n, err := s.write(conn, resp, req.Method == http.MethodHead)
	if err != nil {
		return fmt.Errorf("[conn %s] レスポンスの送信に失敗: %w", id, err)
	}

	log.Printf("[conn %s] %s %s %s -> %d (%d bytes)", id, req.Method, req.Target, req.Version, resp.Status, n)
	return nil
}

// dispatch はリクエストに対するレスポンスを決める
func (s *Server) dispatch(req *request.Request) *response.Response {
	now := time.Now()

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		s.stats.MethodNotAllowed.Add(1)
		resp := response.Error(http.StatusMethodNotAllowed, now)
		resp.Header.Set("Allow", allowedMethods)
		return resp
	}

	res, ok := s.table.Lookup(req.Path())
	if !ok {
		s.stats.NotFound.Add(1)
		log.Printf("ルートが見つかりません: %s", req.Path())
		return response.Error(http.StatusNotFound, now)
	}

	s.stats.Served.Add(1)
	return response.FromResource(res, now)
}

// write はレスポンスを送信する
func (s *Server) write(conn net.Conn, resp *response.Response, headOnly bool) (int64, error) {
	if d := s.config.Server.WriteTimeout.Duration; d > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(d))
	}

	var (
		n   int64
		err error
	)
	if headOnly {
		n, err = resp.WriteHeadTo(conn)
	} else {
		n, err = resp.WriteTo(conn)
	}
	s.stats.BytesWritten.Add(n)
	return n, err
}
