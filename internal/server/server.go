package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"bifrost/internal/config"
	"bifrost/internal/pool"
	"bifrost/internal/route"
)

// Server は静的ファイルサーバーを管理する構造体
type Server struct {
	config *config.Config
	table  *route.Table
	pool   *pool.Pool
	stats  *Stats

	mu       sync.Mutex
	listener net.Listener
	closing  atomic.Bool

	adminServer *http.Server
	startedAt   time.Time
}

// New は新しいServerインスタンスを作成する
// table は構築済みで、以後変更されないこと
func New(cfg *config.Config, table *route.Table) (*Server, error) {
	p, err := pool.New(cfg.Server.Workers)
	if err != nil {
		return nil, fmt.Errorf("ワーカープールの作成に失敗: %w", err)
	}

	s := &Server{
		config: cfg,
		table:  table,
		pool:   p,
		stats:  &Stats{},
	}

	if cfg.Admin.Enabled {
		s.adminServer = &http.Server{
			Addr:         cfg.AdminAddress(),
			Handler:      newAdminRouter(s),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}

	return s, nil
}

// Listen はリスナーを開く
// Start より前に呼ぶと、Addr で実際のアドレスを取得できる
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	lc := listenConfig(s.config.Server.ReusePort)
	ln, err := lc.Listen(context.Background(), "tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	s.listener = ln
	return nil
}

// Addr はリッスン中のアドレスを返す
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.startedAt = time.Now()

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 2)

	// 接続の受け付けを別ゴルーチンで開始
	go func() {
		log.Printf("サーバーを起動しています: %s (ワーカー数 %d, ルート数 %d)",
			s.Addr(), s.pool.Size(), s.table.Len())
		if err := s.acceptLoop(); err != nil {
			shutdownCh <- fmt.Errorf("接続の受け付けに失敗: %w", err)
		}
	}()

	if s.adminServer != nil {
		go func() {
			log.Printf("管理APIを起動しています: %s", s.adminServer.Addr)
			if err := s.adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				shutdownCh <- fmt.Errorf("管理APIの起動に失敗: %w", err)
			}
		}()
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		_ = s.Shutdown()
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// acceptLoop は接続を受け付けてワーカープールに投入する
func (s *Server) acceptLoop() error {
	ln := s.listener
	var backoff time.Duration

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = nextBackoff(backoff)
				log.Printf("accept error: %v; %v 後に再試行します", err, backoff)
				time.Sleep(backoff)
				continue
			}
			return err
		}
		backoff = 0

		id := uuid.New()
		s.stats.Connections.Add(1)
		if err := s.pool.Submit(func() error {
			return s.handleConn(id, conn)
		}); err != nil {
			log.Printf("[conn %s] ジョブを投入できません: %v", id, err)
			_ = conn.Close()
		}
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	if d *= 2; d > time.Second {
		d = time.Second
	}
	return d
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error

	s.mu.Lock()
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("リスナーのクローズに失敗: %w", err))
		}
	}
	s.mu.Unlock()

	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("管理APIのシャットダウンに失敗: %w", err))
		}
	}

	if err := s.pool.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", errors.Join(errs...))
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
