// Package app は設定からルートテーブルとサーバーを組み立てて起動する
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bifrost/internal/config"
	"bifrost/internal/mimetable"
	"bifrost/internal/route"
	"bifrost/internal/server"
)

// ErrNoRoot は配信するディレクトリが指定されていないことを表す
var ErrNoRoot = errors.New("配信するディレクトリが指定されていません")

// NewResolver は設定に従ってMIMEタイプのResolverを作成する
func NewResolver(site config.SiteConfig) (*mimetable.Resolver, error) {
	var table *mimetable.Table
	if site.MimeTable != "" {
		t, err := mimetable.Load(site.MimeTable)
		if err != nil {
			return nil, err
		}
		table = t
		log.Printf("MIMEテーブルを読み込みました: %s (%d 件)", site.MimeTable, t.Len())
	}

	return mimetable.NewResolver(table, site.DefaultType, site.SniffUnknown), nil
}

// BuildTable は設定のルートディレクトリからルートテーブルを構築する
func BuildTable(ctx context.Context, cfg *config.Config) (*route.Table, error) {
	if cfg.Site.Root == "" {
		return nil, ErrNoRoot
	}

	resolver, err := NewResolver(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("MIMEテーブルの準備に失敗: %w", err)
	}

	start := time.Now()
	table, err := route.Build(ctx, cfg.Site.Root, resolver)
	if err != nil {
		return nil, err
	}
	log.Printf("ルートテーブルを構築しました: %s (%d 件, %v)", cfg.Site.Root, table.Len(), time.Since(start))

	return table, nil
}

// Run はルートテーブルを構築してからサーバーを起動し、停止するまでブロックする
func Run(ctx context.Context, cfg *config.Config) error {
	table, err := BuildTable(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, table)
	if err != nil {
		return err
	}

	return srv.Start(ctx)
}
