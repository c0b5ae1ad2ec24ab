// Package main はBifrostサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bifrost/internal/app"
	"bifrost/internal/config"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		workers    = flag.Int("workers", 0, "ワーカー数 (デフォルト: 4)")
		configPath = flag.String("config", "", "設定ファイル (.yaml, .yml, .toml)")
		admin      = flag.Bool("admin", false, "管理APIを有効にする")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Bifrost")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション] <ルートディレクトリ>")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *workers != 0 {
		cfg.Server.Workers = *workers
	}
	if *admin {
		cfg.Admin.Enabled = true
	}
	if flag.NArg() > 0 {
		cfg.Site.Root = flag.Arg(0)
	}

	if cfg.Site.Root == "" {
		fmt.Fprintln(os.Stderr, "使用方法: server [オプション] <ルートディレクトリ>")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	log.Printf("Bifrost サーバーを起動します: %s", cfg.ServerAddress())
	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
