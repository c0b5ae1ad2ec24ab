package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"bifrost/internal/app"
	"bifrost/internal/config"
)

func main() {
	// 配信するディレクトリは必須
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "使用方法: %s <ルートディレクトリ>\n", os.Args[0])
		os.Exit(2)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	cfg.Site.Root = os.Args[1]
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
