// Package server は、TCP接続を受け付けて静的ファイルを配信します。
//
// このパッケージは、リスナーの起動、接続ごとの処理のワーカープールへの投入、
// リクエストの解析とルートテーブルの検索、レスポンスの送信を担当します。
//
// 責務:
//   - TCPリスナーの起動と管理
//   - 受け付けた接続をジョブとしてワーカープールに投入
//   - 1接続につき1リクエストの処理（持続的接続はしない）
//   - 管理用HTTP API（ヘルスチェック、状態、ルート一覧）
//
// 仕様:
//   - ルートテーブルは起動前に構築済みで、配信中にファイルシステムを参照しない
//   - 解析できないリクエストには 400、見つからないパスには 404 を返す
//   - GET と HEAD 以外のメソッドには 405 を返す
//   - フレーミングに失敗した接続は何も書かずに閉じる
//   - 管理APIは gin を使用
//   - グレースフルシャットダウンに対応
package server
