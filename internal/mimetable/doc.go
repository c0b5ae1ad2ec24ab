// Package mimetable は拡張子からMIMEタイプを引くためのテーブルを提供する
//
// # 責務
// - MIMEテーブルのテキストファイルの読み込み
// - 拡張子 → MIMEタイプの解決
// - テーブルにない拡張子に対するフォールバック（既定タイプ、内容による推定）
//
// # 仕様
//   - 1行に1つの正規MIMEタイプ、続いて空白、カンマ区切りの拡張子リスト
//     例: text/html html,htm
//   - 空行と # で始まる行は無視する
//   - 同じ拡張子が複数行に現れた場合は後の行が優先される
//   - テーブルは起動時に一度だけ構築し、リクエストごとに再解析しない
//   - 組み込みの既定テーブル（mime.types）を持つ
package mimetable
