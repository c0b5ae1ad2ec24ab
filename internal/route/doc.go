// Package route は配信ディレクトリからURLパス → Resource のルートテーブルを構築する
//
// # 責務
// - ルートディレクトリの走査（起動時に一度だけ）
// - 各ファイルのResource化とルート登録
// - ルートの衝突検出
//
// # 仕様
//   - 拡張子のないファイルはルーティング対象外（エラーではなく除外）
//   - .html ファイルは自身ではなく、それを含むディレクトリのパスに登録する
//     ルートディレクトリ自身は "/" になる
//   - それ以外のファイルはルートからの相対パスに登録する（例: /css/style.css）
//   - ルートの重複（例: 同じディレクトリに2つの .html）は構築失敗
//   - パスは正規化（絶対パス化・シンボリックリンク解決）してからルートの接頭辞を除去する
//     正規化後にルートの外を指すエントリは登録しない
//   - 走査は明示的なスタックで行い、再帰呼び出しは使わない
//   - 構築後のテーブルは読み取り専用で、複数のゴルーチンから同期なしで参照できる
package route
