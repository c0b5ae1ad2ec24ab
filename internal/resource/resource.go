// Package resource は配信するファイル1つ分のメモリ上の表現を提供する
package resource

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Resource は配信用に読み込んだファイル
// 構築後は変更しない
type Resource struct {
	MimeType  string      // MIMEタイプ
	Extension string      // 拡張子（ドットなし）
	Size      int64       // ファイルサイズ
	Modified  time.Time   // 最終更新時刻
	Mode      fs.FileMode // パーミッション
	data      []byte
}

// MimeResolver は拡張子と内容からMIMEタイプを決める
type MimeResolver interface {
	Resolve(ext string, data []byte) string
}

// Load はファイルを読み込んでResourceを作成する
func Load(path, ext string, mimes MimeResolver) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ファイルを開けません: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("ファイル情報の取得に失敗: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("ファイルの読み込みに失敗: %w", err)
	}

	return New(data, ext, mimes.Resolve(ext, data), info), nil
}

// New はメモリ上のデータからResourceを作成する
func New(data []byte, ext, mimeType string, info fs.FileInfo) *Resource {
	r := &Resource{
		MimeType:  mimeType,
		Extension: ext,
		Size:      int64(len(data)),
		data:      data,
	}
	if info != nil {
		r.Modified = info.ModTime()
		r.Mode = info.Mode()
	}
	return r
}

// Bytes はファイルの内容を返す
// 返されたスライスは変更してはならない
func (r *Resource) Bytes() []byte {
	return r.data
}

// String implements fmt.Stringer
func (r *Resource) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", r.MimeType, r.Size, r.Modified.UTC().Format(time.RFC3339))
}
