package mimetable

import (
	"github.com/gabriel-vasile/mimetype"
)

// DefaultType はどの方法でも解決できなかった場合のMIMEタイプ
const DefaultType = "application/octet-stream"

// Resolver はテーブル、既定タイプ、内容推定を組み合わせてMIMEタイプを決める
type Resolver struct {
	table       *Table
	defaultType string
	sniff       bool
}

// NewResolver は新しいResolverを作成する
func NewResolver(table *Table, defaultType string, sniff bool) *Resolver {
	if table == nil {
		table = Default()
	}
	if defaultType == "" {
		defaultType = DefaultType
	}
	return &Resolver{
		table:       table,
		defaultType: defaultType,
		sniff:       sniff,
	}
}

// Resolve は拡張子（必要なら内容）からMIMEタイプを決める
func (r *Resolver) Resolve(ext string, data []byte) string {
	if mimeType, ok := r.table.Lookup(ext); ok {
		return mimeType
	}

	if r.sniff && len(data) > 0 {
		detected := mimetype.Detect(data)
		if !detected.Is(DefaultType) {
			return detected.String()
		}
	}

	return r.defaultType
}

// Table は内部のテーブルを返す
func (r *Resolver) Table() *Table {
	return r.table
}
