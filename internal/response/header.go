package response

import "strings"

// Header は挿入順を保持するヘッダのマップ
// 名前の比較は大文字小文字を区別しない
type Header struct {
	fields []field
}

type field struct {
	name  string
	value string
}

// Set はヘッダを設定する
// 既にあれば最初の位置のまま値を置き換え、重複は取り除く
func (h *Header) Set(name, value string) {
	idx := -1
	kept := h.fields[:0]
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			if idx >= 0 {
				continue
			}
			idx = len(kept)
			f.value = value
		}
		kept = append(kept, f)
	}
	h.fields = kept
	if idx < 0 {
		h.fields = append(h.fields, field{name: name, value: value})
	}
}

// Add は同名のヘッダがあっても末尾に追加する
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, field{name: name, value: value})
}

// Get は名前に対応する最初の値を返す
func (h *Header) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			return f.value, true
		}
	}
	return "", false
}

// Del は名前に対応するヘッダをすべて取り除く
func (h *Header) Del(name string) {
	kept := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.name, name) {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

// Len はヘッダ行の数を返す
func (h *Header) Len() int {
	return len(h.fields)
}

// Each はヘッダを挿入順に走査する
func (h *Header) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}
