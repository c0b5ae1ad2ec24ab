package mimetable

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed mime.types
var embedFS embed.FS

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Table は拡張子からMIMEタイプへの読み取り専用マップ
type Table struct {
	types map[string]string // 拡張子（小文字、ドットなし） → MIMEタイプ
}

// Parse はMIMEテーブルのテキストを解析する
func Parse(r io.Reader) (*Table, error) {
	t := &Table{types: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%d行目: 拡張子がありません: %q", lineNo, line)
		}
		mimeType := fields[0]
		if !strings.Contains(mimeType, "/") {
			return nil, fmt.Errorf("%d行目: 無効なMIMEタイプ: %q", lineNo, mimeType)
		}

		// "html, htm" のように空白を含むリストも受け付ける
		for _, ext := range strings.Split(strings.Join(fields[1:], ""), ",") {
			ext = normalizeExt(ext)
			if ext == "" {
				continue
			}
			t.types[ext] = mimeType
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("MIMEテーブルの読み込みに失敗: %w", err)
	}

	return t, nil
}

// Load はファイルからMIMEテーブルを読み込む
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("MIMEテーブルを開けません: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	t, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the embedded table
func Default() *Table {
	defaultOnce.Do(func() {
		file, err := embedFS.Open("mime.types")
		if err != nil {
			log.Fatalf("埋め込みMIMEテーブルの読み込みに失敗: %v", err)
		}
		defer func() {
			_ = file.Close()
		}()

		defaultTable, err = Parse(file)
		if err != nil {
			log.Fatalf("埋め込みMIMEテーブルの解析に失敗: %v", err)
		}
	})
	return defaultTable
}

// Lookup は拡張子に対応するMIMEタイプを返す
func (t *Table) Lookup(ext string) (string, bool) {
	mimeType, ok := t.types[normalizeExt(ext)]
	return mimeType, ok
}

// Len は登録されている拡張子の数を返す
func (t *Table) Len() int {
	return len(t.types)
}

// Extensions は登録されている拡張子をソートして返す
func (t *Table) Extensions() []string {
	exts := make([]string, 0, len(t.types))
	for ext := range t.types {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
