package route

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bifrost/internal/resource"
)

var (
	// ErrRouteBuild はルートテーブルの構築失敗を表す
	ErrRouteBuild = errors.New("ルートテーブルの構築に失敗")

	// ErrDuplicateRoute は2つのファイルが同じルートに対応したことを表す
	ErrDuplicateRoute = fmt.Errorf("%w: ルートが重複しています", ErrRouteBuild)
)

const htmlExtension = "html"

// Build はルートディレクトリを走査してルートテーブルを構築する
func Build(ctx context.Context, root string, mimes resource.MimeResolver) (*Table, error) {
	base, err := canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("%w: ルートディレクトリを解決できません: %v", ErrRouteBuild, err)
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteBuild, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s はディレクトリではありません", ErrRouteBuild, root)
	}

	table := newTable()
	visited := map[string]bool{base: true}
	stack := []string{base}

	for len(stack) > 0 {
		// コンテキストのキャンセルをチェック
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: ディレクトリの読み取りに失敗: %v", ErrRouteBuild, err)
		}

		for _, entry := range entries {
			full, err := canonicalize(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrRouteBuild, err)
			}
			rel, ok := relativeTo(base, full)
			if !ok {
				log.Printf("ルート外を指すエントリをスキップします: %s -> %s", filepath.Join(dir, entry.Name()), full)
				continue
			}

			info, err := os.Stat(full)
			if err != nil {
				return nil, fmt.Errorf("%w: ファイル情報の取得に失敗: %v", ErrRouteBuild, err)
			}
			if info.IsDir() {
				if !visited[full] {
					visited[full] = true
					stack = append(stack, full)
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			ext := Extension(filepath.Base(full))
			if ext == "" {
				continue
			}

			res, err := resource.Load(full, ext, mimes)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrRouteBuild, full, err)
			}

			key := routeFor(rel, ext)
			if prev, exists := table.sources[key]; exists {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateRoute, key, prev, full)
			}
			table.routes[key] = res
			table.sources[key] = full
		}
	}

	return table, nil
}

// Extension はファイル名の拡張子をドットなしで返す
// 先頭のドットだけのファイル（.gitignore など）は拡張子なしとみなす
func Extension(name string) string {
	stem := strings.TrimPrefix(name, ".")
	i := strings.LastIndexByte(stem, '.')
	if i < 0 {
		return ""
	}
	return stem[i+1:]
}

// routeFor はルートからの相対パスをURLパスに変換する
func routeFor(rel, ext string) string {
	route := "/" + filepath.ToSlash(rel)
	if ext == htmlExtension {
		route = path.Dir(route)
	}
	if route == "" || route == "." {
		route = "/"
	}
	return route
}

// canonicalize は絶対パス化とシンボリックリンクの解決を行う
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// relativeTo は full から base の接頭辞を取り除く
// full が base の外にあれば false を返す
func relativeTo(base, full string) (string, bool) {
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(full, prefix) {
		return "", false
	}
	return strings.TrimPrefix(full, prefix), true
}
