package route

import (
	"sort"

	"bifrost/internal/resource"
)

// Table はURLパスからResourceへの読み取り専用マップ
type Table struct {
	routes  map[string]*resource.Resource
	sources map[string]string // ルート → 元ファイルのパス
}

func newTable() *Table {
	return &Table{
		routes:  make(map[string]*resource.Resource),
		sources: make(map[string]string),
	}
}

// Lookup は指定されたパスのResourceを取得する
func (t *Table) Lookup(path string) (*resource.Resource, bool) {
	res, ok := t.routes[path]
	return res, ok
}

// Source はルートの元になったファイルのパスを返す
func (t *Table) Source(path string) (string, bool) {
	src, ok := t.sources[path]
	return src, ok
}

// Len は登録されているルートの数を返す
func (t *Table) Len() int {
	return len(t.routes)
}

// Paths は登録されているルートをソートして返す
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.routes))
	for path := range t.routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Each はルートをソート順に走査する
// fn が false を返すと走査を打ち切る
func (t *Table) Each(fn func(path string, res *resource.Resource) bool) {
	for _, path := range t.Paths() {
		if !fn(path, t.routes[path]) {
			return
		}
	}
}
