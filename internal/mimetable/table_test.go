package mimetable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `# comment
text/html html,htm

text/css css
application/javascript js, mjs
image/jpeg .JPG,jpeg
`
	table, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	testCases := []struct {
		ext      string
		expected string
		found    bool
	}{
		{"html", "text/html", true},
		{"htm", "text/html", true},
		{"css", "text/css", true},
		{"mjs", "application/javascript", true},
		{"jpg", "image/jpeg", true},
		{"JPEG", "image/jpeg", true},
		{".css", "text/css", true},
		{"exe", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.ext, func(t *testing.T) {
			actual, found := table.Lookup(tc.ext)
			if found != tc.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tc.ext, found, tc.found)
			}
			if actual != tc.expected {
				t.Errorf("Lookup(%q) = %q, want %q", tc.ext, actual, tc.expected)
			}
		})
	}

	if table.Len() != 7 {
		t.Errorf("Expected 7 extensions, got %d", table.Len())
	}
}

func TestParse_LaterLineWins(t *testing.T) {
	table, err := Parse(strings.NewReader("text/plain js\napplication/javascript js\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if mimeType, _ := table.Lookup("js"); mimeType != "application/javascript" {
		t.Errorf("Expected later line to win, got %q", mimeType)
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"拡張子なし", "text/html\n"},
		{"スラッシュなし", "html html\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mime.txt")
	if err := os.WriteFile(path, []byte("text/css css\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if mimeType, ok := table.Lookup("css"); !ok || mimeType != "text/css" {
		t.Errorf("Lookup(css) = %q, %v", mimeType, ok)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	table := Default()
	for ext, expected := range map[string]string{
		"html": "text/html",
		"css":  "text/css",
		"png":  "image/png",
		"js":   "application/javascript",
	} {
		if actual, ok := table.Lookup(ext); !ok || actual != expected {
			t.Errorf("Default().Lookup(%q) = %q, want %q", ext, actual, expected)
		}
	}
	if Default() != table {
		t.Error("Default() should return the same table")
	}
}

func TestResolver(t *testing.T) {
	table, err := Parse(strings.NewReader("text/css css\n"))
	if err != nil {
		t.Fatal(err)
	}
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	testCases := []struct {
		name     string
		resolver *Resolver
		ext      string
		data     []byte
		expected string
	}{
		{"テーブルにある", NewResolver(table, "", false), "css", nil, "text/css"},
		{"既定タイプ", NewResolver(table, "", false), "xyz", png, DefaultType},
		{"既定タイプを指定", NewResolver(table, "text/plain", false), "xyz", nil, "text/plain"},
		{"内容から推定", NewResolver(table, "", true), "xyz", png, "image/png"},
		{"推定でも空データは既定", NewResolver(table, "", true), "xyz", nil, DefaultType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.resolver.Resolve(tc.ext, tc.data)
			if actual != tc.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tc.ext, actual, tc.expected)
			}
		})
	}
}
