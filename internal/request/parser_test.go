package request

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	req, err := Parse([]string{
		"GET /index.html HTTP/1.1",
		"Host: localhost:8080",
		"User-Agent: test",
		"Accept: text/html: q=1",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if req.Method != "GET" {
		t.Errorf("Expected method GET, got %s", req.Method)
	}
	if req.Path() != "/index.html" {
		t.Errorf("Expected path /index.html, got %s", req.Path())
	}
	if req.Version != HTTP11 {
		t.Errorf("Expected HTTP/1.1, got %s", req.Version)
	}
	if len(req.Headers) != 3 {
		t.Fatalf("Expected 3 headers, got %d", len(req.Headers))
	}
	if req.Headers[0] != (Field{Name: "Host", Value: "localhost:8080"}) {
		t.Errorf("Unexpected first header %+v", req.Headers[0])
	}
	// 最初の ": " だけで分割する
	if v, _ := req.Header("accept"); v != "text/html: q=1" {
		t.Errorf("Expected Accept value %q, got %q", "text/html: q=1", v)
	}
}

func TestParse_TargetWithQuery(t *testing.T) {
	req, err := Parse([]string{"GET /search/a%20b.txt?q=go&x=1 HTTP/1.0"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if req.Path() != "/search/a b.txt" {
		t.Errorf("Expected decoded path, got %q", req.Path())
	}
	if req.URL.RawQuery != "q=go&x=1" {
		t.Errorf("Expected query q=go&x=1, got %q", req.URL.RawQuery)
	}
	if req.Target != "/search/a%20b.txt?q=go&x=1" {
		t.Errorf("Target should be kept verbatim, got %q", req.Target)
	}
	if req.Version != HTTP10 {
		t.Errorf("Expected HTTP/1.0, got %s", req.Version)
	}
}

func TestParse_Versions(t *testing.T) {
	testCases := []struct {
		token    string
		expected Version
	}{
		{"HTTP/0.9", HTTP09},
		{"HTTP/1.0", HTTP10},
		{"HTTP/1.1", HTTP11},
		{"HTTP/2.0", HTTP20},
		{"HTTP/3.0", HTTP30},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			req, err := Parse([]string{"GET / " + tc.token})
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if req.Version != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, req.Version)
			}
			if req.Version.String() != tc.token {
				t.Errorf("String() = %q, want %q", req.Version.String(), tc.token)
			}
		})
	}
}

func TestParse_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		lines  []string
		target error
	}{
		{"行なし", nil, ErrMissingRequestLine},
		{"トークン2つ", []string{"GET /"}, ErrMalformedRequestLine},
		{"トークン1つ", []string{"GET"}, ErrMalformedRequestLine},
		{"トークン4つ", []string{"GET / HTTP/1.1 extra"}, ErrMalformedRequestLine},
		{"連続した空白", []string{"GET  / HTTP/1.1"}, ErrMalformedRequestLine},
		{"空のメソッド", []string{" / HTTP/1.1"}, ErrInvalidMethod},
		{"メソッドに不正な文字", []string{"G(E)T / HTTP/1.1"}, ErrInvalidMethod},
		{"未対応のバージョン", []string{"GET /index.html HTTP/9.9"}, ErrUnsupportedVersion},
		{"小文字のバージョン", []string{"GET / http/1.1"}, ErrUnsupportedVersion},
		{"相対ターゲット", []string{"GET index.html HTTP/1.1"}, ErrInvalidTarget},
		{"不正なエスケープ", []string{"GET /%zz HTTP/1.1"}, ErrInvalidTarget},
		{"ヘッダ名に空白", []string{"GET / HTTP/1.1", "Bad Header: x"}, ErrInvalidHeader},
		{"区切りに空白なし", []string{"GET / HTTP/1.1", "Host:x"}, ErrInvalidHeader},
		{"空のヘッダ名", []string{"GET / HTTP/1.1", ": x"}, ErrInvalidHeader},
		{"値に制御文字", []string{"GET / HTTP/1.1", "X: a\x00b"}, ErrInvalidHeader},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Parse(tc.lines)
			if err == nil {
				t.Fatalf("Expected error, got %+v", req)
			}
			if !errors.Is(err, tc.target) {
				t.Errorf("Expected %v, got %v", tc.target, err)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParse_LenientHeader(t *testing.T) {
	req, err := Parse([]string{"GET / HTTP/1.1", "X-Flag"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, ok := req.Header("X-Flag"); !ok || v != "X-Flag" {
		t.Errorf("Expected lenient header value X-Flag, got %q (%v)", v, ok)
	}
}

func TestRequest_HeaderLastWins(t *testing.T) {
	req, err := Parse([]string{"GET / HTTP/1.1", "X-Id: 1", "x-id: 2"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(req.Headers) != 2 {
		t.Errorf("Expected both headers kept in order, got %d", len(req.Headers))
	}
	if v, _ := req.Header("X-ID"); v != "2" {
		t.Errorf("Expected last value 2, got %q", v)
	}
	if _, ok := req.Header("Missing"); ok {
		t.Error("Expected missing header")
	}
}

func TestRead(t *testing.T) {
	req, err := Read(strings.NewReader("HEAD /style.css HTTP/1.1\r\nHost: a\r\n\r\n"), 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if req.Method != "HEAD" || req.Path() != "/style.css" {
		t.Errorf("Unexpected request %+v", req)
	}

	_, err = Read(strings.NewReader("GET / HTTP/9.9\r\n\r\n"), 0)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Expected ErrUnsupportedVersion, got %v", err)
	}

	_, err = Read(strings.NewReader("GET / HTTP/1.1\r\n"), 0)
	if !errors.Is(err, ErrFraming) {
		t.Errorf("Expected ErrFraming, got %v", err)
	}
}
