package request

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

// errReader は指定バイト数を返した後にエラーを返す
type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestFramer_ReadLines(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "リクエストラインとヘッダ",
			input:    "GET / HTTP/1.1\r\nHost: localhost\r\nAccept: */*\r\n\r\n",
			expected: []string{"GET / HTTP/1.1", "Host: localhost", "Accept: */*"},
		},
		{
			name:     "空行のあとは読まない",
			input:    "GET / HTTP/1.1\r\n\r\nBODY\r\n\r\n",
			expected: []string{"GET / HTTP/1.1"},
		},
		{
			name:     "LFだけでは行末にならない",
			input:    "GET / HTTP/1.1\nX: y\r\n\r\n",
			expected: []string{"GET / HTTP/1.1\nX: y"},
		},
		{
			name:     "CRだけでは行末にならない",
			input:    "A\rB\r\n\r\n",
			expected: []string{"A\rB"},
		},
		{
			name:     "先頭が空行",
			input:    "\r\nGET / HTTP/1.1\r\n\r\n",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := NewFramer(strings.NewReader(tc.input), 0).ReadLines()
			if err != nil {
				t.Fatalf("ReadLines failed: %v", err)
			}
			if len(lines) != len(tc.expected) {
				t.Fatalf("Expected %d lines, got %d: %q", len(tc.expected), len(lines), lines)
			}
			for i := range lines {
				if lines[i] != tc.expected[i] {
					t.Errorf("line %d: got %q, want %q", i, lines[i], tc.expected[i])
				}
			}
		})
	}
}

func TestFramer_LeavesRestInReader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("GET / HTTP/1.1\r\n\r\nrest"))
	if _, err := NewFramer(br, 0).ReadLines(); err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	rest, _ := io.ReadAll(br)
	if string(rest) != "rest" {
		t.Errorf("Expected remaining %q, got %q", "rest", rest)
	}
}

func TestFramer_LossyDecoding(t *testing.T) {
	lines, err := NewFramer(strings.NewReader("GET /\xff\xfe HTTP/1.1\r\n\r\n"), 0).ReadLines()
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if !utf8.ValidString(lines[0]) {
		t.Errorf("Expected valid UTF-8, got %q", lines[0])
	}
	if !strings.ContainsRune(lines[0], utf8.RuneError) {
		t.Errorf("Expected replacement character in %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "GET /") || !strings.HasSuffix(lines[0], " HTTP/1.1") {
		t.Errorf("Unexpected line %q", lines[0])
	}
}

func TestFramer_Failures(t *testing.T) {
	ioErr := errors.New("connection reset")

	testCases := []struct {
		name   string
		reader io.Reader
		max    int
		target error
	}{
		{"空の入力", strings.NewReader(""), 0, io.EOF},
		{"空行の前にEOF", strings.NewReader("GET / HTTP/1.1\r\nHost: x\r\n"), 0, io.ErrUnexpectedEOF},
		{"行の途中でEOF", strings.NewReader("GET / HT"), 0, io.ErrUnexpectedEOF},
		{"I/Oエラー", &errReader{data: []byte("GET / HTTP/1.1\r\n"), err: ioErr}, 0, ioErr},
		{"上限超過", strings.NewReader("GET / HTTP/1.1\r\nX: " + strings.Repeat("a", 100) + "\r\n\r\n"), 32, ErrHeaderTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := NewFramer(tc.reader, tc.max).ReadLines()
			if err == nil {
				t.Fatalf("Expected error, got lines %q", lines)
			}
			if lines != nil {
				t.Errorf("Expected no partial lines, got %q", lines)
			}
			if !errors.Is(err, ErrFraming) {
				t.Errorf("Expected ErrFraming, got %v", err)
			}
			if !errors.Is(err, tc.target) {
				t.Errorf("Expected %v, got %v", tc.target, err)
			}
		})
	}
}
