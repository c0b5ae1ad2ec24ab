package request

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const headerSeparator = ": "

// Parse はFramerが返した行の列をRequestに変換する
func Parse(lines []string) (*Request, error) {
	if len(lines) == 0 {
		return nil, ErrMissingRequestLine
	}

	// リクエストライン: METHOD SP TARGET SP VERSION
	tokens := strings.Split(lines[0], " ")
	if len(tokens) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, lines[0])
	}
	method, target, proto := tokens[0], tokens[1], tokens[2]

	if !validMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	version, err := ParseVersion(proto)
	if err != nil {
		return nil, err
	}

	u, err := url.ParseRequestURI(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	headers := make([]Field, 0, len(lines)-1)
	for _, line := range lines[1:] {
		field, err := parseHeader(line)
		if err != nil {
			return nil, err
		}
		headers = append(headers, field)
	}

	return &Request{
		Method:  method,
		Target:  target,
		URL:     u,
		Version: version,
		Headers: headers,
	}, nil
}

// parseHeader は "Name: Value" を分割する
// 区切りがない行は行全体を名前と値の両方として扱う
func parseHeader(line string) (Field, error) {
	name, value, found := strings.Cut(line, headerSeparator)
	if !found {
		value = line
	}

	if !httpguts.ValidHeaderFieldName(name) {
		return Field{}, fmt.Errorf("%w: 名前 %q", ErrInvalidHeader, name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return Field{}, fmt.Errorf("%w: %s の値", ErrInvalidHeader, name)
	}

	return Field{Name: name, Value: value}, nil
}

// validMethod はメソッドがトークンとして正しいかを判定する
func validMethod(method string) bool {
	// ヘッダ名と同じく RFC 7230 の token
	return httpguts.ValidHeaderFieldName(method)
}
