// Package request は生のバイト列からHTTPリクエストを組み立てる
//
// 処理は2段階に分かれる。
//   - Framer: バイト列をCRLFで区切られたヘッダ行の列に分割する（空行で終端）
//   - Parse: 行の列をリクエストライン・ヘッダに解析する
//
// リクエストボディ、チャンク転送、持続的接続は扱わない。
package request

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// エラーの分類
var (
	// ErrFraming は読み込み中のI/Oエラーや、空行の前に接続が閉じられたことを表す
	ErrFraming = errors.New("リクエストのフレーミングに失敗")

	// ErrHeaderTooLarge はヘッダ部が上限を超えたことを表す
	ErrHeaderTooLarge = fmt.Errorf("%w: ヘッダが大きすぎます", ErrFraming)

	// ErrParse はリクエストの形式が不正であることを表す
	ErrParse = errors.New("リクエストの解析に失敗")

	ErrMissingRequestLine   = fmt.Errorf("%w: リクエストラインがありません", ErrParse)
	ErrMalformedRequestLine = fmt.Errorf("%w: リクエストラインの形式が不正です", ErrParse)
	ErrInvalidMethod        = fmt.Errorf("%w: 無効なメソッド", ErrParse)
	ErrUnsupportedVersion   = fmt.Errorf("%w: 未対応のバージョン", ErrParse)
	ErrInvalidTarget        = fmt.Errorf("%w: 無効なリクエストターゲット", ErrParse)
	ErrInvalidHeader        = fmt.Errorf("%w: 無効なヘッダ", ErrParse)
)

// Version はHTTPバージョン
type Version int

const (
	HTTP09 Version = iota + 1
	HTTP10
	HTTP11
	HTTP20
	HTTP30
)

var versions = map[string]Version{
	"HTTP/0.9": HTTP09,
	"HTTP/1.0": HTTP10,
	"HTTP/1.1": HTTP11,
	"HTTP/2.0": HTTP20,
	"HTTP/3.0": HTTP30,
}

// ParseVersion はバージョン文字列を解析する
func ParseVersion(s string) (Version, error) {
	if v, ok := versions[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
}

func (v Version) String() string {
	switch v {
	case HTTP09:
		return "HTTP/0.9"
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP20:
		return "HTTP/2.0"
	case HTTP30:
		return "HTTP/3.0"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// Field はヘッダ1行分の名前と値
type Field struct {
	Name  string
	Value string
}

// Request は解析済みのHTTPリクエスト
// 構築後は変更しない
type Request struct {
	Method  string
	Target  string   // リクエストラインに書かれたままのターゲット
	URL     *url.URL // 解析済みのターゲット
	Version Version
	Headers []Field // 受信順
}

// Path はルート検索に使うパスを返す
func (r *Request) Path() string {
	if r.URL == nil || r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

// Header は名前（大文字小文字を区別しない）に対応する値を返す
// 同じ名前が複数ある場合は最後のものを返す
func (r *Request) Header(name string) (string, bool) {
	for i := len(r.Headers) - 1; i >= 0; i-- {
		if strings.EqualFold(r.Headers[i].Name, name) {
			return r.Headers[i].Value, true
		}
	}
	return "", false
}

// Read は r から1つのリクエストを読み込んで解析する
func Read(r io.Reader, maxHeaderBytes int) (*Request, error) {
	lines, err := NewFramer(r, maxHeaderBytes).ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}
