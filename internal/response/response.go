// Package response はステータス、ヘッダ、ボディからHTTPレスポンスのバイト列を組み立てる
package response

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bifrost/internal/resource"
)

// ServerName は Server ヘッダに入れる名前
const ServerName = "Bifrost"

// Response は送信前のHTTPレスポンス
type Response struct {
	Status int
	Header Header
	Body   []byte
}

// New は指定されたステータスの空のレスポンスを作成する
func New(status int) *Response {
	return &Response{Status: status}
}

// FromResource はResourceを配信する 200 OK レスポンスを作成する
func FromResource(res *resource.Resource, now time.Time) *Response {
	r := New(http.StatusOK)
	r.Header.Set("Content-Type", res.MimeType)
	r.Header.Set("Content-Length", strconv.Itoa(len(res.Bytes())))
	r.Header.Set("Server", ServerName)
	r.Header.Set("Date", now.UTC().Format(http.TimeFormat))
	if !res.Modified.IsZero() {
		r.Header.Set("Last-Modified", res.Modified.UTC().Format(http.TimeFormat))
	}
	r.Header.Set("Connection", "close")
	r.Body = res.Bytes()
	return r
}

// Error はステータスに応じた小さなHTMLページを返すレスポンスを作成する
func Error(status int, now time.Time) *Response {
	body := []byte(fmt.Sprintf("<!DOCTYPE html>\n<html><head><title>%[1]d %[2]s</title></head>"+
		"<body><h1>%[1]d %[2]s</h1></body></html>\n", status, http.StatusText(status)))

	r := New(status)
	r.Header.Set("Content-Type", "text/html; charset=utf-8")
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	r.Header.Set("Server", ServerName)
	r.Header.Set("Date", now.UTC().Format(http.TimeFormat))
	r.Header.Set("Connection", "close")
	r.Body = body
	return r
}

// StatusLine は "HTTP/1.1 <code> <reason>" を返す
func (r *Response) StatusLine() string {
	return fmt.Sprintf("HTTP/1.1 %d %s", r.Status, http.StatusText(r.Status))
}

// Head はステータスラインから空行までのバイト列を返す
func (r *Response) Head() []byte {
	var buf bytes.Buffer
	buf.WriteString(r.StatusLine())
	buf.WriteString("\r\n")
	r.Header.Each(func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	})
	buf.WriteString("\r\n")
	return buf.Bytes()
}

// Bytes はレスポンス全体のバイト列を返す
// ボディは変換せずにそのまま連結する
func (r *Response) Bytes() []byte {
	head := r.Head()
	out := make([]byte, 0, len(head)+len(r.Body))
	out = append(out, head...)
	return append(out, r.Body...)
}

// WriteTo はレスポンスを w に書き込む
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

// WriteHeadTo はボディを除いたレスポンスを w に書き込む（HEAD用）
func (r *Response) WriteHeadTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Head())
	return int64(n), err
}
