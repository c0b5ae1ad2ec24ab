package request

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	cr = 0x0d
	lf = 0x0a
)

// Framer はバイト列からヘッダ行を切り出す
type Framer struct {
	r        *bufio.Reader
	maxBytes int // 0 なら無制限
	decoder  *encoding.Decoder
}

// NewFramer は新しいFramerを作成する
// r が既に *bufio.Reader であればそのまま使う
func NewFramer(r io.Reader, maxBytes int) *Framer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Framer{
		r:        br,
		maxBytes: maxBytes,
		decoder:  unicode.UTF8.NewDecoder(),
	}
}

// ReadLines は空行までのヘッダ行を読み込む
// 行末のCRLFは取り除かれ、リクエストラインも含めて受信順に返す
// 空行の前に接続が閉じられた場合は部分的な結果を返さずに ErrFraming を返す
func (f *Framer) ReadLines() ([]string, error) {
	var (
		lines []string
		line  []byte
		total int
	)

	for {
		b, err := f.r.ReadByte()
		if err != nil {
			if err == io.EOF && total > 0 {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: %w", ErrFraming, err)
		}

		total++
		if f.maxBytes > 0 && total > f.maxBytes {
			return nil, fmt.Errorf("%w (%d bytes)", ErrHeaderTooLarge, f.maxBytes)
		}

		line = append(line, b)
		n := len(line)
		if n < 2 || line[n-2] != cr || line[n-1] != lf {
			continue
		}

		if n == 2 {
			return lines, nil
		}

		text, err := f.decoder.Bytes(line[:n-2])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFraming, err)
		}
		lines = append(lines, string(text))
		line = line[:0]
	}
}
