package ux

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// LineReader reads lines from r while honoring context cancellation. A read
// abandoned by a cancelled context is picked up by the next call, so no
// input is lost.
type LineReader struct {
	r       *bufio.Reader
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its trailing newline.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	if lr.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := lr.r.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		lr.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-lr.pending:
		lr.pending = nil
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && line != "" {
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}
