package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Reader provides context-aware line input that can be interrupted.
type Reader struct {
	source      io.Reader
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewReader creates a new Reader over the given source.
func NewReader(source io.Reader) *Reader {
	if source == nil {
		panic("source cannot be nil")
	}

	return &Reader{
		source: source,
		reader: bufio.NewReader(source),
	}
}

// ReadLine reads one trimmed line, respecting context cancellation. When the
// context is canceled the underlying read goroutine may still complete, but
// the caller returns immediately.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// ReadSecret reads a line without echoing when the source is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func (r *Reader) ReadSecret(ctx context.Context) (string, error) {
	if f, ok := r.source.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return r.ReadLine(ctx)
}

// Confirm reads a line and reports whether the user answered yes.
func (r *Reader) Confirm(ctx context.Context) (bool, error) {
	line, err := r.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
