package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var errInputClosed = errors.New("input closed")

// console reads operator input line by line. Lines are delivered through a
// channel so that a blocked read can be abandoned when ctx is cancelled.
type console struct {
	in  io.Reader
	out io.Writer

	startOnce sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
	exited    chan struct{}
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{
		in:     in,
		out:    out,
		lines:  make(chan string),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

func (c *console) start() {
	go func() {
		defer close(c.exited)
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case c.lines <- strings.TrimRight(scanner.Text(), "\r"):
			case <-c.done:
				return
			}
		}
	}()
}

// close stops delivering lines. A reader goroutine blocked in Read exits
// after its next line or when the input is closed.
func (c *console) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readLine returns errInputClosed once input is exhausted.
func (c *console) readLine(ctx context.Context) (string, error) {
	c.startOnce.Do(c.start)

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	case <-c.done:
		return "", errInputClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *console) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(c.out, text)
	return c.readLine(ctx)
}
