package notify

import (
	"context"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
)

// Console writes notifications to a terminal, errors highlighted in red
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	info    *color.Color
	failure *color.Color
}

// NewConsole creates a Console notifier writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:       w,
		info:    color.New(color.FgCyan),
		failure: color.New(color.FgRed, color.Bold),
	}
}

// Info shows a progress message
func (c *Console) Info(ctx context.Context, msg string) {
	c.write(ctx, c.info, msg)
}

// Error shows a failure message
func (c *Console) Error(ctx context.Context, msg string) {
	c.write(ctx, c.failure, msg)
}

func (c *Console) write(ctx context.Context, clr *color.Color, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := clr.Fprintln(c.w, msg); err != nil {
		ctxlog.From(ctx).Warn("Failed to write notification", "error", err)
	}
}

// Log sends notifications to the context logger only
type Log struct{}

// NewLog creates a Log notifier
func NewLog() *Log {
	return &Log{}
}

// Info logs a progress message
func (Log) Info(ctx context.Context, msg string) {
	ctxlog.From(ctx).Info(msg)
}

// Error logs a failure message
func (Log) Error(ctx context.Context, msg string) {
	ctxlog.From(ctx).Error(msg)
}
