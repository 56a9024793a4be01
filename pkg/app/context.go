package app

import (
	"context"
	"io"
	"log"
	"os"
	"time"
)

// Context carries the settings a command runs under: where results and
// diagnostics go, how results are encoded and how long a run may take.
type Context struct {
	context.Context

	OutputFormat string
	Verbose      bool
	Quiet        bool

	DefaultTimeout time.Duration

	ProgressCallback func(message string, percent int)

	out    io.Writer
	logger *log.Logger
}

// NewContext returns a table-format context writing results to stdout and
// diagnostics to stderr
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		OutputFormat:   "table",
		DefaultTimeout: 30 * time.Second,
		out:            os.Stdout,
		logger:         log.New(os.Stderr, "", 0),
	}
}

// SetOutput sets where results are written
func (c *Context) SetOutput(w io.Writer) {
	c.out = w
}

// Output returns the result writer. Quiet discards results.
func (c *Context) Output() io.Writer {
	if c.Quiet || c.out == nil {
		return io.Discard
	}
	return c.out
}

// SetLogOutput redirects Logf and Errorf
func (c *Context) SetLogOutput(w io.Writer) {
	c.logger = log.New(w, "", 0)
}

// WithTimeout derives a copy of c whose context expires after timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	derived := *c
	var cancel context.CancelFunc
	derived.Context, cancel = context.WithTimeout(c.Context, timeout)
	return &derived, cancel
}

func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress forwards to the progress callback, if any
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Logf writes a diagnostic line when verbose and not quiet
func (c *Context) Logf(format string, args ...any) {
	if c.Verbose && !c.Quiet {
		c.logger.Printf(format, args...)
	}
}

// Errorf writes an "Error: " line unless quiet
func (c *Context) Errorf(format string, args ...any) {
	if !c.Quiet {
		c.logger.Printf("Error: "+format, args...)
	}
}
