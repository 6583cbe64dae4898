// Package redirect captures output written to a process-wide sink and persists it to a
// file, merging each flush so the file reads like the terminal would have shown it.
package redirect

import (
	"bytes"
	"io"
	"log"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"
)

// DefaultFilename is used when New receives an empty filename
const DefaultFilename = "redirected_output.txt"

var (
	ErrAlreadyActive = errors.New("capture already active")
	ErrNotActive     = errors.New("capture not active")
	// ErrTargetBusy is returned by Begin when another capture holds the target
	ErrTargetBusy = errors.New("capture target held by another session")
)

// errLog has its own lock so reports raised while a log.Logger is mid-write cannot deadlock
var errLog = log.New(os.Stderr, "redirect: ", log.LstdFlags)

func logError(err error) {
	errLog.Printf("%v", err)
}

// Capture redirects a Target into a buffer between Begin and End and persists
// the buffer on Flush.
//
// Lifecycle: Idle -Begin-> Active -End-> Idle. A Capture may be reused.
type Capture struct {
	// life serializes Begin and End; the target swap happens outside mu
	life sync.Mutex

	mu     sync.Mutex
	target Target
	backup io.Writer
	active bool
	// gen identifies the session a captureWriter was installed for
	gen uint64
	buf bytes.Buffer

	filename  string
	fs        FileSystem
	onError   func(error)
	strip     bool
	threshold int
}

// Option configures a Capture
type Option func(*Capture)

// WithFileSystem replaces the file access used by Flush
func WithFileSystem(fs FileSystem) Option {
	return func(c *Capture) {
		c.fs = fs
	}
}

// WithErrorHandler receives flush errors that cannot be returned to a caller
func WithErrorHandler(fn func(error)) Option {
	return func(c *Capture) {
		c.onError = fn
	}
}

// WithStripEscapes removes ANSI escape sequences before persisting
func WithStripEscapes() Option {
	return func(c *Capture) {
		c.strip = true
	}
}

// WithFlushThreshold flushes complete lines from the write path once n bytes are buffered;
// n <= 0 disables
func WithFlushThreshold(n int) Option {
	return func(c *Capture) {
		c.threshold = n
	}
}

// New creates an idle capture of target persisting to filename
func New(target Target, filename string, opts ...Option) *Capture {
	if filename == "" {
		filename = DefaultFilename
	}
	c := &Capture{
		target:   target,
		filename: filename,
		fs:       OSFileSystem{},
		onError:  logError,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.onError == nil {
		c.onError = logError
	}
	return c
}

// Filename returns the output file name
func (c *Capture) Filename() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filename
}

// SetFilename changes the file used by subsequent flushes
func (c *Capture) SetFilename(name string) {
	c.mu.Lock()
	c.filename = name
	c.mu.Unlock()
}

// Active reports whether the target is currently captured
func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Buffered returns the output captured since the last flush
func (c *Capture) Buffered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Begin installs the capture on the target, saving the writer it replaces
func (c *Capture) Begin() error {
	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyActive
	}
	if !claim(c.target, c) {
		c.mu.Unlock()
		return ErrTargetBusy
	}
	c.active = true
	c.gen++
	c.buf.Reset()
	w := &captureWriter{c: c, gen: c.gen}
	c.mu.Unlock()

	prev := c.target.Swap(w)

	c.mu.Lock()
	c.backup = prev
	c.mu.Unlock()
	return nil
}

// End restores the writer saved by Begin and flushes the remaining buffer
func (c *Capture) End() error {
	c.life.Lock()
	defer c.life.Unlock()

	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return ErrNotActive
	}
	c.active = false
	backup := c.backup
	c.mu.Unlock()

	c.target.Swap(backup)
	release(c.target, c)
	return c.Flush()
}

// Close ends an active capture. Flush errors are reported and returned.
func (c *Capture) Close() error {
	if !c.Active() {
		return nil
	}
	err := c.End()
	if err != nil && !errors.Is(err, ErrNotActive) {
		c.onError(err)
		return err
	}
	return nil
}

// Run captures the target for the duration of fn. End runs even if fn panics.
func (c *Capture) Run(fn func() error) (err error) {
	if err := c.Begin(); err != nil {
		return err
	}
	defer func() {
		if endErr := c.End(); err == nil {
			err = endErr
		}
	}()
	return fn()
}

// Flush merges the buffer into the output file and clears it.
// An empty buffer performs no file access. The buffer is cleared even when the file
// cannot be written, and the session remains usable.
func (c *Capture) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked(false)
}

// flushLocked persists the buffer. With wholeLines only output through the last '\n'
// is persisted and the unterminated tail stays buffered, so a line split by the
// write-path threshold is not mistaken for a redrawn last line.
func (c *Capture) flushLocked(wholeLines bool) error {
	data := c.buf.Bytes()
	if wholeLines {
		data = dropLastLine(data)
	}
	if len(data) == 0 {
		return nil
	}

	out := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	c.buf.Next(len(data))
	if c.strip {
		out = []byte(ansi.Strip(string(out)))
	}

	name := c.filename
	if err := c.fs.Touch(name); err != nil {
		return newFileAccessError("touch", name, err)
	}
	existing, err := c.fs.ReadFile(name)
	if err != nil {
		return newFileAccessError("read", name, err)
	}
	if err := c.fs.WriteFile(name, merge(existing, out)); err != nil {
		return newFileAccessError("write", name, err)
	}
	return nil
}

// write buffers p for session gen, or forwards it when that session has ended
func (c *Capture) write(gen uint64, p []byte) (int, error) {
	c.mu.Lock()
	if !c.active || gen != c.gen {
		dst := c.backup
		c.mu.Unlock()
		if dst == nil {
			return len(p), nil
		}
		return dst.Write(p)
	}

	c.buf.Write(p)
	var err error
	if c.threshold > 0 && c.buf.Len() >= c.threshold {
		err = c.flushLocked(true)
	}
	c.mu.Unlock()

	// The writer's caller never sees flush failures
	if err != nil {
		c.onError(err)
	}
	return len(p), nil
}

// captureWriter is the writer installed on the target for one session
type captureWriter struct {
	c   *Capture
	gen uint64
}

func (w *captureWriter) Write(p []byte) (int, error) {
	return w.c.write(w.gen, p)
}

// merge drops the last line of existing and appends out.
// A trailing partial line is what a carriage-return redraw would overwrite on screen.
func merge(existing, out []byte) []byte {
	kept := dropLastLine(existing)
	data := make([]byte, 0, len(kept)+len(out))
	data = append(data, kept...)
	return append(data, out...)
}

// dropLastLine keeps everything through the last '\n'; without one nothing is kept
func dropLastLine(b []byte) []byte {
	i := bytes.LastIndexByte(b, '\n')
	if i < 0 {
		return nil
	}
	return b[:i+1]
}
