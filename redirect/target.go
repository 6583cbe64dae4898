package redirect

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Target is a process-wide output sink whose writer can be replaced.
// Swap installs w and returns the writer it replaced.
// Targets are compared with ==, so implementations must be comparable.
type Target interface {
	Swap(w io.Writer) io.Writer
}

// owners records which capture holds each target; at most one session per sink
var (
	ownersMu sync.Mutex
	owners   = make(map[Target]*Capture)
)

// targetKey maps equivalent targets to one key
func targetKey(t Target) Target {
	if lt, ok := t.(LogTarget); ok && lt.Logger == nil {
		return LogTarget{Logger: log.Default()}
	}
	return t
}

// claim reserves t for c; false when another capture holds it
func claim(t Target, c *Capture) bool {
	key := targetKey(t)
	ownersMu.Lock()
	defer ownersMu.Unlock()
	if owner, ok := owners[key]; ok && owner != c {
		return false
	}
	owners[key] = c
	return true
}

// release frees t if c holds it
func release(t Target, c *Capture) {
	key := targetKey(t)
	ownersMu.Lock()
	if owners[key] == c {
		delete(owners, key)
	}
	ownersMu.Unlock()
}

// Switch is an io.Writer forwarding to a replaceable destination
type Switch struct {
	mu sync.RWMutex
	w  io.Writer
}

// NewSwitch creates a switch writing to w; nil discards
func NewSwitch(w io.Writer) *Switch {
	if w == nil {
		w = io.Discard
	}
	return &Switch{w: w}
}

// Write forwards p to the installed writer.
// The lock is released before forwarding so a destination may itself swap the switch.
func (s *Switch) Write(p []byte) (int, error) {
	s.mu.RLock()
	w := s.w
	s.mu.RUnlock()
	return w.Write(p)
}

// Swap installs w and returns the previous writer
func (s *Switch) Swap(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	s.mu.Lock()
	prev := s.w
	s.w = w
	s.mu.Unlock()
	return prev
}

// Writer returns the installed writer
func (s *Switch) Writer() io.Writer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w
}

// Process-wide standard streams. Code that wants its output capturable writes here
// instead of to os.Stdout directly.
var (
	Stdout = NewSwitch(os.Stdout)
	Stderr = NewSwitch(os.Stderr)
)

// Printf formats to Stdout
func Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(Stdout, format, a...)
}

// Println writes operands to Stdout followed by a newline
func Println(a ...any) (int, error) {
	return fmt.Fprintln(Stdout, a...)
}

// Print writes operands to Stdout
func Print(a ...any) (int, error) {
	return fmt.Fprint(Stdout, a...)
}

// LogTarget captures a log.Logger output. A nil Logger selects the standard logger.
type LogTarget struct {
	Logger *log.Logger
}

// Swap replaces the logger output
func (t LogTarget) Swap(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	if t.Logger == nil {
		prev := log.Writer()
		log.SetOutput(w)
		return prev
	}
	prev := t.Logger.Writer()
	t.Logger.SetOutput(w)
	return prev
}
