package redirect

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// FileSystem is the file access used to persist captured output
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	// Touch opens name if it exists, otherwise creates it empty
	Touch(name string) error
}

// OSFileSystem accesses the local file system; names are relative to the working directory
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644)
}

func (OSFileSystem) Touch(name string) error {
	f, err := os.Open(name)
	if os.IsNotExist(err) {
		f, err = os.Create(name)
		if err != nil {
			return errors.Wrapf(err, "could not create %s", name)
		}
	} else if err != nil {
		return err
	}
	return f.Close()
}

// FileAccessError reports a capture file that could not be touched, read or written
type FileAccessError struct {
	Op       string // touch, read or write
	Filename string
	Err      error
}

func newFileAccessError(op, filename string, err error) *FileAccessError {
	return &FileAccessError{Op: op, Filename: filename, Err: errors.WithStack(err)}
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("could not %s file '%s': %v", e.Op, e.Filename, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Cause returns the underlying error for errors.Cause
func (e *FileAccessError) Cause() error { return e.Err }
