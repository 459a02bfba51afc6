// Package fileutil provides the file primitives the render pipeline needs:
// BOM-tolerant UTF-8 reads and artifact writes guarded by an advisory lock.
package fileutil

import (
	"io"
	"io/fs"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads path as UTF-8 text, stripping a leading byte-order mark if
// present. Diagram sources produced on Windows frequently carry one and the
// rendering server rejects it.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteLocked writes data to path under an advisory lock so concurrent
// invocations targeting the same artifact do not interleave writes.
func WriteLocked(path string, data []byte, mode os.FileMode) error {
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		_ = lock.Unlock()
	}()

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Writable reports whether dir accepts new files for the current process.
func Writable(dir string) error {
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return &fs.PathError{Op: "access", Path: dir, Err: err}
	}
	return nil
}
