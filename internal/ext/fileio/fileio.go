// Package fileio registers functions that read and write files from SQL.
//
// The functions run with the privileges of the host process. The module
// is off unless explicitly enabled for that reason.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Default permissions for created files and directories.
const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
)

// Module binds the fileio functions to a filesystem.
type Module struct {
	fs afero.Fs
}

// New returns a Module operating on fsys.
func New(fsys afero.Fs) *Module {
	return &Module{fs: fsys}
}

// Init registers the fileio functions on conn, backed by the OS filesystem.
func Init(conn sqlfn.Conn) error {
	return New(afero.NewOsFs()).Init(conn)
}

// Init registers the fileio functions on conn.
func (m *Module) Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Volatile("fileio_read", m.read),
		sqlfn.Volatile("fileio_write", m.write),
		sqlfn.Volatile("fileio_append", m.append),
		sqlfn.Volatile("fileio_mkdir", m.mkdir),
	)
}

// read returns the file contents, or NULL when the file does not exist.
func (m *Module) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(m.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// write replaces the file contents and returns the number of bytes written.
func (m *Module) write(path string, data any, perm ...int64) (int64, error) {
	b := sqlfn.Bytes(data)
	if err := afero.WriteFile(m.fs, path, b, permission(perm, defaultFilePerm)); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return int64(len(b)), nil
}

func (m *Module) append(path string, data any) (int64, error) {
	f, err := m.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFilePerm)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	n, err := f.Write(sqlfn.Bytes(data))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("appending %s: %w", path, err)
	}
	return int64(n), nil
}

// mkdir creates path and any missing parents. It returns NULL.
func (m *Module) mkdir(path string, perm ...int64) (any, error) {
	if err := m.fs.MkdirAll(path, permission(perm, defaultDirPerm)); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return nil, nil
}

func permission(perm []int64, def fs.FileMode) fs.FileMode {
	if len(perm) == 0 || perm[0] <= 0 {
		return def
	}
	return fs.FileMode(perm[0]) & fs.ModePerm
}
