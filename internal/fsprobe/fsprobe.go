// Package fsprobe is the small filesystem surface the scaffolder needs:
// existence checks, directory creation, and whole-file text reads and writes.
// It sits on afero so tests can run against an in-memory filesystem.
package fsprobe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Prober performs filesystem operations against an afero.Fs.
type Prober struct {
	fs afero.Fs
}

// New returns a Prober over fsys. A nil fsys means the OS filesystem.
func New(fsys afero.Fs) *Prober {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Prober{fs: fsys}
}

// OS returns a Prober over the real filesystem.
func OS() *Prober {
	return New(afero.NewOsFs())
}

// Fs exposes the underlying filesystem.
func (p *Prober) Fs() afero.Fs {
	return p.fs
}

// Exists reports whether path exists. Stat errors other than "not exist"
// are treated as existing so callers never overwrite something they cannot see.
func (p *Prober) Exists(path string) bool {
	_, err := p.fs.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether path exists and is a directory.
func (p *Prober) IsDir(path string) bool {
	ok, err := afero.IsDir(p.fs, path)
	return err == nil && ok
}

// MakeDir creates path. With recursive set, missing parents are created and an
// existing directory is not an error. Without it, the parent must exist and
// the path must not, and the returned error wraps fs.ErrExist when it does.
func (p *Prober) MakeDir(path string, recursive bool) error {
	if recursive {
		if err := p.fs.MkdirAll(path, dirPerm); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
		return nil
	}
	if p.Exists(path) {
		return fmt.Errorf("creating directory %s: %w", path, fs.ErrExist)
	}
	if err := p.fs.Mkdir(path, dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// ReadText returns the contents of path. A missing file yields an error
// wrapping fs.ErrNotExist.
func (p *Prober) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText replaces the contents of path. The data goes to a temp file in
// the same directory which is then renamed over path, so readers see either
// the old or the new content. The existing file mode is kept.
func (p *Prober) WriteText(path, content string) error {
	dir := filepath.Dir(path)
	if err := p.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	mode := filePerm
	if info, err := p.fs.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("writing %s: is a directory", path)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(p.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := p.fs.Chmod(tmpName, mode); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := p.fs.Rename(tmpName, path); err != nil {
		_ = p.fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
