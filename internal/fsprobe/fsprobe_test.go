package fsprobe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestExists(t *testing.T) {
	p := New(afero.NewMemMapFs())
	if err := p.Fs().MkdirAll("/work/app", 0o755); err != nil {
		t.Fatal(err)
	}

	if !p.Exists("/work/app") {
		t.Error("Exists(/work/app) = false, want true")
	}
	if p.Exists("/work/missing") {
		t.Error("Exists(/work/missing) = true, want false")
	}
}

func TestMakeDir(t *testing.T) {
	t.Run("non-recursive creates", func(t *testing.T) {
		p := New(afero.NewMemMapFs())
		_ = p.Fs().MkdirAll("/work", 0o755)
		if err := p.MakeDir("/work/demo", false); err != nil {
			t.Fatalf("MakeDir() error = %v", err)
		}
		if !p.IsDir("/work/demo") {
			t.Error("expected /work/demo to be a directory")
		}
	})

	t.Run("non-recursive refuses existing", func(t *testing.T) {
		p := New(afero.NewMemMapFs())
		_ = p.Fs().MkdirAll("/work/demo", 0o755)
		err := p.MakeDir("/work/demo", false)
		if !errors.Is(err, fs.ErrExist) {
			t.Fatalf("MakeDir() error = %v, want fs.ErrExist", err)
		}
	})

	t.Run("recursive tolerates existing", func(t *testing.T) {
		p := New(afero.NewMemMapFs())
		_ = p.Fs().MkdirAll("/work/demo", 0o755)
		if err := p.MakeDir("/work/demo/a/b", true); err != nil {
			t.Fatalf("MakeDir() error = %v", err)
		}
		if err := p.MakeDir("/work/demo/a/b", true); err != nil {
			t.Fatalf("second MakeDir() error = %v", err)
		}
	})
}

func TestMakeDir_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0o555); err != nil {
		t.Fatal(err)
	}

	if err := OS().MakeDir(filepath.Join(locked, "child"), false); err == nil {
		t.Fatal("expected error creating directory under read-only parent")
	}
}

func TestReadText_Missing(t *testing.T) {
	p := New(afero.NewMemMapFs())
	_, err := p.ReadText("/nope.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ReadText() error = %v, want fs.ErrNotExist", err)
	}
}

func TestWriteText_RoundTripAndReplace(t *testing.T) {
	dir := t.TempDir()
	p := OS()
	path := filepath.Join(dir, "nested", "file.txt")

	if err := p.WriteText(path, "first\n"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if err := p.WriteText(path, "second\n"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	got, err := p.ReadText(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "second\n" {
		t.Errorf("ReadText() = %q, want %q", got, "second\n")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only file.txt, found %v", names)
	}
}

func TestWriteText_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := OS().WriteText(path, "#!/bin/sh\necho hi\n"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %o, want 755", info.Mode().Perm())
	}
}

func TestWriteText_Directory(t *testing.T) {
	p := New(afero.NewMemMapFs())
	_ = p.Fs().MkdirAll("/work/dir", 0o755)
	if err := p.WriteText("/work/dir", "x"); err == nil {
		t.Fatal("expected error writing over a directory")
	}
}
