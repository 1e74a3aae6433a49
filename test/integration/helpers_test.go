//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // STACKUP_HOME
	BinDir  string // holds the stub package manager, prepended to PATH
	WorkDir string // current directory for the run
	LogFile string // one line per stub invocation: "<dir>|<args>"
}

// stubNPM imitates the parts of npm the CLI drives. "create" writes a Vite
// React skeleton into the named directory. STUB_FAIL="<subcommand>:<code>"
// makes one subcommand exit with the given code.
const stubNPM = `#!/bin/sh
echo "$(pwd)|$*" >> "$STUB_LOG"
if [ -n "$STUB_FAIL" ]; then
  sub="${STUB_FAIL%%:*}"
  code="${STUB_FAIL#*:}"
  if [ "$1" = "$sub" ]; then
    exit "$code"
  fi
fi
case "$1" in
  --version)
    echo "10.2.4"
    ;;
  create)
    mkdir -p "$3"
    cat > "$3/vite.config.js" <<'VITE'
import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

// https://vite.dev/config/
export default defineConfig({
  plugins: [react()],
})
VITE
    printf 'node_modules\ndist\n*.local\n' > "$3/.gitignore"
    ;;
esac
exit 0
`

// setupTestEnv creates isolated temp directories, installs the stub npm on
// PATH, and changes into the work directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	writeFile(t, filepath.Join(env.BinDir, "npm"), stubNPM)
	if err := os.Chmod(filepath.Join(env.BinDir, "npm"), 0755); err != nil {
		t.Fatalf("chmod stub: %v", err)
	}

	t.Setenv("STACKUP_HOME", env.HomeDir)
	t.Setenv("STACKUP_PACKAGE_MANAGER", "")
	t.Setenv("STUB_LOG", env.LogFile)
	t.Setenv("STUB_FAIL", "")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Chdir(env.WorkDir)

	return env
}

// calls returns the logged stub invocations in order.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading stub log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// countInFile returns how many times substr occurs in the file.
func countInFile(t *testing.T, path, substr string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Count(string(data), substr)
}
