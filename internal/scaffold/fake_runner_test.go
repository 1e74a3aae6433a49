package scaffold

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/stackup-dev/stackup/internal/fsprobe"
	"github.com/stackup-dev/stackup/internal/runner"
)

const generatedViteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
})
`

const generatedGitignore = "node_modules\ndist\n*.local\n"

// fakeRunner records invocations and imitates the generator by writing a
// client skeleton into the prober's filesystem.
type fakeRunner struct {
	fs    *fsprobe.Prober
	calls []runner.CommandSpec
	// failOn maps the first argument ("create", "install") to an exit code.
	failOn map[string]int
	// skipFiles leaves vite.config.js and .gitignore out of the skeleton.
	skipFiles bool
	// noClient makes the generator succeed without creating anything.
	noClient bool
}

func (f *fakeRunner) Run(_ context.Context, spec runner.CommandSpec) error {
	f.calls = append(f.calls, spec)
	key := ""
	if len(spec.Args) > 0 {
		key = spec.Args[0]
		if key == "install" && len(spec.Args) > 1 {
			key = "install " + spec.Args[1]
		}
	}
	if code, ok := f.failOn[key]; ok {
		return &runner.ExitError{Command: spec.String(), Code: code}
	}
	if key == "create" && !f.noClient {
		client := filepath.Join(spec.Dir, spec.Args[2])
		if err := f.fs.MakeDir(client, true); err != nil {
			return err
		}
		if !f.skipFiles {
			if err := f.fs.WriteText(filepath.Join(client, "vite.config.js"), generatedViteConfig); err != nil {
				return err
			}
			if err := f.fs.WriteText(filepath.Join(client, ".gitignore"), generatedGitignore); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, spec runner.CommandSpec) (string, error) {
	f.calls = append(f.calls, spec)
	return "", nil
}

func (f *fakeRunner) commandLines() []string {
	lines := make([]string, len(f.calls))
	for i, c := range f.calls {
		lines[i] = strings.Join(append([]string{c.Name}, c.Args...), " ")
	}
	return lines
}
