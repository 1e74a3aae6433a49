package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/stackup-dev/stackup/internal/branding"
	"github.com/stackup-dev/stackup/internal/config"
	"github.com/stackup-dev/stackup/internal/fsprobe"
	"github.com/stackup-dev/stackup/internal/manifest"
	"github.com/stackup-dev/stackup/internal/patch"
	"github.com/stackup-dev/stackup/internal/runner"
)

// Scaffolder sequences the steps of a template.
type Scaffolder struct {
	FS       *fsprobe.Prober
	Runner   runner.Runner
	Settings config.Settings
	// Out receives progress lines; Err receives warnings.
	Out io.Writer
	Err io.Writer
	// Version is recorded in the project manifest.
	Version string
}

// Options carries optional per-run inputs.
type Options struct {
	// FirebaseEnv is a dotenv file with the Firebase web app config. Only
	// valid with the react-firebase template.
	FirebaseEnv string
}

// Result describes a finished run.
type Result struct {
	Template  string
	Layout    Layout
	SDK       string
	Patches   map[string]patch.Outcome
	Warnings  []string
	NextSteps []string
}

// session is the state of one Create call.
type session struct {
	ctx      context.Context
	fs       *fsprobe.Prober
	runner   runner.Runner
	settings config.Settings
	out      io.Writer
	errOut   io.Writer
	req      Request
	layout   Layout
	firebase *firebaseConfig
	result   *Result
}

// Create scaffolds req under baseDir. Input problems and an existing project
// directory are reported before anything is written. After that, the first
// failing step stops the run and leaves what was already created in place.
func (s *Scaffolder) Create(ctx context.Context, req Request, baseDir string, opts Options) (*Result, error) {
	if req.Template == nil {
		return nil, &ValidationError{Field: "template", Supported: TemplateIDs()}
	}
	if err := validateName(req.ProjectName); err != nil {
		return nil, err
	}
	if err := s.Settings.Validate(); err != nil {
		return nil, err
	}

	layout, err := NewLayout(baseDir, req.ProjectName)
	if err != nil {
		return nil, err
	}

	var fb *firebaseConfig
	if opts.FirebaseEnv != "" {
		if _, ok := req.Template.(ReactFirebase); !ok {
			return nil, &ValidationError{
				Field:  "firebase env file",
				Value:  opts.FirebaseEnv,
				Reason: fmt.Sprintf("only supported with the %s template", IDReactFirebase),
			}
		}
		fb, err = loadFirebaseConfig(opts.FirebaseEnv)
		if err != nil {
			return nil, err
		}
	}

	fsys := s.FS
	if fsys == nil {
		fsys = fsprobe.OS()
	}
	if fsys.Exists(layout.Root) {
		return nil, &AlreadyExistsError{Name: req.ProjectName, Path: layout.Root}
	}

	sess := &session{
		ctx:      ctx,
		fs:       fsys,
		runner:   s.Runner,
		settings: s.Settings,
		out:      writerOrDiscard(s.Out),
		errOut:   writerOrDiscard(s.Err),
		req:      req,
		layout:   layout,
		firebase: fb,
		result: &Result{
			Template: req.Template.ID(),
			Layout:   layout,
			Patches:  make(map[string]patch.Outcome),
		},
	}

	slog.Debug("scaffold start", "template", req.Template.ID(), "root", layout.Root)
	if err := req.Template.build(sess); err != nil {
		return sess.result, err
	}
	sess.writeManifest(s.Version)
	slog.Debug("scaffold done", "template", req.Template.ID(), "warnings", len(sess.result.Warnings))
	return sess.result, nil
}

func (s *session) progress(format string, args ...any) {
	fmt.Fprintf(s.out, "==> "+format+"\n", args...)
}

func (s *session) warn(msg string) {
	fmt.Fprintf(s.errOut, "warning: %s\n", msg)
	s.result.Warnings = append(s.result.Warnings, msg)
}

// createSkeleton makes the project root (which must not exist) and the server
// directory (which may).
func (s *session) createSkeleton() error {
	if err := s.fs.MakeDir(s.layout.Root, false); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &AlreadyExistsError{Name: s.req.ProjectName, Path: s.layout.Root}
		}
		return err
	}
	s.progress("Created project directory %s at %s", s.req.ProjectName, s.layout.Root)

	if s.fs.Exists(s.layout.Server) {
		return nil
	}
	if err := s.fs.MakeDir(s.layout.Server, false); err != nil {
		return err
	}
	s.progress("Created server directory at %s", s.layout.Server)
	return nil
}

func (s *session) run(spec runner.CommandSpec) error {
	if s.runner == nil {
		return fmt.Errorf("no command runner configured for %s", spec.Name)
	}
	s.progress("Running %s (in %s)", spec, spec.Dir)
	return s.runner.Run(s.ctx, spec)
}

// generateClient runs the scaffolding generator in the project root.
func (s *session) generateClient() error {
	spec := runner.CommandSpec{
		Name: s.settings.PackageManager,
		Args: []string{
			"create", s.settings.ScaffoldTool + "@latest", ClientDir,
			"--", "--template", s.settings.ScaffoldTemplate,
		},
		Dir: s.layout.Root,
	}
	if err := s.run(spec); err != nil {
		return err
	}
	if !s.fs.IsDir(s.layout.Client) {
		return fmt.Errorf("%s finished but did not create %s", spec, s.layout.Client)
	}
	return nil
}

func (s *session) installDependencies() error {
	return s.run(runner.CommandSpec{
		Name: s.settings.PackageManager,
		Args: []string{"install"},
		Dir:  s.layout.Client,
	})
}

func (s *session) addPackage(pkg string) error {
	return s.run(runner.CommandSpec{
		Name: s.settings.PackageManager,
		Args: []string{"install", pkg},
		Dir:  s.layout.Client,
	})
}

// applyPatch runs one rule. Failures are reported and the run continues.
func (s *session) applyPatch(rule patch.Rule) {
	outcome, err := patch.Apply(s.fs, rule)
	s.result.Patches[rule.Name] = outcome
	if err != nil {
		slog.Debug("patch skipped", "rule", rule.Name, "nonfatal", patch.IsNonFatal(err), "err", err)
		s.warn(fmt.Sprintf("skipping %s: %v", rule.Name, err))
		return
	}
	if outcome == patch.Applied {
		s.progress("Patched %s (%s)", filepath.Base(rule.Target), rule.Name)
	}
}

func (s *session) ensureConfigDir() error {
	dir := filepath.Join(s.layout.Client, patch.ConfigDir)
	if s.fs.Exists(dir) {
		return nil
	}
	if err := s.fs.MakeDir(dir, true); err != nil {
		return err
	}
	s.progress("Created %s", dir)
	return nil
}

func (s *session) writeFirebaseConfig() error {
	if s.firebase == nil {
		return nil
	}
	path := filepath.Join(s.layout.Client, patch.ConfigDir, firebaseConfigFile)
	content, err := s.firebase.render()
	if err != nil {
		return err
	}
	if err := s.fs.WriteText(path, content); err != nil {
		return err
	}
	s.progress("Wrote Firebase config to %s", path)
	return nil
}

func (s *session) nextSteps() {
	s.result.NextSteps = []string{
		"cd " + filepath.Join(s.req.ProjectName, ClientDir),
		s.settings.PackageManager + " run dev",
	}
}

// writeManifest records the run at the project root. A failure here only
// produces a warning.
func (s *session) writeManifest(version string) {
	if version == "" {
		version = "dev"
	}
	rec := manifest.New(s.req.ProjectName, s.req.Template.ID(), branding.CLIName()+" "+version)
	if s.fs.IsDir(s.layout.Client) {
		rec.Client = &manifest.Client{
			Dir:      ClientDir,
			Scaffold: s.settings.ScaffoldTool + "/" + s.settings.ScaffoldTemplate,
			SDK:      s.result.SDK,
		}
	}
	path := filepath.Join(s.layout.Root, branding.ManifestFile())
	if err := manifest.Write(s.fs, path, rec); err != nil {
		s.warn(fmt.Sprintf("could not write %s: %v", path, err))
	}
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
