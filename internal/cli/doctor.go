package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stackup-dev/stackup/internal/branding"
	"github.com/stackup-dev/stackup/internal/config"
	"github.com/stackup-dev/stackup/internal/fsprobe"
	"github.com/stackup-dev/stackup/internal/manifest"
	"github.com/stackup-dev/stackup/internal/scaffold"
	"github.com/stackup-dev/stackup/internal/toolchain"
)

var checkProject string

func init() {
	doctorCmd.Flags().StringVar(&checkProject, "check-project", "", "Validate a generated project at the given directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the toolchain and generated projects",
	Long: `Run diagnostic checks.

Without flags, verifies that Node.js and the configured package manager are
installed and recent enough. With --check-project, validates the project
record and expected directories of a generated project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkProject != "" {
			return runProjectCheck(out, checkProject)
		}
		return runToolchainCheck(cmd, out)
	},
}

func runToolchainCheck(cmd *cobra.Command, out io.Writer) error {
	settings, err := config.Current()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	fmt.Fprintln(out, "Toolchain check:")
	checks := toolchain.Inspect(cmd.Context(), newRunner(cmd), cwd, toolchain.Requirements(settings.PackageManager))
	for _, c := range checks {
		req := c.Requirement
		switch c.Status {
		case toolchain.StatusOK:
			fmt.Fprintf(out, "  [ OK ] %s %s (%s)\n", req.Executable, c.Version, req.Constraint)
		case toolchain.StatusMissing:
			fmt.Fprintf(out, "  [MISS] %s not found\n", req.Executable)
		case toolchain.StatusOutdated:
			fmt.Fprintf(out, "  [OLD ] %s %s does not satisfy %s\n", req.Executable, c.Version, req.Constraint)
		default:
			fmt.Fprintf(out, "  [WARN] %s: %v\n", req.Executable, c.Err)
		}
	}

	if !toolchain.Healthy(checks) {
		return fmt.Errorf("toolchain check failed")
	}
	return nil
}

func runProjectCheck(out io.Writer, dir string) error {
	recordPath := filepath.Join(dir, branding.ManifestFile())
	fmt.Fprintf(out, "Project check: %s\n", dir)

	result, err := manifest.ValidateFile(recordPath)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("project check failed: %w", err)
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [FAIL] %d validation issue(s) in %s:\n", len(result.Issues), branding.ManifestFile())
		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "    - %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(out, "    - %s\n", issue.Message)
			}
		}
		return fmt.Errorf("%s has %d validation issue(s)", recordPath, len(result.Issues))
	}

	rec, err := manifest.Parse(recordPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  [ OK ] %s project %s (created by %s)\n", rec.Template, rec.Name, rec.Generator)

	fs := fsprobe.OS()
	expected := []string{scaffold.ServerDir}
	if rec.Client != nil {
		expected = append(expected, rec.Client.Dir)
		if rec.Template == scaffold.IDReactFirebase {
			expected = append(expected, filepath.Join(rec.Client.Dir, "config"))
		}
	}

	missing := 0
	for _, rel := range expected {
		if fs.IsDir(filepath.Join(dir, rel)) {
			fmt.Fprintf(out, "  [ OK ] %s/\n", filepath.ToSlash(rel))
			continue
		}
		fmt.Fprintf(out, "  [MISS] %s/\n", filepath.ToSlash(rel))
		missing++
	}
	if missing > 0 {
		return fmt.Errorf("project %s is missing %d director(ies)", dir, missing)
	}
	return nil
}
