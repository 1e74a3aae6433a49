// Package toolchain checks that the external tools the templates shell out to
// are installed and new enough.
package toolchain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/stackup-dev/stackup/internal/runner"
)

// Requirement names a tool and the versions it must satisfy.
type Requirement struct {
	Name       string // display name, e.g. "node"
	Executable string
	Constraint string // semver constraint, e.g. ">= 18.0.0"
}

// Status is the result of checking one Requirement.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusOutdated
	StatusUnknown
)

// Check is one line of a toolchain report.
type Check struct {
	Requirement Requirement
	Status      Status
	Version     string
	Err         error
}

// Requirements returns what the Vite based templates need: a Node.js recent
// enough for current Vite releases and the configured package manager.
func Requirements(packageManager string) []Requirement {
	return []Requirement{
		{Name: "node", Executable: "node", Constraint: ">= 18.0.0"},
		{Name: "package manager", Executable: packageManager, Constraint: ">= 8.0.0"},
	}
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+[0-9A-Za-z.+-]*)`)

// ParseVersion extracts the first semantic version from tool output such as
// "v20.11.1" or "10.2.4".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return nil, fmt.Errorf("no version found in %q", output)
	}
	return semver.NewVersion(m[1])
}

// Satisfies reports whether version meets constraint.
func Satisfies(version, constraint string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

// Inspect runs "<executable> --version" for each requirement in dir.
func Inspect(ctx context.Context, r runner.Runner, dir string, reqs []Requirement) []Check {
	checks := make([]Check, 0, len(reqs))
	for _, req := range reqs {
		checks = append(checks, inspectOne(ctx, r, dir, req))
	}
	return checks
}

func inspectOne(ctx context.Context, r runner.Runner, dir string, req Requirement) Check {
	check := Check{Requirement: req}

	out, err := r.Output(ctx, runner.CommandSpec{Name: req.Executable, Args: []string{"--version"}, Dir: dir})
	if err != nil {
		check.Err = err
		if _, exited := runner.ExitCode(err); exited {
			check.Status = StatusUnknown
		} else {
			check.Status = StatusMissing
		}
		return check
	}

	v, err := ParseVersion(out)
	if err != nil {
		check.Status = StatusUnknown
		check.Err = err
		return check
	}
	check.Version = v.String()

	ok, err := Satisfies(out, req.Constraint)
	switch {
	case err != nil:
		check.Status = StatusUnknown
		check.Err = err
	case ok:
		check.Status = StatusOK
	default:
		check.Status = StatusOutdated
	}
	return check
}

// Healthy reports whether every check passed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}
