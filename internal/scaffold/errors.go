package scaffold

import (
	"fmt"
	"strings"

	"github.com/stackup-dev/stackup/internal/runner"
)

// ValidationError reports bad input detected before any filesystem change.
type ValidationError struct {
	Field     string
	Value     string
	Reason    string
	Supported []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Value == "" {
		fmt.Fprintf(&b, "no %s supplied", e.Field)
	} else {
		fmt.Fprintf(&b, "invalid %s %q", e.Field, e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Supported) > 0 {
		fmt.Fprintf(&b, " (supported templates: %s)", strings.Join(e.Supported, ", "))
	}
	return b.String()
}

// AlreadyExistsError reports that the project root is already present.
type AlreadyExistsError struct {
	Name string
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("directory %s already exists at %s", e.Name, e.Path)
}

// ExitCode maps an error from Create to a process exit status: 0 on success,
// the child's code when an external command failed, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := runner.ExitCode(err); ok && code != 0 {
		return code
	}
	return 1
}
