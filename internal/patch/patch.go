package patch

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/stackup-dev/stackup/internal/fsprobe"
)

// Rule describes one idempotent edit.
type Rule struct {
	Name      string
	Target    string
	Marker    string
	Transform func(content string) (string, error)
}

// Outcome reports what Apply did.
type Outcome int

const (
	Applied Outcome = iota
	AlreadyApplied
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already applied"
	default:
		return "skipped"
	}
}

// MissingFileError is returned when a rule's target does not exist.
type MissingFileError struct {
	Rule string
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Rule, e.Path)
}

// AnchorNotFoundError is returned when the transform cannot find the place
// to insert its snippet.
type AnchorNotFoundError struct {
	Rule   string
	Path   string
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q not found in %s", e.Rule, e.Anchor, e.Path)
}

// IsNonFatal reports whether err leaves the run intact: the target is missing
// or could not be anchored, so only this one rule is skipped.
func IsNonFatal(err error) bool {
	var missing *MissingFileError
	var anchor *AnchorNotFoundError
	return errors.As(err, &missing) || errors.As(err, &anchor)
}

// Apply runs r against the filesystem behind p.
func Apply(p *fsprobe.Prober, r Rule) (Outcome, error) {
	content, err := p.ReadText(r.Target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Skipped, &MissingFileError{Rule: r.Name, Path: r.Target}
		}
		return Skipped, fmt.Errorf("%s: %w", r.Name, err)
	}

	if contains(content, r.Marker) {
		return AlreadyApplied, nil
	}

	patched, err := r.Transform(content)
	if err != nil {
		var anchor *AnchorNotFoundError
		if errors.As(err, &anchor) {
			anchor.Rule = r.Name
			anchor.Path = r.Target
		}
		return Skipped, err
	}

	if err := p.WriteText(r.Target, patched); err != nil {
		return Skipped, fmt.Errorf("%s: %w", r.Name, err)
	}
	return Applied, nil
}
