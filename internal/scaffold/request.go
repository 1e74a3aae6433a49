package scaffold

import (
	"fmt"
	"path/filepath"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Request is a validated scaffolding request.
type Request struct {
	ProjectName string
	Template    Template
}

// NewRequest validates the template identifier and project name.
func NewRequest(projectName, templateID string) (Request, error) {
	tmpl, err := LookupTemplate(templateID)
	if err != nil {
		return Request{}, err
	}
	if err := validateName(projectName); err != nil {
		return Request{}, err
	}
	return Request{ProjectName: projectName, Template: tmpl}, nil
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project name"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{
			Field:  "project name",
			Value:  name,
			Reason: "must match pattern [A-Za-z0-9][A-Za-z0-9._-]*",
		}
	}
	return nil
}

// Layout holds the absolute paths of a project tree.
type Layout struct {
	Root   string
	Server string
	Client string
}

// Directory names inside the project root.
const (
	ServerDir = "server"
	ClientDir = "client"
)

// NewLayout derives the project paths from baseDir and the project name.
func NewLayout(baseDir, projectName string) (Layout, error) {
	root, err := filepath.Abs(filepath.Join(baseDir, projectName))
	if err != nil {
		return Layout{}, fmt.Errorf("resolving project path: %w", err)
	}
	return Layout{
		Root:   root,
		Server: filepath.Join(root, ServerDir),
		Client: filepath.Join(root, ClientDir),
	}, nil
}
