package scaffold

import "github.com/stackup-dev/stackup/internal/patch"

// Template is a closed set of scaffolding presets. The unexported build
// method keeps implementations inside this package; adding a template means
// adding a type here and listing it in Templates.
type Template interface {
	ID() string
	Description() string
	build(s *session) error
}

// Template identifiers.
const (
	IDDefault       = "default"
	IDReact         = "react"
	IDReactFirebase = "react-firebase"
)

// Default creates the bare project root and its server directory.
type Default struct{}

// React adds a Vite React client with dependencies installed and the dev
// server set to open a browser.
type React struct{}

// ReactFirebase is React plus the Firebase client SDK and a git-ignored
// client/config directory for its credentials.
type ReactFirebase struct{}

var templates = []Template{Default{}, React{}, ReactFirebase{}}

// Templates returns the supported templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateIDs returns the supported template identifiers.
func TemplateIDs() []string {
	ids := make([]string, len(templates))
	for i, t := range templates {
		ids[i] = t.ID()
	}
	return ids
}

// LookupTemplate resolves id. An empty or unknown id is a *ValidationError
// that lists the supported identifiers.
func LookupTemplate(id string) (Template, error) {
	for _, t := range templates {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, &ValidationError{Field: "template", Value: id, Supported: TemplateIDs()}
}

func (Default) ID() string { return IDDefault }

func (Default) Description() string {
	return "Project root with an empty server/ directory"
}

func (Default) build(s *session) error {
	return s.createSkeleton()
}

func (React) ID() string { return IDReact }

func (React) Description() string {
	return "Vite + React client with dependencies installed and browser auto-open"
}

func (React) build(s *session) error {
	if err := s.createSkeleton(); err != nil {
		return err
	}
	if err := s.generateClient(); err != nil {
		return err
	}
	if err := s.installDependencies(); err != nil {
		return err
	}
	s.applyPatch(patch.ViteServerOpen(s.layout.Client))
	s.nextSteps()
	return nil
}

func (ReactFirebase) ID() string { return IDReactFirebase }

func (ReactFirebase) Description() string {
	return "React client plus the Firebase SDK and a git-ignored client/config directory"
}

func (ReactFirebase) build(s *session) error {
	if err := s.createSkeleton(); err != nil {
		return err
	}
	if err := s.generateClient(); err != nil {
		return err
	}
	if err := s.installDependencies(); err != nil {
		return err
	}
	s.applyPatch(patch.ViteServerOpen(s.layout.Client))
	s.applyPatch(patch.GitignoreConfigDir(s.layout.Client))
	if err := s.addPackage(s.settings.ClientSDK); err != nil {
		return err
	}
	if err := s.ensureConfigDir(); err != nil {
		return err
	}
	if err := s.writeFirebaseConfig(); err != nil {
		return err
	}
	s.result.SDK = s.settings.ClientSDK
	s.nextSteps()
	return nil
}
