package patch

import (
	"path/filepath"
	"strings"
)

// File names produced by the generator inside the client directory.
const (
	ViteConfigFile = "vite.config.js"
	GitignoreFile  = ".gitignore"
	ConfigDir      = "config"
)

const serverMarker = "server:"

// serverSnippet is inserted as the first property of the exported config.
const serverSnippet = `  server: {
    open: true,
  },
`

// viteAnchors are tried in order; the snippet goes right after the match.
var viteAnchors = []string{
	"defineConfig({",
	"export default {",
}

const gitignoreSection = `# stackup: local configuration
/` + ConfigDir + `
`

// ViteServerOpen returns the rule that makes the Vite dev server open a
// browser on start.
func ViteServerOpen(clientDir string) Rule {
	return Rule{
		Name:      "vite dev-server auto-open",
		Target:    filepath.Join(clientDir, ViteConfigFile),
		Marker:    serverMarker,
		Transform: insertServerBlock,
	}
}

// GitignoreConfigDir returns the rule that keeps the client's config
// directory out of version control.
func GitignoreConfigDir(clientDir string) Rule {
	return Rule{
		Name:      "gitignore config directory",
		Target:    filepath.Join(clientDir, GitignoreFile),
		Marker:    ConfigDir,
		Transform: appendGitignoreSection,
	}
}

func insertServerBlock(content string) (string, error) {
	for _, anchor := range viteAnchors {
		idx := strings.Index(content, anchor)
		if idx < 0 {
			continue
		}
		end := idx + len(anchor)
		rest := content[end:]
		nl := strings.IndexByte(rest, '\n')
		if nl >= 0 && strings.TrimSpace(rest[:nl]) == "" {
			at := end + nl + 1
			return content[:at] + serverSnippet + content[at:], nil
		}
		if strings.TrimSpace(rest) == "" {
			return content[:end] + "\n" + serverSnippet, nil
		}
		// The object continues on the anchor's line; break it so the snippet
		// stays inside the braces.
		return content[:end] + "\n" + serverSnippet + "  " + strings.TrimLeft(rest, " \t"), nil
	}
	return content, &AnchorNotFoundError{Anchor: viteAnchors[0]}
}

func appendGitignoreSection(content string) (string, error) {
	var b strings.Builder
	b.WriteString(content)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	if len(content) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(gitignoreSection)
	return b.String(), nil
}

func contains(content, marker string) bool {
	return marker != "" && strings.Contains(content, marker)
}
