// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"
)

// ZshFzf contains the zsh shell integration script with fzf support.
//
//go:embed zsh-fzf.sh
var ZshFzf string

// Render renders the integration script so it invokes binary.
func Render(binary string) (string, error) {
	tmpl, err := template.New("zsh-fzf").Parse(ZshFzf)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Binary": filepath.ToSlash(binary),
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
