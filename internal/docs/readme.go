// Package docs renders the command reference of README.md.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/keshon/agorabot/internal/command/help"
	"github.com/keshon/agorabot/pkg/cmd"
)

// Sections renders one markdown section per help category, in help order.
func Sections(commands []cmd.Command, prefix string) string {
	var buf bytes.Buffer
	current := "\x00"
	for _, c := range help.Sorted(commands) {
		if cat := help.Category(c); cat != current {
			if current != "\x00" {
				buf.WriteString("\n")
			}
			current = cat
			if cat == "" {
				cat = "Other"
			}
			fmt.Fprintf(&buf, "### %s\n\n", cat)
		}
		fmt.Fprintf(&buf, "- **%s** - %s\n", help.Line(c, prefix), c.Description())
	}
	return buf.String()
}

// Render executes tmpl with the field CommandSections.
func Render(tmpl string, commands []cmd.Command, prefix string) (string, error) {
	t, err := template.New("readme").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	data := struct {
		CommandSections string
	}{
		CommandSections: Sections(commands, prefix),
	}

	var out bytes.Buffer
	if err := t.Execute(&out, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return out.String(), nil
}

// UpdateReadme regenerates dir/README.md from dir/README.md.tmpl.
func UpdateReadme(dir string, registry *cmd.Registry, prefix string) error {
	tmpl, err := os.ReadFile(filepath.Join(dir, "README.md.tmpl"))
	if err != nil {
		return err
	}
	out, err := Render(string(tmpl), registry.GetAll(), prefix)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "README.md"), []byte(out), 0o644)
}
