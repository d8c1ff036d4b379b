package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command/commandtest"
	"github.com/keshon/agorabot/internal/command/crystalball"
	"github.com/keshon/agorabot/internal/command/roll"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/pkg/cmd"
)

func registry(t *testing.T) *cmd.Registry {
	s := commandtest.New()
	r := cmd.NewRegistry()
	require.NoError(t, r.Register(crystalball.New(s, nil)))
	require.NoError(t, r.Register(roll.NewChoose(s, nil)))
	return r
}

func TestSections(t *testing.T) {
	out := Sections(registry(t).GetAll(), "!")

	assert.Contains(t, out, "### "+config.CategoryGameplay+"\n\n")
	assert.Contains(t, out, "- **`!crystalball _ | [statement: String]`** - ")
	assert.Contains(t, out, "`!choose ")
}

func TestUpdateReadme(t *testing.T) {
	dir := t.TempDir()
	tmpl := "# Bot\n\n{{.CommandSections}}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md.tmpl"), []byte(tmpl), 0o644))

	require.NoError(t, UpdateReadme(dir, registry(t), "!"))

	out, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Bot\n\n### ")
	assert.Contains(t, string(out), "crystalball")
}

func TestRenderBadTemplate(t *testing.T) {
	_, err := Render("{{.Missing", nil, "!")
	assert.Error(t, err)
}
