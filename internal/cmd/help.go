package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderCombineHelp renders the help text for the combine command with lipgloss styling
func renderCombineHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Job file"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("meshcombine combine street-job.yaml"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Flags only"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("meshcombine combine --scene street.gltf --root House -o Combined/Houses"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Preview without writing"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("meshcombine combine street-job.yaml --dry-run --index-format 16"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Job file keys:"))
	b.WriteString("\n")

	keys := []struct {
		key  string
		desc string
	}{
		{"scene", "Source scene, relative to the job file"},
		{"root", "Object whose meshes are combined"},
		{"asset_root", "Asset directory (default: Assets)"},
		{"output_dir", "Existing directory below the asset root (default: Combined)"},
		{"index_format", "\"16\" or \"32\" (default: 32)"},
		{"secondary_uvs", "Generate lightmap UVs"},
		{"scene_output", "Write the scene with the result added"},
		{"logging", "level and file"},
	}

	maxWidth := 0
	for _, k := range keys {
		if len(k.key) > maxWidth {
			maxWidth = len(k.key)
		}
	}

	for _, k := range keys {
		padding := strings.Repeat(" ", maxWidth-len(k.key)+2)
		b.WriteString("  " + keyStyle.Render(k.key) + padding + commentStyle.Render(k.desc))
		b.WriteString("\n")
	}

	return b.String()
}
