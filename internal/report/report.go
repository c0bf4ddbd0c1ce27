package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AvengeMedia/dankvscode/internal/merge"
	"github.com/AvengeMedia/dankvscode/internal/palette"
	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/exp/maps"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9dcbfb"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#abb2bf"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0d99d"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ed88c"))
)

// Summary renders a human readable overview of a theme: field counts, the
// effective settings of every token scope and any lint issues.
func Summary(title string, theme vscode.Theme) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	name, _ := theme.ExtraString("name")
	typ, _ := theme.ExtraString("type")
	rs := merge.NewRuleSet(theme.TokenColors)

	fields := []struct {
		label string
		value string
	}{
		{"Name", orDash(name)},
		{"Type", orDash(typ)},
		{"Colors", fmt.Sprintf("%d", len(theme.Colors))},
		{"Token rules", fmt.Sprintf("%d (%d after reconciling)", len(theme.TokenColors), rs.Len())},
		{"Scopes", fmt.Sprintf("%d", len(rs.Scopes()))},
		{"Semantic tokens", fmt.Sprintf("%d", len(theme.SemanticTokenColors))},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", f.label)), f.value)
	}

	if scopes := rs.Scopes(); len(scopes) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(labelStyle).
			Headers("Scope", "Settings")
		for _, sc := range scopes {
			settings, _ := rs.Lookup(sc)
			t.Row(sc, formatSettings(settings))
		}
		b.WriteString("\n")
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	issues := palette.Lint(theme)
	if len(issues) == 0 {
		b.WriteString(okStyle.Render("✓ No color issues"))
		b.WriteString("\n")
		return b.String()
	}
	for _, issue := range issues {
		b.WriteString(warnStyle.Render("⚠ " + issue.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func formatSettings(settings vscode.Settings) string {
	keys := maps.Keys(settings)
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, settings[k]))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
