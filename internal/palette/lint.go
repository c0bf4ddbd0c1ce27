package palette

import (
	"fmt"
	"sort"

	"github.com/AvengeMedia/dankvscode/internal/vscode"
	"golang.org/x/exp/maps"
)

const MinEditorContrast = 4.5

type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

// Lint reports color values that VSCode cannot parse and a low contrast
// between the editor foreground and background.
func Lint(theme vscode.Theme) []Issue {
	var issues []Issue

	keys := maps.Keys(theme.Colors)
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := ParseHex(theme.Colors[key]); err != nil {
			issues = append(issues, Issue{Key: key, Message: fmt.Sprintf("invalid color %q", theme.Colors[key])})
		}
	}

	for i, rule := range theme.TokenColors {
		for _, attr := range []string{"foreground", "background"} {
			value, ok := rule.Settings[attr].(string)
			if !ok {
				continue
			}
			if _, err := ParseHex(value); err != nil {
				issues = append(issues, Issue{
					Key:     fmt.Sprintf("tokenColors[%d].%s", i, attr),
					Message: fmt.Sprintf("invalid color %q", value),
				})
			}
		}
	}

	fg, fgErr := ParseHex(theme.Colors["editor.foreground"])
	bg, bgErr := ParseHex(theme.Colors["editor.background"])
	if fgErr == nil && bgErr == nil {
		if ratio := ContrastRatio(fg, bg); ratio < MinEditorContrast {
			issues = append(issues, Issue{
				Key:     "editor.foreground",
				Message: fmt.Sprintf("contrast %.2f against editor.background is below %.1f", ratio, MinEditorContrast),
			})
		}
	}

	return issues
}
