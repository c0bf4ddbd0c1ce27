package merge

import "github.com/AvengeMedia/dankvscode/internal/vscode"

// overlay applies over onto base attribute by attribute. Attributes set to
// nil in over are removed from the result. Neither argument is modified.
func overlay(base, over vscode.Settings) vscode.Settings {
	out := make(vscode.Settings, len(base)+len(over))
	for k, v := range base {
		if v == nil {
			continue
		}
		out[k] = vscode.CloneValue(v)
	}
	for k, v := range over {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = vscode.CloneValue(v)
	}
	return out
}

func pickName(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
