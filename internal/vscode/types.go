package vscode

import (
	"encoding/json"
	"strings"
)

const SchemaURL = "vscode://schemas/color-theme"

// Theme is a VSCode color theme document. A nil map, slice or pointer field
// means the field is absent from the document, which matters when the theme
// is used as an override fragment.
type Theme struct {
	Colors               map[string]string
	TokenColors          []TokenRule
	SemanticHighlighting *bool
	SemanticTokenColors  map[string]any

	// Extra holds every other top-level field ($schema, name, type, ...)
	// verbatim.
	Extra map[string]json.RawMessage
}

type TokenRule struct {
	Name     string   `json:"name,omitempty"`
	Scope    Scope    `json:"scope,omitempty"`
	Settings Settings `json:"settings"`
}

// Scope is the set of scope selectors a rule applies to. A rule with an
// empty scope is the editor-wide default rule.
type Scope []string

// Settings maps style attributes (foreground, background, fontStyle) to
// values. A nil value marks the attribute for deletion when the settings are
// overlaid onto another rule.
type Settings map[string]any

func (t Theme) ExtraString(key string) (string, bool) {
	raw, ok := t.Extra[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (t *Theme) SetExtraString(key, value string) {
	raw, _ := json.Marshal(value)
	t.SetExtraRaw(key, raw)
}

func (t *Theme) SetExtraRaw(key string, raw json.RawMessage) {
	if t.Extra == nil {
		t.Extra = make(map[string]json.RawMessage)
	}
	t.Extra[key] = append(json.RawMessage(nil), raw...)
}

func (s Scope) Contains(scope string) bool {
	for _, sc := range s {
		if sc == scope {
			return true
		}
	}
	return false
}

// Normalize trims every selector, drops empty ones and removes duplicates
// while keeping first-seen order.
func (s Scope) Normalize() Scope {
	if len(s) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(s))
	out := make(Scope, 0, len(s))
	for _, sc := range s {
		sc = strings.TrimSpace(sc)
		if sc == "" {
			continue
		}
		if _, dup := seen[sc]; dup {
			continue
		}
		seen[sc] = struct{}{}
		out = append(out, sc)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (r TokenRule) IsGlobal() bool {
	return len(r.Scope.Normalize()) == 0
}
