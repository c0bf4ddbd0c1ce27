package vscode

import "encoding/json"

// Clone returns a deep copy of the theme. Absent fields stay absent.
func (t Theme) Clone() Theme {
	out := Theme{
		Colors:              cloneColors(t.Colors),
		SemanticTokenColors: cloneMap(t.SemanticTokenColors),
	}
	if t.TokenColors != nil {
		out.TokenColors = make([]TokenRule, len(t.TokenColors))
		for i, rule := range t.TokenColors {
			out.TokenColors[i] = rule.Clone()
		}
	}
	if t.SemanticHighlighting != nil {
		enabled := *t.SemanticHighlighting
		out.SemanticHighlighting = &enabled
	}
	if t.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func (r TokenRule) Clone() TokenRule {
	return TokenRule{
		Name:     r.Name,
		Scope:    r.Scope.Clone(),
		Settings: r.Settings.Clone(),
	}
}

func (s Scope) Clone() Scope {
	if s == nil {
		return nil
	}
	return append(Scope(nil), s...)
}

func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	return Settings(cloneMap(s))
}

func cloneColors(colors map[string]string) map[string]string {
	if colors == nil {
		return nil
	}
	out := make(map[string]string, len(colors))
	for k, v := range colors {
		out[k] = v
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a decoded JSON value.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Settings:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return val
	}
}
