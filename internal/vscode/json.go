package vscode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	fieldColors               = "colors"
	fieldTokenColors          = "tokenColors"
	fieldSemanticHighlighting = "semanticHighlighting"
	fieldSemanticTokenColors  = "semanticTokenColors"
)

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (t *Theme) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("theme must be a JSON object, got null")
	}

	*t = Theme{}
	for key, value := range raw {
		switch key {
		case fieldColors:
			if isNull(value) {
				continue
			}
			// null entries are the absent marker and never reach the model
			var colors map[string]*string
			if err := json.Unmarshal(value, &colors); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			t.Colors = make(map[string]string, len(colors))
			for k, v := range colors {
				if v != nil {
					t.Colors[k] = *v
				}
			}
		case fieldTokenColors:
			if isNull(value) {
				continue
			}
			var rules []TokenRule
			if err := json.Unmarshal(value, &rules); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if rules == nil {
				rules = []TokenRule{}
			}
			t.TokenColors = rules
		case fieldSemanticHighlighting:
			if isNull(value) {
				continue
			}
			var enabled bool
			if err := json.Unmarshal(value, &enabled); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			t.SemanticHighlighting = &enabled
		case fieldSemanticTokenColors:
			if isNull(value) {
				continue
			}
			var semantic map[string]any
			if err := json.Unmarshal(value, &semantic); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			t.SemanticTokenColors = semantic
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]json.RawMessage)
			}
			t.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}

	return nil
}

func (t Theme) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+4)
	for k, v := range t.Extra {
		out[k] = v
	}
	if t.Colors != nil {
		out[fieldColors] = t.Colors
	}
	if t.TokenColors != nil {
		out[fieldTokenColors] = t.TokenColors
	}
	if t.SemanticHighlighting != nil {
		out[fieldSemanticHighlighting] = *t.SemanticHighlighting
	}
	if t.SemanticTokenColors != nil {
		out[fieldSemanticTokenColors] = t.SemanticTokenColors
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either a single selector string or an array of
// selectors. A single string is one atomic selector: it is trimmed but never
// split on whitespace or commas.
func (s *Scope) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*s = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		single = strings.TrimSpace(single)
		if single == "" {
			*s = nil
			return nil
		}
		*s = Scope{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("scope must be a string or an array of strings: %w", err)
	}
	*s = many
	return nil
}

func (s Scope) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s Settings) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(s))
}
