// Package merge combines a base VSCode theme with override fragments.
//
// Two strategies exist. Overwrite replaces whole top-level fields. DeepMerge
// merges colors key by key and reconciles token rules scope by scope through
// a RuleSet.
package merge

import (
	"fmt"
	"strings"

	"github.com/AvengeMedia/dankvscode/internal/vscode"
)

type Strategy string

const (
	StrategyDeep      Strategy = "deep"
	StrategyOverwrite Strategy = "overwrite"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyDeep:
		return StrategyDeep, nil
	case StrategyOverwrite:
		return StrategyOverwrite, nil
	default:
		return "", fmt.Errorf("unknown merge strategy: %s (must be 'deep' or 'overwrite')", s)
	}
}

func (s Strategy) Merge(base vscode.Theme, sources ...vscode.Theme) vscode.Theme {
	if s == StrategyOverwrite {
		return Overwrite(base, sources...)
	}
	return DeepMerge(base, sources...)
}

// Overwrite applies sources left to right onto a copy of base. Each of
// colors, tokenColors, semanticHighlighting and semanticTokenColors present
// on a source replaces the accumulated field wholesale. Other fields are
// left alone.
func Overwrite(base vscode.Theme, sources ...vscode.Theme) vscode.Theme {
	acc := base.Clone()
	for _, src := range sources {
		src = src.Clone()
		if src.Colors != nil {
			acc.Colors = src.Colors
		}
		if src.TokenColors != nil {
			acc.TokenColors = src.TokenColors
		}
		if src.SemanticHighlighting != nil {
			acc.SemanticHighlighting = src.SemanticHighlighting
		}
		if src.SemanticTokenColors != nil {
			acc.SemanticTokenColors = src.SemanticTokenColors
		}
	}
	return acc
}

// DeepMerge folds sources left to right onto base. Colors and semantic token
// colors merge key by key, token rules merge scope by scope, and any other
// field on a source replaces the accumulated one. The base's token rules are
// indexed once and every source is applied to that same RuleSet, so the
// result never has two rules sharing a scope even when base did.
func DeepMerge(base vscode.Theme, sources ...vscode.Theme) vscode.Theme {
	acc := base.Clone()

	var rs *RuleSet
	if acc.TokenColors != nil || hasTokenColors(sources) {
		rs = NewRuleSet(acc.TokenColors)
	}

	for _, src := range sources {
		deepMergeOne(&acc, src, rs)
	}

	if rs != nil {
		acc.TokenColors = rs.Rules()
	}
	return acc
}

func hasTokenColors(sources []vscode.Theme) bool {
	for _, src := range sources {
		if src.TokenColors != nil {
			return true
		}
	}
	return false
}

// deepMergeOne merges src into acc, which must already be a private copy.
// Token rules go to rs instead of acc.TokenColors.
func deepMergeOne(acc *vscode.Theme, src vscode.Theme, rs *RuleSet) {
	if src.Colors != nil {
		if acc.Colors == nil {
			acc.Colors = make(map[string]string, len(src.Colors))
		}
		for k, v := range src.Colors {
			acc.Colors[k] = v
		}
	}

	for _, rule := range src.TokenColors {
		rs.Apply(rule)
	}

	if src.SemanticTokenColors != nil {
		if acc.SemanticTokenColors == nil {
			acc.SemanticTokenColors = make(map[string]any, len(src.SemanticTokenColors))
		}
		for k, v := range src.SemanticTokenColors {
			if v == nil {
				continue
			}
			acc.SemanticTokenColors[k] = vscode.CloneValue(v)
		}
	}

	if src.SemanticHighlighting != nil {
		enabled := *src.SemanticHighlighting
		acc.SemanticHighlighting = &enabled
	}

	for k, v := range src.Extra {
		acc.SetExtraRaw(k, v)
	}
}
