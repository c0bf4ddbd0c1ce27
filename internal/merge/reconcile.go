package merge

import (
	"sort"

	"github.com/AvengeMedia/dankvscode/internal/vscode"
)

type slotID int

const unclaimed slotID = -1

type slot struct {
	name     string
	scopes   vscode.Scope
	settings vscode.Settings
}

// RuleSet holds token rules such that every scope selector is owned by
// exactly one rule. Rules live in slots with stable ids and the owner index
// is maintained across Apply calls.
type RuleSet struct {
	slots  []*slot
	owner  map[string]slotID
	global *slot
}

// NewRuleSet folds rules into an empty set in order, so a rule list that
// claims the same scope twice is normalized: the later settings overlay the
// earlier ones for that scope.
func NewRuleSet(rules []vscode.TokenRule) *RuleSet {
	rs := &RuleSet{owner: make(map[string]slotID)}
	for _, rule := range rules {
		rs.Apply(rule)
	}
	return rs
}

// Reconcile applies rule to existing and returns the resulting rule list.
// existing is not modified.
func Reconcile(existing []vscode.TokenRule, rule vscode.TokenRule) []vscode.TokenRule {
	rs := NewRuleSet(existing)
	rs.Apply(rule)
	return rs.Rules()
}

// Apply overlays rule's settings onto every scope it names. Rules owning a
// subset of those scopes are split so that no scope ends up in two rules.
func (rs *RuleSet) Apply(rule vscode.TokenRule) {
	scopes := rule.Scope.Normalize()
	if len(scopes) == 0 {
		rs.applyGlobal(rule)
		return
	}

	var order []slotID
	groups := make(map[slotID]map[string]struct{})
	var fresh vscode.Scope
	for _, sc := range scopes {
		id, ok := rs.owner[sc]
		if !ok {
			id = unclaimed
			fresh = append(fresh, sc)
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
			groups[id] = make(map[string]struct{})
		}
		groups[id][sc] = struct{}{}
	}

	for _, id := range order {
		if id == unclaimed {
			rs.add(rule.Name, fresh, overlay(nil, rule.Settings))
			continue
		}
		rs.split(id, groups[id], rule)
	}
}

func (rs *RuleSet) split(id slotID, hit map[string]struct{}, rule vscode.TokenRule) {
	s := rs.slots[id]

	var intersecting, remaining vscode.Scope
	for _, sc := range s.scopes {
		if _, ok := hit[sc]; ok {
			intersecting = append(intersecting, sc)
		} else {
			remaining = append(remaining, sc)
		}
	}

	merged := overlay(s.settings, rule.Settings)
	if len(remaining) == 0 {
		// fully covered, rewrite in place
		s.name = pickName(rule.Name, s.name)
		s.settings = merged
		return
	}

	s.scopes = remaining
	rs.add(pickName(rule.Name, s.name), intersecting, merged)
}

func (rs *RuleSet) add(name string, scopes vscode.Scope, settings vscode.Settings) {
	id := slotID(len(rs.slots))
	rs.slots = append(rs.slots, &slot{
		name:     name,
		scopes:   scopes.Clone(),
		settings: settings,
	})
	for _, sc := range scopes {
		rs.owner[sc] = id
	}
}

func (rs *RuleSet) applyGlobal(rule vscode.TokenRule) {
	if rs.global == nil {
		rs.global = &slot{name: rule.Name, settings: overlay(nil, rule.Settings)}
		return
	}
	rs.global.name = pickName(rule.Name, rs.global.name)
	rs.global.settings = overlay(rs.global.settings, rule.Settings)
}

// Rules flattens the set into a rule list. The editor-wide default rule, if
// any, comes first; the rest keep slot order.
func (rs *RuleSet) Rules() []vscode.TokenRule {
	out := make([]vscode.TokenRule, 0, len(rs.slots)+1)
	if rs.global != nil {
		out = append(out, vscode.TokenRule{
			Name:     rs.global.name,
			Settings: rs.global.settings.Clone(),
		})
	}
	for _, s := range rs.slots {
		out = append(out, vscode.TokenRule{
			Name:     s.name,
			Scope:    s.scopes.Clone(),
			Settings: s.settings.Clone(),
		})
	}
	return out
}

// Lookup returns the effective settings for a scope selector.
func (rs *RuleSet) Lookup(scope string) (vscode.Settings, bool) {
	id, ok := rs.owner[scope]
	if !ok {
		return nil, false
	}
	return rs.slots[id].settings.Clone(), true
}

// Scopes returns every owned scope selector, sorted.
func (rs *RuleSet) Scopes() []string {
	out := make([]string, 0, len(rs.owner))
	for sc := range rs.owner {
		out = append(out, sc)
	}
	sort.Strings(out)
	return out
}

func (rs *RuleSet) Len() int {
	n := len(rs.slots)
	if rs.global != nil {
		n++
	}
	return n
}
