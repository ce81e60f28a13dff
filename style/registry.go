// Package style provides a per-instance registry of layout rules addressed by
// logical key.
//
// Rules are lipgloss styles. Components update or remove a rule by key
// (for example "col-3-width") and the renderer resolves rules by key at
// render time, so a width or highlight change never requires rebuilding the
// rendered rows.
package style

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Registry holds the rules of one grid instance. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	rules map[string]lipgloss.Style
	// version increases whenever a rule is set or removed.
	version uint64
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]lipgloss.Style)}
}

// Set creates or replaces the rule stored under key.
func (r *Registry) Set(key string, st lipgloss.Style) {
	r.rules[key] = st
	r.version++
}

// Update applies fn to the rule under key (a fresh style when absent) and
// stores the result.
func (r *Registry) Update(key string, fn func(lipgloss.Style) lipgloss.Style) {
	st, ok := r.rules[key]
	if !ok {
		st = lipgloss.NewStyle()
	}
	r.Set(key, fn(st))
}

// Get returns the rule under key.
func (r *Registry) Get(key string) (lipgloss.Style, bool) {
	st, ok := r.rules[key]
	return st, ok
}

// Has reports whether a rule exists under key.
func (r *Registry) Has(key string) bool {
	_, ok := r.rules[key]
	return ok
}

// Remove deletes the rule under key. Removing an absent key is a no-op.
func (r *Registry) Remove(key string) {
	if _, ok := r.rules[key]; !ok {
		return
	}
	delete(r.rules, key)
	r.version++
}

// Compose layers the rules under keys onto base. Later keys win; absent keys
// are skipped.
func (r *Registry) Compose(base lipgloss.Style, keys ...string) lipgloss.Style {
	out := base
	for _, k := range keys {
		if st, ok := r.rules[k]; ok {
			out = st.Inherit(out)
		}
	}
	return out
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.rules))
	for k := range r.rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int { return len(r.rules) }

func (r *Registry) Version() uint64 { return r.version }

// Clear drops every rule.
func (r *Registry) Clear() {
	if len(r.rules) == 0 {
		return
	}
	r.rules = make(map[string]lipgloss.Style)
	r.version++
}

// Rule keys used by the grid.

func ColumnWidthKey(colIndex int) string { return fmt.Sprintf("col-%d-width", colIndex) }

func ColumnAlignKey(colIndex int) string { return fmt.Sprintf("col-%d-align", colIndex) }

func HeaderWidthKey(colIndex int) string { return fmt.Sprintf("header-%d-width", colIndex) }

func RowHighlightKey(rowIndex int) string { return fmt.Sprintf("row-%d-highlight", rowIndex) }

func RowUnhighlightKey(rowIndex int) string { return fmt.Sprintf("row-%d-unhighlight", rowIndex) }

const BodyHighlightAllKey = "body-highlight-all"
