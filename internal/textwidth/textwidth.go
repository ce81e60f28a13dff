// Package textwidth measures and fits plain cell text into terminal columns.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis is appended by Truncate when text does not fit.
const Ellipsis = "…"

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	if s == "" {
		return 0
	}
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += clusterWidth(g.Str())
	}
	return w
}

func clusterWidth(cluster string) int {
	return runewidth.StringWidth(cluster)
}

// Truncate cuts s to at most width cells without splitting a grapheme
// cluster. When s is cut the last cell is replaced by Ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(s) <= width {
		return s
	}
	limit := width - runewidth.StringWidth(Ellipsis)
	if limit < 0 {
		limit = 0
	}

	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := clusterWidth(g.Str())
		if used+cw > limit {
			break
		}
		sb.WriteString(g.Str())
		used += cw
	}
	if used+runewidth.StringWidth(Ellipsis) <= width {
		sb.WriteString(Ellipsis)
	}
	return sb.String()
}

// SingleLine folds line breaks and tabs into spaces so cell text always
// renders on one terminal row.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	r := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
	return r.Replace(s)
}
