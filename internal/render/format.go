package render

import "strings"

// Glyphs are the fixed-width tokens placed before each label.
type Glyphs struct {
	Indent    string
	MoreAbove string
	MoreBelow string
	MoreBoth  string
}

// DefaultGlyphs draws a vertical connector per depth level and arrows at
// sibling window boundaries.
var DefaultGlyphs = Glyphs{
	Indent:    "│  ",
	MoreAbove: "▲  ",
	MoreBelow: "▼  ",
	MoreBoth:  "◆  ",
}

// Prefix returns the indentation for l. A boundary marker replaces the
// token of the line's own depth level; at depth zero it is prepended.
func (g Glyphs) Prefix(l Line) string {
	marker := g.marker(l)
	if l.Depth == 0 {
		return marker
	}
	var b strings.Builder
	for d := 0; d < l.Depth-1; d++ {
		b.WriteString(g.Indent)
	}
	if marker == "" {
		b.WriteString(g.Indent)
	} else {
		b.WriteString(marker)
	}
	return b.String()
}

func (g Glyphs) marker(l Line) string {
	switch {
	case l.MoreAbove && l.MoreBelow:
		return g.MoreBoth
	case l.MoreAbove:
		return g.MoreAbove
	case l.MoreBelow:
		return g.MoreBelow
	}
	return ""
}

// Format renders lines as plain text, one row per line. The selected row is
// prefixed with "> " and every other row with two spaces.
func Format(lines []Line, g Glyphs) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.Selected {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(g.Prefix(l))
		b.WriteString(l.Label)
		if l.Pruned {
			b.WriteString(" …")
		}
	}
	return b.String()
}
