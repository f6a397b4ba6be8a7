package tanaclip

import "strings"

// PasteHeader marks clipboard text as Tana Paste.
const PasteHeader = "%%tana%%"

// RenderPaste renders a node tree as Tana Paste text.
func RenderPaste(root *Node) string {
	var b strings.Builder
	b.WriteString(PasteHeader)
	b.WriteString("\n")
	writePasteNode(&b, root, 0)
	return b.String()
}

func writePasteNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	if n.IsField() {
		b.WriteString(indent + "- " + n.Name + "::")
		if len(n.Children) == 1 && len(n.Children[0].Children) == 0 {
			b.WriteString(" " + pasteValue(n.Children[0], true) + "\n")
			return
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			b.WriteString(indent + "  - " + pasteValue(c, true) + "\n")
			for _, gc := range c.Children {
				writePasteNode(b, gc, depth+2)
			}
		}
		return
	}

	b.WriteString(indent + "- " + pasteValue(n, false) + "\n")
	for _, c := range n.Children {
		writePasteNode(b, c, depth+1)
	}
}

// pasteValue renders a single non-field node inline. Tagged values inside a
// field are rendered as references to tagged entities.
func pasteValue(n *Node, inField bool) string {
	switch {
	case n.DataType == DataTypeDate:
		return "[[date:" + n.Name + "]]"
	case n.DataType == DataTypeURL:
		label := n.Description
		if label == "" {
			label = n.Name
		}
		return "[" + label + "](" + n.Name + ")"
	case inField && n.IsEntity():
		return "[[" + n.Name + pasteTags(n.Tags) + "]]"
	}
	return escapePaste(n.Name) + pasteTags(n.Tags)
}

// zeroWidthSpace separates characters Tana Paste would otherwise parse as
// syntax without changing how the text reads.
const zeroWidthSpace = "\u200b"

// escapePaste neutralizes field separators, references and leading tags in
// free text.
func escapePaste(s string) string {
	for _, seq := range []string{"::", "[["} {
		for strings.Contains(s, seq) {
			s = strings.ReplaceAll(s, seq, seq[:1]+zeroWidthSpace+seq[1:])
		}
	}
	if strings.HasPrefix(s, "#") {
		s = zeroWidthSpace + s
	}
	return s
}

// pasteTags renders tags as " #tag", bracketing multi-word tags.
func pasteTags(tags []string) string {
	var b strings.Builder
	for _, t := range tags {
		if t == "" {
			continue
		}
		if strings.ContainsAny(t, " \t") {
			b.WriteString(" #[[" + t + "]]")
		} else {
			b.WriteString(" #" + t)
		}
	}
	return b.String()
}
