package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tanaclip"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MinBlockLength is the length a block must exceed to be kept.
const MinBlockLength = 10

const (
	blockSelector    = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"
	excludedSelector = "script, style, nav, header, footer"
)

// skippedAtoms are never descended into by the fallback walk.
var skippedAtoms = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
}

// breakAtoms start and end a block in the fallback walk.
var breakAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Details: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

var (
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe       = regexp.MustCompile(`[ \t]+`)
	blankLineRe      = regexp.MustCompile(`\n\s*\n`)
)

// Content is the text selected from a page.
type Content struct {
	Blocks      []string
	HTML        string
	IsSelection bool
}

// SelectContent picks the content of doc: the user's selection when it
// yields any blocks, otherwise the article region.
func SelectContent(doc *goquery.Document, selectionHTML string) Content {
	if container := fragmentContainer(selectionHTML); container != nil {
		if blocks := extractFrom(container); len(blocks) > 0 {
			return Content{Blocks: blocks, HTML: innerHTML(container), IsSelection: true}
		}
	}
	region := SelectRegion(doc)
	return Content{Blocks: extractFrom(region), HTML: outerHTML(region)}
}

// ExtractBlocks returns the text blocks of region, or of the selection
// fragment when one is given. Blocks are whitespace-normalized, in
// document order, and longer than MinBlockLength.
func ExtractBlocks(region *goquery.Selection, selectionHTML string) []string {
	if container := fragmentContainer(selectionHTML); container != nil {
		return extractFrom(container)
	}
	return extractFrom(region)
}

func extractFrom(container *goquery.Selection) []string {
	if container == nil || container.Length() == 0 {
		return []string{}
	}
	if blocks := elementBlocks(container); len(blocks) > 0 {
		return blocks
	}
	return walkBlocks(container)
}

// elementBlocks collects the text of block elements. An element holding
// other block elements contributes only its own text; the nested blocks
// are collected on their own.
func elementBlocks(container *goquery.Selection) []string {
	blocks := []string{}
	container.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(excludedSelector).Length() > 0 {
			return
		}
		text := textOf(s)
		if s.Find(blockSelector).Length() > 0 {
			text = ownText(s)
		}
		if longEnough(text) {
			blocks = append(blocks, text)
		}
	})
	return blocks
}

// ownText returns the text of s outside its nested block elements.
func ownText(s *goquery.Selection) string {
	clone := s.Clone()
	clone.Find(blockSelector).Remove()
	return textOf(clone)
}

// walkBlocks is the fallback for markup without block elements. It walks
// the raw nodes in document order, breaking blocks at block-level
// elements and blank lines.
func walkBlocks(container *goquery.Selection) []string {
	var b strings.Builder
	for _, n := range container.Nodes {
		walkNode(&b, n)
	}

	text := strings.ReplaceAll(b.String(), "\r", "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")

	blocks := []string{}
	for _, part := range blankLineRe.Split(text, -1) {
		if block := tanaclip.NormalizeWhitespace(part); longEnough(block) {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func walkNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteByte(' ')
		}
		return
	case html.ElementNode:
		if skippedAtoms[n.DataAtom] {
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	brk := n.Type == html.ElementNode && breakAtoms[n.DataAtom]
	if brk {
		b.WriteString("\n\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNode(b, c)
	}
	if brk {
		b.WriteString("\n\n")
	}
}

func longEnough(text string) bool {
	return utf8.RuneCountInString(text) > MinBlockLength
}

func outerHTML(sel *goquery.Selection) string {
	s, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return s
}

func innerHTML(sel *goquery.Selection) string {
	s, err := sel.Html()
	if err != nil {
		return ""
	}
	return s
}
