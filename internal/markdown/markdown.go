// Package markdown parses Markdown source into a document tree.
//
// It stands in for the toolchain's full parser at the engine boundary and is
// the only component that constructs SourceInfo values: every parsed node
// gets a {"offset":N,"line":N} handle pointing back into the source text.
// The engine itself only ever copies these handles.
package markdown

import (
	"fmt"
	"os"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/docfold/docfold/internal/doctree"
)

// Parse converts Markdown source into a document tree.
func Parse(src []byte) (*doctree.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	root := md.Parser().Parse(text.NewReader(src))

	p := &parser{src: src, lineStarts: buildLineIndex(src)}
	blocks, err := p.blocks(root)
	if err != nil {
		return nil, err
	}
	return &doctree.Document{Blocks: blocks}, nil
}

// ParseFile reads and parses a Markdown file.
func ParseFile(path string) (*doctree.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return Parse(src)
}

type parser struct {
	src        []byte
	lineStarts []int
}

func buildLineIndex(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// srcAt builds the provenance handle for a node starting at the given byte
// offset. A negative offset means the position is unknown and yields nil
// (synthetic content).
func (p *parser) srcAt(offset int) doctree.SourceInfo {
	if offset < 0 {
		return nil
	}
	line := sort.SearchInts(p.lineStarts, offset+1)
	return doctree.SourceInfo(fmt.Sprintf(`{"offset":%d,"line":%d}`, offset, line))
}

// blockOffset returns the starting byte offset of a block node, or -1.
func (p *parser) blockOffset(n ast.Node) int {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start
	}
	// Container blocks have no lines of their own; use the first child's.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := p.blockOffset(c); off >= 0 {
			return off
		}
	}
	return -1
}

func (p *parser) blocks(parent ast.Node) (doctree.BlockList, error) {
	var out doctree.BlockList
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b, err := p.block(n)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (p *parser) block(n ast.Node) (doctree.Block, error) {
	src := p.srcAt(p.blockOffset(n))

	switch node := n.(type) {
	case *ast.Heading:
		inlines, err := p.inlines(node)
		if err != nil {
			return nil, err
		}
		return &doctree.Heading{Src: src, Level: node.Level, Inlines: inlines}, nil

	case *ast.Paragraph, *ast.TextBlock:
		inlines, err := p.inlines(n)
		if err != nil {
			return nil, err
		}
		return &doctree.Paragraph{Src: src, Inlines: inlines}, nil

	case *ast.FencedCodeBlock:
		attr := doctree.Attr{}
		if lang := node.Language(p.src); lang != nil {
			attr.Classes = []string{string(lang)}
		}
		return &doctree.CodeBlock{Src: src, Attr: attr, Text: p.nodeText(node)}, nil

	case *ast.CodeBlock:
		return &doctree.CodeBlock{Src: src, Text: p.nodeText(node)}, nil

	case *ast.HTMLBlock:
		return &doctree.RawBlock{Src: src, Format: "html", Text: p.nodeText(node)}, nil

	case *ast.Blockquote:
		blocks, err := p.blocks(node)
		if err != nil {
			return nil, err
		}
		return &doctree.BlockQuote{Src: src, Blocks: blocks}, nil

	case *ast.List:
		items, err := p.listItems(node)
		if err != nil {
			return nil, err
		}
		if node.IsOrdered() {
			return &doctree.OrderedList{Src: src, Start: node.Start, Tight: node.IsTight, Items: items}, nil
		}
		return &doctree.BulletList{Src: src, Tight: node.IsTight, Items: items}, nil

	case *ast.ThematicBreak:
		return &doctree.HorizontalRule{Src: src}, nil

	case *east.Table:
		return p.table(node, src)

	default:
		// Unhandled block kinds are dropped rather than failing the parse.
		return nil, nil
	}
}

func (p *parser) listItems(list *ast.List) ([]doctree.BlockList, error) {
	var items []doctree.BlockList
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		blocks, err := p.blocks(item)
		if err != nil {
			return nil, err
		}
		items = append(items, blocks)
	}
	return items, nil
}

func (p *parser) table(node *east.Table, src doctree.SourceInfo) (doctree.Block, error) {
	table := &doctree.Table{Src: src}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		cells, err := p.tableCells(row)
		if err != nil {
			return nil, err
		}
		if _, isHeader := row.(*east.TableHeader); isHeader {
			table.Head = append(table.Head, doctree.TableRow{Cells: cells})
		} else {
			table.Body = append(table.Body, doctree.TableRow{Cells: cells})
		}
	}
	return table, nil
}

func (p *parser) tableCells(row ast.Node) ([]doctree.TableCell, error) {
	var cells []doctree.TableCell
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cell, ok := c.(*east.TableCell)
		if !ok {
			continue
		}
		inlines, err := p.inlines(cell)
		if err != nil {
			return nil, err
		}
		var blocks doctree.BlockList
		if len(inlines) > 0 {
			blocks = doctree.BlockList{&doctree.Paragraph{Src: p.srcAt(p.blockOffset(cell)), Inlines: inlines}}
		}
		cells = append(cells, doctree.TableCell{Align: alignName(cell.Alignment), Blocks: blocks})
	}
	return cells, nil
}

func alignName(a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return "left"
	case east.AlignRight:
		return "right"
	case east.AlignCenter:
		return "center"
	default:
		return ""
	}
}

func (p *parser) inlines(parent ast.Node) (doctree.InlineList, error) {
	var out doctree.InlineList
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		ins, err := p.inline(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ins...)
	}
	return out, nil
}

// inline may return more than one node: a text run with a trailing line
// break expands to Text plus LineBreak.
func (p *parser) inline(n ast.Node) (doctree.InlineList, error) {
	switch node := n.(type) {
	case *ast.Text:
		src := p.srcAt(node.Segment.Start)
		var out doctree.InlineList
		if value := node.Segment.Value(p.src); len(value) > 0 {
			out = append(out, &doctree.Text{Src: src, Text: string(value)})
		}
		if node.HardLineBreak() {
			out = append(out, &doctree.LineBreak{Hard: true})
		} else if node.SoftLineBreak() {
			out = append(out, &doctree.LineBreak{})
		}
		return out, nil

	case *ast.String:
		return doctree.InlineList{&doctree.Text{Text: string(node.Value)}}, nil

	case *ast.Emphasis:
		inlines, err := p.inlines(node)
		if err != nil {
			return nil, err
		}
		src := p.inlineSrc(node)
		if node.Level >= 2 {
			return doctree.InlineList{&doctree.Strong{Src: src, Inlines: inlines}}, nil
		}
		return doctree.InlineList{&doctree.Emph{Src: src, Inlines: inlines}}, nil

	case *east.Strikethrough:
		inlines, err := p.inlines(node)
		if err != nil {
			return nil, err
		}
		return doctree.InlineList{&doctree.Strikeout{Src: p.inlineSrc(node), Inlines: inlines}}, nil

	case *ast.CodeSpan:
		return doctree.InlineList{&doctree.Code{Src: p.inlineSrc(node), Text: string(node.Text(p.src))}}, nil

	case *ast.Link:
		inlines, err := p.inlines(node)
		if err != nil {
			return nil, err
		}
		return doctree.InlineList{&doctree.Link{
			Src:     p.inlineSrc(node),
			Target:  string(node.Destination),
			Title:   string(node.Title),
			Inlines: inlines,
		}}, nil

	case *ast.Image:
		inlines, err := p.inlines(node)
		if err != nil {
			return nil, err
		}
		return doctree.InlineList{&doctree.Image{
			Src:     p.inlineSrc(node),
			Target:  string(node.Destination),
			Title:   string(node.Title),
			Inlines: inlines,
		}}, nil

	case *ast.AutoLink:
		url := string(node.URL(p.src))
		return doctree.InlineList{&doctree.Link{
			Src:     p.inlineSrc(node),
			Target:  url,
			Inlines: doctree.InlineList{&doctree.Text{Text: string(node.Label(p.src))}},
		}}, nil

	case *ast.RawHTML:
		var value []byte
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			value = append(value, seg.Value(p.src)...)
		}
		return doctree.InlineList{&doctree.Text{Text: string(value)}}, nil

	default:
		return nil, nil
	}
}

// inlineSrc derives a provenance handle from the first text descendant of an
// inline container.
func (p *parser) inlineSrc(n ast.Node) doctree.SourceInfo {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return p.srcAt(t.Segment.Start)
		}
		if src := p.inlineSrc(c); src != nil {
			return src
		}
	}
	return nil
}

// nodeText joins the source lines a leaf block spans.
func (p *parser) nodeText(n ast.Node) string {
	var buf []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf = append(buf, line.Value(p.src)...)
	}
	return string(buf)
}
