package treegen

import (
	"fmt"

	"github.com/docfold/docfold/internal/doctree"
)

// Mutate produces an "executed" variant of a document: a deep copy with a
// pseudo-random mix of edits a code-execution pass would make: changed
// text, inserted and removed blocks, reordered siblings, and replaced
// subtrees carrying no provenance. The input is never modified.
func (g *Gen) Mutate(d *doctree.Document) *doctree.Document {
	out := doctree.CloneDocument(d)
	out.Blocks = g.mutateBlocks(out.Blocks)
	return out
}

func (g *Gen) mutateBlocks(blocks doctree.BlockList) doctree.BlockList {
	if len(blocks) == 0 {
		if g.rng.Intn(4) == 0 {
			return doctree.BlockList{g.generated()}
		}
		return blocks
	}

	switch g.rng.Intn(6) {
	case 0: // insert a generated block
		i := g.rng.Intn(len(blocks) + 1)
		blocks = append(blocks[:i], append(doctree.BlockList{g.generated()}, blocks[i:]...)...)
	case 1: // remove a block
		i := g.rng.Intn(len(blocks))
		blocks = append(blocks[:i], blocks[i+1:]...)
	case 2: // swap two blocks
		if len(blocks) > 1 {
			i, j := g.rng.Intn(len(blocks)), g.rng.Intn(len(blocks))
			blocks[i], blocks[j] = blocks[j], blocks[i]
		}
	case 3: // replace a block outright
		i := g.rng.Intn(len(blocks))
		blocks[i] = g.generated()
	}

	// Descend into a few children regardless of the structural edit above.
	for i := range blocks {
		if g.rng.Intn(2) == 0 {
			blocks[i] = g.mutateBlock(blocks[i])
		}
	}
	return blocks
}

func (g *Gen) mutateInlines(inlines doctree.InlineList) doctree.InlineList {
	if len(inlines) == 0 {
		if g.rng.Intn(4) == 0 {
			return doctree.InlineList{g.generatedInline()}
		}
		return inlines
	}

	switch g.rng.Intn(6) {
	case 0: // insert a generated inline
		i := g.rng.Intn(len(inlines) + 1)
		inlines = append(inlines[:i], append(doctree.InlineList{g.generatedInline()}, inlines[i:]...)...)
	case 1: // remove an inline
		i := g.rng.Intn(len(inlines))
		inlines = append(inlines[:i], inlines[i+1:]...)
	case 2: // swap two inlines
		if len(inlines) > 1 {
			i, j := g.rng.Intn(len(inlines)), g.rng.Intn(len(inlines))
			inlines[i], inlines[j] = inlines[j], inlines[i]
		}
	case 3: // replace an inline outright
		i := g.rng.Intn(len(inlines))
		inlines[i] = g.generatedInline()
	}

	for i := range inlines {
		if g.rng.Intn(2) == 0 {
			inlines[i] = g.mutateInline(inlines[i])
		}
	}
	return inlines
}

// generated mimics executor output: fresh content with nil SourceInfo.
func (g *Gen) generated() doctree.Block {
	switch g.rng.Intn(3) {
	case 0:
		return &doctree.RawBlock{Format: "html", Text: "<div>" + g.word() + "</div>"}
	case 1:
		return &doctree.CodeBlock{Text: g.word()}
	default:
		return &doctree.Paragraph{Inlines: doctree.InlineList{&doctree.Text{Text: g.word()}}}
	}
}

// generatedInline mimics executor output: fresh content with nil SourceInfo.
func (g *Gen) generatedInline() doctree.Inline {
	switch g.rng.Intn(3) {
	case 0:
		return &doctree.Code{Text: g.word()}
	case 1:
		return &doctree.Strong{Inlines: doctree.InlineList{&doctree.Text{Text: g.word()}}}
	default:
		return &doctree.Text{Text: g.word()}
	}
}

func (g *Gen) mutateInline(in doctree.Inline) doctree.Inline {
	switch n := in.(type) {
	case *doctree.Text:
		if g.rng.Intn(2) == 0 {
			n.Text = g.word()
		}
	case *doctree.Code:
		if g.rng.Intn(2) == 0 {
			n.Text = g.word()
		}
	case *doctree.Emph:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Strong:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Strikeout:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Quoted:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Span:
		if g.rng.Intn(3) == 0 {
			n.Attr = g.attr()
		}
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Link:
		if g.rng.Intn(3) == 0 {
			n.Target = "https://example.com/" + g.word()
		}
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Ins:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Del:
		n.Inlines = g.mutateInlines(n.Inlines)
	}
	return in
}

func (g *Gen) mutateBlock(b doctree.Block) doctree.Block {
	switch n := b.(type) {
	case *doctree.Paragraph:
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.Heading:
		if g.rng.Intn(3) == 0 {
			n.Level = 1 + g.rng.Intn(4)
		}
		n.Inlines = g.mutateInlines(n.Inlines)
	case *doctree.CodeBlock:
		if g.rng.Intn(2) == 0 {
			n.Text = g.word()
		}
	case *doctree.BlockQuote:
		n.Blocks = g.mutateBlocks(n.Blocks)
	case *doctree.Div:
		if g.rng.Intn(3) == 0 {
			n.Attr = g.attr()
		}
		n.Blocks = g.mutateBlocks(n.Blocks)
	case *doctree.BulletList:
		n.Items = g.mutateItems(n.Items)
	case *doctree.OrderedList:
		if g.rng.Intn(3) == 0 {
			n.Start = 1 + g.rng.Intn(9)
		}
		n.Items = g.mutateItems(n.Items)
	case *doctree.DefinitionList:
		for i := range n.Items {
			if g.rng.Intn(2) == 0 {
				n.Items[i].Definitions = g.mutateItems(n.Items[i].Definitions)
			}
		}
	case *doctree.Table:
		g.mutateTable(n)
	case *doctree.CustomBlock:
		g.mutateCustom(n)
	}
	return b
}

func (g *Gen) mutateItems(items []doctree.BlockList) []doctree.BlockList {
	switch g.rng.Intn(5) {
	case 0: // add item
		items = append(items, doctree.BlockList{g.generated()})
	case 1: // drop item
		if len(items) > 0 {
			i := g.rng.Intn(len(items))
			items = append(items[:i], items[i+1:]...)
		}
	case 2: // edit one item's blocks
		if len(items) > 0 {
			i := g.rng.Intn(len(items))
			items[i] = g.mutateBlocks(items[i])
		}
	}
	return items
}

func (g *Gen) mutateTable(t *doctree.Table) {
	if len(t.Body) > 0 && g.rng.Intn(2) == 0 {
		i := g.rng.Intn(len(t.Body))
		row := t.Body[i]
		if len(row.Cells) > 0 {
			j := g.rng.Intn(len(row.Cells))
			row.Cells[j].Blocks = g.mutateBlocks(row.Cells[j].Blocks)
		}
	}
	switch g.rng.Intn(4) {
	case 0: // append body row
		if len(t.Body) > 0 {
			cells := make([]doctree.TableCell, len(t.Body[0].Cells))
			for i := range cells {
				cells[i] = doctree.TableCell{Blocks: doctree.BlockList{g.generated()}}
			}
			t.Body = append(t.Body, doctree.TableRow{Cells: cells})
		}
	case 1: // drop body row
		if len(t.Body) > 1 {
			i := g.rng.Intn(len(t.Body))
			t.Body = append(t.Body[:i], t.Body[i+1:]...)
		}
	}
}

func (g *Gen) mutateCustom(c *doctree.CustomBlock) {
	switch g.rng.Intn(4) {
	case 0:
		c.Payload = []byte(fmt.Sprintf(`{"id":%d}`, g.rng.Intn(1000)))
	case 1: // drop a slot
		for name := range c.Slots {
			delete(c.Slots, name)
			break
		}
	case 2: // add a slot
		c.Slots["extra"] = doctree.Slot{Kind: doctree.SlotInlines, Inlines: g.Inlines(1, 0)}
	case 3: // rewrite a sequence slot
		if s, ok := c.Slots["body"]; ok && s.Kind == doctree.SlotBlocks {
			s.Blocks = g.mutateBlocks(s.Blocks)
			c.Slots["body"] = s
		}
	}
}
