// Package treegen builds deterministic pseudo-random document trees and
// mutated variants of them for the engine's property tests. The same seed
// always yields the same tree, so failures reproduce from the logged seed
// alone.
package treegen

import (
	"fmt"
	"math/rand"

	"github.com/docfold/docfold/internal/doctree"
)

// Gen is a seeded document generator. Not safe for concurrent use; tests
// create one per seed.
type Gen struct {
	rng  *rand.Rand
	next int
}

// New creates a generator for the given seed.
func New(seed int64) *Gen {
	return &Gen{rng: rand.New(rand.NewSource(seed))}
}

// Document generates a document with the given number of top-level blocks.
func (g *Gen) Document(blocks int) *doctree.Document {
	return &doctree.Document{Blocks: g.Blocks(blocks, 2)}
}

// Blocks generates a block sequence with the given length and nesting depth.
func (g *Gen) Blocks(n, depth int) doctree.BlockList {
	out := make(doctree.BlockList, n)
	for i := range out {
		out[i] = g.Block(depth)
	}
	return out
}

// Block generates one block. Depth bounds container nesting; at zero only
// leaf-ish blocks are produced.
func (g *Gen) Block(depth int) doctree.Block {
	if depth <= 0 {
		switch g.rng.Intn(3) {
		case 0:
			return &doctree.CodeBlock{Src: g.src(), Text: g.word()}
		case 1:
			return &doctree.HorizontalRule{Src: g.src()}
		default:
			return g.paragraph()
		}
	}

	switch g.rng.Intn(10) {
	case 0:
		return &doctree.Heading{Src: g.src(), Level: 1 + g.rng.Intn(4), Inlines: g.Inlines(1+g.rng.Intn(3), 0)}
	case 1:
		return &doctree.CodeBlock{Src: g.src(), Attr: g.attr(), Text: g.word()}
	case 2:
		return &doctree.BlockQuote{Src: g.src(), Blocks: g.Blocks(1+g.rng.Intn(2), depth-1)}
	case 3:
		return &doctree.Div{Src: g.src(), Attr: g.attr(), Blocks: g.Blocks(1+g.rng.Intn(2), depth-1)}
	case 4:
		return &doctree.BulletList{Src: g.src(), Tight: g.rng.Intn(2) == 0, Items: g.items(depth - 1)}
	case 5:
		return &doctree.OrderedList{Src: g.src(), Start: 1 + g.rng.Intn(5), Style: "decimal", Items: g.items(depth - 1)}
	case 6:
		return g.definitionList(depth - 1)
	case 7:
		return g.table(depth - 1)
	case 8:
		return g.customBlock(depth - 1)
	default:
		return g.paragraph()
	}
}

// Inlines generates an inline sequence.
func (g *Gen) Inlines(n, depth int) doctree.InlineList {
	out := make(doctree.InlineList, n)
	for i := range out {
		out[i] = g.Inline(depth)
	}
	return out
}

// Inline generates one inline node.
func (g *Gen) Inline(depth int) doctree.Inline {
	if depth <= 0 {
		switch g.rng.Intn(4) {
		case 0:
			return &doctree.Code{Src: g.src(), Text: g.word()}
		case 1:
			return &doctree.LineBreak{Src: g.src(), Hard: g.rng.Intn(2) == 0}
		default:
			return &doctree.Text{Src: g.src(), Text: g.word()}
		}
	}

	inner := func() doctree.InlineList { return g.Inlines(1+g.rng.Intn(2), depth-1) }
	switch g.rng.Intn(9) {
	case 0:
		return &doctree.Emph{Src: g.src(), Inlines: inner()}
	case 1:
		return &doctree.Strong{Src: g.src(), Inlines: inner()}
	case 2:
		return &doctree.Strikeout{Src: g.src(), Inlines: inner()}
	case 3:
		return &doctree.Quoted{Src: g.src(), QuoteType: "double", Inlines: inner()}
	case 4:
		return &doctree.Span{Src: g.src(), Attr: g.attr(), Inlines: inner()}
	case 5:
		return &doctree.Link{Src: g.src(), Target: "https://example.com/" + g.word(), Inlines: inner()}
	case 6:
		return &doctree.Ins{Src: g.src(), Inlines: inner()}
	case 7:
		return &doctree.Del{Src: g.src(), Inlines: inner()}
	default:
		return &doctree.Text{Src: g.src(), Text: g.word()}
	}
}

func (g *Gen) paragraph() *doctree.Paragraph {
	return &doctree.Paragraph{Src: g.src(), Inlines: g.Inlines(1+g.rng.Intn(4), 1)}
}

func (g *Gen) items(depth int) []doctree.BlockList {
	items := make([]doctree.BlockList, 1+g.rng.Intn(3))
	for i := range items {
		items[i] = g.Blocks(1+g.rng.Intn(2), depth)
	}
	return items
}

func (g *Gen) definitionList(depth int) *doctree.DefinitionList {
	items := make([]doctree.DefItem, 1+g.rng.Intn(2))
	for i := range items {
		items[i] = doctree.DefItem{
			Term:        g.Inlines(1+g.rng.Intn(2), 0),
			Definitions: g.items(depth),
		}
	}
	return &doctree.DefinitionList{Src: g.src(), Items: items}
}

func (g *Gen) table(depth int) *doctree.Table {
	cols := 1 + g.rng.Intn(3)
	row := func() doctree.TableRow {
		cells := make([]doctree.TableCell, cols)
		for i := range cells {
			cells[i] = doctree.TableCell{Blocks: doctree.BlockList{g.paragraph()}}
		}
		return doctree.TableRow{Cells: cells}
	}
	t := &doctree.Table{Src: g.src(), Caption: g.Inlines(g.rng.Intn(2), 0)}
	t.Head = []doctree.TableRow{row()}
	for i := 0; i < 1+g.rng.Intn(3); i++ {
		t.Body = append(t.Body, row())
	}
	if g.rng.Intn(3) == 0 {
		t.Foot = []doctree.TableRow{row()}
	}
	return t
}

func (g *Gen) customBlock(depth int) *doctree.CustomBlock {
	slots := map[string]doctree.Slot{
		"body":    {Kind: doctree.SlotBlocks, Blocks: g.Blocks(1+g.rng.Intn(2), depth)},
		"title":   {Kind: doctree.SlotInlines, Inlines: g.Inlines(1+g.rng.Intn(2), 0)},
		"summary": {Kind: doctree.SlotInline, Inline: g.Inline(0)},
	}
	if g.rng.Intn(2) == 0 {
		slots["aside"] = doctree.Slot{Kind: doctree.SlotBlock, Block: g.paragraph()}
	}
	return &doctree.CustomBlock{
		Src:     g.src(),
		Name:    "callout",
		Slots:   slots,
		Payload: []byte(fmt.Sprintf(`{"id":%d}`, g.rng.Intn(1000))),
	}
}

func (g *Gen) attr() doctree.Attr {
	a := doctree.Attr{}
	if g.rng.Intn(2) == 0 {
		a.ID = g.word()
	}
	if g.rng.Intn(2) == 0 {
		a.Classes = []string{g.word()}
	}
	if g.rng.Intn(3) == 0 {
		a.KVs = []doctree.KV{{Key: "data-" + g.word(), Value: g.word()}}
	}
	return a
}

var words = []string{
	"revenue", "quarter", "baseline", "delta", "output", "figure",
	"section", "total", "draft", "result", "sample", "margin",
}

func (g *Gen) word() string {
	return fmt.Sprintf("%s-%d", words[g.rng.Intn(len(words))], g.rng.Intn(100))
}

// src mints a distinct provenance handle so tests can observe which side a
// merged node came from.
func (g *Gen) src() doctree.SourceInfo {
	g.next++
	return doctree.SourceInfo(fmt.Sprintf(`{"offset":%d,"line":%d}`, g.next*7, g.next))
}
