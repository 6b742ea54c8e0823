package structhash

import (
	"bytes"

	"github.com/docfold/docfold/internal/doctree"
)

// Exact structural equality: the same recursive walk as the fingerprint,
// comparing values directly instead of folding them into a digest.
// SourceInfo is ignored everywhere. This is the tie-breaker for fingerprint
// matches and the oracle for the engine's correctness property.

// EqualDocument reports structural equality of two documents.
func EqualDocument(a, b *doctree.Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return EqualBlocks(a.Blocks, b.Blocks)
}

// EqualBlocks reports structural equality of two block sequences.
func EqualBlocks(a, b doctree.BlockList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBlock(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualInlines reports structural equality of two inline sequences.
func EqualInlines(a, b doctree.InlineList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualInline(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualBlock reports structural equality of two blocks.
func EqualBlock(a, b doctree.Block) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.NodeKind() != b.NodeKind() {
		return false
	}

	switch x := a.(type) {
	case *doctree.Paragraph:
		y := b.(*doctree.Paragraph)
		return EqualInlines(x.Inlines, y.Inlines)
	case *doctree.Heading:
		y := b.(*doctree.Heading)
		return x.Level == y.Level && equalAttr(x.Attr, y.Attr) && EqualInlines(x.Inlines, y.Inlines)
	case *doctree.CodeBlock:
		y := b.(*doctree.CodeBlock)
		return equalAttr(x.Attr, y.Attr) && x.Text == y.Text
	case *doctree.RawBlock:
		y := b.(*doctree.RawBlock)
		return x.Format == y.Format && x.Text == y.Text
	case *doctree.BlockQuote:
		y := b.(*doctree.BlockQuote)
		return EqualBlocks(x.Blocks, y.Blocks)
	case *doctree.Div:
		y := b.(*doctree.Div)
		return equalAttr(x.Attr, y.Attr) && EqualBlocks(x.Blocks, y.Blocks)
	case *doctree.BulletList:
		y := b.(*doctree.BulletList)
		return x.Tight == y.Tight && equalItems(x.Items, y.Items)
	case *doctree.OrderedList:
		y := b.(*doctree.OrderedList)
		return x.Start == y.Start && x.Style == y.Style && x.Tight == y.Tight && equalItems(x.Items, y.Items)
	case *doctree.DefinitionList:
		y := b.(*doctree.DefinitionList)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !EqualDefItem(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *doctree.Table:
		y := b.(*doctree.Table)
		return equalAttr(x.Attr, y.Attr) &&
			EqualInlines(x.Caption, y.Caption) &&
			equalRows(x.Head, y.Head) &&
			equalRows(x.Body, y.Body) &&
			equalRows(x.Foot, y.Foot)
	case *doctree.HorizontalRule:
		return true
	case *doctree.CustomBlock:
		y := b.(*doctree.CustomBlock)
		return x.Name == y.Name && bytes.Equal(x.Payload, y.Payload) && equalSlots(x.Slots, y.Slots)
	default:
		return false
	}
}

// EqualInline reports structural equality of two inlines.
func EqualInline(a, b doctree.Inline) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.NodeKind() != b.NodeKind() {
		return false
	}

	switch x := a.(type) {
	case *doctree.Text:
		y := b.(*doctree.Text)
		return x.Text == y.Text
	case *doctree.Emph:
		return EqualInlines(x.Inlines, b.(*doctree.Emph).Inlines)
	case *doctree.Strong:
		return EqualInlines(x.Inlines, b.(*doctree.Strong).Inlines)
	case *doctree.Strikeout:
		return EqualInlines(x.Inlines, b.(*doctree.Strikeout).Inlines)
	case *doctree.Ins:
		return EqualInlines(x.Inlines, b.(*doctree.Ins).Inlines)
	case *doctree.Del:
		return EqualInlines(x.Inlines, b.(*doctree.Del).Inlines)
	case *doctree.Code:
		y := b.(*doctree.Code)
		return equalAttr(x.Attr, y.Attr) && x.Text == y.Text
	case *doctree.Quoted:
		y := b.(*doctree.Quoted)
		return x.QuoteType == y.QuoteType && EqualInlines(x.Inlines, y.Inlines)
	case *doctree.Span:
		y := b.(*doctree.Span)
		return equalAttr(x.Attr, y.Attr) && EqualInlines(x.Inlines, y.Inlines)
	case *doctree.Link:
		y := b.(*doctree.Link)
		return equalAttr(x.Attr, y.Attr) && x.Target == y.Target && x.Title == y.Title && EqualInlines(x.Inlines, y.Inlines)
	case *doctree.Image:
		y := b.(*doctree.Image)
		return equalAttr(x.Attr, y.Attr) && x.Target == y.Target && x.Title == y.Title && EqualInlines(x.Inlines, y.Inlines)
	case *doctree.LineBreak:
		return x.Hard == b.(*doctree.LineBreak).Hard
	case *doctree.CustomInline:
		y := b.(*doctree.CustomInline)
		return x.Name == y.Name && bytes.Equal(x.Payload, y.Payload) && equalSlots(x.Slots, y.Slots)
	default:
		return false
	}
}

func equalAttr(a, b doctree.Attr) bool {
	if a.ID != b.ID || len(a.Classes) != len(b.Classes) || len(a.KVs) != len(b.KVs) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	for i := range a.KVs {
		if a.KVs[i] != b.KVs[i] {
			return false
		}
	}
	return true
}

// EqualCell reports structural equality of two table cells.
func EqualCell(a, b doctree.TableCell) bool {
	return a.Align == b.Align && a.RowSpan == b.RowSpan && a.ColSpan == b.ColSpan &&
		EqualBlocks(a.Blocks, b.Blocks)
}

// EqualRow reports structural equality of two table rows.
func EqualRow(a, b doctree.TableRow) bool {
	if len(a.Cells) != len(b.Cells) {
		return false
	}
	for j := range a.Cells {
		if !EqualCell(a.Cells[j], b.Cells[j]) {
			return false
		}
	}
	return true
}

// EqualDefItem reports structural equality of two definition-list items.
func EqualDefItem(a, b doctree.DefItem) bool {
	return EqualInlines(a.Term, b.Term) && equalItems(a.Definitions, b.Definitions)
}

func equalItems(a, b []doctree.BlockList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBlocks(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalRows(a, b []doctree.TableRow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualRow(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSlots(a, b map[string]doctree.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for name, sa := range a {
		sb, ok := b[name]
		if !ok || sa.Kind != sb.Kind {
			return false
		}
		switch sa.Kind {
		case doctree.SlotBlock:
			if !EqualBlock(sa.Block, sb.Block) {
				return false
			}
		case doctree.SlotInline:
			if !EqualInline(sa.Inline, sb.Inline) {
				return false
			}
		case doctree.SlotBlocks:
			if !EqualBlocks(sa.Blocks, sb.Blocks) {
				return false
			}
		case doctree.SlotInlines:
			if !EqualInlines(sa.Inlines, sb.Inlines) {
				return false
			}
		}
	}
	return true
}
