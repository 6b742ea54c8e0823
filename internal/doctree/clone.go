package doctree

import "encoding/json"

// Deep copies. Apply consumes its inputs, so callers that retain a tree
// across a reconciliation clone it first. Clones share no mutable storage
// with the original, including SourceInfo bytes.

// CloneDocument returns a deep copy of d.
func CloneDocument(d *Document) *Document {
	if d == nil {
		return nil
	}
	return &Document{Blocks: CloneBlocks(d.Blocks)}
}

// CloneBlocks returns a deep copy of a block sequence.
func CloneBlocks(blocks BlockList) BlockList {
	if blocks == nil {
		return nil
	}
	out := make(BlockList, len(blocks))
	for i, b := range blocks {
		out[i] = CloneBlock(b)
	}
	return out
}

// CloneInlines returns a deep copy of an inline sequence.
func CloneInlines(inlines InlineList) InlineList {
	if inlines == nil {
		return nil
	}
	out := make(InlineList, len(inlines))
	for i, in := range inlines {
		out[i] = CloneInline(in)
	}
	return out
}

// CloneBlock returns a deep copy of a single block.
func CloneBlock(b Block) Block {
	switch n := b.(type) {
	case *Paragraph:
		return &Paragraph{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Heading:
		return &Heading{Src: cloneSrc(n.Src), Level: n.Level, Attr: cloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines)}
	case *CodeBlock:
		return &CodeBlock{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Text: n.Text}
	case *RawBlock:
		return &RawBlock{Src: cloneSrc(n.Src), Format: n.Format, Text: n.Text}
	case *BlockQuote:
		return &BlockQuote{Src: cloneSrc(n.Src), Blocks: CloneBlocks(n.Blocks)}
	case *Div:
		return &Div{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Blocks: CloneBlocks(n.Blocks)}
	case *BulletList:
		return &BulletList{Src: cloneSrc(n.Src), Tight: n.Tight, Items: cloneItems(n.Items)}
	case *OrderedList:
		return &OrderedList{Src: cloneSrc(n.Src), Start: n.Start, Style: n.Style, Tight: n.Tight, Items: cloneItems(n.Items)}
	case *DefinitionList:
		items := make([]DefItem, len(n.Items))
		for i, it := range n.Items {
			items[i] = DefItem{Term: CloneInlines(it.Term), Definitions: cloneItems(it.Definitions)}
		}
		return &DefinitionList{Src: cloneSrc(n.Src), Items: items}
	case *Table:
		return &Table{
			Src:     cloneSrc(n.Src),
			Attr:    cloneAttr(n.Attr),
			Caption: CloneInlines(n.Caption),
			Head:    cloneRows(n.Head),
			Body:    cloneRows(n.Body),
			Foot:    cloneRows(n.Foot),
		}
	case *HorizontalRule:
		return &HorizontalRule{Src: cloneSrc(n.Src)}
	case *CustomBlock:
		return &CustomBlock{Src: cloneSrc(n.Src), Name: n.Name, Slots: cloneSlots(n.Slots), Payload: cloneRaw(n.Payload)}
	default:
		// Sealed interface: unreachable for well-formed trees.
		return b
	}
}

// CloneInline returns a deep copy of a single inline.
func CloneInline(in Inline) Inline {
	switch n := in.(type) {
	case *Text:
		return &Text{Src: cloneSrc(n.Src), Text: n.Text}
	case *Emph:
		return &Emph{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Strong:
		return &Strong{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Strikeout:
		return &Strikeout{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Ins:
		return &Ins{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Del:
		return &Del{Src: cloneSrc(n.Src), Inlines: CloneInlines(n.Inlines)}
	case *Code:
		return &Code{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Text: n.Text}
	case *Quoted:
		return &Quoted{Src: cloneSrc(n.Src), QuoteType: n.QuoteType, Inlines: CloneInlines(n.Inlines)}
	case *Span:
		return &Span{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines)}
	case *Link:
		return &Link{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Target: n.Target, Title: n.Title, Inlines: CloneInlines(n.Inlines)}
	case *Image:
		return &Image{Src: cloneSrc(n.Src), Attr: cloneAttr(n.Attr), Target: n.Target, Title: n.Title, Inlines: CloneInlines(n.Inlines)}
	case *LineBreak:
		return &LineBreak{Src: cloneSrc(n.Src), Hard: n.Hard}
	case *CustomInline:
		return &CustomInline{Src: cloneSrc(n.Src), Name: n.Name, Slots: cloneSlots(n.Slots), Payload: cloneRaw(n.Payload)}
	default:
		return in
	}
}

func cloneItems(items []BlockList) []BlockList {
	if items == nil {
		return nil
	}
	out := make([]BlockList, len(items))
	for i, it := range items {
		out[i] = CloneBlocks(it)
	}
	return out
}

func cloneRows(rows []TableRow) []TableRow {
	if rows == nil {
		return nil
	}
	out := make([]TableRow, len(rows))
	for i, row := range rows {
		cells := make([]TableCell, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = TableCell{Align: cell.Align, RowSpan: cell.RowSpan, ColSpan: cell.ColSpan, Blocks: CloneBlocks(cell.Blocks)}
		}
		out[i] = TableRow{Cells: cells}
	}
	return out
}

func cloneSlots(slots map[string]Slot) map[string]Slot {
	if slots == nil {
		return nil
	}
	out := make(map[string]Slot, len(slots))
	for name, s := range slots {
		out[name] = Slot{
			Kind:    s.Kind,
			Block:   cloneBlockOrNil(s.Block),
			Inline:  cloneInlineOrNil(s.Inline),
			Blocks:  CloneBlocks(s.Blocks),
			Inlines: CloneInlines(s.Inlines),
		}
	}
	return out
}

func cloneBlockOrNil(b Block) Block {
	if b == nil {
		return nil
	}
	return CloneBlock(b)
}

func cloneInlineOrNil(in Inline) Inline {
	if in == nil {
		return nil
	}
	return CloneInline(in)
}

func cloneAttr(a Attr) Attr {
	out := Attr{ID: a.ID}
	if a.Classes != nil {
		out.Classes = append([]string(nil), a.Classes...)
	}
	if a.KVs != nil {
		out.KVs = append([]KV(nil), a.KVs...)
	}
	return out
}

func cloneSrc(src SourceInfo) SourceInfo {
	return cloneRaw(src)
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
