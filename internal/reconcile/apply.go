package reconcile

import (
	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
)

// Application dispatches strictly on the per-child alignment:
//
//	keep_before  -> the original subtree, verbatim
//	use_after    -> the executed subtree, verbatim
//	recurse      -> a new node: every non-child field from executed,
//	                children merged recursively
//
// Iteration over every variable-length container is driven by the executed
// side's length. An executed position with no alignment, or an alignment
// whose original index is out of range, takes the executed content verbatim;
// the merge can degrade in provenance fidelity but never in structure.

// applyBlockSeq merges one block sequence.
func applyBlockSeq(orig, exec doctree.BlockList, sp *plan.SeqPlan) doctree.BlockList {
	if len(exec) == 0 {
		return exec
	}
	out := make(doctree.BlockList, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = applyBlock(orig[j], e, a.Nested)
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

// applyInlineSeq merges one inline sequence, mirror of applyBlockSeq.
func applyInlineSeq(orig, exec doctree.InlineList, sp *plan.SeqPlan) doctree.InlineList {
	if len(exec) == 0 {
		return exec
	}
	out := make(doctree.InlineList, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = applyInline(orig[j], e, a.Nested)
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

func alignAt(sp *plan.SeqPlan, i int) (plan.Align, bool) {
	if sp == nil || i >= len(sp.Aligns) {
		return plan.Align{}, false
	}
	return sp.Aligns[i], true
}

// applyBlock rebuilds one recursed block. Every field except the children is
// copied from exec explicitly, even where the hashing scheme makes a
// mismatch unreachable today; this must survive future hashing changes.
func applyBlock(orig, exec doctree.Block, np *plan.NodePlan) doctree.Block {
	if np == nil {
		return exec
	}

	switch e := exec.(type) {
	case *doctree.Paragraph:
		o, ok := orig.(*doctree.Paragraph)
		if !ok {
			return exec
		}
		return &doctree.Paragraph{
			Src:     e.Src,
			Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.Heading:
		o, ok := orig.(*doctree.Heading)
		if !ok {
			return exec
		}
		return &doctree.Heading{
			Src:     e.Src,
			Level:   e.Level,
			Attr:    e.Attr,
			Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.BlockQuote:
		o, ok := orig.(*doctree.BlockQuote)
		if !ok {
			return exec
		}
		return &doctree.BlockQuote{
			Src:    e.Src,
			Blocks: applyBlockSeq(o.Blocks, e.Blocks, np.Blocks),
		}
	case *doctree.Div:
		o, ok := orig.(*doctree.Div)
		if !ok {
			return exec
		}
		return &doctree.Div{
			Src:    e.Src,
			Attr:   e.Attr,
			Blocks: applyBlockSeq(o.Blocks, e.Blocks, np.Blocks),
		}
	case *doctree.BulletList:
		o, ok := orig.(*doctree.BulletList)
		if !ok {
			return exec
		}
		return &doctree.BulletList{
			Src:   e.Src,
			Tight: e.Tight,
			Items: applyItems(o.Items, e.Items, np.Items),
		}
	case *doctree.OrderedList:
		o, ok := orig.(*doctree.OrderedList)
		if !ok {
			return exec
		}
		return &doctree.OrderedList{
			Src:   e.Src,
			Start: e.Start,
			Style: e.Style,
			Tight: e.Tight,
			Items: applyItems(o.Items, e.Items, np.Items),
		}
	case *doctree.DefinitionList:
		o, ok := orig.(*doctree.DefinitionList)
		if !ok {
			return exec
		}
		return &doctree.DefinitionList{
			Src:   e.Src,
			Items: applyDefItems(o.Items, e.Items, np.Items),
		}
	case *doctree.Table:
		o, ok := orig.(*doctree.Table)
		if !ok {
			return exec
		}
		return &doctree.Table{
			Src:     e.Src,
			Attr:    e.Attr,
			Caption: applyInlineSeq(o.Caption, e.Caption, np.Caption),
			Head:    applyRows(o.Head, e.Head, np.Head),
			Body:    applyRows(o.Body, e.Body, np.Body),
			Foot:    applyRows(o.Foot, e.Foot, np.Foot),
		}
	case *doctree.CustomBlock:
		o, ok := orig.(*doctree.CustomBlock)
		if !ok {
			return exec
		}
		return &doctree.CustomBlock{
			Src:     e.Src,
			Name:    e.Name,
			Slots:   applySlots(o.Slots, e.Slots, np.Slots),
			Payload: e.Payload,
		}
	default:
		// Leaf variants never recurse.
		return exec
	}
}

// applyInline rebuilds one recursed inline, mirror of applyBlock.
func applyInline(orig, exec doctree.Inline, np *plan.NodePlan) doctree.Inline {
	if np == nil {
		return exec
	}

	switch e := exec.(type) {
	case *doctree.Emph:
		o, ok := orig.(*doctree.Emph)
		if !ok {
			return exec
		}
		return &doctree.Emph{Src: e.Src, Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines)}
	case *doctree.Strong:
		o, ok := orig.(*doctree.Strong)
		if !ok {
			return exec
		}
		return &doctree.Strong{Src: e.Src, Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines)}
	case *doctree.Strikeout:
		o, ok := orig.(*doctree.Strikeout)
		if !ok {
			return exec
		}
		return &doctree.Strikeout{Src: e.Src, Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines)}
	case *doctree.Ins:
		o, ok := orig.(*doctree.Ins)
		if !ok {
			return exec
		}
		return &doctree.Ins{Src: e.Src, Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines)}
	case *doctree.Del:
		o, ok := orig.(*doctree.Del)
		if !ok {
			return exec
		}
		return &doctree.Del{Src: e.Src, Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines)}
	case *doctree.Quoted:
		o, ok := orig.(*doctree.Quoted)
		if !ok {
			return exec
		}
		return &doctree.Quoted{
			Src:       e.Src,
			QuoteType: e.QuoteType,
			Inlines:   applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.Span:
		o, ok := orig.(*doctree.Span)
		if !ok {
			return exec
		}
		return &doctree.Span{
			Src:     e.Src,
			Attr:    e.Attr,
			Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.Link:
		o, ok := orig.(*doctree.Link)
		if !ok {
			return exec
		}
		return &doctree.Link{
			Src:     e.Src,
			Attr:    e.Attr,
			Target:  e.Target,
			Title:   e.Title,
			Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.Image:
		o, ok := orig.(*doctree.Image)
		if !ok {
			return exec
		}
		return &doctree.Image{
			Src:     e.Src,
			Attr:    e.Attr,
			Target:  e.Target,
			Title:   e.Title,
			Inlines: applyInlineSeq(o.Inlines, e.Inlines, np.Inlines),
		}
	case *doctree.CustomInline:
		o, ok := orig.(*doctree.CustomInline)
		if !ok {
			return exec
		}
		return &doctree.CustomInline{
			Src:     e.Src,
			Name:    e.Name,
			Slots:   applySlots(o.Slots, e.Slots, np.Slots),
			Payload: e.Payload,
		}
	default:
		return exec
	}
}

// applyItems merges list items, sized to the executed item count.
func applyItems(orig, exec []doctree.BlockList, sp *plan.SeqPlan) []doctree.BlockList {
	if len(exec) == 0 {
		return exec
	}
	out := make([]doctree.BlockList, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) && a.Nested != nil {
				out[i] = applyBlockSeq(orig[j], e, a.Nested.Blocks)
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

func applyDefItems(orig, exec []doctree.DefItem, sp *plan.SeqPlan) []doctree.DefItem {
	if len(exec) == 0 {
		return exec
	}
	out := make([]doctree.DefItem, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) && a.Nested != nil {
				o := orig[j]
				out[i] = doctree.DefItem{
					Term:        applyInlineSeq(o.Term, e.Term, a.Nested.Term),
					Definitions: applyItems(o.Definitions, e.Definitions, a.Nested.Defs),
				}
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

func applyRows(orig, exec []doctree.TableRow, sp *plan.SeqPlan) []doctree.TableRow {
	if len(exec) == 0 {
		return exec
	}
	out := make([]doctree.TableRow, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) && a.Nested != nil {
				out[i] = doctree.TableRow{Cells: applyCells(orig[j].Cells, e.Cells, a.Nested.Cells)}
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

func applyCells(orig, exec []doctree.TableCell, sp *plan.SeqPlan) []doctree.TableCell {
	if len(exec) == 0 {
		return exec
	}
	out := make([]doctree.TableCell, len(exec))
	for i, e := range exec {
		a, ok := alignAt(sp, i)
		if !ok {
			out[i] = e
			continue
		}
		switch a.Op {
		case plan.OpKeepBefore:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) {
				out[i] = orig[j]
				continue
			}
			out[i] = e
		case plan.OpRecurse:
			if j := a.BeforeIndex; j >= 0 && j < len(orig) && a.Nested != nil {
				// Alignment and spans come from executed.
				out[i] = doctree.TableCell{
					Align:   e.Align,
					RowSpan: e.RowSpan,
					ColSpan: e.ColSpan,
					Blocks:  applyBlockSeq(orig[j].Blocks, e.Blocks, a.Nested.Blocks),
				}
				continue
			}
			out[i] = e
		default:
			out[i] = e
		}
	}
	return out
}

// applySlots merges custom-node slots, driven by the executed slot set.
// Original-only slots are dropped; executed slots with no plan are taken
// verbatim.
func applySlots(orig, exec map[string]doctree.Slot, plans map[string]*plan.SlotPlan) map[string]doctree.Slot {
	if len(exec) == 0 {
		return exec
	}
	out := make(map[string]doctree.Slot, len(exec))
	for name, e := range exec {
		sp := plans[name]
		if sp == nil {
			out[name] = e
			continue
		}
		o, hasOrig := orig[name]
		switch {
		case sp.Single != nil:
			out[name] = applySingleSlot(o, e, hasOrig, sp.Single)
		case sp.Seq != nil && e.Kind == doctree.SlotBlocks:
			var origBlocks doctree.BlockList
			if hasOrig {
				origBlocks = o.Blocks
			}
			out[name] = doctree.Slot{Kind: e.Kind, Blocks: applyBlockSeq(origBlocks, e.Blocks, sp.Seq)}
		case sp.Seq != nil && e.Kind == doctree.SlotInlines:
			var origInlines doctree.InlineList
			if hasOrig {
				origInlines = o.Inlines
			}
			out[name] = doctree.Slot{Kind: e.Kind, Inlines: applyInlineSeq(origInlines, e.Inlines, sp.Seq)}
		default:
			out[name] = e
		}
	}
	return out
}

func applySingleSlot(o, e doctree.Slot, hasOrig bool, a *plan.Align) doctree.Slot {
	usable := hasOrig && o.Kind == e.Kind
	switch a.Op {
	case plan.OpKeepBefore:
		if usable {
			return o
		}
		return e
	case plan.OpRecurse:
		if !usable {
			return e
		}
		switch e.Kind {
		case doctree.SlotBlock:
			return doctree.Slot{Kind: e.Kind, Block: applyBlock(o.Block, e.Block, a.Nested)}
		case doctree.SlotInline:
			return doctree.Slot{Kind: e.Kind, Inline: applyInline(o.Inline, e.Inline, a.Nested)}
		}
		return e
	default:
		return e
	}
}
