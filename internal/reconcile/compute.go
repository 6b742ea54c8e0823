package reconcile

import (
	"strconv"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/structhash"
)

// computer carries the per-call fingerprint cache through one Compute walk.
type computer struct {
	h *structhash.Hasher
}

// Key prefixes for the two input trees. Fingerprint cache keys are tree
// paths prefixed by the side, so the two trees never share a cache slot.
const (
	keyOrig = "o"
	keyExec = "e"
)

func childKey(key string, i int) string {
	return key + "/" + strconv.Itoa(i)
}

// seqOps adapts one element type (block, inline, list item, row, cell, ...)
// to the generic three-phase sequence alignment.
type seqOps[T any] struct {
	// fp returns the element's confirmed-hash candidate fingerprint.
	fp func(key string, el T) structhash.Fingerprint
	// eq confirms a fingerprint match exactly.
	eq func(a, b T) bool
	// shape reports whether a positional pair can recurse.
	shape func(a, b T) bool
	// nested computes the per-child plan for a recursing pair.
	nested func(origKey, execKey string, a, b T) *plan.NodePlan
}

// alignSeq runs the three phases over one ordered container level. orig and
// exec are never mutated. The returned plan is parallel to exec.
func alignSeq[T any](orig, exec []T, origKey, execKey string, ops seqOps[T]) *plan.SeqPlan {
	sp := &plan.SeqPlan{Aligns: make([]plan.Align, len(exec))}
	if len(exec) == 0 {
		return sp
	}

	// Original fingerprints are computed once per container and indexed,
	// so the any-position search is a map lookup rather than a scan.
	used := make([]bool, len(orig))
	byFP := make(map[structhash.Fingerprint][]int, len(orig))
	for j := range orig {
		fp := ops.fp(childKey(origKey, j), orig[j])
		byFP[fp] = append(byFP[fp], j)
	}

	resolved := make([]bool, len(exec))

	// Phase 1: confirmed structural-hash match at any position.
	for i := range exec {
		fp := ops.fp(childKey(execKey, i), exec[i])
		match := -1
		// Prefer the same index so identical trees align positionally,
		// then the lowest unused index for determinism.
		for _, j := range byFP[fp] {
			if j == i && !used[j] && ops.eq(orig[j], exec[i]) {
				match = j
				break
			}
		}
		if match < 0 {
			for _, j := range byFP[fp] {
				if !used[j] && ops.eq(orig[j], exec[i]) {
					match = j
					break
				}
			}
		}
		if match >= 0 {
			used[match] = true
			resolved[i] = true
			sp.Aligns[i] = plan.Align{Op: plan.OpKeepBefore, BeforeIndex: match}
		}
	}

	// Phase 2: positional shape match, recursing into children.
	// Phase 3: everything left takes the executed subtree.
	for i := range exec {
		if resolved[i] {
			continue
		}
		if i < len(orig) && !used[i] && ops.shape(orig[i], exec[i]) {
			used[i] = true
			sp.Aligns[i] = plan.Align{
				Op:          plan.OpRecurse,
				BeforeIndex: i,
				Nested:      ops.nested(childKey(origKey, i), childKey(execKey, i), orig[i], exec[i]),
			}
			continue
		}
		sp.Aligns[i] = plan.Align{Op: plan.OpUseAfter, BeforeIndex: -1}
	}

	for _, a := range sp.Aligns {
		sp.Stats.Count(a.Op)
	}
	return sp
}

func (c *computer) blockOps() seqOps[doctree.Block] {
	return seqOps[doctree.Block]{
		fp:     c.h.Block,
		eq:     structhash.EqualBlock,
		shape:  blockShape,
		nested: c.blockPlan,
	}
}

func (c *computer) inlineOps() seqOps[doctree.Inline] {
	return seqOps[doctree.Inline]{
		fp:     c.h.Inline,
		eq:     structhash.EqualInline,
		shape:  inlineShape,
		nested: c.inlinePlan,
	}
}

// blockShape reports whether two blocks at the same position may recurse:
// same variant, and the variant has child regions to merge. Leaf variants
// (code, raw, rule) have nothing to salvage and fall through to use_after.
func blockShape(a, b doctree.Block) bool {
	if a.NodeKind() != b.NodeKind() {
		return false
	}
	switch a.NodeKind() {
	case doctree.KindCodeBlock, doctree.KindRawBlock, doctree.KindHorizontalRule:
		return false
	}
	return true
}

func inlineShape(a, b doctree.Inline) bool {
	if a.NodeKind() != b.NodeKind() {
		return false
	}
	switch a.NodeKind() {
	case doctree.KindText, doctree.KindCode, doctree.KindLineBreak:
		return false
	}
	return true
}

func (c *computer) alignBlocks(orig, exec doctree.BlockList, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, c.blockOps())
}

func (c *computer) alignInlines(orig, exec doctree.InlineList, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, c.inlineOps())
}

// blockPlan computes the nested plan for a recursing block pair. Callers
// guarantee the two blocks share a recursable kind.
func (c *computer) blockPlan(origKey, execKey string, orig, exec doctree.Block) *plan.NodePlan {
	switch e := exec.(type) {
	case *doctree.Paragraph:
		o := orig.(*doctree.Paragraph)
		return &plan.NodePlan{Inlines: c.alignInlines(o.Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Heading:
		o := orig.(*doctree.Heading)
		return &plan.NodePlan{Inlines: c.alignInlines(o.Inlines, e.Inlines, origKey, execKey)}
	case *doctree.BlockQuote:
		o := orig.(*doctree.BlockQuote)
		return &plan.NodePlan{Blocks: c.alignBlocks(o.Blocks, e.Blocks, origKey, execKey)}
	case *doctree.Div:
		o := orig.(*doctree.Div)
		return &plan.NodePlan{Blocks: c.alignBlocks(o.Blocks, e.Blocks, origKey, execKey)}
	case *doctree.BulletList:
		o := orig.(*doctree.BulletList)
		return &plan.NodePlan{Items: c.alignItems(o.Items, e.Items, origKey, execKey)}
	case *doctree.OrderedList:
		o := orig.(*doctree.OrderedList)
		return &plan.NodePlan{Items: c.alignItems(o.Items, e.Items, origKey, execKey)}
	case *doctree.DefinitionList:
		o := orig.(*doctree.DefinitionList)
		return &plan.NodePlan{Items: c.alignDefItems(o.Items, e.Items, origKey, execKey)}
	case *doctree.Table:
		o := orig.(*doctree.Table)
		return &plan.NodePlan{
			Caption: c.alignInlines(o.Caption, e.Caption, origKey+"/caption", execKey+"/caption"),
			Head:    c.alignRows(o.Head, e.Head, origKey+"/head", execKey+"/head"),
			Body:    c.alignRows(o.Body, e.Body, origKey+"/body", execKey+"/body"),
			Foot:    c.alignRows(o.Foot, e.Foot, origKey+"/foot", execKey+"/foot"),
		}
	case *doctree.CustomBlock:
		o := orig.(*doctree.CustomBlock)
		return &plan.NodePlan{Slots: c.alignSlots(o.Slots, e.Slots, origKey, execKey)}
	default:
		return &plan.NodePlan{}
	}
}

// inlinePlan is the inline counterpart of blockPlan.
func (c *computer) inlinePlan(origKey, execKey string, orig, exec doctree.Inline) *plan.NodePlan {
	switch e := exec.(type) {
	case *doctree.Emph:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Emph).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Strong:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Strong).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Strikeout:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Strikeout).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Ins:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Ins).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Del:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Del).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Quoted:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Quoted).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Span:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Span).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Link:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Link).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.Image:
		return &plan.NodePlan{Inlines: c.alignInlines(orig.(*doctree.Image).Inlines, e.Inlines, origKey, execKey)}
	case *doctree.CustomInline:
		return &plan.NodePlan{Slots: c.alignSlots(orig.(*doctree.CustomInline).Slots, e.Slots, origKey, execKey)}
	default:
		return &plan.NodePlan{}
	}
}

// alignItems aligns list items. An item is itself a block sequence, so its
// shape always matches and a non-identical positional pair always recurses.
// Item counts may differ between the trees; the plan is parallel to the
// executed items.
func (c *computer) alignItems(orig, exec []doctree.BlockList, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, seqOps[doctree.BlockList]{
		fp:    c.h.Blocks,
		eq:    structhash.EqualBlocks,
		shape: func(a, b doctree.BlockList) bool { return true },
		nested: func(origKey, execKey string, a, b doctree.BlockList) *plan.NodePlan {
			return &plan.NodePlan{Blocks: c.alignBlocks(a, b, origKey, execKey)}
		},
	})
}

func (c *computer) alignDefItems(orig, exec []doctree.DefItem, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, seqOps[doctree.DefItem]{
		fp:    c.h.DefItem,
		eq:    structhash.EqualDefItem,
		shape: func(a, b doctree.DefItem) bool { return true },
		nested: func(origKey, execKey string, a, b doctree.DefItem) *plan.NodePlan {
			return &plan.NodePlan{
				Term: c.alignInlines(a.Term, b.Term, origKey+"/term", execKey+"/term"),
				Defs: c.alignItems(a.Definitions, b.Definitions, origKey+"/defs", execKey+"/defs"),
			}
		},
	})
}

// alignRows aligns the rows of one table region. Regions never mix: a body
// cell and a head cell are aligned within their own region plans only.
func (c *computer) alignRows(orig, exec []doctree.TableRow, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, seqOps[doctree.TableRow]{
		fp:    c.h.Row,
		eq:    structhash.EqualRow,
		shape: func(a, b doctree.TableRow) bool { return true },
		nested: func(origKey, execKey string, a, b doctree.TableRow) *plan.NodePlan {
			return &plan.NodePlan{Cells: c.alignCells(a.Cells, b.Cells, origKey, execKey)}
		},
	})
}

func (c *computer) alignCells(orig, exec []doctree.TableCell, origKey, execKey string) *plan.SeqPlan {
	return alignSeq(orig, exec, origKey, execKey, seqOps[doctree.TableCell]{
		fp:    c.h.Cell,
		eq:    structhash.EqualCell,
		shape: func(a, b doctree.TableCell) bool { return true },
		nested: func(origKey, execKey string, a, b doctree.TableCell) *plan.NodePlan {
			return &plan.NodePlan{Blocks: c.alignBlocks(a.Blocks, b.Blocks, origKey, execKey)}
		},
	})
}

// alignSlots matches custom-node slots by name, one plan per executed slot.
// A slot absent on the original side, or present with a different kind,
// resolves to use_after.
func (c *computer) alignSlots(orig, exec map[string]doctree.Slot, origKey, execKey string) map[string]*plan.SlotPlan {
	if len(exec) == 0 {
		return nil
	}
	out := make(map[string]*plan.SlotPlan, len(exec))
	for _, name := range doctree.SortedSlotNames(exec) {
		es := exec[name]
		origSlotKey := origKey + "/slot/" + name
		execSlotKey := execKey + "/slot/" + name

		os, ok := orig[name]
		if !ok || os.Kind != es.Kind {
			out[name] = useAfterSlot(es)
			continue
		}

		switch es.Kind {
		case doctree.SlotBlock:
			a := alignSingle(os.Block, es.Block, origSlotKey, execSlotKey,
				c.h.Block, structhash.EqualBlock, blockShape, c.blockPlan)
			out[name] = &plan.SlotPlan{Single: a}
		case doctree.SlotInline:
			a := alignSingle(os.Inline, es.Inline, origSlotKey, execSlotKey,
				c.h.Inline, structhash.EqualInline, inlineShape, c.inlinePlan)
			out[name] = &plan.SlotPlan{Single: a}
		case doctree.SlotBlocks:
			out[name] = &plan.SlotPlan{Seq: c.alignBlocks(os.Blocks, es.Blocks, origSlotKey, execSlotKey)}
		case doctree.SlotInlines:
			out[name] = &plan.SlotPlan{Seq: c.alignInlines(os.Inlines, es.Inlines, origSlotKey, execSlotKey)}
		}
	}
	return out
}

// alignSingle aligns one original/executed node pair outside any sequence
// (single-node slots). BeforeIndex is 0 when the original is consumed.
func alignSingle[T any](
	orig, exec T,
	origKey, execKey string,
	fp func(key string, el T) structhash.Fingerprint,
	eq func(a, b T) bool,
	shape func(a, b T) bool,
	nested func(origKey, execKey string, a, b T) *plan.NodePlan,
) *plan.Align {
	if fp(origKey, orig) == fp(execKey, exec) && eq(orig, exec) {
		return &plan.Align{Op: plan.OpKeepBefore, BeforeIndex: 0}
	}
	if shape(orig, exec) {
		return &plan.Align{Op: plan.OpRecurse, BeforeIndex: 0, Nested: nested(origKey, execKey, orig, exec)}
	}
	return &plan.Align{Op: plan.OpUseAfter, BeforeIndex: -1}
}

// useAfterSlot builds the fallback plan for a slot with no usable original
// counterpart: every position takes the executed content.
func useAfterSlot(es doctree.Slot) *plan.SlotPlan {
	switch es.Kind {
	case doctree.SlotBlock, doctree.SlotInline:
		return &plan.SlotPlan{Single: &plan.Align{Op: plan.OpUseAfter, BeforeIndex: -1}}
	case doctree.SlotBlocks:
		return &plan.SlotPlan{Seq: useAfterSeq(len(es.Blocks))}
	case doctree.SlotInlines:
		return &plan.SlotPlan{Seq: useAfterSeq(len(es.Inlines))}
	default:
		return &plan.SlotPlan{Single: &plan.Align{Op: plan.OpUseAfter, BeforeIndex: -1}}
	}
}

func useAfterSeq(n int) *plan.SeqPlan {
	sp := &plan.SeqPlan{Aligns: make([]plan.Align, n)}
	for i := range sp.Aligns {
		sp.Aligns[i] = plan.Align{Op: plan.OpUseAfter, BeforeIndex: -1}
	}
	sp.Stats.Replaced = n
	return sp
}
