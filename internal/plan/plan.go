// Package plan defines the reconciliation plan: the serializable decision
// tree produced by computation and consumed by application.
//
// A plan never contains document content. It is positional: every SeqPlan
// runs parallel to the executed side's children, and every variable-length
// container (list items, definition items, table rows, cells, custom slots)
// carries one full nested plan per item or slot, never an aggregate. Plans
// serialize to JSON for external debugging and visualization tooling only;
// nothing in the engine depends on the serialized form.
package plan

// Op is the three-way alignment decision for one node.
type Op string

const (
	// OpKeepBefore keeps the entire original subtree, content and
	// source locations.
	OpKeepBefore Op = "keep_before"
	// OpUseAfter keeps the entire executed subtree.
	OpUseAfter Op = "use_after"
	// OpRecurse rebuilds the node from executed's non-child fields and
	// recursively merged children.
	OpRecurse Op = "recurse"
)

// Align is the decision for one executed child. BeforeIndex names the
// original child it consumes: the match source for OpKeepBefore (any
// position) and the recurse partner for OpRecurse (same position). It is -1
// for OpUseAfter.
type Align struct {
	Op          Op        `json:"op"`
	BeforeIndex int       `json:"before_index"`
	Nested      *NodePlan `json:"nested,omitempty"`
}

// Stats counts alignment outcomes, for diagnostics. Stats alone cannot
// drive a merge; they always accompany the per-child Aligns.
type Stats struct {
	Kept     int `json:"kept"`
	Replaced int `json:"replaced"`
	Recursed int `json:"recursed"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Kept += other.Kept
	s.Replaced += other.Replaced
	s.Recursed += other.Recursed
}

// Count records a single alignment outcome.
func (s *Stats) Count(op Op) {
	switch op {
	case OpKeepBefore:
		s.Kept++
	case OpUseAfter:
		s.Replaced++
	case OpRecurse:
		s.Recursed++
	}
}

// Total returns the number of aligned children.
func (s Stats) Total() int {
	return s.Kept + s.Replaced + s.Recursed
}

// SeqPlan aligns one ordered child sequence. Aligns is parallel to the
// executed sequence; application iterates executed's length, never
// original's.
type SeqPlan struct {
	Aligns []Align `json:"aligns"`
	Stats  Stats   `json:"stats"`
}

// SlotPlan aligns one named slot of a custom node. Exactly one field is set,
// selected by the slot's kind: Single for one-node slots, Seq for sequence
// slots.
type SlotPlan struct {
	Single *Align   `json:"single,omitempty"`
	Seq    *SeqPlan `json:"seq,omitempty"`
}

// NodePlan holds the nested plans for a recursed node's child regions. Only
// the regions the node's variant actually has are populated; all sequences
// are positional against the executed side.
type NodePlan struct {
	Inlines *SeqPlan `json:"inlines,omitempty"`
	Blocks  *SeqPlan `json:"blocks,omitempty"`

	// Lists: one alignment per executed item; an item's nested plan uses
	// Blocks (bullet/ordered) or Term/Defs (definition items).
	Items *SeqPlan `json:"items,omitempty"`
	Term  *SeqPlan `json:"term,omitempty"`
	Defs  *SeqPlan `json:"defs,omitempty"`

	// Tables: caption plus one row sequence per region. Regions are kept
	// separate so head and body cells are never cross-matched. A row's
	// nested plan uses Cells; a cell's nested plan uses Blocks.
	Caption *SeqPlan `json:"caption,omitempty"`
	Head    *SeqPlan `json:"head,omitempty"`
	Body    *SeqPlan `json:"body,omitempty"`
	Foot    *SeqPlan `json:"foot,omitempty"`
	Cells   *SeqPlan `json:"cells,omitempty"`

	// Custom nodes: one plan per executed slot name.
	Slots map[string]*SlotPlan `json:"slots,omitempty"`
}

// Plan is the root reconciliation plan for a document: the alignment of its
// top-level block sequence plus aggregate statistics over every nesting
// level. A plan is created fresh per reconciliation call and never persisted
// by the engine.
type Plan struct {
	Blocks *SeqPlan `json:"blocks"`
	Stats  Stats    `json:"stats"`
}

// AggregateStats walks the plan and returns totals across all levels.
func (p *Plan) AggregateStats() Stats {
	var s Stats
	addSeqStats(&s, p.Blocks)
	return s
}

func addSeqStats(s *Stats, sp *SeqPlan) {
	if sp == nil {
		return
	}
	s.Add(sp.Stats)
	for _, a := range sp.Aligns {
		addNodeStats(s, a.Nested)
	}
}

func addNodeStats(s *Stats, np *NodePlan) {
	if np == nil {
		return
	}
	for _, sp := range []*SeqPlan{
		np.Inlines, np.Blocks, np.Items, np.Term, np.Defs,
		np.Caption, np.Head, np.Body, np.Foot, np.Cells,
	} {
		addSeqStats(s, sp)
	}
	for _, slot := range np.Slots {
		if slot == nil {
			continue
		}
		if slot.Single != nil {
			s.Count(slot.Single.Op)
			addNodeStats(s, slot.Single.Nested)
		}
		addSeqStats(s, slot.Seq)
	}
}
