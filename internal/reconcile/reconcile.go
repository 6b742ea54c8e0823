package reconcile

import (
	"log/slog"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/structhash"
)

// Option configures one reconciliation call.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	cacheSize int
}

// WithLogger attaches a logger for per-call debug statistics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCacheSize overrides the fingerprint cache size for one call.
// Zero or less selects the default.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Compute walks original and executed read-only and returns the plan that
// aligns every executed node against the original tree. It is a pure
// function of its inputs and never mutates either tree.
func Compute(original, executed *doctree.Document, opts ...Option) *plan.Plan {
	var origBlocks, execBlocks doctree.BlockList
	if original != nil {
		origBlocks = original.Blocks
	}
	if executed != nil {
		execBlocks = executed.Blocks
	}
	return finishPlan(ComputeBlocks(origBlocks, execBlocks, opts...), opts)
}

// ComputeBlocks is the block-sequence-scoped variant of Compute, for callers
// reconciling a sub-forest rather than a whole document.
func ComputeBlocks(original, executed doctree.BlockList, opts ...Option) *plan.SeqPlan {
	o := buildOptions(opts)
	c := &computer{h: structhash.NewHasher(o.cacheSize)}
	return c.alignBlocks(original, executed, keyOrig, keyExec)
}

// Apply merges the two trees under the plan. Both documents are consumed:
// subtrees of either may appear in the result, so callers that retain an
// input must clone it first. The result, with all SourceInfo erased, is
// structurally equal to executed.
func Apply(original, executed *doctree.Document, p *plan.Plan) *doctree.Document {
	var origBlocks, execBlocks doctree.BlockList
	if original != nil {
		origBlocks = original.Blocks
	}
	if executed != nil {
		execBlocks = executed.Blocks
	}
	var sp *plan.SeqPlan
	if p != nil {
		sp = p.Blocks
	}
	return &doctree.Document{Blocks: ApplyBlocks(origBlocks, execBlocks, sp)}
}

// ApplyBlocks is the block-sequence-scoped variant of Apply.
func ApplyBlocks(original, executed doctree.BlockList, sp *plan.SeqPlan) doctree.BlockList {
	return applyBlockSeq(original, executed, sp)
}

// Reconcile composes Compute and Apply: it returns the merged tree, in which
// unchanged content keeps original's source provenance, plus the plan for
// diagnostics. Both documents are consumed, as with Apply.
func Reconcile(original, executed *doctree.Document, opts ...Option) (*doctree.Document, *plan.Plan) {
	p := Compute(original, executed, opts...)
	merged := Apply(original, executed, p)
	return merged, p
}

// ReconcileBlocks is the block-sequence-scoped variant of Reconcile.
func ReconcileBlocks(original, executed doctree.BlockList, opts ...Option) (doctree.BlockList, *plan.SeqPlan) {
	sp := ComputeBlocks(original, executed, opts...)
	merged := ApplyBlocks(original, executed, sp)
	return merged, sp
}

func finishPlan(sp *plan.SeqPlan, opts []Option) *plan.Plan {
	p := &plan.Plan{Blocks: sp}
	p.Stats = p.AggregateStats()

	if o := buildOptions(opts); o.logger != nil {
		o.logger.Debug("reconciliation plan computed",
			"kept", p.Stats.Kept,
			"replaced", p.Stats.Replaced,
			"recursed", p.Stats.Recursed,
		)
	}
	return p
}
