package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/structhash"
	"github.com/docfold/docfold/internal/treegen"
)

// The engine's one unconditional guarantee: for any tree pair, applying the
// computed plan yields a tree structurally identical to executed. Exercised
// over generated documents and randomized executor-style edits; failures
// reproduce from the seed in the test output.
func TestReconcileMatchesExecutedForGeneratedPairs(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		g := treegen.New(seed)
		original := g.Document(4)
		executed := g.Mutate(original)

		p := Compute(original, executed)
		merged := Apply(doctree.CloneDocument(original), doctree.CloneDocument(executed), p)

		require.True(t, structhash.EqualDocument(merged, executed),
			"seed %d: merged tree diverged from executed", seed)
		assert.Equal(t, p.Stats, p.AggregateStats(), "seed %d: cached stats out of sync", seed)
	}
}

// The guarantee holds even for trees with no common ancestry.
func TestReconcileMatchesExecutedForUnrelatedPairs(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		original := treegen.New(seed).Document(3)
		executed := treegen.New(seed + 1000).Document(5)

		merged, _ := Reconcile(doctree.CloneDocument(original), executed)
		require.True(t, structhash.EqualDocument(merged, executed), "seed %d", seed)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := treegen.New(seed)
		original := g.Document(3)
		executed := g.Mutate(original)

		p1, err := plan.Marshal(Compute(original, executed))
		require.NoError(t, err)
		p2, err := plan.Marshal(Compute(original, executed))
		require.NoError(t, err)
		assert.Equal(t, string(p1), string(p2), "seed %d: plans differ across runs", seed)
	}
}

// A plan must survive serialization: applying the decoded plan produces the
// same merge as applying the original.
func TestPlanSurvivesSerialization(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := treegen.New(seed)
		original := g.Document(3)
		executed := g.Mutate(original)

		p := Compute(original, executed)
		direct := Apply(doctree.CloneDocument(original), doctree.CloneDocument(executed), p)

		data, err := plan.Marshal(p)
		require.NoError(t, err)
		decoded, err := plan.Unmarshal(data)
		require.NoError(t, err)
		viaJSON := Apply(doctree.CloneDocument(original), doctree.CloneDocument(executed), decoded)

		d1, err := doctree.MarshalDocument(direct)
		require.NoError(t, err)
		d2, err := doctree.MarshalDocument(viaJSON)
		require.NoError(t, err)
		assert.Equal(t, string(d1), string(d2), "seed %d", seed)
	}
}

// Reconciling a document against an identical copy must keep every node.
func TestSelfReconcileKeepsEverything(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := treegen.New(seed)
		original := g.Document(3)
		executed := doctree.CloneDocument(original)

		merged, p := Reconcile(original, executed)

		assert.Zero(t, p.Stats.Replaced, "seed %d: identical trees must not replace", seed)
		assert.Zero(t, p.Stats.Recursed, "seed %d: identical trees must not recurse", seed)

		want, err := doctree.MarshalDocument(executed)
		require.NoError(t, err)
		got, err := doctree.MarshalDocument(merged)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "seed %d", seed)
	}
}
