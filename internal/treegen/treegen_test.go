package treegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
)

func marshal(t *testing.T, d *doctree.Document) string {
	t.Helper()
	data, err := doctree.MarshalDocument(d)
	require.NoError(t, err)
	return string(data)
}

func TestSameSeedSameDocument(t *testing.T) {
	a := New(7).Document(5)
	b := New(7).Document(5)
	assert.Equal(t, marshal(t, a), marshal(t, b), "generation must be a pure function of the seed")
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1).Document(5)
	b := New(2).Document(5)
	assert.NotEqual(t, marshal(t, a), marshal(t, b))
}

func TestMutateLeavesInputUntouched(t *testing.T) {
	g := New(11)
	doc := g.Document(4)
	before := marshal(t, doc)

	_ = g.Mutate(doc)

	assert.Equal(t, before, marshal(t, doc), "mutation must operate on a copy")
}

func TestMutateIsSeedDeterministic(t *testing.T) {
	run := func() string {
		g := New(13)
		return marshal(t, g.Mutate(g.Document(4)))
	}
	assert.Equal(t, run(), run())
}

func TestMutateReachesInlineSequences(t *testing.T) {
	original := &doctree.Document{Blocks: doctree.BlockList{
		&doctree.Paragraph{
			Src: doctree.SourceInfo(`{"offset":0,"line":1}`),
			Inlines: doctree.InlineList{
				&doctree.Text{Src: doctree.SourceInfo(`{"offset":2,"line":1}`), Text: "stable"},
				&doctree.Emph{
					Src:     doctree.SourceInfo(`{"offset":9,"line":1}`),
					Inlines: doctree.InlineList{&doctree.Text{Text: "stable"}},
				},
			},
		},
	}}
	before := marshal(t, original)

	// Find a seed where the paragraph shell survives (same provenance)
	// but its inline content was edited.
	inlineEdit := false
	for seed := int64(1); seed <= 40 && !inlineEdit; seed++ {
		out := New(seed).Mutate(original)
		if len(out.Blocks) != 1 {
			continue
		}
		para, ok := out.Blocks[0].(*doctree.Paragraph)
		if !ok || para.Src == nil {
			continue
		}
		inlineEdit = marshal(t, out) != before
	}
	assert.True(t, inlineEdit, "the mutator must produce inline-level edits")
	assert.Equal(t, before, marshal(t, original), "mutation must operate on a copy")
}

func TestGeneratedBlocksCarrySource(t *testing.T) {
	doc := New(3).Document(6)
	require.NotEmpty(t, doc.Blocks)
	for i, b := range doc.Blocks {
		assert.NotNil(t, b.Source(), "block %d", i)
	}
}
