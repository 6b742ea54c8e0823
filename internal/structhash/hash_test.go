package structhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
)

func para(src, text string) *doctree.Paragraph {
	p := &doctree.Paragraph{Inlines: doctree.InlineList{&doctree.Text{Text: text}}}
	if src != "" {
		p.Src = doctree.SourceInfo(src)
	}
	return p
}

func TestFingerprintIgnoresSourceInfo(t *testing.T) {
	h := NewHasher(0)
	a := h.Block("a", para(`{"offset":10,"line":2}`, "alpha"))
	b := h.Block("b", para("", "alpha"))
	assert.Equal(t, a, b, "provenance must not influence the fingerprint")
}

func TestFingerprintSeparatesContent(t *testing.T) {
	h := NewHasher(0)
	assert.NotEqual(t,
		h.Block("a", para("", "alpha")),
		h.Block("b", para("", "beta")))
}

func TestFingerprintDeterministicAcrossHashers(t *testing.T) {
	doc := para("", "alpha")
	assert.Equal(t,
		NewHasher(0).Block("x", doc),
		NewHasher(0).Block("y", doc),
		"fingerprints must not depend on the hasher instance or key")
	assert.Equal(t, HashBlock(doc), NewHasher(0).Block("z", doc))
	assert.Equal(t, HashInline(&doctree.Text{Text: "t"}), HashInline(&doctree.Text{Text: "t"}))
}

func TestFingerprintNormalizesUnicode(t *testing.T) {
	h := NewHasher(0)
	composed := para("", "caf\u00e9")
	decomposed := para("", "cafe\u0301")
	assert.Equal(t, h.Block("a", composed), h.Block("b", decomposed),
		"composed and decomposed forms must hash identically")
	// Raw string equality still distinguishes them; a hash match on these
	// is rejected by the confirmation step.
	assert.False(t, EqualBlock(composed, decomposed))
}

func TestFingerprintVariantSeparation(t *testing.T) {
	h := NewHasher(0)
	code := &doctree.CodeBlock{Text: "x"}
	raw := &doctree.RawBlock{Format: "", Text: "x"}
	assert.NotEqual(t, h.Block("a", code), h.Block("b", raw),
		"same payload under different variants must not collide")

	text := &doctree.Text{Text: "x"}
	inlineCode := &doctree.Code{Text: "x"}
	assert.NotEqual(t, h.Inline("c", text), h.Inline("d", inlineCode))
}

func TestFingerprintAttrOrderSignificant(t *testing.T) {
	h := NewHasher(0)
	a := &doctree.Div{Attr: doctree.Attr{KVs: []doctree.KV{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}}}
	b := &doctree.Div{Attr: doctree.Attr{KVs: []doctree.KV{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}}}
	assert.NotEqual(t, h.Block("a", a), h.Block("b", b))
}

func TestFingerprintTableRegionsSeparate(t *testing.T) {
	h := NewHasher(0)
	row := doctree.TableRow{Cells: []doctree.TableCell{{Blocks: doctree.BlockList{para("", "v")}}}}
	inHead := &doctree.Table{Head: []doctree.TableRow{row}}
	inBody := &doctree.Table{Body: []doctree.TableRow{row}}
	assert.NotEqual(t, h.Block("a", inHead), h.Block("b", inBody),
		"the same row in different regions must fingerprint differently")
}

func TestSequenceFingerprintLengthSensitive(t *testing.T) {
	h := NewHasher(0)
	one := doctree.BlockList{para("", "a")}
	two := doctree.BlockList{para("", "a"), para("", "a")}
	assert.NotEqual(t, h.Blocks("a", one), h.Blocks("b", two))
}

func TestCustomSlotNameSignificant(t *testing.T) {
	h := NewHasher(0)
	content := doctree.Slot{Kind: doctree.SlotInlines, Inlines: doctree.InlineList{&doctree.Text{Text: "x"}}}
	a := &doctree.CustomBlock{Name: "callout", Slots: map[string]doctree.Slot{"title": content}}
	b := &doctree.CustomBlock{Name: "callout", Slots: map[string]doctree.Slot{"summary": content}}
	assert.NotEqual(t, h.Block("a", a), h.Block("b", b))
}

func TestEqualIgnoresSourceInfo(t *testing.T) {
	a := para(`{"offset":1,"line":1}`, "same")
	b := para(`{"offset":99,"line":9}`, "same")
	assert.True(t, EqualBlock(a, b))
	assert.True(t, EqualDocument(
		&doctree.Document{Blocks: doctree.BlockList{a}},
		&doctree.Document{Blocks: doctree.BlockList{b}},
	))
}

func TestEqualDistinguishesContent(t *testing.T) {
	assert.False(t, EqualBlock(para("", "a"), para("", "b")))
	assert.False(t, EqualBlock(para("", "a"), &doctree.HorizontalRule{}))
	assert.False(t, EqualBlocks(
		doctree.BlockList{para("", "a")},
		doctree.BlockList{para("", "a"), para("", "a")},
	))
}

func TestHasherCacheConsistency(t *testing.T) {
	// A tiny cache forces evictions; recomputed fingerprints must agree
	// with a cache large enough to hold everything.
	small := NewHasher(1)
	big := NewHasher(0)
	blocks := doctree.BlockList{
		para("", "a"),
		&doctree.Div{Blocks: doctree.BlockList{para("", "b"), para("", "c")}},
		para("", "a"),
	}
	for i, b := range blocks {
		key := "n/" + string(rune('0'+i))
		require.Equal(t, big.Block(key, b), small.Block(key, b), "block %d", i)
	}
	assert.Equal(t, big.Blocks("seq", blocks), small.Blocks("seq", blocks))
}
