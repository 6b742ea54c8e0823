package doctree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullDocument exercises every variant and every slot kind.
func fullDocument() *Document {
	return &Document{Blocks: BlockList{
		&Heading{
			Src:     SourceInfo(`{"offset":0,"line":1}`),
			Level:   2,
			Attr:    Attr{ID: "intro", Classes: []string{"wide"}, KVs: []KV{{Key: "data-x", Value: "1"}}},
			Inlines: InlineList{&Text{Text: "Intro"}},
		},
		&Paragraph{Inlines: InlineList{
			&Text{Src: SourceInfo(`{"offset":12,"line":3}`), Text: "see "},
			&Emph{Inlines: InlineList{&Text{Text: "this"}}},
			&Strong{Inlines: InlineList{&Text{Text: "bold"}}},
			&Strikeout{Inlines: InlineList{&Text{Text: "gone"}}},
			&Ins{Inlines: InlineList{&Text{Text: "new"}}},
			&Del{Inlines: InlineList{&Text{Text: "old"}}},
			&Code{Text: "f()"},
			&Quoted{QuoteType: "double", Inlines: InlineList{&Text{Text: "quoted"}}},
			&Span{Attr: Attr{Classes: []string{"hl"}}, Inlines: InlineList{&Text{Text: "marked"}}},
			&Link{Target: "https://example.com", Title: "home", Inlines: InlineList{&Text{Text: "link"}}},
			&Image{Target: "plot.png", Inlines: InlineList{&Text{Text: "alt"}}},
			&LineBreak{Hard: true},
			&CustomInline{Name: "ref", Slots: map[string]Slot{
				"label": {Kind: SlotInline, Inline: &Text{Text: "fig 1"}},
			}},
		}},
		&CodeBlock{Attr: Attr{Classes: []string{"python"}}, Text: "print(1)\n"},
		&RawBlock{Format: "html", Text: "<hr>"},
		&BlockQuote{Blocks: BlockList{&Paragraph{Inlines: InlineList{&Text{Text: "quote"}}}}},
		&Div{Attr: Attr{ID: "wrap"}, Blocks: BlockList{&HorizontalRule{}}},
		&BulletList{Tight: true, Items: []BlockList{
			{&Paragraph{Inlines: InlineList{&Text{Text: "a"}}}},
			{&Paragraph{Inlines: InlineList{&Text{Text: "b"}}}},
		}},
		&OrderedList{Start: 3, Style: "decimal", Items: []BlockList{
			{&Paragraph{Inlines: InlineList{&Text{Text: "first"}}}},
		}},
		&DefinitionList{Items: []DefItem{{
			Term:        InlineList{&Text{Text: "term"}},
			Definitions: []BlockList{{&Paragraph{Inlines: InlineList{&Text{Text: "meaning"}}}}},
		}}},
		&Table{
			Caption: InlineList{&Text{Text: "results"}},
			Head:    []TableRow{{Cells: []TableCell{{Align: "left", Blocks: BlockList{&Paragraph{Inlines: InlineList{&Text{Text: "h"}}}}}}}},
			Body: []TableRow{{Cells: []TableCell{
				{Blocks: BlockList{&Paragraph{Inlines: InlineList{&Text{Text: "v"}}}}},
				{RowSpan: 2, ColSpan: 1},
			}}},
			Foot: []TableRow{{Cells: []TableCell{{}}}},
		},
		&CustomBlock{
			Name: "callout",
			Slots: map[string]Slot{
				"body":    {Kind: SlotBlocks, Blocks: BlockList{&Paragraph{Inlines: InlineList{&Text{Text: "note"}}}}},
				"title":   {Kind: SlotInlines, Inlines: InlineList{&Text{Text: "Heads up"}}},
				"summary": {Kind: SlotInline, Inline: &Text{Text: "tl;dr"}},
				"aside":   {Kind: SlotBlock, Block: &Paragraph{Inlines: InlineList{&Text{Text: "aside"}}}},
			},
			Payload: json.RawMessage(`{"severity":"warn"}`),
		},
	}}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := fullDocument()

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, decoded.Blocks, len(doc.Blocks))

	// A second marshal of the decoded tree must reproduce the bytes exactly.
	again, err := MarshalDocument(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "marshal must be stable across a round trip")
}

func TestRoundTripPreservesVariants(t *testing.T) {
	data, err := MarshalDocument(fullDocument())
	require.NoError(t, err)
	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)

	wantKinds := []Kind{
		KindHeading, KindParagraph, KindCodeBlock, KindRawBlock,
		KindBlockQuote, KindDiv, KindBulletList, KindOrderedList,
		KindDefinitionList, KindTable, KindCustomBlock,
	}
	require.Len(t, decoded.Blocks, len(wantKinds))
	for i, want := range wantKinds {
		assert.Equal(t, want, decoded.Blocks[i].NodeKind(), "block %d", i)
	}

	h, ok := decoded.Blocks[0].(*Heading)
	require.True(t, ok)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "intro", h.Attr.ID)
	assert.JSONEq(t, `{"offset":0,"line":1}`, string(h.Src))

	cb, ok := decoded.Blocks[10].(*CustomBlock)
	require.True(t, ok)
	assert.Equal(t, "callout", cb.Name)
	assert.Equal(t, SlotBlock, cb.Slots["aside"].Kind)
	assert.Equal(t, SlotInlines, cb.Slots["title"].Kind)
	assert.JSONEq(t, `{"severity":"warn"}`, string(cb.Payload))
}

func TestUnmarshalBlockRejectsUnknownTag(t *testing.T) {
	_, err := UnmarshalBlock([]byte(`{"t":"Mystery"}`))
	assert.Error(t, err)

	_, err = UnmarshalBlock([]byte(`{"text":"missing tag"}`))
	assert.Error(t, err)
}

func TestUnmarshalInlineRejectsUnknownTag(t *testing.T) {
	_, err := UnmarshalInline([]byte(`{"t":"Paragraph"}`))
	assert.Error(t, err, "block tags are not valid inline tags")
}

func TestSlotRejectsUnknownKind(t *testing.T) {
	var s Slot
	err := json.Unmarshal([]byte(`{"kind":"grid","content":[]}`), &s)
	assert.Error(t, err)
}

func TestSortedSlotNames(t *testing.T) {
	slots := map[string]Slot{
		"title": {Kind: SlotInlines},
		"aside": {Kind: SlotBlock},
		"body":  {Kind: SlotBlocks},
	}
	assert.Equal(t, []string{"aside", "body", "title"}, SortedSlotNames(slots))
}

func TestAttrIsZero(t *testing.T) {
	assert.True(t, Attr{}.IsZero())
	assert.False(t, Attr{ID: "x"}.IsZero())
	assert.False(t, Attr{Classes: []string{"c"}}.IsZero())
	assert.False(t, Attr{KVs: []KV{{Key: "k", Value: "v"}}}.IsZero())
}
