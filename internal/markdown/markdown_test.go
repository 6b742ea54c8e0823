package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
)

const sample = `# Report

Numbers for *this* quarter are **up**, see [details](https://example.com/q3).

` + "```python\nprint(totals)\n```" + `

> Quoted remark.

- first
- second

| h1 | h2 |
|----|----|
| a  | b  |

Struck ~~through~~ text.
`

func TestParseBlockKinds(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	want := []doctree.Kind{
		doctree.KindHeading,
		doctree.KindParagraph,
		doctree.KindCodeBlock,
		doctree.KindBlockQuote,
		doctree.KindBulletList,
		doctree.KindTable,
		doctree.KindParagraph,
	}
	require.Len(t, doc.Blocks, len(want))
	for i, k := range want {
		assert.Equal(t, k, doc.Blocks[i].NodeKind(), "block %d", i)
	}
}

func TestParseHeading(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	h := doc.Blocks[0].(*doctree.Heading)
	assert.Equal(t, 1, h.Level)
	require.Len(t, h.Inlines, 1)
	assert.Equal(t, "Report", h.Inlines[0].(*doctree.Text).Text)
	assert.JSONEq(t, `{"offset":2,"line":1}`, string(h.Src), "heading text starts after the marker")
}

func TestParseInlineStructure(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	para := doc.Blocks[1].(*doctree.Paragraph)
	var kinds []doctree.Kind
	for _, in := range para.Inlines {
		kinds = append(kinds, in.NodeKind())
	}
	assert.Contains(t, kinds, doctree.KindEmph)
	assert.Contains(t, kinds, doctree.KindStrong)
	assert.Contains(t, kinds, doctree.KindLink)

	for _, in := range para.Inlines {
		if l, ok := in.(*doctree.Link); ok {
			assert.Equal(t, "https://example.com/q3", l.Target)
			assert.Equal(t, "details", l.Inlines[0].(*doctree.Text).Text)
		}
	}
}

func TestParseCodeBlock(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	cb := doc.Blocks[2].(*doctree.CodeBlock)
	assert.Equal(t, []string{"python"}, cb.Attr.Classes)
	assert.Equal(t, "print(totals)\n", cb.Text)
	assert.NotNil(t, cb.Src)
}

func TestParseList(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	list := doc.Blocks[4].(*doctree.BulletList)
	require.Len(t, list.Items, 2)
	first := list.Items[0][0].(*doctree.Paragraph)
	assert.Equal(t, "first", first.Inlines[0].(*doctree.Text).Text)
}

func TestParseTableRegions(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	table := doc.Blocks[5].(*doctree.Table)
	require.Len(t, table.Head, 1)
	require.Len(t, table.Body, 1)
	assert.Empty(t, table.Foot)

	headCell := table.Head[0].Cells[0].Blocks[0].(*doctree.Paragraph)
	assert.Equal(t, "h1", headCell.Inlines[0].(*doctree.Text).Text)
	bodyCell := table.Body[0].Cells[1].Blocks[0].(*doctree.Paragraph)
	assert.Equal(t, "b", bodyCell.Inlines[0].(*doctree.Text).Text)
}

func TestParseStrikethrough(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	para := doc.Blocks[6].(*doctree.Paragraph)
	found := false
	for _, in := range para.Inlines {
		if s, ok := in.(*doctree.Strikeout); ok {
			found = true
			assert.Equal(t, "through", s.Inlines[0].(*doctree.Text).Text)
		}
	}
	assert.True(t, found, "strikethrough extension must be enabled")
}

func TestEveryParsedBlockHasSource(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	for i, b := range doc.Blocks {
		src := b.Source()
		require.NotNil(t, src, "block %d", i)
		assert.True(t, strings.Contains(string(src), `"line"`), "block %d: %s", i, src)
	}
}

func TestLineNumbersAscend(t *testing.T) {
	doc, err := Parse([]byte("one\n\ntwo\n\nthree\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)

	assert.JSONEq(t, `{"offset":0,"line":1}`, string(doc.Blocks[0].Source()))
	assert.JSONEq(t, `{"offset":5,"line":3}`, string(doc.Blocks[1].Source()))
	assert.JSONEq(t, `{"offset":10,"line":5}`, string(doc.Blocks[2].Source()))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.md")
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Blocks)
}
