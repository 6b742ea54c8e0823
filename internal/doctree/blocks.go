package doctree

// Paragraph is a plain block of inline content.
type Paragraph struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Paragraph) isBlock()            {}
func (*Paragraph) NodeKind() Kind      { return KindParagraph }
func (p *Paragraph) Source() SourceInfo { return p.Src }

// Heading is a section heading with a level and attributes.
type Heading struct {
	Src     SourceInfo `json:"src,omitempty"`
	Level   int        `json:"level"`
	Attr    Attr       `json:"attr,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Heading) isBlock()             {}
func (*Heading) NodeKind() Kind       { return KindHeading }
func (h *Heading) Source() SourceInfo { return h.Src }

// CodeBlock is a verbatim block of text, typically fenced code.
type CodeBlock struct {
	Src  SourceInfo `json:"src,omitempty"`
	Attr Attr       `json:"attr,omitempty"`
	Text string     `json:"text"`
}

func (*CodeBlock) isBlock()             {}
func (*CodeBlock) NodeKind() Kind       { return KindCodeBlock }
func (c *CodeBlock) Source() SourceInfo { return c.Src }

// RawBlock is verbatim output in a named format (e.g. "html"), usually
// produced by code execution.
type RawBlock struct {
	Src    SourceInfo `json:"src,omitempty"`
	Format string     `json:"format"`
	Text   string     `json:"text"`
}

func (*RawBlock) isBlock()             {}
func (*RawBlock) NodeKind() Kind       { return KindRawBlock }
func (r *RawBlock) Source() SourceInfo { return r.Src }

// BlockQuote is a quoted block sequence.
type BlockQuote struct {
	Src    SourceInfo `json:"src,omitempty"`
	Blocks BlockList  `json:"blocks,omitempty"`
}

func (*BlockQuote) isBlock()             {}
func (*BlockQuote) NodeKind() Kind       { return KindBlockQuote }
func (b *BlockQuote) Source() SourceInfo { return b.Src }

// Div is a generic attributed block container.
type Div struct {
	Src    SourceInfo `json:"src,omitempty"`
	Attr   Attr       `json:"attr,omitempty"`
	Blocks BlockList  `json:"blocks,omitempty"`
}

func (*Div) isBlock()             {}
func (*Div) NodeKind() Kind       { return KindDiv }
func (d *Div) Source() SourceInfo { return d.Src }

// BulletList is an unordered list. Each item is itself a block sequence.
type BulletList struct {
	Src   SourceInfo  `json:"src,omitempty"`
	Tight bool        `json:"tight,omitempty"`
	Items []BlockList `json:"items,omitempty"`
}

func (*BulletList) isBlock()             {}
func (*BulletList) NodeKind() Kind       { return KindBulletList }
func (l *BulletList) Source() SourceInfo { return l.Src }

// OrderedList is a numbered list with a start index and numbering style.
type OrderedList struct {
	Src   SourceInfo  `json:"src,omitempty"`
	Start int         `json:"start"`
	Style string      `json:"style,omitempty"`
	Tight bool        `json:"tight,omitempty"`
	Items []BlockList `json:"items,omitempty"`
}

func (*OrderedList) isBlock()             {}
func (*OrderedList) NodeKind() Kind       { return KindOrderedList }
func (l *OrderedList) Source() SourceInfo { return l.Src }

// DefItem is one term/definitions entry of a DefinitionList. It is not a
// node itself and carries no SourceInfo of its own.
type DefItem struct {
	Term        InlineList  `json:"term,omitempty"`
	Definitions []BlockList `json:"definitions,omitempty"`
}

// DefinitionList is a list of terms, each with one or more definitions.
type DefinitionList struct {
	Src   SourceInfo `json:"src,omitempty"`
	Items []DefItem  `json:"items,omitempty"`
}

func (*DefinitionList) isBlock()             {}
func (*DefinitionList) NodeKind() Kind       { return KindDefinitionList }
func (l *DefinitionList) Source() SourceInfo { return l.Src }

// TableCell is one cell of a table row: a block sequence with alignment and
// span information. Cells are not nodes and carry no SourceInfo.
type TableCell struct {
	Align   string    `json:"align,omitempty"`
	RowSpan int       `json:"row_span,omitempty"`
	ColSpan int       `json:"col_span,omitempty"`
	Blocks  BlockList `json:"blocks,omitempty"`
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells []TableCell `json:"cells,omitempty"`
}

// Table is a table with distinct head, body, and foot regions. The regions
// are kept separate because the engine must never cross-match a head cell
// with a body cell, even when their content is identical.
type Table struct {
	Src     SourceInfo `json:"src,omitempty"`
	Attr    Attr       `json:"attr,omitempty"`
	Caption InlineList `json:"caption,omitempty"`
	Head    []TableRow `json:"head,omitempty"`
	Body    []TableRow `json:"body,omitempty"`
	Foot    []TableRow `json:"foot,omitempty"`
}

func (*Table) isBlock()             {}
func (*Table) NodeKind() Kind       { return KindTable }
func (t *Table) Source() SourceInfo { return t.Src }

// HorizontalRule is a thematic break.
type HorizontalRule struct {
	Src SourceInfo `json:"src,omitempty"`
}

func (*HorizontalRule) isBlock()             {}
func (*HorizontalRule) NodeKind() Kind       { return KindHorizontalRule }
func (h *HorizontalRule) Source() SourceInfo { return h.Src }
