package doctree

// Text is a run of literal text.
type Text struct {
	Src  SourceInfo `json:"src,omitempty"`
	Text string     `json:"text"`
}

func (*Text) isInline()            {}
func (*Text) NodeKind() Kind       { return KindText }
func (t *Text) Source() SourceInfo { return t.Src }

// Emph is emphasized (italic) inline content.
type Emph struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Emph) isInline()            {}
func (*Emph) NodeKind() Kind       { return KindEmph }
func (e *Emph) Source() SourceInfo { return e.Src }

// Strong is strongly emphasized (bold) inline content.
type Strong struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Strong) isInline()            {}
func (*Strong) NodeKind() Kind       { return KindStrong }
func (s *Strong) Source() SourceInfo { return s.Src }

// Strikeout is struck-through inline content.
type Strikeout struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Strikeout) isInline()            {}
func (*Strikeout) NodeKind() Kind       { return KindStrikeout }
func (s *Strikeout) Source() SourceInfo { return s.Src }

// Ins marks inserted text (change tracking).
type Ins struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Ins) isInline()            {}
func (*Ins) NodeKind() Kind       { return KindIns }
func (i *Ins) Source() SourceInfo { return i.Src }

// Del marks deleted text (change tracking).
type Del struct {
	Src     SourceInfo `json:"src,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Del) isInline()            {}
func (*Del) NodeKind() Kind       { return KindDel }
func (d *Del) Source() SourceInfo { return d.Src }

// Code is an inline verbatim span.
type Code struct {
	Src  SourceInfo `json:"src,omitempty"`
	Attr Attr       `json:"attr,omitempty"`
	Text string     `json:"text"`
}

func (*Code) isInline()            {}
func (*Code) NodeKind() Kind       { return KindCode }
func (c *Code) Source() SourceInfo { return c.Src }

// Quoted is inline content wrapped in quotation marks.
// QuoteType is "single" or "double".
type Quoted struct {
	Src       SourceInfo `json:"src,omitempty"`
	QuoteType string     `json:"quote_type"`
	Inlines   InlineList `json:"inlines,omitempty"`
}

func (*Quoted) isInline()            {}
func (*Quoted) NodeKind() Kind       { return KindQuoted }
func (q *Quoted) Source() SourceInfo { return q.Src }

// Span is a generic attributed inline container.
type Span struct {
	Src     SourceInfo `json:"src,omitempty"`
	Attr    Attr       `json:"attr,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Span) isInline()            {}
func (*Span) NodeKind() Kind       { return KindSpan }
func (s *Span) Source() SourceInfo { return s.Src }

// Link is a hyperlink wrapping its label content.
type Link struct {
	Src     SourceInfo `json:"src,omitempty"`
	Attr    Attr       `json:"attr,omitempty"`
	Target  string     `json:"target"`
	Title   string     `json:"title,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Link) isInline()            {}
func (*Link) NodeKind() Kind       { return KindLink }
func (l *Link) Source() SourceInfo { return l.Src }

// Image is an image reference wrapping its alt-text content.
type Image struct {
	Src     SourceInfo `json:"src,omitempty"`
	Attr    Attr       `json:"attr,omitempty"`
	Target  string     `json:"target"`
	Title   string     `json:"title,omitempty"`
	Inlines InlineList `json:"inlines,omitempty"`
}

func (*Image) isInline()            {}
func (*Image) NodeKind() Kind       { return KindImage }
func (i *Image) Source() SourceInfo { return i.Src }

// LineBreak is a soft or hard line break.
type LineBreak struct {
	Src  SourceInfo `json:"src,omitempty"`
	Hard bool       `json:"hard,omitempty"`
}

func (*LineBreak) isInline()            {}
func (*LineBreak) NodeKind() Kind       { return KindLineBreak }
func (b *LineBreak) Source() SourceInfo { return b.Src }
