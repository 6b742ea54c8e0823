package doctree

import (
	"encoding/json"
	"fmt"
)

// Serialized nodes are tagged envelopes: the variant's fields plus a "t"
// discriminant, e.g. {"t":"Paragraph","inlines":[...]}. The MarshalJSON
// methods below add the tag; UnmarshalBlock and UnmarshalInline dispatch on
// it. The alias types strip the marshaler so the default encoder handles the
// variant's own fields.

func tagged(t Kind, v any) ([]byte, error) {
	inner, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(inner) < 2 || inner[0] != '{' {
		return nil, fmt.Errorf("doctree: node %q did not marshal to an object", t)
	}
	buf := make([]byte, 0, len(inner)+len(t)+8)
	buf = append(buf, `{"t":"`...)
	buf = append(buf, t...)
	buf = append(buf, '"')
	if string(inner) != "{}" {
		buf = append(buf, ',')
		buf = append(buf, inner[1:]...)
	} else {
		buf = append(buf, '}')
	}
	return buf, nil
}

// MarshalJSON implementations for block variants.

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return tagged(KindParagraph, (*alias)(p))
}

func (h *Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return tagged(KindHeading, (*alias)(h))
}

func (c *CodeBlock) MarshalJSON() ([]byte, error) {
	type alias CodeBlock
	return tagged(KindCodeBlock, (*alias)(c))
}

func (r *RawBlock) MarshalJSON() ([]byte, error) {
	type alias RawBlock
	return tagged(KindRawBlock, (*alias)(r))
}

func (b *BlockQuote) MarshalJSON() ([]byte, error) {
	type alias BlockQuote
	return tagged(KindBlockQuote, (*alias)(b))
}

func (d *Div) MarshalJSON() ([]byte, error) {
	type alias Div
	return tagged(KindDiv, (*alias)(d))
}

func (l *BulletList) MarshalJSON() ([]byte, error) {
	type alias BulletList
	return tagged(KindBulletList, (*alias)(l))
}

func (l *OrderedList) MarshalJSON() ([]byte, error) {
	type alias OrderedList
	return tagged(KindOrderedList, (*alias)(l))
}

func (l *DefinitionList) MarshalJSON() ([]byte, error) {
	type alias DefinitionList
	return tagged(KindDefinitionList, (*alias)(l))
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return tagged(KindTable, (*alias)(t))
}

func (h *HorizontalRule) MarshalJSON() ([]byte, error) {
	type alias HorizontalRule
	return tagged(KindHorizontalRule, (*alias)(h))
}

func (c *CustomBlock) MarshalJSON() ([]byte, error) {
	type alias CustomBlock
	return tagged(KindCustomBlock, (*alias)(c))
}

// MarshalJSON implementations for inline variants.

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return tagged(KindText, (*alias)(t))
}

func (e *Emph) MarshalJSON() ([]byte, error) {
	type alias Emph
	return tagged(KindEmph, (*alias)(e))
}

func (s *Strong) MarshalJSON() ([]byte, error) {
	type alias Strong
	return tagged(KindStrong, (*alias)(s))
}

func (s *Strikeout) MarshalJSON() ([]byte, error) {
	type alias Strikeout
	return tagged(KindStrikeout, (*alias)(s))
}

func (i *Ins) MarshalJSON() ([]byte, error) {
	type alias Ins
	return tagged(KindIns, (*alias)(i))
}

func (d *Del) MarshalJSON() ([]byte, error) {
	type alias Del
	return tagged(KindDel, (*alias)(d))
}

func (c *Code) MarshalJSON() ([]byte, error) {
	type alias Code
	return tagged(KindCode, (*alias)(c))
}

func (q *Quoted) MarshalJSON() ([]byte, error) {
	type alias Quoted
	return tagged(KindQuoted, (*alias)(q))
}

func (s *Span) MarshalJSON() ([]byte, error) {
	type alias Span
	return tagged(KindSpan, (*alias)(s))
}

func (l *Link) MarshalJSON() ([]byte, error) {
	type alias Link
	return tagged(KindLink, (*alias)(l))
}

func (i *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return tagged(KindImage, (*alias)(i))
}

func (b *LineBreak) MarshalJSON() ([]byte, error) {
	type alias LineBreak
	return tagged(KindLineBreak, (*alias)(b))
}

func (c *CustomInline) MarshalJSON() ([]byte, error) {
	type alias CustomInline
	return tagged(KindCustomInline, (*alias)(c))
}

// UnmarshalBlock decodes a tagged block envelope into its concrete variant.
func UnmarshalBlock(data []byte) (Block, error) {
	var env struct {
		T Kind `json:"t"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	var b Block
	switch env.T {
	case KindParagraph:
		b = &Paragraph{}
	case KindHeading:
		b = &Heading{}
	case KindCodeBlock:
		b = &CodeBlock{}
	case KindRawBlock:
		b = &RawBlock{}
	case KindBlockQuote:
		b = &BlockQuote{}
	case KindDiv:
		b = &Div{}
	case KindBulletList:
		b = &BulletList{}
	case KindOrderedList:
		b = &OrderedList{}
	case KindDefinitionList:
		b = &DefinitionList{}
	case KindTable:
		b = &Table{}
	case KindHorizontalRule:
		b = &HorizontalRule{}
	case KindCustomBlock:
		b = &CustomBlock{}
	default:
		return nil, fmt.Errorf("doctree: unknown block kind %q", env.T)
	}

	if err := json.Unmarshal(data, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalInline decodes a tagged inline envelope into its concrete variant.
func UnmarshalInline(data []byte) (Inline, error) {
	var env struct {
		T Kind `json:"t"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	var in Inline
	switch env.T {
	case KindText:
		in = &Text{}
	case KindEmph:
		in = &Emph{}
	case KindStrong:
		in = &Strong{}
	case KindStrikeout:
		in = &Strikeout{}
	case KindIns:
		in = &Ins{}
	case KindDel:
		in = &Del{}
	case KindCode:
		in = &Code{}
	case KindQuoted:
		in = &Quoted{}
	case KindSpan:
		in = &Span{}
	case KindLink:
		in = &Link{}
	case KindImage:
		in = &Image{}
	case KindLineBreak:
		in = &LineBreak{}
	case KindCustomInline:
		in = &CustomInline{}
	default:
		return nil, fmt.Errorf("doctree: unknown inline kind %q", env.T)
	}

	if err := json.Unmarshal(data, in); err != nil {
		return nil, err
	}
	return in, nil
}

// UnmarshalJSON implements json.Unmarshaler for BlockList.
func (l *BlockList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(BlockList, len(raw))
	for i, r := range raw {
		b, err := UnmarshalBlock(r)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		out[i] = b
	}
	*l = out
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for InlineList.
func (l *InlineList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(InlineList, len(raw))
	for i, r := range raw {
		in, err := UnmarshalInline(r)
		if err != nil {
			return fmt.Errorf("inline %d: %w", i, err)
		}
		out[i] = in
	}
	*l = out
	return nil
}

// MarshalDocument serializes a document to JSON.
func MarshalDocument(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// UnmarshalDocument deserializes a document from JSON.
func UnmarshalDocument(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
