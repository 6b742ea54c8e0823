package doctree

import "encoding/json"

// SourceInfo is an opaque provenance handle produced by the source-mapping
// component of the toolchain. The reconciliation engine only ever copies or
// discards a SourceInfo; it never constructs one and never looks inside.
// A nil SourceInfo marks freshly generated content with no provenance.
type SourceInfo = json.RawMessage

// Kind identifies the concrete variant of a Block or Inline.
type Kind string

// Block kinds.
const (
	KindParagraph      Kind = "Paragraph"
	KindHeading        Kind = "Heading"
	KindCodeBlock      Kind = "CodeBlock"
	KindRawBlock       Kind = "RawBlock"
	KindBlockQuote     Kind = "BlockQuote"
	KindDiv            Kind = "Div"
	KindBulletList     Kind = "BulletList"
	KindOrderedList    Kind = "OrderedList"
	KindDefinitionList Kind = "DefinitionList"
	KindTable          Kind = "Table"
	KindHorizontalRule Kind = "HorizontalRule"
	KindCustomBlock    Kind = "CustomBlock"
)

// Inline kinds.
const (
	KindText         Kind = "Text"
	KindEmph         Kind = "Emph"
	KindStrong       Kind = "Strong"
	KindStrikeout    Kind = "Strikeout"
	KindIns          Kind = "Ins"
	KindDel          Kind = "Del"
	KindCode         Kind = "Code"
	KindQuoted       Kind = "Quoted"
	KindSpan         Kind = "Span"
	KindLink         Kind = "Link"
	KindImage        Kind = "Image"
	KindLineBreak    Kind = "LineBreak"
	KindCustomInline Kind = "CustomInline"
)

// Node is the behavior shared by every Block and Inline variant.
type Node interface {
	// NodeKind returns the variant discriminant.
	NodeKind() Kind
	// Source returns the node's provenance handle (may be nil).
	Source() SourceInfo
}

// Block is a sealed interface over the block-level variants.
// Only the types in blocks.go implement it.
type Block interface {
	Node
	isBlock()
}

// Inline is a sealed interface over the inline-level variants.
// Only the types in inlines.go implement it.
type Inline interface {
	Node
	isInline()
}

// BlockList is an ordered sequence of blocks. It exists as a named type so
// JSON decoding can resolve the concrete variant of each element.
type BlockList []Block

// InlineList is an ordered sequence of inlines, mirror of BlockList.
type InlineList []Inline

// Document is the root of a document tree: an ordered block sequence.
type Document struct {
	Blocks BlockList `json:"blocks,omitempty"`
}

// KV is one ordered key/value attribute pair.
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attr is the attribute set attached to attributed nodes: identifier,
// classes, and ordered key/value pairs. The pair order is significant for
// hashing and equality.
type Attr struct {
	ID      string   `json:"id,omitempty"`
	Classes []string `json:"classes,omitempty"`
	KVs     []KV     `json:"kvs,omitempty"`
}

// IsZero reports whether the attribute set is empty.
func (a Attr) IsZero() bool {
	return a.ID == "" && len(a.Classes) == 0 && len(a.KVs) == 0
}
