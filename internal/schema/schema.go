// Package schema validates serialized documents against a CUE schema.
// The CLI runs this check on documents it loads from disk before handing
// them to the engine; the engine itself assumes well-formed trees.
package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// documentSchema is the CUE definition of the serialized document tree.
// It mirrors the doctree JSON envelopes, including the "t" discriminant.
const documentSchema = `
#Attr: {
	id?:      string
	classes?: [...string]
	kvs?: [...{key: string, value: string}]
}

#Slot: {
	kind:    "block" | "inline" | "blocks" | "inlines"
	content: _
}

#Block: #Paragraph | #Heading | #CodeBlock | #RawBlock | #BlockQuote |
	#Div | #BulletList | #OrderedList | #DefinitionList | #Table |
	#HorizontalRule | #CustomBlock

#Inline: #Text | #Emph | #Strong | #Strikeout | #Ins | #Del | #Code |
	#Quoted | #Span | #Link | #Image | #LineBreak | #CustomInline

#Paragraph: {t: "Paragraph", src?: _, inlines?: [...#Inline]}
#Heading: {t: "Heading", src?: _, level: int & >=1, attr?: #Attr, inlines?: [...#Inline]}
#CodeBlock: {t: "CodeBlock", src?: _, attr?: #Attr, text: string}
#RawBlock: {t: "RawBlock", src?: _, format: string, text: string}
#BlockQuote: {t: "BlockQuote", src?: _, blocks?: [...#Block]}
#Div: {t: "Div", src?: _, attr?: #Attr, blocks?: [...#Block]}
#BulletList: {t: "BulletList", src?: _, tight?: bool, items?: [...[...#Block]]}
#OrderedList: {t: "OrderedList", src?: _, start: int, style?: string, tight?: bool, items?: [...[...#Block]]}
#DefItem: {term?: [...#Inline], definitions?: [...[...#Block]]}
#DefinitionList: {t: "DefinitionList", src?: _, items?: [...#DefItem]}
#Cell: {align?: "left" | "right" | "center", row_span?: int, col_span?: int, blocks?: [...#Block]}
#Row: {cells?: [...#Cell]}
#Table: {t: "Table", src?: _, attr?: #Attr, caption?: [...#Inline], head?: [...#Row], body?: [...#Row], foot?: [...#Row]}
#HorizontalRule: {t: "HorizontalRule", src?: _}
#CustomBlock: {t: "CustomBlock", src?: _, name: string, slots?: {[string]: #Slot}, payload?: _}

#Text: {t: "Text", src?: _, text: string}
#Emph: {t: "Emph", src?: _, inlines?: [...#Inline]}
#Strong: {t: "Strong", src?: _, inlines?: [...#Inline]}
#Strikeout: {t: "Strikeout", src?: _, inlines?: [...#Inline]}
#Ins: {t: "Ins", src?: _, inlines?: [...#Inline]}
#Del: {t: "Del", src?: _, inlines?: [...#Inline]}
#Code: {t: "Code", src?: _, attr?: #Attr, text: string}
#Quoted: {t: "Quoted", src?: _, quote_type: string, inlines?: [...#Inline]}
#Span: {t: "Span", src?: _, attr?: #Attr, inlines?: [...#Inline]}
#Link: {t: "Link", src?: _, attr?: #Attr, target: string, title?: string, inlines?: [...#Inline]}
#Image: {t: "Image", src?: _, attr?: #Attr, target: string, title?: string, inlines?: [...#Inline]}
#LineBreak: {t: "LineBreak", src?: _, hard?: bool}
#CustomInline: {t: "CustomInline", src?: _, name: string, slots?: {[string]: #Slot}, payload?: _}

#Document: {blocks?: [...#Block]}
`

// ValidateDocument checks that data is a well-formed serialized document.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func ValidateDocument(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(documentSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return fmt.Errorf("parse document JSON: %w", err)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build document value: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Document")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
