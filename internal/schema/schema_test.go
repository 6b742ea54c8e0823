package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/treegen"
)

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	valid := `{
		"blocks": [
			{"t": "Heading", "level": 2, "attr": {"id": "x"}, "inlines": [{"t": "Text", "text": "hi"}]},
			{"t": "Paragraph", "src": {"offset": 3, "line": 1}, "inlines": [
				{"t": "Emph", "inlines": [{"t": "Text", "text": "em"}]},
				{"t": "Link", "target": "https://example.com", "inlines": [{"t": "Text", "text": "l"}]}
			]},
			{"t": "HorizontalRule"},
			{"t": "Table", "head": [{"cells": [{"align": "left", "blocks": [{"t": "Paragraph", "inlines": [{"t": "Text", "text": "h"}]}]}]}], "body": []},
			{"t": "CustomBlock", "name": "callout", "slots": {"title": {"kind": "inlines", "content": [{"t": "Text", "text": "x"}]}}, "payload": {"id": 3}}
		]
	}`
	assert.NoError(t, ValidateDocument([]byte(valid)))
}

func TestValidateAcceptsEmptyDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(`{}`)))
	assert.NoError(t, ValidateDocument([]byte(`{"blocks":[]}`)))
}

func TestValidateRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not JSON", `{"blocks":`},
		{"unknown tag", `{"blocks":[{"t":"Mystery"}]}`},
		{"missing tag", `{"blocks":[{"text":"x"}]}`},
		{"level wrong type", `{"blocks":[{"t":"Heading","level":"two","inlines":[]}]}`},
		{"level out of range", `{"blocks":[{"t":"Heading","level":0,"inlines":[]}]}`},
		{"inline in block position", `{"blocks":[{"t":"Text","text":"x"}]}`},
		{"bad slot kind", `{"blocks":[{"t":"CustomBlock","name":"c","slots":{"x":{"kind":"grid","content":[]}}}]}`},
		{"bad cell alignment", `{"blocks":[{"t":"Table","body":[{"cells":[{"align":"middle"}]}]}]}`},
		{"blocks not a list", `{"blocks":{"t":"Paragraph"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateDocument([]byte(tc.doc)))
		})
	}
}

// Generated documents and their serialized forms must always satisfy the
// schema; this pins the schema to the tree codec.
func TestValidateAcceptsGeneratedDocuments(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := treegen.New(seed)
		data, err := doctree.MarshalDocument(g.Document(3))
		require.NoError(t, err)
		assert.NoError(t, ValidateDocument(data), "seed %d", seed)
	}
}
