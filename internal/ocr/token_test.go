package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(text string, y, confidence float64) TextToken {
	return TextToken{
		Text: text,
		BoundingBox: [4]Point{
			{X: 0, Y: y}, {X: 100, Y: y},
			{X: 100, Y: y + 15}, {X: 0, Y: y + 15},
		},
		Confidence: confidence,
	}
}

func TestNewDocument_SortsByTopLeftY(t *testing.T) {
	doc := NewDocument([]TextToken{
		token("TOTAL 25.000", 300, 0.9),
		token("GOMACHI RESTO", 100, 0.9),
		token("2 GYOZA 25.000", 200, 0.9),
	})

	require.Len(t, doc.Tokens, 3)
	assert.Equal(t, "GOMACHI RESTO", doc.Tokens[0].Text)
	assert.Equal(t, "2 GYOZA 25.000", doc.Tokens[1].Text)
	assert.Equal(t, "TOTAL 25.000", doc.Tokens[2].Text)
	assert.Equal(t, "GOMACHI RESTO\n2 GYOZA 25.000\nTOTAL 25.000", doc.FullText)
}

func TestNewDocument_StableForEqualY(t *testing.T) {
	doc := NewDocument([]TextToken{
		token("left", 100, 0.9),
		token("right", 100, 0.9),
	})

	assert.Equal(t, "left\nright", doc.FullText)
}

func TestNewDocument_DoesNotMutateInput(t *testing.T) {
	in := []TextToken{
		token("b", 200, 0.9),
		token("a", 100, 0.9),
	}
	_ = NewDocument(in)
	assert.Equal(t, "b", in[0].Text)
}

func TestNewDocument_Empty(t *testing.T) {
	doc := NewDocument(nil)
	assert.True(t, doc.Empty())
	assert.Empty(t, doc.FullText)
	assert.Nil(t, doc.Lines())
}

func TestDocument_Lines(t *testing.T) {
	doc := NewDocument([]TextToken{
		token("one", 100, 0.9),
		token("two", 200, 0.9),
	})
	assert.Equal(t, []string{"one", "two"}, doc.Lines())
}

func TestFilterConfidence(t *testing.T) {
	tokens := []TextToken{
		token("keep", 100, 0.9),
		token("drop", 200, 0.3),
		token("boundary", 300, 0.5),
	}

	kept := FilterConfidence(tokens, 0.5)
	require.Len(t, kept, 2)
	assert.Equal(t, "keep", kept[0].Text)
	assert.Equal(t, "boundary", kept[1].Text)
}

func TestFilterConfidence_ZeroKeepsAll(t *testing.T) {
	tokens := []TextToken{token("a", 100, 0.01)}
	assert.Len(t, FilterConfidence(tokens, 0), 1)
}
