package ocr

import (
	"sort"
	"strings"
)

// Point is one corner of a token's bounding quadrilateral.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextToken is a single recognized text fragment as produced by the OCR
// engine. The pipeline only reads tokens; it never mutates them.
type TextToken struct {
	Text        string   `json:"text"`
	BoundingBox [4]Point `json:"bounding_box"`
	Confidence  float64  `json:"confidence"`
}

// TopLeftY is the vertical coordinate used for layout ordering.
func (t TextToken) TopLeftY() float64 {
	return t.BoundingBox[0].Y
}

// Document is a receipt's token stream after layout normalization: tokens
// ordered top-to-bottom, plus the newline-joined text blob in that order.
// Built once per request and immutable thereafter.
type Document struct {
	Tokens   []TextToken
	FullText string
}

// Lines returns the full text split into its token lines.
func (d *Document) Lines() []string {
	if d.FullText == "" {
		return nil
	}
	return strings.Split(d.FullText, "\n")
}

// Empty reports whether the document carries no tokens.
func (d *Document) Empty() bool {
	return len(d.Tokens) == 0
}

// NewDocument normalizes a raw token stream into a Document. Tokens are
// stable-sorted ascending by top-left Y, so fragments detected on the same
// line keep their detection order. An empty input yields an empty document.
func NewDocument(tokens []TextToken) *Document {
	sorted := make([]TextToken, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TopLeftY() < sorted[j].TopLeftY()
	})

	texts := make([]string, len(sorted))
	for i, t := range sorted {
		texts[i] = t.Text
	}
	return &Document{
		Tokens:   sorted,
		FullText: strings.Join(texts, "\n"),
	}
}

// FilterConfidence drops tokens scored below min. A min of 0 keeps
// everything.
func FilterConfidence(tokens []TextToken, min float64) []TextToken {
	if min <= 0 {
		return tokens
	}
	kept := make([]TextToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Confidence >= min {
			kept = append(kept, t)
		}
	}
	return kept
}
