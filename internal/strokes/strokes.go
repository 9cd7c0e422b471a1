// Package strokes splits a KanjiVG stroke diagram into progressive SVG
// documents: document i shows strokes 1 through i+1.
//
// The framing of every document (XML declaration, DOCTYPE, svg tag and the
// two group tags) is copied verbatim from the source diagram, so this package
// is the only place that depends on the upstream document layout.
package strokes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDiagram is returned when the diagram is not well-formed XML
	// or lacks one of the structural fragments every document is built from.
	ErrMalformedDiagram = errors.New("malformed stroke diagram")
	// ErrGroupNotFound is returned when the diagram has no stroke group keyed
	// by the requested diagram id.
	ErrGroupNotFound = errors.New("stroke group not found")
	// ErrCountMismatch is returned when the number of stroke paths differs
	// from the number of stroke number labels.
	ErrCountMismatch = errors.New("stroke path and label counts differ")
)

const (
	svgExtension       = ".svg"
	pathsGroupPrefix   = "kvg:StrokePaths_"
	numbersGroupPrefix = "kvg:StrokeNumbers_"
)

type options struct {
	withNumbers bool
}

type Option func(*options)

// WithNumbers controls whether the stroke number labels group is included in
// the generated documents. It is included by default.
func WithNumbers(show bool) Option {
	return func(o *options) {
		o.withNumbers = show
	}
}

// DiagramID derives the group key of a diagram from its resource id,
// e.g. "06c34.svg" -> "06c34".
func DiagramID(resourceID string) string {
	return strings.TrimSuffix(resourceID, svgExtension)
}

// Decompose returns one SVG document per stroke of the diagram, in stroke
// order. Document i holds paths and labels 0..i. The result is a pure
// function of its inputs.
func Decompose(svgText, diagramID string, opts ...Option) ([]string, error) {
	o := options{withNumbers: true}
	for _, opt := range opts {
		opt(&o)
	}

	skel, err := extractSkeleton(svgText)
	if err != nil {
		return nil, err
	}

	elems, err := collectStrokes(svgText, pathsGroupPrefix+diagramID, numbersGroupPrefix+diagramID)
	if err != nil {
		return nil, err
	}

	if len(elems.paths) != len(elems.labels) {
		return nil, fmt.Errorf("%w: %d paths, %d labels", ErrCountMismatch, len(elems.paths), len(elems.labels))
	}

	documents := make([]string, len(elems.paths))
	for i := range elems.paths {
		documents[i] = skel.render(elems, i, o.withNumbers)
	}

	return documents, nil
}

func (s *skeleton) render(elems *strokeElements, last int, withNumbers bool) string {
	var b strings.Builder

	b.WriteString(s.xmlDecl)
	b.WriteByte('\n')
	b.WriteString(s.doctype)
	b.WriteByte('\n')
	b.WriteString(s.svgOpen)
	b.WriteByte('\n')

	writeGroup(&b, s.pathsOpen, elems.paths[:last+1])
	if withNumbers {
		writeGroup(&b, s.numbersOpen, elems.labels[:last+1])
	}

	b.WriteString("</svg>")
	return b.String()
}

func writeGroup(b *strings.Builder, open string, children []string) {
	b.WriteString(open)
	b.WriteByte('\n')
	for _, child := range children {
		b.WriteByte('\t')
		b.WriteString(child)
		b.WriteByte('\n')
	}
	b.WriteString("</g>\n")
}
