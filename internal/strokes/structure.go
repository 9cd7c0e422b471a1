package strokes

import (
	"fmt"
	"regexp"
)

var (
	xmlDeclPattern     = regexp.MustCompile(`<\?xml[^>]*\?>`)
	doctypePattern     = regexp.MustCompile(`(?s)<!DOCTYPE[^\[>]*(?:\[.*?\]\s*)?>`)
	svgOpenPattern     = regexp.MustCompile(`<svg\b[^>]*\bxmlns="http://www\.w3\.org/2000/svg"[^>]*>`)
	pathGroupPattern   = regexp.MustCompile(`<g\b[^>]*\bid="kvg:StrokePaths[^"]*"[^>]*>`)
	numberGroupPattern = regexp.MustCompile(`<g\b[^>]*\bid="kvg:StrokeNumbers[^"]*"[^>]*>`)
)

// skeleton holds the verbatim text that frames every generated document.
type skeleton struct {
	xmlDecl     string
	doctype     string
	svgOpen     string
	pathsOpen   string
	numbersOpen string
}

func extractSkeleton(svgText string) (*skeleton, error) {
	var s skeleton
	fields := []struct {
		name    string
		pattern *regexp.Regexp
		dst     *string
	}{
		{"XML declaration", xmlDeclPattern, &s.xmlDecl},
		{"DOCTYPE declaration", doctypePattern, &s.doctype},
		{"svg element", svgOpenPattern, &s.svgOpen},
		{"stroke paths group", pathGroupPattern, &s.pathsOpen},
		{"stroke numbers group", numberGroupPattern, &s.numbersOpen},
	}

	for _, f := range fields {
		matches := f.pattern.FindAllString(svgText, -1)
		if len(matches) != 1 {
			return nil, fmt.Errorf("%w: expected exactly one %s, found %d", ErrMalformedDiagram, f.name, len(matches))
		}
		*f.dst = matches[0]
	}

	return &s, nil
}
