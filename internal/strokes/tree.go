package strokes

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type groupKind int

const (
	noGroup groupKind = iota
	pathsGroup
	numbersGroup
)

type frame struct {
	start   int64
	group   groupKind
	capture groupKind
}

// strokeElements are the raw source texts of the stroke paths and stroke
// number labels, in document order.
type strokeElements struct {
	paths  []string
	labels []string
}

// collectStrokes walks svgText as XML and records every path element below
// the group with id pathsID and every text element below the group with id
// numbersID. Elements are kept as their exact source bytes.
func collectStrokes(svgText, pathsID, numbersID string) (*strokeElements, error) {
	decoder := xml.NewDecoder(strings.NewReader(svgText))
	decoder.Strict = true
	// svgText is already UTF-8; the declared encoding describes the upstream bytes.
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var (
		result       strokeElements
		stack        []frame
		rootSeen     bool
		foundPaths   bool
		foundNumbers bool
		active       groupKind
		capturing    bool
	)

	for {
		offset := decoder.InputOffset()
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDiagram, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !rootSeen {
				rootSeen = true
				if t.Name.Space != svgNamespace || t.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root element is not an SVG svg element", ErrMalformedDiagram)
				}
			}

			f := frame{start: offset}
			if active == noGroup {
				switch attrValue(t, "id") {
				case pathsID:
					if !foundPaths {
						f.group, active, foundPaths = pathsGroup, pathsGroup, true
					}
				case numbersID:
					if !foundNumbers {
						f.group, active, foundNumbers = numbersGroup, numbersGroup, true
					}
				}
			} else if !capturing && t.Name.Space == svgNamespace {
				switch {
				case active == pathsGroup && t.Name.Local == "path":
					f.capture, capturing = pathsGroup, true
				case active == numbersGroup && t.Name.Local == "text":
					f.capture, capturing = numbersGroup, true
				}
			}
			stack = append(stack, f)

		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch f.capture {
			case pathsGroup:
				result.paths = append(result.paths, svgText[f.start:decoder.InputOffset()])
				capturing = false
			case numbersGroup:
				result.labels = append(result.labels, svgText[f.start:decoder.InputOffset()])
				capturing = false
			}
			if f.group != noGroup {
				active = noGroup
			}
		}
	}

	if !rootSeen {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformedDiagram)
	}
	if !foundPaths {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, pathsID)
	}
	if !foundNumbers {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, numbersID)
	}

	return &result, nil
}

func attrValue(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
