package domain

import "sort"

// KanjiIndex maps a kanji to the ordered list of stroke diagram resources
// (SVG file names) published for it. Later entries supersede earlier ones.
type KanjiIndex map[string][]string

// Resolve returns the canonical resource for kanji: the last entry of its
// list. ErrKanjiNotFound is returned when the kanji is absent or has no
// resources.
func (idx KanjiIndex) Resolve(kanji string) (string, error) {
	variants := idx[kanji]
	if len(variants) == 0 {
		return "", ErrKanjiNotFound
	}
	return variants[len(variants)-1], nil
}

// Variants returns a copy of every resource listed for kanji, in index order.
func (idx KanjiIndex) Variants(kanji string) []string {
	variants := idx[kanji]
	if len(variants) == 0 {
		return nil
	}
	return append([]string(nil), variants...)
}

// Characters returns every kanji with at least one resource, sorted.
func (idx KanjiIndex) Characters() []string {
	chars := make([]string, 0, len(idx))
	for kanji, variants := range idx {
		if len(variants) > 0 {
			chars = append(chars, kanji)
		}
	}
	sort.Strings(chars)
	return chars
}

type Kanji struct {
	Kanji        string   `json:"kanji"`
	StrokeOrders []string `json:"stroke_orders"` // base64 encoded SVG documents, one per stroke
}

type KanjiSummary struct {
	Kanji string `json:"kanji"`
}
