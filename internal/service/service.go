package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"kanji/strokes/internal/client"
	"kanji/strokes/internal/domain"
	"kanji/strokes/internal/strokes"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	client client.KanjiVGClient
}

func NewService(client client.KanjiVGClient) *Service {
	return &Service{
		client: client,
	}
}

// GetKanji resolves kanji in the upstream index, fetches its canonical stroke
// diagram and returns the progressive stroke order documents base64 encoded.
// Nothing is cached: every call fetches the index and the diagram again.
func (s *Service) GetKanji(ctx context.Context, kanji string, withNumbers bool) (*domain.Kanji, error) {
	logger := log.WithField("kanji", kanji)

	index, err := s.client.GetIndex(ctx)
	if err != nil {
		logger.Errorf("❌ Failed to fetch kanji index: %v", err)
		return nil, err
	}

	resourceID, err := index.Resolve(kanji)
	if err != nil {
		logger.Infof("🔍 Kanji not found in index")
		return nil, err
	}
	logger = logger.WithField("resource", resourceID)

	svg, err := s.client.GetStrokeDiagram(ctx, resourceID)
	if err != nil {
		logger.Errorf("❌ Failed to fetch stroke diagram: %v", err)
		return nil, err
	}

	documents, err := strokes.Decompose(svg, strokes.DiagramID(resourceID), strokes.WithNumbers(withNumbers))
	if err != nil {
		logger.Warnf("⚠️ Failed to decompose stroke diagram: %v", err)
		if errors.Is(err, strokes.ErrGroupNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStrokesNotFound, err)
		}
		return nil, &domain.FormatError{Resource: "stroke diagram " + resourceID, Err: err}
	}
	if len(documents) == 0 {
		logger.Warnf("⚠️ Stroke diagram has no strokes")
		return nil, domain.ErrStrokesNotFound
	}

	strokeOrders, err := encodeDocuments(documents)
	if err != nil {
		logger.Errorf("❌ Failed to encode stroke orders: %v", err)
		return nil, err
	}

	logger.Debugf("✅ Built %d stroke order documents", len(strokeOrders))
	return &domain.Kanji{
		Kanji:        kanji,
		StrokeOrders: strokeOrders,
	}, nil
}

// ListKanji returns every kanji the upstream index has a stroke diagram for.
func (s *Service) ListKanji(ctx context.Context) ([]domain.KanjiSummary, error) {
	index, err := s.client.GetIndex(ctx)
	if err != nil {
		log.Errorf("❌ Failed to fetch kanji index: %v", err)
		return nil, err
	}

	chars := index.Characters()
	summaries := make([]domain.KanjiSummary, 0, len(chars))
	for _, kanji := range chars {
		summaries = append(summaries, domain.KanjiSummary{Kanji: kanji})
	}

	log.Debugf("Listed %d kanji", len(summaries))
	return summaries, nil
}

func encodeDocuments(documents []string) ([]string, error) {
	encoded := make([]string, len(documents))
	for i, doc := range documents {
		if !utf8.ValidString(doc) {
			return nil, &domain.EncodingError{Err: fmt.Errorf("stroke order document %d is not valid UTF-8", i+1)}
		}
		encoded[i] = base64.StdEncoding.EncodeToString([]byte(doc))
	}
	return encoded, nil
}
