package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kanji/strokes/internal/config"
	"kanji/strokes/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) KanjiVGClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewKanjiVGClient(config.KanjiVGConfig{
		BaseURL:   server.URL + "/",
		IndexPath: "kvg-index.json",
		SVGPath:   "kanji",
		Timeout:   5,
		UserAgent: "kanji-strokes-test",
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetIndex(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kvg-index.json", r.URL.Path)
		assert.Equal(t, "kanji-strokes-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"水": ["06c34.svg"], "火": ["0706b.svg", "0706b-Kaisho.svg"]}`))
	})

	index, err := c.GetIndex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.KanjiIndex{
		"水": {"06c34.svg"},
		"火": {"0706b.svg", "0706b-Kaisho.svg"},
	}, index)
}

func TestGetIndexHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetIndex(context.Background())

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "kanji index")
}

func TestGetIndexMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"水": [`))
	})

	_, err := c.GetIndex(context.Background())

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "kanji index", formatErr.Resource)
}

func TestGetIndexTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewKanjiVGClient(config.KanjiVGConfig{BaseURL: url, IndexPath: "kvg-index.json", SVGPath: "kanji", Timeout: 2})
	defer c.Close()

	_, err := c.GetIndex(context.Background())

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Zero(t, upstreamErr.StatusCode)
	assert.Error(t, upstreamErr.Err)
}

func TestGetStrokeDiagram(t *testing.T) {
	const svg = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kanji/06c34.svg", r.URL.Path)
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(svg))
	})

	got, err := c.GetStrokeDiagram(context.Background(), "06c34.svg")
	require.NoError(t, err)
	assert.Equal(t, svg, got)
}

func TestGetStrokeDiagramNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetStrokeDiagram(context.Background(), "06c34.svg")

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Equal(t, "stroke diagram 06c34.svg", upstreamErr.Resource)
}

func TestGetStrokeDiagramTranscodesCharset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=ISO-8859-1")
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
	})

	got, err := c.GetStrokeDiagram(context.Background(), "06c34.svg")
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestDecodeBody(t *testing.T) {
	got, err := decodeBody([]byte("水"), "")
	require.NoError(t, err)
	assert.Equal(t, "水", got)

	got, err = decodeBody([]byte("水"), "image/svg+xml; charset=UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "水", got)

	_, err = decodeBody([]byte("x"), "text/plain; charset=klingon")
	assert.Error(t, err)
}
