package client

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"kanji/strokes/internal/config"
	"kanji/strokes/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"resty.dev/v3"
)

const (
	indexResource   = "kanji index"
	diagramResource = "stroke diagram"
)

// KanjiVGClient fetches the KanjiVG index and stroke diagrams. Every call is
// a single attempt; failures are returned as *domain.UpstreamError or
// *domain.FormatError.
type KanjiVGClient interface {
	GetIndex(ctx context.Context) (domain.KanjiIndex, error)
	GetStrokeDiagram(ctx context.Context, resourceID string) (string, error)
	Close() error
}

type kanjiVGClient struct {
	config     config.KanjiVGConfig
	httpClient *resty.Client
}

func NewKanjiVGClient(cfg config.KanjiVGConfig) KanjiVGClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout()).
		SetRetryCount(0).
		SetLogger(log.StandardLogger()).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json, image/svg+xml, text/plain;q=0.9, */*;q=0.8")

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy for KanjiVG requests: %s", cfg.Proxy)
	}

	return &kanjiVGClient{
		config:     cfg,
		httpClient: client,
	}
}

func (c *kanjiVGClient) GetIndex(ctx context.Context) (domain.KanjiIndex, error) {
	body, err := c.fetch(ctx, indexResource, "/"+strings.TrimPrefix(c.config.IndexPath, "/"), nil)
	if err != nil {
		return nil, err
	}

	var index domain.KanjiIndex
	if err := json.Unmarshal([]byte(body), &index); err != nil {
		return nil, &domain.FormatError{Resource: indexResource, Err: fmt.Errorf("failed to decode JSON: %w", err)}
	}

	log.Debugf("Fetched kanji index with %d entries", len(index))
	return index, nil
}

func (c *kanjiVGClient) GetStrokeDiagram(ctx context.Context, resourceID string) (string, error) {
	path := "/" + strings.Trim(c.config.SVGPath, "/") + "/{resource}"
	resource := diagramResource + " " + resourceID

	svg, err := c.fetch(ctx, resource, path, map[string]string{"resource": resourceID})
	if err != nil {
		return "", err
	}

	log.Debugf("Fetched %s (%d bytes)", resource, len(svg))
	return svg, nil
}

func (c *kanjiVGClient) Close() error {
	return c.httpClient.Close()
}

func (c *kanjiVGClient) fetch(ctx context.Context, resource, path string, pathParams map[string]string) (string, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		Get(path)
	if err != nil {
		if ctx.Err() != nil {
			return "", &domain.UpstreamError{Resource: resource, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		return "", &domain.UpstreamError{Resource: resource, Err: err}
	}

	if !resp.IsSuccess() {
		return "", &domain.UpstreamError{
			Resource:   resource,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	body, err := decodeBody(resp.Bytes(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", &domain.FormatError{Resource: resource, Err: err}
	}

	return body, nil
}

// decodeBody converts body to UTF-8 when the content type names another
// charset. Without an explicit charset the body is taken as UTF-8.
func decodeBody(body []byte, contentType string) (string, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(body), nil
	}

	label, ok := params["charset"]
	if !ok {
		return string(body), nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("unsupported charset %q", label)
	}
	if name == "utf-8" {
		return string(body), nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s body: %w", name, err)
	}
	return string(decoded), nil
}
