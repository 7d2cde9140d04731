package renderer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/satyammall/stockledger/internal/config"
)

const convertPath = "/forms/chromium/convert/html"

// Client exposes the HTML-to-PDF conversion operation used by the report
// export handlers.
type Client interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// APIClient is a resty-backed implementation of Client talking to a
// Gotenberg-compatible conversion service.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a renderer client using the provided configuration values.
func NewClient(cfg config.RendererConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetTimeout(30 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// RenderPDF posts the document HTML as a multipart form and returns the
// produced PDF bytes.
func (c *APIClient) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("files", "index.html", strings.NewReader(html)).
		Post(convertPath)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("renderer error: status=%d, body=%s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return resp.Body(), nil
}
