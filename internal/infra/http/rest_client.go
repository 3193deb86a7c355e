package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// ErrUnexpectedStatus is wrapped by errors for 4xx and 5xx responses.
var ErrUnexpectedStatus = errors.New("unexpected http status")

// RestClient performs plain GET requests.
type RestClient struct {
	client *http.Client
	tracer trace.Tracer
}

// NewRestClient creates a client whose requests time out after timeout.
func NewRestClient(timeout time.Duration) *RestClient {
	return &RestClient{
		client: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer("provenance-rest-client"),
	}
}

// Get fetches url with the given Accept header and returns the body.
func (c *RestClient) Get(ctx context.Context, url, accept string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "rest.Get", trace.WithAttributes(
		attribute.String("http.url", url),
		attribute.String("http.accept", accept),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("%w: GET %s returned %s", ErrUnexpectedStatus, url, resp.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read body")
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	return body, nil
}
