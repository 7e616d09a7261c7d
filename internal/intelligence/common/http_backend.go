package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// httpBackend calls a model server over plain HTTP/JSON: POST /v1/predict
// with a PredictRequest body, PredictResponse back.
type httpBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend constructs a ModelBackend against the given base URL.
// A non-positive timeout falls back to two seconds; inference is on the
// request path, so the budget stays tight.
func NewHTTPBackend(baseURL string, timeout time.Duration) ModelBackend {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &httpBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *httpBackend) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "encode predict request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "build predict request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternalService, "model server unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.CodeExternalService,
			fmt.Sprintf("model server returned %d", resp.StatusCode)).
			WithDetail(string(snippet))
	}

	var out PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternalService, "decode predict response")
	}
	if len(out.Tokens) != len(out.Labels) {
		return nil, errors.New(errors.CodeExternalService, "model returned mismatched tokens and labels").
			WithDetail(fmt.Sprintf("tokens=%d labels=%d", len(out.Tokens), len(out.Labels)))
	}
	return &out, nil
}

func (b *httpBackend) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/healthz", nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build health request")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeExternalService, "model server unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CodeExternalService,
			fmt.Sprintf("model server health check returned %d", resp.StatusCode))
	}
	return nil
}

func (b *httpBackend) Close() error {
	b.client.CloseIdleConnections()
	return nil
}
