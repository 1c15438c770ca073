package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/pkg/config"
	apperrors "github.com/campus-ops/reservation-console/pkg/errors"
)

// MetricsObserver receives one observation per backend round trip.
type MetricsObserver interface {
	ObserveUpstreamRequest(operation string, duration time.Duration)
}

// Client is the shared JSON transport for all reservation backend calls.
// Higher-level clients (conflicts, events, catalog, scheduling) embed it.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics MetricsObserver
}

// NewClient builds the shared transport from configuration. A nil metrics
// observer disables instrumentation.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, metrics MetricsObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// apiError is the upstream error envelope. The backend is not entirely
// consistent, so both message keys are accepted.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do executes one round trip and decodes the JSON body into out when the
// response is 2xx. The bearer token, when present, is forwarded as-is.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	operation := operationLabel(method, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if c.metrics != nil {
		c.metrics.ObserveUpstreamRequest(operation, time.Since(start))
	}
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return apperrors.Wrap(err, apperrors.ErrUpstreamUnavailable.Code, apperrors.ErrUpstreamUnavailable.Status, "reservation backend unreachable")
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrUpstream.Code, apperrors.ErrUpstream.Status, "read upstream response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrUpstream.Code, apperrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

// statusError maps a non-2xx upstream response to a typed error. Client-side
// statuses are passed through so callers can branch on them; everything else
// collapses to a gateway error.
func (c *Client) statusError(status int, body []byte) *apperrors.Error {
	var envelope apiError
	_ = json.Unmarshal(body, &envelope)
	msg := envelope.text()
	if msg == "" {
		msg = fmt.Sprintf("upstream returned status %d", status)
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.Clone(apperrors.ErrNotFound, msg)
	case status == http.StatusUnauthorized:
		return apperrors.Clone(apperrors.ErrUnauthorized, msg)
	case status == http.StatusForbidden:
		return apperrors.Clone(apperrors.ErrForbidden, msg)
	case status == http.StatusConflict:
		return apperrors.New(apperrors.ErrConflict.Code, http.StatusConflict, msg)
	case status >= 400 && status < 500:
		return apperrors.New(apperrors.ErrValidation.Code, status, msg)
	default:
		return apperrors.New(apperrors.ErrUpstream.Code, http.StatusBadGateway, msg)
	}
}

// IsDuplicateDetection reports whether an error is the backend rejecting a
// persisting detection pass because its results already exist. Callers use
// this to fall back to a read-only preview.
func IsDuplicateDetection(err error) bool {
	e := apperrors.FromError(err)
	if e == nil {
		return false
	}
	if e.Status != http.StatusBadRequest && e.Status != http.StatusConflict {
		return false
	}
	return strings.Contains(strings.ToLower(e.Message), "duplicate")
}

// operationLabel collapses resource ids out of the path so metric label
// cardinality stays bounded.
func operationLabel(method, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return method + " " + strings.Join(segments, "/")
}
