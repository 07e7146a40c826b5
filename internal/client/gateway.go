package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/krillinai/klicbridge/internal/apperrors"
	"github.com/krillinai/klicbridge/internal/config"
	"github.com/krillinai/klicbridge/internal/metrics"
	"github.com/krillinai/klicbridge/internal/models"
)

// maxErrorBodyBytes bounds how much of a rejected response is carried in the
// resulting error.
const maxErrorBodyBytes = 2048

// exchange is the fully read outcome of one HTTP transaction.
type exchange struct {
	status      int
	contentType string
	body        []byte
}

// requestEnvelope performs one JSON exchange against an API endpoint of the
// current base URL, decodes the service envelope, and returns its data
// payload. A non-zero envelope error becomes ErrRemote.
func (c *client) requestEnvelope(ctx context.Context, method, path string, payload interface{}) (json.RawMessage, error) {
	endpoint := method + " " + trimQuery(path)

	var bodyBytes []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body for %s: %w", endpoint, err)
		}
		bodyBytes = encoded
	}

	requestURL := c.base.BaseURL() + path

	result, err := c.roundTrip(ctx, c.requestTimeout, endpoint, func(reqCtx context.Context) (*http.Request, error) {
		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(reqCtx, method, requestURL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		observeOutcome(endpoint, err)
		return nil, err
	}

	data, err := decodeEnvelope(endpoint, result.body)
	observeOutcome(endpoint, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodeEnvelope unpacks the service's response envelope and surfaces a
// non-zero envelope error as ErrRemote.
func decodeEnvelope(endpoint string, body []byte) (json.RawMessage, error) {
	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	if !envelope.OK() {
		return nil, apperrors.NewRemoteError(envelope.Msg, envelope.Error)
	}
	return envelope.Data, nil
}

// roundTrip sends exactly one request under the given time budget and
// returns the body of a 2xx response. There are no retries at this layer:
// a duplicated send could duplicate remote work. Transport failures and
// non-2xx statuses are mapped onto the gateway error taxonomy.
func (c *client) roundTrip(ctx context.Context, budget time.Duration, endpoint string, build func(context.Context) (*http.Request, error)) (*exchange, error) {
	logger := config.GetLogger()
	logger.Debug().Str("endpoint", endpoint).Dur("budget", budget).Msg("Calling KlicStudio")

	timer := prometheus.NewTimer(metrics.RemoteRequestDuration.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	// The whole exchange, body included, runs inside the timeout policy so
	// the budget covers slow bodies as well as slow headers.
	budgetPolicy := timeout.New[*exchange](budget)
	result, err := failsafe.With[*exchange](budgetPolicy).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[*exchange]) (*exchange, error) {
			req, err := build(exec.Context())
			if err != nil {
				return nil, err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, err
			}

			return &exchange{
				status:      resp.StatusCode,
				contentType: resp.Header.Get("Content-Type"),
				body:        body,
			}, nil
		})
	if err != nil {
		mapped := classifyTransportError(endpoint, err)
		logger.Warn().Err(mapped).Str("endpoint", endpoint).Msg("KlicStudio request failed")
		return nil, mapped
	}

	if result.status < 200 || result.status >= 300 {
		err := apperrors.NewRemoteRejectedError(endpoint, result.status, truncateBody(result.body))
		logger.Warn().Int("status", result.status).Str("endpoint", endpoint).Msg("KlicStudio rejected request")
		return nil, err
	}

	return result, nil
}

// classifyTransportError maps a failed exchange onto the gateway taxonomy.
// Caller-initiated cancellation is passed through: it is not a service fault.
func classifyTransportError(endpoint string, err error) error {
	switch {
	case errors.Is(err, timeout.ErrExceeded), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(endpoint, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("request to %s canceled: %w", endpoint, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeoutError(endpoint, err)
	}

	return apperrors.NewUnreachableError(endpoint, err)
}

// observeOutcome counts one logical service call by endpoint and outcome.
func observeOutcome(endpoint string, err error) {
	outcome := "success"
	if err != nil {
		outcome = apperrors.Kind(err)
	}
	metrics.RemoteRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// trimQuery strips the query string from a path so endpoint labels stay
// low-cardinality.
func trimQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return string(body)
}
