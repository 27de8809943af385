// Package transport performs the JSON exchange with the generation endpoint.
// It retries with exponential backoff and never inspects payload or response
// bodies; interpreting them is the pipeline's and the registry's job.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/tenderlens/tenderlens/internal/common"
)

// Client is a retrying HTTP POST client. An attempt fails on a network-level
// error or a non-2xx status; between attempt i and i+1 it suspends for
// base * 2^i. Success short-circuits the remaining attempts.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	base        time.Duration
	timer       backoff.Timer
	logger      *slog.Logger
}

func NewClient(cfg common.GenerationConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	base := cfg.BackoffBase
	if base <= 0 {
		base = time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		base:        base,
		logger:      logger,
	}
}

// WithTimer swaps the backoff timer. Tests use this to observe waits without
// sleeping.
func (c *Client) WithTimer(t backoff.Timer) *Client {
	c.timer = t
	return c
}

// Send POSTs body as JSON to url and returns the raw response bytes.
// On exhausting all attempts it surfaces TRANSPORT_EXHAUSTED carrying the
// final attempt's error; context cancellation surfaces as CANCELLED.
func (c *Client) Send(ctx context.Context, url string, body any) ([]byte, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	c.logger.Info("transport.send.start",
		"req_id", reqID,
		"user_id", common.UserIDFromContext(ctx),
		"url", url,
		"content_length", len(bs),
		"max_attempts", c.maxAttempts,
	)

	var raw []byte
	attempt := 0
	op := func() error {
		attempt++
		r, err := c.attempt(ctx, url, bs)
		if err != nil {
			c.logger.Warn("transport.send.attempt_failed", "req_id", reqID, "attempt", attempt, "error", err)
			return err
		}
		raw = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Info("transport.send.backoff", "req_id", reqID, "attempt", attempt, "wait_ms", wait.Milliseconds())
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.base
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = 24 * time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()

	policy := backoff.WithMaxRetries(backoff.WithContext(bo, ctx), uint64(c.maxAttempts-1))
	if err := backoff.RetryNotifyWithTimer(op, policy, notify, c.timer); err != nil {
		// Per-attempt timeouts also wrap DeadlineExceeded; only the caller's
		// own context decides between cancellation and exhaustion.
		if ctx.Err() != nil {
			c.logger.Warn("transport.send.cancelled", "req_id", reqID, "attempts", attempt)
			return nil, common.NewAppError(common.KindCancelled, "request cancelled", err)
		}
		c.logger.Error("transport.send.exhausted",
			"req_id", reqID,
			"attempts", attempt,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError(common.KindTransportExhausted,
			fmt.Sprintf("generation endpoint failed after %d attempts", attempt), err)
	}

	c.logger.Info("transport.send.ok",
		"req_id", reqID,
		"attempts", attempt,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raw, nil
}

func (c *Client) attempt(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("transport.send.body_close_error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx status %d: %s", resp.StatusCode, truncate(string(raw), 1<<10))
	}
	return raw, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
