package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hanwen-zhu/billsnap/internal/common"
)

// Client posts validated payloads to the remote bookkeeping API. The wire
// format is owned by that API; the core stays agnostic to it.
type Client struct {
	http   *http.Client
	cfg    common.LedgerConfig
	logger *slog.Logger
}

func NewClient(cfg common.LedgerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Post sends one posting payload. Non-2xx responses come back as errors with
// the response body attached for diagnosis.
func (c *Client) Post(ctx context.Context, payload map[string]any) error {
	if c.cfg.BaseURL == "" || c.cfg.Token == "" {
		return failure(ReasonMissingConfig)
	}
	bs, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/transactions", bytes.NewReader(bs))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("upload.post_error", "error", err)
		return fmt.Errorf("post transaction: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	c.logger.Info("upload.post",
		"status", resp.StatusCode,
		"bytes", len(bs),
		"elapsed", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bookkeeping API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
