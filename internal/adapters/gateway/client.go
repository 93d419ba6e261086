// Package gateway talks to the remote prompt generation endpoint.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PabloGalante/mood-journal/internal/domain"
	"github.com/PabloGalante/mood-journal/internal/observability"
)

const generatePath = "/generate_prompts"

// Client implements domain.PromptGateway over HTTP POST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway for baseURL. A zero timeout keeps the
// transport default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP lets tests inject an *http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// Generate implements domain.PromptGateway. Transport errors, non-JSON bodies
// and replies without content all come back as a Generation with no message.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) domain.Generation {
	log := observability.LoggerFromContext(ctx).With(
		zap.String("gateway", "http"),
		zap.Int("turns", len(req.Transcript)),
	)

	gen := c.generate(ctx, req, log)
	observability.CountGeneration("http", gen.OK())
	if !gen.OK() {
		log.Warn("prompt generation returned no reply", zap.Error(gen.Err))
	}
	return gen
}

func (c *Client) generate(ctx context.Context, req domain.GenerateRequest, log *zap.Logger) domain.Generation {
	body, err := EncodeRequest(req)
	if err != nil {
		return domain.NoReply(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return domain.NoReply(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.NoReply(fmt.Errorf("post %s: %w", generatePath, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NoReply(fmt.Errorf("read reply: %w", err))
	}

	// The body decides success; a non-2xx status is only worth a note.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Info("prompt endpoint returned non-2xx status", zap.Int("status", resp.StatusCode))
	}

	msg, err := ParseReply(data)
	if err != nil {
		return domain.NoReply(err)
	}

	log.Debug("prompt generated",
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		zap.Int("suggestions", len(msg.SuggestedResponses)),
	)
	return domain.Generation{Message: msg}
}
