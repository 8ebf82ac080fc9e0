package oracle

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ecoperks/ecosort/pkg/metrics"
)

// Default Anthropic client configuration.
const (
	defaultModel     = "claude-3-5-haiku-20241022"
	defaultMaxTokens = 500
)

// AnthropicClassifier implements Classifier against the Anthropic
// messages API, sending the instruction prompt plus the image as a
// base64 JPEG block.
type AnthropicClassifier struct {
	client      *anthropic.Client
	model       string
	maxTokens   int64
	jpegQuality int
}

// AnthropicOption applies a configuration option to the classifier.
type AnthropicOption func(*AnthropicClassifier)

// WithModel overrides the Anthropic model ID.
func WithModel(model string) AnthropicOption {
	return func(c *AnthropicClassifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens bounds the oracle's answer length.
func WithMaxTokens(n int) AnthropicOption {
	return func(c *AnthropicClassifier) {
		if n > 0 {
			c.maxTokens = int64(n)
		}
	}
}

// WithJPEGQuality sets the quality used when re-encoding uploads.
func WithJPEGQuality(q int) AnthropicOption {
	return func(c *AnthropicClassifier) {
		if q > 0 && q <= 100 {
			c.jpegQuality = q
		}
	}
}

// NewAnthropicClassifier creates a classifier backed by the Anthropic
// API. The API key is required.
func NewAnthropicClassifier(apiKey string, opts ...AnthropicOption) (*AnthropicClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	c := &AnthropicClassifier{
		client:      &client,
		model:       defaultModel,
		maxTokens:   defaultMaxTokens,
		jpegQuality: defaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify normalizes the image to JPEG, sends it with the waste
// instruction prompt, and returns the model's textual answer.
func (c *AnthropicClassifier) Classify(ctx context.Context, imageBytes []byte) (string, error) {
	jpegBytes, err := normalizeJPEG(imageBytes, c.jpegQuality)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(jpegBytes)

	metrics.RecordOracleRequest()
	start := time.Now()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(instructionPrompt),
				anthropic.NewImageBlockBase64("image/jpeg", encoded),
			),
		},
	})

	metrics.RecordOracleLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordOracleError()
		return "", mapAnthropicError(err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	metrics.RecordOracleError()
	return "", fmt.Errorf("%w: model %s", ErrEmptyResponse, c.model)
}

// mapAnthropicError translates SDK errors into this package's kinds.
func mapAnthropicError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrOracle, err)
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			return fmt.Errorf("%w: %v", ErrOracle, err)
		}
	}
	// Anything else (network, TLS, DNS) is treated as transient.
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
