// ABOUTME: Model gateway abstraction over the generative backend
// ABOUTME: Gemini-backed live strategy plus a wrapper that falls back on failure
package agent

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/genai"
)

// Gateway is the single seam between the pipeline and the generative model.
// Implementations never mutate connector or content state.
type Gateway interface {
	Invoke(ctx context.Context, spec PromptSpec) (string, error)
}

const (
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultInvokeTimeout = 45 * time.Second
)

// GeminiGateway calls the Gemini API with a bounded per-request timeout.
type GeminiGateway struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGateway{
		client:  client,
		model:   model,
		timeout: defaultInvokeTimeout,
	}, nil
}

// Invoke sends the rendered instruction to Gemini. Timeouts, transport
// failures, and empty candidate sets all surface as ErrUpstreamUnavailable so
// the resilient wrapper can recover uniformly.
func (g *GeminiGateway) Invoke(ctx context.Context, spec PromptSpec) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(spec.Render()), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty model response", ErrUpstreamUnavailable)
	}
	return text, nil
}

// ResilientGateway tries the primary strategy and falls back to the
// deterministic template strategy on any upstream failure. It never returns
// an error of its own; the only error it propagates is caller cancellation.
type ResilientGateway struct {
	primary  Gateway
	fallback Gateway
}

func NewResilientGateway(primary, fallback Gateway) *ResilientGateway {
	return &ResilientGateway{primary: primary, fallback: fallback}
}

func (g *ResilientGateway) Invoke(ctx context.Context, spec PromptSpec) (string, error) {
	if g.primary != nil {
		text, err := g.primary.Invoke(ctx, spec)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			// The caller aborted; don't paper over it with a fallback.
			return "", ctx.Err()
		}
		log.Printf("warning: model call failed, using fallback: %v", err)
	}
	return g.fallback.Invoke(ctx, spec)
}

// GatewayFromEnv wires the gateway the way the process is configured:
// GEMINI_API_KEY set means live Gemini with the rule-based fallback behind
// it, unset means fallback only.
func GatewayFromEnv(ctx context.Context) Gateway {
	fallback := NewFallbackGateway()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set; agent running in rule-based fallback mode")
		return NewResilientGateway(nil, fallback)
	}

	gemini, err := NewGeminiGateway(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("warning: gemini init failed, using fallback: %v", err)
		return NewResilientGateway(nil, fallback)
	}
	return NewResilientGateway(gemini, fallback)
}
