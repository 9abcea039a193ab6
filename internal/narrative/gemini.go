package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"cryptosentinel/internal/market"
)

const geminiModel = "gemini-1.5-flash"

// Gemini narrates charts through Google's multimodal Gemini API.
type Gemini struct {
	client *genai.Client
	logger zerolog.Logger
}

// NewGemini creates a Gemini narrator. The client is reused across requests
// and must be closed on shutdown.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		logger: log.With().Str("component", "gemini_narrator").Logger(),
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Describe sends the chart image and the analyst prompt to the model and
// returns its free-text commentary.
func (g *Gemini) Describe(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req.Asset, req.AnomalyDates)
	g.logger.Debug().
		Str("asset", req.Asset).
		Int("anomalies", len(req.AnomalyDates)).
		Int("image_bytes", len(req.ImagePNG)).
		Msg("Requesting chart narrative")

	model := g.client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData("png", req.ImagePNG),
		genai.Text(prompt),
	)
	if err != nil {
		g.logger.Error().Err(err).Msg("Gemini API error")
		return "", fmt.Errorf("%w: %v", market.ErrNarrative, err)
	}

	text := extractText(resp)
	if text == "" {
		g.logger.Warn().Msg("Gemini returned no text candidates")
		return "", fmt.Errorf("%w: empty response", market.ErrNarrative)
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}
