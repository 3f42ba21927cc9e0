package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash-image"

// Generator renders an avatar image for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator reads GEMINI_API_KEY (or Vertex settings) from the
// environment the way genai.NewClient does.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, "", fmt.Errorf("gemini generate: %w", err)
	}
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return part.InlineData.Data, mime, nil
			}
		}
	}
	return nil, "", errors.New("gemini response did not include inline image data")
}

// Prompt describes the avatar wanted for a display name.
func Prompt(name string) string {
	return fmt.Sprintf("Friendly flat-illustration avatar for a team chat member named %q. "+
		"Head and shoulders, centered, plain pastel background, no text, square format.", name)
}

// Placeholder fetches the deterministic dicebear avatar for a seed.
type Placeholder struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewPlaceholder() *Placeholder {
	return &Placeholder{
		BaseURL:    "https://api.dicebear.com/7.x/avataaars/png",
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *Placeholder) Generate(ctx context.Context, seed string) ([]byte, string, error) {
	u := fmt.Sprintf("%s?seed=%s", strings.TrimRight(p.BaseURL, "/"), url.QueryEscape(seed))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("placeholder status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}
	return data, mime, nil
}
