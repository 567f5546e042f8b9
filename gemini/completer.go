// Package gemini implements manfetch.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/manfetch"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements manfetch.Completer at compile time.
var _ manfetch.Completer = (*Completer)(nil)

// Completer implements manfetch.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model uses DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the Gemini model name.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends the prompt and returns the response text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", manfetch.Errorf(manfetch.EINVALID, "prompt required")
	}
	if c.client == nil {
		return "", manfetch.Errorf(manfetch.EINTERNAL, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", manfetch.Errorf(manfetch.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", manfetch.Errorf(manfetch.ENOTFOUND, "gemini returned an empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You help people find official product documentation on the web. Only suggest URLs you believe exist. Answer with a JSON array of URL strings and nothing else.",
			}},
		},
		Temperature: &temp,
	}
}
