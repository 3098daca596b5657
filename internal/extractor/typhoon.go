package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"
)

const (
	DefaultTyphoonURL   = "https://api.opentyphoon.ai/v1/chat/completions"
	DefaultTyphoonModel = "typhoon-v1.5-vision-preview"

	typhoonPrompt = "Extract all text from this bank document page accurately. Return only the extracted text."
)

// TyphoonClient transcribes page images through the Typhoon vision API.
// The remote model reads degraded scans far better than local Tesseract,
// but every call can fail independently, so callers fall back per page.
type TyphoonClient struct {
	APIKey string
	URL    string
	Model  string

	HTTPClient *http.Client
}

type typhoonRequest struct {
	Model     string           `json:"model"`
	Messages  []typhoonMessage `json:"messages"`
	MaxTokens int              `json:"max_tokens"`
}

type typhoonMessage struct {
	Role    string           `json:"role"`
	Content []typhoonContent `json:"content"`
}

type typhoonContent struct {
	Type     string           `json:"type"`
	Text     string           `json:"text,omitempty"`
	ImageURL *typhoonImageURL `json:"image_url,omitempty"`
}

type typhoonImageURL struct {
	URL string `json:"url"`
}

type typhoonResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TranscribePage sends one JPEG page image and returns its text.
func (c *TyphoonClient) TranscribePage(ctx context.Context, jpeg []byte) (string, error) {
	url := c.URL
	if url == "" {
		url = DefaultTyphoonURL
	}
	model := c.Model
	if model == "" {
		model = DefaultTyphoonModel
	}
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
	payload := typhoonRequest{
		Model: model,
		Messages: []typhoonMessage{{
			Role: "user",
			Content: []typhoonContent{
				{Type: "text", Text: typhoonPrompt},
				{Type: "image_url", ImageURL: &typhoonImageURL{URL: dataURI}},
			},
		}},
		MaxTokens: 2048,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding typhoon request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building typhoon request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling typhoon: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("reading typhoon response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("typhoon returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed typhoonResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding typhoon response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("typhoon error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("typhoon returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// ExtractTextRemote rasterizes the PDF and transcribes each page through
// the remote API. A page whose remote call fails falls back to local
// Tesseract for that page only, so one flaky call never sinks a document.
func ExtractTextRemote(ctx context.Context, path, lang string, client *TyphoonClient) ([]string, error) {
	images, cleanup, err := renderPages(ctx, path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var pages []string
	for i, img := range images {
		data, err := os.ReadFile(img)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		text, err := client.TranscribePage(ctx, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "typhoon failed on page %d, falling back to tesseract: %v\n", i+1, err)
			text = ocrSingleImage(ctx, img, lang)
		}
		pages = append(pages, text)
	}

	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("remote OCR produced no text from %d pages", len(images))
	}
	return pages, nil
}

func ocrSingleImage(ctx context.Context, img, lang string) string {
	if lang == "" {
		lang = DefaultOCRLanguage
	}
	outBase := img + "-fallback"
	cmd := exec.CommandContext(ctx, "tesseract", img, outBase, "-l", lang, "--psm", "4")
	if err := cmd.Run(); err != nil {
		return ""
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return ""
	}
	return string(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
