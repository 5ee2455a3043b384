package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const falOCREndpoint = "https://fal.run/fal-ai/florence-2-large"

// FalProvider runs OCR on images through the fal.ai Florence-2 endpoint.
type FalProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

var _ Provider = &FalProvider{}

func NewFalProvider(apiKey string) *FalProvider {
	return &FalProvider{
		apiKey:   apiKey,
		endpoint: falOCREndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type falOCRRequest struct {
	ImageURL string `json:"image_url"`
	Task     string `json:"task"`
}

type falOCRResponse struct {
	Text string `json:"text"`
	OCR  string `json:"ocr"`
}

func (p *FalProvider) ExtractText(ctx context.Context, imageURL string) (string, error) {
	reqBody := falOCRRequest{
		ImageURL: imageURL,
		Task:     "OCR",
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fal request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fal api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var falResp falOCRResponse
	if err := json.Unmarshal(bodyBytes, &falResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if falResp.Text != "" {
		return falResp.Text, nil
	}
	return falResp.OCR, nil
}
