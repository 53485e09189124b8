package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paths-api/internal/domain"
)

// Request es el contrato de entrada del servicio prompt-to-asset.
type Request struct {
	Prompt   string           `json:"prompt"`
	Type     domain.MediaType `json:"type"`
	Style    string           `json:"style,omitempty"`
	Duration int              `json:"duration,omitempty"`
}

// Asset es la respuesta del servicio de generacion.
type Asset struct {
	URL      string           `json:"url"`
	Type     domain.MediaType `json:"type"`
	Prompt   string           `json:"prompt"`
	Style    string           `json:"style"`
	Metadata map[string]any   `json:"metadata"`
}

// Client define la interfaz hacia el backend de generacion de media.
type Client interface {
	Generate(ctx context.Context, req Request) (Asset, error)
}

// HTTPClient implementa Client contra un endpoint de inferencia HTTP.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient construye un cliente apuntando al servicio de media.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *HTTPClient) Generate(ctx context.Context, req Request) (Asset, error) {
	if c.baseURL == "" {
		return Asset{}, fmt.Errorf("media backend not configured")
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return Asset{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return Asset{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Asset{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return Asset{}, fmt.Errorf("media http error: status=%d", resp.StatusCode)
	}

	var asset Asset
	if err := json.Unmarshal(respBody, &asset); err != nil {
		return Asset{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if asset.URL == "" {
		return Asset{}, fmt.Errorf("media empty response")
	}
	return asset, nil
}
