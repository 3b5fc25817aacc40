package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	portembedding "github.com/untangle-ai/agent-broker/internal/port/embedding"
)

// model is Workers AI's 768-dimension English embedding model.
const model = "@cf/baai/bge-base-en-v1.5"

const baseURL = "https://api.cloudflare.com/client/v4"

var _ portembedding.Embedder = (*Client)(nil)

// Client calls Cloudflare Workers AI to turn text into embeddings.
type Client struct {
	accountID string
	apiToken  string
	baseURL   string
	http      *http.Client
}

func NewClient(accountID, apiToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		accountID: accountID,
		apiToken:  apiToken,
		baseURL:   baseURL,
		http:      httpClient,
	}
}

// NewClientWithBaseURL is for tests pointing at a fake Workers AI endpoint.
func NewClientWithBaseURL(accountID, apiToken, base string, httpClient *http.Client) *Client {
	c := NewClient(accountID, apiToken, httpClient)
	c.baseURL = base
	return c
}

type embedRequest struct {
	Text []string `json:"text"`
}

type embedResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Data [][]float64 `json:"data"`
	} `json:"result"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Embed returns the embedding for text. Every failure mode wraps
// embedding.ErrUnavailable — the oracle never reports failure as an empty
// vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(embedRequest{Text: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal embed request: %v", portembedding.ErrUnavailable, err)
	}

	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build embed request: %v", portembedding.ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: call workers ai: %v", portembedding.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read workers ai response: %v", portembedding.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: workers ai returned status %d", portembedding.ErrUnavailable, resp.StatusCode)
	}

	var decoded embedResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode workers ai response: %v", portembedding.ErrUnavailable, err)
	}
	if !decoded.Success || len(decoded.Result.Data) == 0 || len(decoded.Result.Data[0]) == 0 {
		msg := "empty embedding result"
		if len(decoded.Errors) > 0 {
			msg = decoded.Errors[0].Message
		}
		return nil, fmt.Errorf("%w: %s", portembedding.ErrUnavailable, msg)
	}

	return decoded.Result.Data[0], nil
}
