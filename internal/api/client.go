// Package api implements the client for the Gemini generateContent API.
package api

import (
	"net/http"
	"time"

	"github.com/camila/personachat/internal/models"
)

// DefaultTimeout bounds a single generation call. The submission flow itself
// imposes no deadline; any timeout lives here, in the client.
const DefaultTimeout = 2 * time.Minute

// Client talks to the Gemini generateContent endpoint
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      models.Model
	baseURL    string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the default model for the client
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		if model.Name != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint (used in tests)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Client. An empty apiKey is allowed here; it is
// reported as a credential failure on the first Generate call so that the
// chat surface can show it the same way as a rejected key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		apiKey:     apiKey,
		model:      models.DefaultModel,
		baseURL:    models.DefaultEndpoint,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Model returns the client's configured model
func (c *Client) Model() models.Model {
	return c.model
}

// SetModel changes the model used for subsequent calls
func (c *Client) SetModel(model models.Model) {
	if model.Name != "" {
		c.model = model
	}
}
