package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/camila/personachat/internal/errors"
	"github.com/camila/personachat/internal/logger"
)

// generatePath is the REST path for single-turn content generation
const generatePath = "/v1beta/models/%s:generateContent"

// part is a single text part in the request payload
type part struct {
	Text string `json:"text"`
}

// content is a role-tagged group of parts
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// generateRequest is the generateContent request payload
type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

// Generate sends a single-turn generation request conditioned by persona and
// returns the reply text. persona may be empty, in which case no system
// instruction is sent. All failures map onto the credential / communication /
// unknown taxonomy via the errors package.
func (c *Client) Generate(ctx context.Context, persona, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apierrors.NewCredentialError("no API key configured")
	}

	body, err := buildRequestBody(persona, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	url := c.baseURL + fmt.Sprintf(generatePath, c.model.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	logger.Info("generate request",
		"model", c.model.Name,
		"promptChars", len(prompt),
		"personaChars", len(persona),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("generate transport failure", "error", err)
		return "", apierrors.NewCommError(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewCommError(resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPError(resp.StatusCode, data)
	}

	text, err := parseReply(data)
	if err != nil {
		logger.Warn("generate parse failure", "error", err)
		return "", err
	}

	logger.Info("generate response", "replyChars", len(text))
	return text, nil
}

// buildRequestBody marshals the generateContent payload
func buildRequestBody(persona, prompt string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}
	if persona != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: persona}}}
	}
	return json.Marshal(req)
}

// classifyHTTPError maps a non-200 response onto the error taxonomy
func classifyHTTPError(status int, body []byte) error {
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
		if len(message) > 200 {
			message = message[:200]
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apierrors.NewCredentialError(message)
	case status == http.StatusBadRequest && strings.Contains(message, "API key not valid"):
		return apierrors.NewCredentialError(message)
	case status == http.StatusTooManyRequests || status >= 500:
		return apierrors.NewCommError(status, message, nil)
	default:
		return apierrors.NewAPIError(status, "generateContent", message)
	}
}

// parseReply extracts the reply text from a successful response
func parseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	parts := gjson.GetBytes(body, "candidates.0.content.parts.#.text")
	if parts.Exists() && len(parts.Array()) > 0 {
		var sb strings.Builder
		for _, p := range parts.Array() {
			sb.WriteString(p.String())
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}

	// The API reports safety blocks with an empty candidate list
	if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
		return "", apierrors.NewParseError(
			fmt.Sprintf("prompt was blocked: %s", reason.String()),
			"promptFeedback.blockReason",
		)
	}

	return "", apierrors.ErrNoContent
}
