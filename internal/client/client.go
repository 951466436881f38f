package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sheetchat/internal/config"
	"sheetchat/internal/logging"
)

const (
	tunnelBypassHeader = "ngrok-skip-browser-warning"
	requestIDHeader    = "X-Request-ID"
)

type Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
	logger  logging.Logger
}

// New builds a client from resolved configuration. Requests have no timeout
// unless one is configured.
func New(cfg config.Config, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}
	headers := cfg.ExtraHeaders()
	if headers == nil {
		headers = map[string]string{}
	}
	if cfg.UsesTunnel() {
		headers[tunnelBypassHeader] = "true"
	}
	return &Client{
		baseURL: cfg.APIBaseURL(),
		headers: headers,
		http: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		logger: logger.With(logging.F("component", "api")),
	}
}

func NewWithBaseURL(baseURL string) *Client {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = baseURL
	return New(cfg, nil)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, reader, contentType, out)
}

func (c *Client) doMultipart(ctx context.Context, path, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	requestID := logging.NewRequestID()
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			logging.F("request_id", requestID),
			logging.F("method", method),
			logging.F("path", path),
			logging.F("error", err),
		)
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("request",
		logging.F("request_id", requestID),
		logging.F("method", method),
		logging.F("path", path),
		logging.F("status", resp.StatusCode),
		logging.F("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	message := errorBodyMessage(data)
	if message == "" {
		message = strings.TrimSpace(http.StatusText(resp.StatusCode))
	}
	if message == "" {
		message = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// errorBodyMessage prefers FastAPI's "detail" or a generic "error" field and
// falls back to the raw body text.
func errorBodyMessage(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "{") {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(data, &payload); err == nil {
			for _, key := range []string{"detail", "error", "message"} {
				raw, ok := payload[key]
				if !ok {
					continue
				}
				var value string
				if err := json.Unmarshal(raw, &value); err == nil && strings.TrimSpace(value) != "" {
					return strings.TrimSpace(value)
				}
			}
		}
	}
	return text
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// ValidationError is returned before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

func asAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// ErrorMessage is the text shown to the user: the server's message verbatim
// for API errors, the error text otherwise, fallback when both are empty.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr := asAPIError(err); apiErr != nil {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return fallback
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && strings.TrimSpace(validationErr.Message) != "" {
		return validationErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

func IsNotFound(err error) bool {
	apiErr := asAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
