package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Retry policy for the upstream call. Only transport-level failures are
// retried; an HTTP response, even an error one, is the provider's answer
// and surfaces once.
const (
	maxRetries       = 3
	retryBaseBackoff = 500 * time.Millisecond
	retryJitter      = 250 * time.Millisecond
)

// Part is one piece of a prompt: either inline text or a reference to a
// previously uploaded file.
type Part struct {
	Text string
	File *FileRef
}

// TextPart wraps a string as a prompt part.
func TextPart(text string) Part { return Part{Text: text} }

// FileRef identifies a file uploaded to the provider.
type FileRef struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
}

// Client talks to the Gemini REST API: generateContent for text and the
// files endpoint for attachment uploads. Every call is bounded by the
// configured timeout.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger

	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini client from configuration.
func NewClient(cfg *config.GeminiConfig, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		log:        log,
		baseURL:    defaultBaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Wire types for generateContent. Field names follow the v1beta REST
// schema.
type generateContentRequest struct {
	Contents         []contentPayload `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type contentPayload struct {
	Parts []partPayload `json:"parts"`
}

type partPayload struct {
	Text     string           `json:"text,omitempty"`
	FileData *fileDataPayload `json:"fileData,omitempty"`
}

type fileDataPayload struct {
	MIMEType string `json:"mimeType"`
	FileURI  string `json:"fileUri"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type uploadFileResponse struct {
	File FileRef `json:"file"`
}

// defaultGenerationConfig is the single canonical sampling configuration
// used for every call.
var defaultGenerationConfig = generationConfig{
	Temperature:     0.7,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 8192,
}

var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// GenerateText sends the parts as one prompt and returns the concatenated
// text of the first candidate. An empty string is a valid return; callers
// that require text decide what an empty generation means.
func (c *Client) GenerateText(ctx context.Context, parts ...Part) (string, error) {
	payload := generateContentRequest{
		Contents:         []contentPayload{{Parts: encodeParts(parts)}},
		GenerationConfig: defaultGenerationConfig,
		SafetySettings:   defaultSafetySettings,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperror.NewInternalError("failed to encode generation request", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	respBody, err := c.post(ctx, endpoint, "application/json", func() (io.Reader, error) {
		return bytes.NewReader(body), nil
	})
	if err != nil {
		return "", err
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", apperror.NewExternalServiceError("unexpected response from generation provider", err)
	}
	if len(decoded.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// UploadFile pushes a file blob to the provider's files endpoint so a later
// generation call can reference it.
func (c *Client) UploadFile(ctx context.Context, name, mimeType string, data []byte) (*FileRef, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	endpoint := fmt.Sprintf("%s/upload/v1beta/files?uploadType=multipart&key=%s",
		c.baseURL, url.QueryEscape(c.apiKey))

	// The request body is rebuilt per attempt so retries never send a
	// half-consumed reader.
	var contentType string
	makeBody := func() (io.Reader, error) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)

		metaHeader := textproto.MIMEHeader{}
		metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
		metaPart, err := writer.CreatePart(metaHeader)
		if err != nil {
			return nil, err
		}
		meta := map[string]any{"file": map[string]string{"display_name": name}}
		if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
			return nil, err
		}

		fileHeader := textproto.MIMEHeader{}
		fileHeader.Set("Content-Type", mimeType)
		filePart, err := writer.CreatePart(fileHeader)
		if err != nil {
			return nil, err
		}
		if _, err := filePart.Write(data); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}

		contentType = "multipart/related; boundary=" + writer.Boundary()
		return &buf, nil
	}

	respBody, err := c.post(ctx, endpoint, "", makeBody, withContentTypeFrom(&contentType))
	if err != nil {
		return nil, err
	}

	var decoded uploadFileResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, apperror.NewExternalServiceError("unexpected response from file upload", err)
	}
	if decoded.File.URI == "" {
		return nil, apperror.NewExternalServiceError("file upload returned no file reference", nil)
	}
	return &decoded.File, nil
}

type postOption func(req *http.Request)

// withContentTypeFrom defers the Content-Type header until the body builder
// has run, since the multipart boundary is only known then.
func withContentTypeFrom(contentType *string) postOption {
	return func(req *http.Request) {
		req.Header.Set("Content-Type", *contentType)
	}
}

// post issues the request under the client timeout, retrying transport
// failures with jittered exponential backoff. Non-2xx responses and context
// deadline hits are never retried.
func (c *Client) post(ctx context.Context, endpoint, contentType string, makeBody func() (io.Reader, error), opts ...postOption) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	backoff := retry.WithJitter(retryJitter,
		retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseBackoff)))

	var respBody []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := makeBody()
		if err != nil {
			return apperror.NewInternalError("failed to build request body", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return apperror.NewInternalError("failed to build provider request", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		for _, opt := range opts {
			opt(req)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return apperror.NewUpstreamTimeoutError("generation provider did not respond in time", err)
			}
			c.log.Warn("provider request failed, will retry", "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.log.Error("provider returned error status",
				"status", resp.StatusCode, "endpoint", redactKey(endpoint))
			return apperror.NewExternalServiceError(
				fmt.Sprintf("generation provider returned status %d", resp.StatusCode), nil)
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.NewUpstreamTimeoutError("generation provider did not respond in time", err)
		}
		return nil, apperror.NewExternalServiceError("failed to reach generation provider", err)
	}
	return respBody, nil
}

func encodeParts(parts []Part) []partPayload {
	encoded := make([]partPayload, 0, len(parts))
	for _, part := range parts {
		if part.File != nil {
			encoded = append(encoded, partPayload{
				FileData: &fileDataPayload{MIMEType: part.File.MIMEType, FileURI: part.File.URI},
			})
			continue
		}
		encoded = append(encoded, partPayload{Text: part.Text})
	}
	return encoded
}

// redactKey strips the api key query parameter before an endpoint reaches a
// log line.
func redactKey(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "(unparseable endpoint)"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
