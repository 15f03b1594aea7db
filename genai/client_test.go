package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-1.5-pro-latest",
		Timeout: 2 * time.Second,
	}, testLogger()).WithBaseURL(server.URL)
	return client, server
}

func generationBody(texts ...string) string {
	parts := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, map[string]string{"text": text})
	}
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	})
	return string(body)
}

func TestClientGenerateText(t *testing.T) {
	t.Run("sends prompt and decodes candidate text", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody generateContentRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			io.WriteString(w, generationBody("Hello ", "world"))
		}))

		text, err := client.GenerateText(context.Background(), TextPart("say hello"))
		require.NoError(t, err)

		assert.Equal(t, "Hello world", text)
		assert.Equal(t, "/v1beta/models/gemini-1.5-pro-latest:generateContent", gotPath)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, gotBody.Contents, 1)
		assert.Equal(t, "say hello", gotBody.Contents[0].Parts[0].Text)
		assert.Equal(t, defaultGenerationConfig, gotBody.GenerationConfig)
		assert.Len(t, gotBody.SafetySettings, 4)
	})

	t.Run("file parts become fileData", func(t *testing.T) {
		var gotBody generateContentRequest
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			io.WriteString(w, generationBody("ok"))
		}))

		_, err := client.GenerateText(context.Background(),
			TextPart("prompt"),
			Part{File: &FileRef{URI: "uri://f", MIMEType: "application/pdf"}})
		require.NoError(t, err)

		require.Len(t, gotBody.Contents[0].Parts, 2)
		assert.Equal(t, "uri://f", gotBody.Contents[0].Parts[1].FileData.FileURI)
		assert.Equal(t, "application/pdf", gotBody.Contents[0].Parts[1].FileData.MIMEType)
	})

	t.Run("no candidates is empty text, not an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"candidates":[]}`)
		}))

		text, err := client.GenerateText(context.Background(), TextPart("p"))
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("error status surfaces once without retry", func(t *testing.T) {
		calls := 0
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
		}))

		_, err := client.GenerateText(context.Background(), TextPart("p"))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ExternalServiceError, appErr.Type)
		assert.Contains(t, appErr.Message, "429")
		assert.Equal(t, 1, calls)
	})

	t.Run("slow provider reports upstream timeout", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		client.timeout = 50 * time.Millisecond

		_, err := client.GenerateText(context.Background(), TextPart("p"))
		assert.True(t, apperror.IsUpstreamTimeout(err), "got %v", err)
	})
}

func TestClientUploadFile(t *testing.T) {
	t.Run("multipart upload returns file reference", func(t *testing.T) {
		var gotContentType, gotBody string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			io.WriteString(w, `{"file":{"name":"files/abc","uri":"uri://abc","mimeType":"application/pdf"}}`)
		}))

		ref, err := client.UploadFile(context.Background(), "template.pdf", "application/pdf", []byte("pdf-bytes"))
		require.NoError(t, err)

		assert.Equal(t, "files/abc", ref.Name)
		assert.Equal(t, "uri://abc", ref.URI)
		assert.True(t, strings.HasPrefix(gotContentType, "multipart/related; boundary="))
		assert.Contains(t, gotBody, `"display_name":"template.pdf"`)
		assert.Contains(t, gotBody, "pdf-bytes")
	})

	t.Run("missing file reference is an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{}`)
		}))

		_, err := client.UploadFile(context.Background(), "f.pdf", "application/pdf", []byte("x"))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.ExternalServiceError, appErr.Type)
	})
}

func TestRedactKey(t *testing.T) {
	redacted := redactKey("https://example.com/v1beta/models/m:generateContent?key=secret123")
	assert.NotContains(t, redacted, "secret123")
	assert.Contains(t, redacted, "key=REDACTED")
}
