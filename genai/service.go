// Package genai is the gateway to the Gemini generative API: it drafts and
// edits grant-application text from structured company data, generates
// grant templates from uploaded example files, and probes the configured
// API key. Prompt construction stays in this package; callers deal only in
// domain requests and plain text results.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/user/grantflow-go/apperror"
)

// Provider is the upstream generative API as this package uses it.
// Satisfied by *Client; tests substitute stubs.
type Provider interface {
	GenerateText(ctx context.Context, parts ...Part) (string, error)
	UploadFile(ctx context.Context, name, mimeType string, data []byte) (*FileRef, error)
}

// Recorder receives generation telemetry. Satisfied by the metrics
// collector; nil disables recording.
type Recorder interface {
	ObserveGeneration(operation string, duration time.Duration, err error)
	ObserveUploadFailure()
}

// Service implements the generation operations on top of a Provider.
type Service struct {
	provider Provider
	log      *slog.Logger
	recorder Recorder
}

// NewService creates a generation Service. recorder may be nil.
func NewService(provider Provider, log *slog.Logger, recorder Recorder) *Service {
	return &Service{provider: provider, log: log, recorder: recorder}
}

// GenerateAnswers drafts one answer per application question, embedding the
// company profile in each prompt. The provider calls run concurrently but
// results come back in question order. A failed question carries its error
// in the result instead of voiding the batch.
func (s *Service) GenerateAnswers(ctx context.Context, info CompanyInfo) []Answer {
	answers := make([]Answer, len(applicationQuestions))

	var wg sync.WaitGroup
	for i, question := range applicationQuestions {
		wg.Add(1)
		go func(i int, question string) {
			defer wg.Done()

			start := time.Now()
			text, err := s.provider.GenerateText(ctx, TextPart(answerPrompt(question, info)))
			s.observe("generate_answers", start, err)

			answers[i] = Answer{Question: question}
			if err != nil {
				s.log.Error("answer generation failed", "question", question, "error", err)
				if appErr, ok := apperror.FromError(err); ok {
					answers[i].Error = appErr.Message
				} else {
					answers[i].Error = "generation failed"
				}
				return
			}
			answers[i].Answer = text
		}(i, question)
	}
	wg.Wait()

	return answers
}

// EditPassage rewrites originalText per the instruction and returns the
// full rewritten document.
func (s *Service) EditPassage(ctx context.Context, req EditRequest) (string, error) {
	start := time.Now()
	text, err := s.provider.GenerateText(ctx, TextPart(editPrompt(req.OriginalText, req.SelectedText, req.EditInstruction)))
	s.observe("edit_passage", start, err)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", apperror.NewEmptyGenerationError("provider returned no edited text", nil)
	}
	return text, nil
}

// GenerateGrantApplication composes the base prompt with the rendered
// company data and returns the generated application text.
func (s *Service) GenerateGrantApplication(ctx context.Context, req ApplicationRequest) (string, error) {
	prompt := buildApplicationPrompt(req)
	s.log.Info("generating grant application",
		"company", req.CompanyInfo.CompanyName, "prompt_length", len(prompt))

	start := time.Now()
	text, err := s.provider.GenerateText(ctx, TextPart(prompt))
	s.observe("generate_application", start, err)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", apperror.NewEmptyGenerationError("provider returned an empty application", nil)
	}
	return text, nil
}

// GenerateTemplateFromExample uploads the example files and asks the
// provider for a markdown grant template shaped after the first file. Any
// upload failure aborts with an error naming the offending file.
func (s *Service) GenerateTemplateFromExample(ctx context.Context, userContext map[string]any, files []UploadedFile, additionalInstructions string) (string, error) {
	if len(files) == 0 {
		return "", apperror.NewValidationError("at least one example file is required", nil)
	}

	refs := make([]*FileRef, 0, len(files))
	for _, file := range files {
		ref, err := s.provider.UploadFile(ctx, file.Name, file.MIMEType, file.Data)
		if err != nil {
			if s.recorder != nil {
				s.recorder.ObserveUploadFailure()
			}
			s.log.Error("file upload failed", "file", file.Name, "error", err)
			if apperror.IsUpstreamTimeout(err) {
				return "", err
			}
			return "", apperror.NewUploadError(fmt.Sprintf("Failed to upload file %s", file.Name), err)
		}
		s.log.Info("uploaded file", "file", file.Name, "uri", ref.URI)
		refs = append(refs, ref)
	}

	prompt := templatePrompt(formatUserContext(userContext), files[0].Name, additionalInstructions)
	parts := make([]Part, 0, len(refs)+1)
	parts = append(parts, TextPart(prompt))
	for _, ref := range refs {
		parts = append(parts, Part{File: ref})
	}

	start := time.Now()
	text, err := s.provider.GenerateText(ctx, parts...)
	s.observe("generate_template", start, err)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", apperror.NewEmptyGenerationError("provider returned an empty template", nil)
	}
	return text, nil
}

// ValidateAPIKey probes the provider with a one-word generation. Any
// failure means the key is unusable; the cause is logged, not surfaced.
func (s *Service) ValidateAPIKey(ctx context.Context) bool {
	text, err := s.provider.GenerateText(ctx, TextPart("Hello"))
	if err != nil {
		s.log.Error("api key validation failed", "error", err)
		return false
	}
	return text != ""
}

func (s *Service) observe(operation string, start time.Time, err error) {
	if s.recorder != nil {
		s.recorder.ObserveGeneration(operation, time.Since(start), err)
	}
}
