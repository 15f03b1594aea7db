package genai

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/auth"
)

// maxTemplateUploadBytes caps the in-memory size of one multipart template
// request.
const maxTemplateUploadBytes = 32 << 20

// Handlers exposes the generation service over HTTP.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates the generation Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service, validate: validator.New()}
}

// HandleGenerateApplication godoc
// @Summary Generate a full grant application
// @Description Renders the company data into the application prompt and returns the generated application text.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body genai.ApplicationRequest true "Company data and grant program"
// @Success 200 {object} genai.ApplicationResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed body"
// @Failure 500 {object} apperror.ErrorResponse "Upstream failure or empty generation"
// @Failure 504 {object} apperror.ErrorResponse "Provider timeout"
// @Router /api/v1/generate-grant-application [post]
func (h *Handlers) HandleGenerateApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("companyInfo.companyName and companyInfo.description are required", err))
			return
		}

		text, err := h.service.GenerateGrantApplication(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ApplicationResponse{
			Status:               "success",
			GeneratedApplication: text,
			Message:              "Grant application generated successfully",
		})
	}
}

// HandleValidateAPIKey godoc
// @Summary Check the provider API key
// @Description Sends a minimal generation probe and reports whether the configured key works. Always responds 200; the result is in the body.
// @Tags generation
// @Produce json
// @Success 200 {object} genai.KeyValidationResponse
// @Router /api/v1/validate-api-key [get]
func (h *Handlers) HandleValidateAPIKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		valid := h.service.ValidateAPIKey(r.Context())

		resp := KeyValidationResponse{APIKeyValid: valid}
		if valid {
			resp.Status = "success"
			resp.Message = "API key is valid"
		} else {
			resp.Status = "error"
			resp.Message = "API key validation failed"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGenerateAnswers godoc
// @Summary Draft answers to the standard application questions
// @Description Generates one answer per standard application section from the company profile. Sections that fail carry an error field; the batch still returns.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body genai.AnswersRequest true "Company profile"
// @Success 200 {object} genai.AnswersResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed body"
// @Router /api/v1/generate-answers [post]
func (h *Handlers) HandleGenerateAnswers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("companyInfo.companyName and companyInfo.description are required", err))
			return
		}

		answers := h.service.GenerateAnswers(r.Context(), req.CompanyInfo)

		failed := 0
		for _, answer := range answers {
			if answer.Error != "" {
				failed++
			}
		}
		resp := AnswersResponse{Status: "success", Answers: answers, Message: "Answers generated successfully"}
		if failed > 0 {
			resp.Status = "partial"
			resp.Message = "Some answers could not be generated"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGenerateTemplate godoc
// @Summary Generate a grant template from an example file
// @Description Multipart request: user_context is a JSON string, files[] carries the example file(s), additional_instructions is optional free text.
// @Tags generation
// @Accept multipart/form-data
// @Produce json
// @Param user_context formData string true "User context as JSON"
// @Param files formData file true "Example and supporting files"
// @Param additional_instructions formData string false "Extra instructions"
// @Success 200 {object} genai.TemplateResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed form or context JSON"
// @Failure 500 {object} apperror.ErrorResponse "Upload or generation failure"
// @Router /generate-grant-template [post]
func (h *Handlers) HandleGenerateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxTemplateUploadBytes); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid multipart form: "+err.Error(), nil))
			return
		}

		rawContext := r.PostFormValue("user_context")
		if rawContext == "" {
			auth.WriteError(w, r, apperror.NewValidationError("user_context is required", nil))
			return
		}
		var userContext map[string]any
		if err := json.Unmarshal([]byte(rawContext), &userContext); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("user_context must be valid JSON", err))
			return
		}

		files, err := readUploadedFiles(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		text, err := h.service.GenerateTemplateFromExample(r.Context(), userContext, files, r.PostFormValue("additional_instructions"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TemplateResponse{
			Status:        "success",
			GrantTemplate: text,
			Message:       "Grant template generated successfully",
		})
	}
}

// HandleEditAnswer godoc
// @Summary Edit a passage of generated text
// @Description Rewrites the original text per the instruction, keeping unrelated content verbatim, and returns the full rewritten text.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body genai.EditRequest true "Original text, selected passage, and instruction"
// @Success 200 {object} genai.EditResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing field"
// @Failure 500 {object} apperror.ErrorResponse "Upstream failure"
// @Router /edit-answer [post]
func (h *Handlers) HandleEditAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("original_text, selected_text and edit_instruction are required", err))
			return
		}

		text, err := h.service.EditPassage(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, EditResponse{EditedText: text})
	}
}

// readUploadedFiles drains the files[] parts of the parsed multipart form
// into memory. Both "files[]" and "files" field names are accepted.
func readUploadedFiles(r *http.Request) ([]UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["files[]"]...)
	headers = append(headers, r.MultipartForm.File["files"]...)

	files := make([]UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, apperror.NewBadRequestError("failed to open uploaded file "+header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, apperror.NewBadRequestError("failed to read uploaded file "+header.Filename, err)
		}
		files = append(files, UploadedFile{
			Name:     header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			Data:     data,
		})
	}
	return files, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
