package genai

// CompanyInfo mirrors the frontend's company form. Field names stay in the
// frontend's camelCase on the wire.
type CompanyInfo struct {
	CompanyName   string     `json:"companyName" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Address       string     `json:"address"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	EmployeeCount string     `json:"employeeCount"`
	AnnualRevenue string     `json:"annualRevenue"`
	Industry      string     `json:"industry"`
	Website       string     `json:"website"`
	Documents     []Document `json:"documents,omitempty"`
}

// Document describes a supporting document the applicant has on hand. Only
// its name and type are forwarded into the prompt; contents are not.
type Document struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SelectedTemplate names the grant program being applied to. Zero fields
// fall back to the SBIR Phase I defaults.
type SelectedTemplate struct {
	Title    string `json:"title"`
	Agency   string `json:"agency"`
	Amount   string `json:"amount"`
	Duration string `json:"duration"`
	Category string `json:"category"`
}

// withDefaults fills unset program fields with the default SBIR Phase I
// program.
func (t SelectedTemplate) withDefaults() SelectedTemplate {
	if t.Title == "" {
		t.Title = "SBIR Phase I"
	}
	if t.Agency == "" {
		t.Agency = "NSF"
	}
	if t.Amount == "" {
		t.Amount = "$275,000"
	}
	if t.Duration == "" {
		t.Duration = "6-12 months"
	}
	if t.Category == "" {
		t.Category = "Technology Innovation"
	}
	return t
}

// ApplicationRequest is the body of POST /api/v1/generate-grant-application.
type ApplicationRequest struct {
	CompanyInfo      CompanyInfo       `json:"companyInfo" validate:"required"`
	SelectedTemplate SelectedTemplate  `json:"selectedTemplate"`
	QuestionAnswers  map[string]string `json:"questionAnswers"`
}

// ApplicationResponse is the success envelope for application generation.
type ApplicationResponse struct {
	Status               string `json:"status"`
	GeneratedApplication string `json:"generated_application"`
	Message              string `json:"message"`
}

// KeyValidationResponse reports whether the configured provider API key
// works.
type KeyValidationResponse struct {
	Status      string `json:"status"`
	APIKeyValid bool   `json:"api_key_valid"`
	Message     string `json:"message"`
}

// TemplateResponse is the success envelope for template generation.
type TemplateResponse struct {
	Status        string `json:"status"`
	GrantTemplate string `json:"grant_template"`
	Message       string `json:"message"`
}

// EditRequest is the body of POST /edit-answer.
type EditRequest struct {
	OriginalText    string `json:"original_text" validate:"required"`
	SelectedText    string `json:"selected_text" validate:"required"`
	EditInstruction string `json:"edit_instruction" validate:"required"`
}

// EditResponse carries the full rewritten text, not a diff.
type EditResponse struct {
	EditedText string `json:"edited_text"`
}

// AnswersRequest is the body of POST /api/v1/generate-answers.
type AnswersRequest struct {
	CompanyInfo CompanyInfo `json:"companyInfo" validate:"required"`
}

// Answer is one drafted application section. Error is set instead of Answer
// when that section's generation failed; the rest of the batch still
// returns.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AnswersResponse is the success envelope for batch answer generation.
type AnswersResponse struct {
	Status  string   `json:"status"`
	Answers []Answer `json:"answers"`
	Message string   `json:"message"`
}

// UploadedFile is one attachment received from the multipart template
// request, already read into memory.
type UploadedFile struct {
	Name     string
	MIMEType string
	Data     []byte
}
