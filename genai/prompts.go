package genai

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
)

// baseApplicationPrompt is the grant-writer instruction template. The
// company details are substituted into its placeholder at request time.
//
//go:embed prompt.txt
var baseApplicationPrompt string

const companyDetailsPlaceholder = "[Insert Company Details Here - See Template Below]"

// applicationQuestions is the fixed set of sections a draft application
// answers, in the order the answers are returned.
var applicationQuestions = []string{
	"Provide an executive summary of the proposed project.",
	"What problem does the company address, and why does it matter now?",
	"Describe the proposed solution and what makes it innovative.",
	"What impact and outcomes do you expect the project to deliver?",
	"Outline the project budget and justify the major cost items.",
	"Describe the project timeline and its key milestones.",
}

// renderCompanyDetails turns the structured request into the text block
// substituted into the base prompt. Missing values render as "Not provided"
// so the model is told explicitly rather than left to guess.
func renderCompanyDetails(req ApplicationRequest) string {
	info := req.CompanyInfo
	program := req.SelectedTemplate.withDefaults()

	var sb strings.Builder
	sb.WriteString("\n**COMPANY INFORMATION:**\n")
	writeField(&sb, "Company Name", info.CompanyName)
	writeField(&sb, "Mission/Description", info.Description)
	writeField(&sb, "Address", info.Address)
	writeField(&sb, "Email", info.Email)
	writeField(&sb, "Phone", info.Phone)
	writeField(&sb, "Employee Count", info.EmployeeCount)
	writeField(&sb, "Annual Revenue", info.AnnualRevenue)
	writeField(&sb, "Industry", info.Industry)
	writeField(&sb, "Website", info.Website)

	sb.WriteString("\n**GRANT PROGRAM INFORMATION:**\n")
	writeField(&sb, "Program", program.Title)
	writeField(&sb, "Funding Agency", program.Agency)
	writeField(&sb, "Award Amount", program.Amount)
	writeField(&sb, "Duration", program.Duration)
	writeField(&sb, "Program Focus", program.Category)

	sb.WriteString("\n**PROJECT DETAILS:**\n")
	// Map iteration order is random; sort for a stable prompt.
	keys := make([]string, 0, len(req.QuestionAnswers))
	for key := range req.QuestionAnswers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		answer := strings.TrimSpace(req.QuestionAnswers[key])
		if answer == "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", key, answer)
	}

	if len(info.Documents) > 0 {
		sb.WriteString("\n**SUPPORTING DOCUMENTS:**\n")
		for i, doc := range info.Documents {
			name := doc.Name
			if name == "" {
				name = fmt.Sprintf("Document %d", i+1)
			}
			docType := doc.Type
			if docType == "" {
				docType = "Unknown"
			}
			fmt.Fprintf(&sb, "- %s (%s)\n", name, docType)
		}
	}

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "Not provided"
	}
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

// buildApplicationPrompt substitutes the rendered company details into the
// base prompt's placeholder.
func buildApplicationPrompt(req ApplicationRequest) string {
	return strings.ReplaceAll(baseApplicationPrompt, companyDetailsPlaceholder, renderCompanyDetails(req))
}

// renderCompanyProfile is the short profile embedded in per-question
// prompts.
func renderCompanyProfile(info CompanyInfo) string {
	var sb strings.Builder
	sb.WriteString("**COMPANY PROFILE:**\n")
	writeField(&sb, "Company Name", info.CompanyName)
	writeField(&sb, "Description", info.Description)
	writeField(&sb, "Industry", info.Industry)
	writeField(&sb, "Employee Count", info.EmployeeCount)
	writeField(&sb, "Annual Revenue", info.AnnualRevenue)
	writeField(&sb, "Website", info.Website)
	return sb.String()
}

// answerPrompt builds the prompt for one application question.
func answerPrompt(question string, info CompanyInfo) string {
	return fmt.Sprintf(`You are an expert grant writer drafting one section of a grant application for the company below.

%s

Answer the following application question in professional, specific prose grounded in the company profile. Return only the answer text.

Question: %s`, renderCompanyProfile(info), question)
}

// editPrompt builds the rewrite instruction. The model must return the full
// document, with every passage affected by the change updated and
// everything unrelated kept verbatim.
func editPrompt(originalText, selectedText, instruction string) string {
	return fmt.Sprintf(`You are editing a grant application document.

**ORIGINAL DOCUMENT:**
%s

**SELECTED PASSAGE:**
%s

**EDIT INSTRUCTION:**
%s

Apply the instruction to the selected passage, and update any other part of the document that the change affects (figures, references, repeated claims) so the document stays consistent. Leave all unrelated content exactly as it is.

Return the complete rewritten document, not a diff and not only the edited passage.`, originalText, selectedText, instruction)
}

// templatePrompt builds the grant-template generation prompt around the
// uploaded example file.
func templatePrompt(contextText, exampleFilename, additionalInstructions string) string {
	prompt := fmt.Sprintf(`You are an expert grant writer specializing in helping startups and founders create compelling grant applications.

Your task is to generate a comprehensive grant template in markdown format based on the provided context and template inspiration.

**CONTEXT INFORMATION:**
%s

**INSTRUCTIONS:**
1. Use the uploaded file "%s" as your primary template and structural inspiration
2. Analyze the template structure, sections, and format requirements
3. Generate a new grant application that follows the template's structure but is customized for the specific context provided
4. Fill in relevant sections with information from the context, and provide placeholder guidance where specific details are needed
5. Maintain professional grant writing standards and a compelling narrative flow
6. Include all sections typically found in grant applications (executive summary, problem statement, solution, impact, budget, timeline)
7. Format the output in clean, well-structured markdown
8. Where specific information is not available in the context, state clearly what should be filled in

**OUTPUT REQUIREMENTS:**
- Return ONLY the grant template in markdown format
- Ensure the template is ready for immediate use and customization
- Include section headers, bullet points, and proper formatting

**ADDITIONAL CONTEXT FILES:**
The other uploaded files contain supplementary information; incorporate it where it strengthens the application.`, contextText, exampleFilename)

	if additionalInstructions != "" {
		prompt += "\n\n**SPECIAL INSTRUCTIONS:**\n" + additionalInstructions
	}
	return prompt
}

// formatUserContext renders the free-form user context JSON into the
// sectioned markdown the template prompt embeds. Known sections render
// their known keys in a fixed order; anything under "additional" is
// rendered key by key.
func formatUserContext(userContext map[string]any) string {
	var sb strings.Builder

	writeSection := func(title string, section map[string]any, fields [][2]string) {
		sb.WriteString("## " + title + "\n")
		for _, field := range fields {
			fmt.Fprintf(&sb, "**%s:** %s\n", field[0], stringValue(section[field[1]]))
		}
		sb.WriteString("\n")
	}

	if company, ok := userContext["company"].(map[string]any); ok {
		writeSection("Company Information", company, [][2]string{
			{"Company Name", "name"},
			{"Industry", "industry"},
			{"Stage", "stage"},
			{"Description", "description"},
			{"Mission", "mission"},
		})
	}
	if founder, ok := userContext["founder"].(map[string]any); ok {
		writeSection("Founder Information", founder, [][2]string{
			{"Name", "name"},
			{"Background", "background"},
			{"Experience", "experience"},
			{"Education", "education"},
		})
	}
	if project, ok := userContext["project"].(map[string]any); ok {
		writeSection("Project Information", project, [][2]string{
			{"Project Title", "title"},
			{"Objective", "objective"},
			{"Expected Impact", "impact"},
			{"Timeline", "timeline"},
			{"Budget Range", "budget"},
		})
	}
	if financial, ok := userContext["financial"].(map[string]any); ok {
		writeSection("Financial Information", financial, [][2]string{
			{"Funding Needed", "funding_needed"},
			{"Current Funding", "current_funding"},
			{"Revenue Model", "revenue_model"},
		})
	}
	if additional, ok := userContext["additional"].(map[string]any); ok {
		sb.WriteString("## Additional Context\n")
		keys := make([]string, 0, len(additional))
		for key := range additional {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&sb, "**%s:** %s\n", titleize(key), stringValue(additional[key]))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func stringValue(v any) string {
	if v == nil {
		return "N/A"
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return "N/A"
	}
	return s
}

// titleize turns snake_case keys into title-cased labels.
func titleize(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
