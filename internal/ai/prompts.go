package ai

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/thomas-vilte/thoth/internal/models"
)

// SystemInstruction is the fixed system role sent with every completion.
const SystemInstruction = "You are a helpful assistant that creates well-structured GitHub issues."

const textPromptTemplate = `You are an AI assistant helping to create GitHub issues. Based on the following selected text from a webpage, generate a clear and concise GitHub issue.

Selected text:
"""
{{.Text}}
"""

Source page: {{.PageURL}}{{.TemplateInstructions}}

Please respond with a JSON object containing:
- "title": A brief, descriptive title for the GitHub issue (max 80 characters)
- "body": A detailed description including the original content, context, and any relevant information. ALWAYS include the source page URL at the end of the body with a "Source:" label.

Format your response as valid JSON only, no additional text.`

const imagePromptTemplate = `You are an AI assistant helping to create GitHub issues. Based on an image from a webpage, generate a clear and concise GitHub issue.

The issue contains an image that will be embedded.

Source page: {{.PageURL}}{{.TemplateInstructions}}

Please respond with a JSON object containing:
- "title": A brief, descriptive title for the GitHub issue (max 80 characters)
- "body": A detailed description. Use [IMAGE_PLACEHOLDER] exactly where the image should appear in markdown format. Include context and any relevant information. ALWAYS include the source page URL at the end of the body with a "Source:" label.

Format your response as valid JSON only, no additional text.`

const textAndImagePromptTemplate = `You are an AI assistant helping to create GitHub issues. Based on the following selected text and an image from a webpage, generate a clear and concise GitHub issue.

Selected text:
"""
{{.Text}}
"""

The issue also contains an image that will be embedded.

Source page: {{.PageURL}}{{.TemplateInstructions}}

Please respond with a JSON object containing:
- "title": A brief, descriptive title for the GitHub issue (max 80 characters)
- "body": A detailed description including the text content. Use [IMAGE_PLACEHOLDER] exactly where the image should appear in markdown format. ALWAYS include the source page URL at the end of the body with a "Source:" label.

Format your response as valid JSON only, no additional text.`

const templateInstructionsBlock = `

The repository has an issue template. Please fill out the template with the relevant information from the selected content:

%s

Use the template structure but replace placeholders and sections with appropriate content based on the selected text.`

// PromptData holds the parameters for prompt template rendering.
type PromptData struct {
	Text                 string
	PageURL              string
	TemplateInstructions string
}

// BuildIssuePrompt renders the prompt for a synthesis request, keyed by the
// request's content shape.
func BuildIssuePrompt(request models.SynthesisRequest) (string, error) {
	var tmplStr string
	switch request.Shape {
	case models.ShapeText:
		tmplStr = textPromptTemplate
	case models.ShapeImage:
		tmplStr = imagePromptTemplate
	case models.ShapeTextAndImage:
		tmplStr = textAndImagePromptTemplate
	default:
		return "", fmt.Errorf("no prompt for content shape %q", request.Shape)
	}

	data := PromptData{
		Text:    request.Content.Text,
		PageURL: request.PageURL,
	}
	if data.PageURL == "" {
		data.PageURL = "Unknown"
	}
	if request.Template != "" {
		data.TemplateInstructions = fmt.Sprintf(templateInstructionsBlock, request.Template)
	}

	return RenderPrompt("issue", tmplStr, data)
}

// RenderPrompt renders a prompt template with the provided data.
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}
