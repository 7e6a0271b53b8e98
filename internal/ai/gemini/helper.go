package gemini

import (
	"regexp"
	"strings"

	"google.golang.org/genai"
)

var (
	openingFenceRegex = regexp.MustCompile("(?i)^```[a-zA-Z]*\\s*")
	closingFenceRegex = regexp.MustCompile("\\s*```\\s*$")
)

// StripFence removes an optional leading Markdown code fence (possibly
// language-tagged) and an optional trailing fence from a model reply.
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	text = openingFenceRegex.ReplaceAllString(text, "")
	text = closingFenceRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// TruncateTitle hard-caps a title at max characters, on rune boundaries.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max])
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					formattedContent.WriteString(part.Text)
				}
			}
		}
	}
	return formattedContent.String()
}

func float32Ptr(f float32) *float32 {
	return &f
}
