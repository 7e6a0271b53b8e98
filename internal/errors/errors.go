package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeCapture       ErrorType = "CAPTURE"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors. These block the pipeline before any network call
// and surface as a setup prompt, not a failure.
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
				WithSuggestion("Configure your Gemini API key: thoth config set gemini_api_key <key>")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Configure your GitHub token: thoth config set github_token <token>")

	ErrNoRepositories = NewAppError(TypeConfiguration, "No repositories configured", nil).
				WithSuggestion("Load your accounts and select at least one: thoth sources load")
)

// Capture errors
var (
	ErrNoContent = NewAppError(TypeCapture, "No content captured", nil).
			WithSuggestion("Select text on the page or right-click an image before triggering")

	ErrLocatorUnavailable = NewAppError(TypeCapture, "Page locator is not responding", nil).
				WithSuggestion("Reload the page and try again")
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrInvalidAIOutput = NewAppError(TypeAI, "Failed to parse AI response", nil).
				WithSuggestion("This is likely a temporary issue, please try again")
)

// VCS errors
var (
	ErrNotFound = NewAppError(TypeVCS, "resource not found", nil)

	ErrCannotIdentifyCaller = NewAppError(TypeVCS, "Failed to fetch user information", nil).
				WithSuggestion("Check your GitHub token is valid: thoth config show")

	ErrCreateIssue = NewAppError(TypeVCS, "failed to create issue", nil).
			WithSuggestion("Check your GitHub token has 'repo' permissions")
)
