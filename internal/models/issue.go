package models

// ImagePlaceholder is the marker the synthesizer leaves in issue bodies
// where an image reference must be substituted before publishing.
const ImagePlaceholder = "[IMAGE_PLACEHOLDER]"

// IssueContent is a synthesized title/body pair ready for publishing.
// The body may still contain ImagePlaceholder tokens.
type IssueContent struct {
	Title string
	Body  string
}

// Issue is a published issue as reported back by the repository host.
type Issue struct {
	Number int
	Title  string
	URL    string
}

// SynthesisRequest carries everything the content synthesizer needs for a
// single completion call.
type SynthesisRequest struct {
	Content  CapturedContent
	Shape    ContentShape
	PageURL  string
	Template string // raw issue template text, empty when none was resolved
}
