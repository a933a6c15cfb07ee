package parse

import "fmt"

// ErrorKind classifies a parse failure.
type ErrorKind string

const (
	KindMissingRequiredField ErrorKind = "missing_required_field"
	KindMalformedRow         ErrorKind = "malformed_row"
	KindInvalidScoreToken    ErrorKind = "invalid_score_token"
	KindUnrecognizedStatus   ErrorKind = "unrecognized_status"
)

const maxSnippet = 160

// Error is one per-item parse failure. Stage names the parser,
// Reference the entity being parsed, and Snippet carries enough of the
// offending input to inspect later.
type Error struct {
	Kind      ErrorKind
	Stage     string
	Reference string
	Snippet   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s): %q", e.Stage, e.Kind, e.Reference, e.Snippet)
}

func newError(kind ErrorKind, stage, reference, snippet string) *Error {
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	return &Error{Kind: kind, Stage: stage, Reference: reference, Snippet: snippet}
}
