// Package intent turns free text into a structured Intent. An optional
// reasoning backend is tried first; a deterministic keyword classifier always
// produces an answer when the backend cannot.
package intent

import "context"

// Intent is the structured reading of one user turn.
// It must not be modified after the resolver returns it.
type Intent struct {
	Thought    string         `json:"thought"`
	Action     string         `json:"action,omitempty"`
	Parameters map[string]any `json:"param,omitempty"`
	Reply      string         `json:"reply"`
}

// HasAction reports whether the intent asks for anything to be executed.
func (i Intent) HasAction() bool {
	return i.Action != ""
}

// Resolver turns a context summary and the user's text into an Intent.
type Resolver interface {
	Resolve(ctx context.Context, contextSummary, userText string) (Intent, error)
}
