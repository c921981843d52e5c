package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// SystemDirective is sent with every backend request.
const SystemDirective = `You are JARVIS, an AI System Administrator.
Rules:
1. Think in JSON.
2. Your only output is one valid JSON object.
3. The object has exactly these keys: "thought" (internal reasoning), "action" (an action name or null), "param" (an object of arguments or null) and "reply" (natural language for the user).
4. If no action is needed, set "action" to null.
5. Action names are abstract capabilities, never shell commands. Known actions: system_monitor, security_scan_ports, check_firewall, list_processes, read_logs, quick_clean, update_system, block_ip (param: ip), stop_service (param: service), fix_system_issue (param: target, key_id), simulate_attack, resolve_threat.

Example:
{
  "thought": "User asked for CPU usage. I should run the monitor tool.",
  "action": "system_monitor",
  "param": {},
  "reply": "Checking CPU status for you, sir."
}`

// GeminiResolver asks Google Gemini for a JSON intent.
type GeminiResolver struct {
	client  GeminiClient
	model   string
	timeout time.Duration
}

// NewGeminiResolver creates a resolver backed by client.
func NewGeminiResolver(client GeminiClient, model string, timeout time.Duration) *GeminiResolver {
	if client == nil {
		panic("client is required")
	}
	return &GeminiResolver{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// Resolve sends one request. Every failure is a *BackendUnavailableError.
func (r *GeminiResolver) Resolve(ctx context.Context, contextSummary, userText string) (Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: fmt.Sprintf("Context: %s\n\nUser: %s", contextSummary, userText)}},
		},
	}
	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemDirective}}},
		ResponseMIMEType:  "application/json",
		Temperature:       &temperature,
	}

	resp, err := r.client.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		return Intent{}, &BackendUnavailableError{Reason: describeGeminiError(err), Cause: err}
	}

	text, err := responseText(resp)
	if err != nil {
		return Intent{}, &BackendUnavailableError{Reason: err.Error()}
	}

	intent, err := DecodeIntent([]byte(text))
	if err != nil {
		return Intent{}, &BackendUnavailableError{Reason: "malformed response", Cause: err}
	}
	return intent, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", errors.New("response blocked by safety filters")
	}
	if candidate.Content == nil {
		return "", errors.New("empty candidate content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("empty response text")
	}
	return sb.String(), nil
}

// describeGeminiError names the failure class for logs.
func describeGeminiError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}

	// The SDK has returned both pointer and value forms across releases.
	var code int
	var message string
	var apiErrPtr *genai.APIError
	var apiErr genai.APIError
	switch {
	case errors.As(err, &apiErrPtr):
		code, message = apiErrPtr.Code, apiErrPtr.Message
	case errors.As(err, &apiErr):
		code, message = apiErr.Code, apiErr.Message
	default:
		return "network error"
	}

	switch code {
	case 401, 403:
		return "authentication failed"
	case 429:
		return "rate limit exceeded"
	case 400:
		return fmt.Sprintf("invalid request: %s", message)
	case 500, 502, 503, 504:
		return "service unavailable"
	default:
		return fmt.Sprintf("API error: %s", message)
	}
}
