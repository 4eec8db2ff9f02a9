package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/core/ports/driving"
	"github.com/golos-labs/golos-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.Assistant = (*AskService)(nil)

const (
	askMaxTokens   = 512
	askTemperature = 0.1
)

// askSystemPrompt instructs the model to answer with exactly one tool call.
// The schema mirrors the tool call union; "tool" is the discriminator.
const askSystemPrompt = `You are a voice assistant that maps a user request to exactly one tool call.
Respond with a single JSON object and nothing else. No prose, no code fences.

Available tools (the "tool" field selects one):

{"tool": "flight_schedule", "from_city": "<departure city>", "to_city": "<arrival city>", "date": "<date expression as the user said it>"}
{"tool": "add_calendar_event", "date": "<date expression>", "description": "<event description>"}
{"tool": "get_calendar_events", "date": "<day expression>", "date_from": "<from expression>", "date_to": "<to expression>"}
{"tool": "search_music", "query": "<artist or track>", "limit": <max results>}
{"tool": "create_note", "title": "<title>", "content": "<content>"}
{"tool": "search_notes", "query": "<search text>"}
{"tool": "no_tool_available", "reason": "<why no tool fits>", "user_message": "<polite explanation for the user>"}

Keep date expressions verbatim: the tools parse Russian and English phrases
like "завтра", "next week", "15 февраля" themselves. Omit optional fields you
do not need. If the request fits no tool, use no_tool_available.`

// AskService turns a free-form request into a single tool call via the
// language model and dispatches it.
type AskService struct {
	llm        driven.LLMService
	dispatcher driving.ToolDispatcher
}

// NewAskService creates an assistant backed by the given model and dispatcher.
func NewAskService(llm driven.LLMService, dispatcher driving.ToolDispatcher) *AskService {
	return &AskService{llm: llm, dispatcher: dispatcher}
}

// Ask sends the request to the model, decodes the returned tool call, and
// dispatches it. Model output that is not a valid tool call is an error, not
// a ToolResult: the caller should retry or rephrase.
func (s *AskService) Ask(ctx context.Context, request string) (domain.ToolResult, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return domain.ToolResult{}, fmt.Errorf("empty request: %w", domain.ErrInvalidInput)
	}

	logger.Section("Assistant")
	logger.Info("Model: %s", s.llm.ModelName())
	logger.Debug("Request: %s", request)

	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: askSystemPrompt},
		{Role: "user", Content: request},
	}, driven.ChatOptions{MaxTokens: askMaxTokens, Temperature: askTemperature})
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("chat request failed: %w", err)
	}

	payload := stripCodeFences(reply)
	logger.Debug("Model reply: %s", payload)

	call, err := domain.DecodeToolCall([]byte(payload))
	if err != nil {
		return domain.ToolResult{}, fmt.Errorf("model returned an invalid tool call: %w", err)
	}

	return s.dispatcher.Dispatch(ctx, call), nil
}

// stripCodeFences unwraps a reply wrapped in markdown fences. Models add them
// despite instructions; the payload inside is kept as-is.
func stripCodeFences(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}

	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}
