package agenthttp

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/untangle-ai/agent-broker/internal/domain/broker"
	portdispatch "github.com/untangle-ai/agent-broker/internal/port/dispatch"
)

type adkUsageMetadata struct {
	PromptTokenCount        *int64 `json:"promptTokenCount"`
	ToolUsePromptTokenCount *int64 `json:"toolUsePromptTokenCount"`
	CandidatesTokenCount    *int64 `json:"candidatesTokenCount"`
}

type adkTurnPart struct {
	Text *string `json:"text"`
}

type adkTurnContent struct {
	Parts []adkTurnPart `json:"parts"`
}

type adkTurn struct {
	Content       *adkTurnContent   `json:"content"`
	UsageMetadata *adkUsageMetadata `json:"usageMetadata"`
}

type adkLegacyCandidate struct {
	Text    *string `json:"text"`
	Content *string `json:"content"`
}

type adkLegacyResponse struct {
	Candidates []adkLegacyCandidate `json:"candidates"`
	Text       *string              `json:"text"`
	Content    *string              `json:"content"`
}

type adkLegacyEnvelope struct {
	Responses     []adkLegacyResponse `json:"responses"`
	UsageMetadata *adkUsageMetadata   `json:"usageMetadata"`
}

// ParseADKResponse normalizes an ADK reply into the canonical shape. Two
// shapes are tolerated: an array of conversation turns (the last turn's last
// text part wins) and the older {responses: [...]} envelope (the first
// response's first candidate wins). Token counts come from usageMetadata when
// present and stay nil otherwise. An unknown-but-valid JSON shape yields an
// all-null response, not an error; only undecodable JSON is an upstream
// failure.
func ParseADKResponse(raw []byte) (broker.CanonicalResponse, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return broker.CanonicalResponse{}, fmt.Errorf("%w: agent reply is not valid JSON", portdispatch.ErrUpstreamUnavailable)
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseTurnArray(trimmed), nil
	}
	return parseLegacyEnvelope(trimmed), nil
}

func parseTurnArray(raw []byte) broker.CanonicalResponse {
	var turns []adkTurn
	if err := json.Unmarshal(raw, &turns); err != nil || len(turns) == 0 {
		return broker.CanonicalResponse{}
	}

	last := turns[len(turns)-1]

	var resp broker.CanonicalResponse
	if last.Content != nil {
		// Last part carrying text wins — later parts supersede earlier ones
		// within a turn.
		for _, part := range last.Content.Parts {
			if part.Text != nil && *part.Text != "" {
				text := *part.Text
				resp.Content = &text
			}
		}
	}
	if meta := last.UsageMetadata; meta != nil {
		resp.InputTokens = firstNonNil(meta.PromptTokenCount, meta.ToolUsePromptTokenCount)
		resp.OutputTokens = meta.CandidatesTokenCount
	}
	return resp
}

func parseLegacyEnvelope(raw []byte) broker.CanonicalResponse {
	var envelope adkLegacyEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Responses) == 0 {
		return broker.CanonicalResponse{}
	}

	first := envelope.Responses[0]
	candidate := adkLegacyCandidate{Text: first.Text, Content: first.Content}
	if len(first.Candidates) > 0 {
		candidate = first.Candidates[0]
	}

	var resp broker.CanonicalResponse
	if text := firstNonNilString(candidate.Text, candidate.Content); text != nil {
		resp.Content = text
	}
	if meta := envelope.UsageMetadata; meta != nil {
		resp.InputTokens = meta.PromptTokenCount
		resp.OutputTokens = meta.CandidatesTokenCount
	}
	return resp
}

func firstNonNil(values ...*int64) *int64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonNilString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
