package broker

import "github.com/shopspring/decimal"

// Requirement is the caller's description of the agent it needs. It is used
// only for ranking and is never persisted.
type Requirement struct {
	Description          string   `json:"description"`
	PreferredLLMProvider string   `json:"preferred_llm_provider"`
	MaxAgentCost         float64  `json:"max_agent_cost"`
	MaxTotalAgentCost    float64  `json:"max_total_agent_cost"`
	Skills               []string `json:"skills"`
	Streaming            bool     `json:"streaming"`
	IsMultiAgentSystem   bool     `json:"is_multi_agent_system"`
}

// CanonicalResponse is the framework-agnostic shape every adapter normalizes
// into. Content is nil only when the upstream reply carried no extractable
// text — never as an error sentinel; errors propagate as errors.
type CanonicalResponse struct {
	Content      *string `json:"content"`
	InputTokens  *int64  `json:"input_tokens"`
	OutputTokens *int64  `json:"output_tokens"`
}

// SettlementResult records one settled dispatch. Settlement is applied at most
// once per session id; replays return the recorded result.
type SettlementResult struct {
	Success   bool            `json:"success"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
