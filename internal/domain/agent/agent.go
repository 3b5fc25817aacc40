package agent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Framework identifies the wire-protocol dialect a deployed agent speaks.
type Framework string

const (
	FrameworkGoogleADK      Framework = "google_adk"
	FrameworkCrewAI         Framework = "crew_ai"
	FrameworkLangGraph      Framework = "langraph"
	FrameworkOpenAI         Framework = "openai"
	FrameworkAutoGen        Framework = "autogen"
	FrameworkAutoGPT        Framework = "autogpt"
	FrameworkSemanticKernel Framework = "semantic_kernel"
	FrameworkOpenAIAgents   Framework = "openai_agents"
)

var knownFrameworks = map[Framework]bool{
	FrameworkGoogleADK:      true,
	FrameworkCrewAI:         true,
	FrameworkLangGraph:      true,
	FrameworkOpenAI:         true,
	FrameworkAutoGen:        true,
	FrameworkAutoGPT:        true,
	FrameworkSemanticKernel: true,
	FrameworkOpenAIAgents:   true,
}

// Known reports whether f is a recognized framework name. Recognized does not
// mean dispatchable — only frameworks with a registered adapter can be called.
func (f Framework) Known() bool { return knownFrameworks[f] }

// Agent is a third-party service registered with the broker. The broker reads
// these records to rank and dispatch; ownership and lifecycle belong to the
// registry CRUD surface.
type Agent struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DeployedURL     string          `json:"deployed_url"`
	LLMProvider     string          `json:"llm_provider"`
	Skills          []string        `json:"skills"`
	AgentCost       string          `json:"agent_cost"` // flat per-call cost, decimal string
	InputTokenCost  decimal.Decimal `json:"input_token_cost"`
	OutputTokenCost decimal.Decimal `json:"output_token_cost"`
	Embedding       []float64       `json:"embedding,omitempty"`
	Framework       Framework       `json:"framework"`
	IsActive        bool            `json:"is_active"`
	IsPublic        bool            `json:"is_public"`
	OwnerWallet     string          `json:"owner_wallet,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func New(ownerID uuid.UUID, name, description, deployedURL, llmProvider string, skills []string, agentCost string, framework Framework) Agent {
	now := time.Now().UTC()
	return Agent{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		DeployedURL: deployedURL,
		LLMProvider: llmProvider,
		Skills:      skills,
		AgentCost:   agentCost,
		Framework:   framework,
		IsActive:    true,
		IsPublic:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (a *Agent) HasSkill(skill string) bool {
	for _, s := range a.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// SkillOverlap returns |required ∩ a.Skills| / |required|.
// Zero when either side is empty.
func (a *Agent) SkillOverlap(required []string) float64 {
	if len(required) == 0 || len(a.Skills) == 0 {
		return 0
	}
	matched := 0
	for _, req := range required {
		if a.HasSkill(req) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// Dispatchable reports whether the record is complete enough to receive traffic.
func (a *Agent) Dispatchable() bool {
	return a.IsActive && a.DeployedURL != "" && a.LLMProvider != ""
}

type ListFilters struct {
	OwnerID    *uuid.UUID
	ActiveOnly bool
	PublicOnly bool
}
