package agent_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	domainagent "github.com/untangle-ai/agent-broker/internal/domain/agent"
)

func TestNewDefaults(t *testing.T) {
	ownerID := uuid.New()
	a := domainagent.New(ownerID, "summarizer", "desc", "https://a.example.com", "google", []string{"nlp"}, "1", domainagent.FrameworkGoogleADK)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, ownerID, a.OwnerID)
	assert.True(t, a.IsActive)
	assert.True(t, a.IsPublic)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestFrameworkKnown(t *testing.T) {
	assert.True(t, domainagent.FrameworkGoogleADK.Known())
	assert.True(t, domainagent.FrameworkCrewAI.Known())
	assert.False(t, domainagent.Framework("langchain").Known())
	assert.False(t, domainagent.Framework("").Known())
}

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name     string
		skills   []string
		required []string
		want     float64
	}{
		{name: "full overlap", skills: []string{"nlp", "ocr"}, required: []string{"nlp", "ocr"}, want: 1},
		{name: "half overlap", skills: []string{"nlp"}, required: []string{"nlp", "ocr"}, want: 0.5},
		{name: "no overlap", skills: []string{"vision"}, required: []string{"nlp"}, want: 0},
		{name: "no required skills", skills: []string{"nlp"}, required: nil, want: 0},
		{name: "agent has no skills", skills: nil, required: []string{"nlp"}, want: 0},
		{name: "extra agent skills do not inflate", skills: []string{"nlp", "ocr", "vision"}, required: []string{"nlp"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domainagent.Agent{Skills: tt.skills}
			assert.InDelta(t, tt.want, a.SkillOverlap(tt.required), 1e-9)
		})
	}
}

func TestDispatchable(t *testing.T) {
	base := domainagent.Agent{IsActive: true, DeployedURL: "https://a.example.com", LLMProvider: "google"}
	assert.True(t, base.Dispatchable())

	inactive := base
	inactive.IsActive = false
	assert.False(t, inactive.Dispatchable())

	noURL := base
	noURL.DeployedURL = ""
	assert.False(t, noURL.Dispatchable())

	noProvider := base
	noProvider.LLMProvider = ""
	assert.False(t, noProvider.Dispatchable())
}
